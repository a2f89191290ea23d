package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	JWT   JWTConfig
	Mongo MongoConfig
	Media MediaConfig
}

type JWTConfig struct {
	Secret string
}

type MongoConfig struct {
	URI string
	DB  string
}

type MediaConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	PublicBase   string // public CDN/base domain for resolving stored keys
	ImageHostURL string // hosted image-transformation upload endpoint
	ImagePreset  string // unsigned upload preset for the image host
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Mongo: MongoConfig{
			URI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DB:  getEnv("MONGO_DB", "edumarket"),
		},
		Media: MediaConfig{
			Endpoint:     getEnv("MEDIA_ENDPOINT", "localhost:9000"),
			AccessKey:    getEnv("MEDIA_ACCESS_KEY", ""),
			SecretKey:    getEnv("MEDIA_SECRET_KEY", ""),
			Bucket:       getEnv("MEDIA_BUCKET", "edumarket-media"),
			UseSSL:       os.Getenv("MEDIA_USE_SSL") == "true",
			PublicBase:   getEnv("MEDIA_PUBLIC_BASE", ""),
			ImageHostURL: getEnv("IMAGE_HOST_URL", ""),
			ImagePreset:  getEnv("IMAGE_HOST_PRESET", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Mongo.DB == "" {
		return fmt.Errorf("MONGO_DB is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/edulaunch/edumarket/internal/models"
)

// UserStore is the persistence surface of the user directory.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertProfile(ctx context.Context, userID, email, fullName, imageURL string, lastLogin time.Time) error
}

type UserService struct {
	store     UserStore
	jwtSecret string
	validate  *validator.Validate
}

func NewUserService(store UserStore, jwtSecret string) *UserService {
	return &UserService{
		store:     store,
		jwtSecret: jwtSecret,
		validate:  validator.New(),
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues a JWT carrying the user's id, email and display name.
func (s *UserService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"name":    user.FullName,
		"exp":     time.Now().Add(time.Hour * 4).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Register creates a new account and its directory entry.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already in use")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashedPassword,
		LastLogin:    now,
		CreatedAt:    now,
	}
	if err := s.validate.Struct(user); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	if _, err := s.store.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns the profile plus a signed token.
// Every successful login upserts the directory entry, stamping lastLogin.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return nil, "", errors.New("invalid credentials")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	if err := s.SyncUser(ctx, user.ID.Hex(), user.Email, user.FullName, user.ImageURL); err != nil {
		// The session is still valid; the profile sync can catch up next login.
		log.Printf("Error syncing user %s: %v", user.ID.Hex(), err)
	}
	return user, token, nil
}

// SyncUser idempotently upserts the profile document for an authenticated
// session.
func (s *UserService) SyncUser(ctx context.Context, userID, email, fullName, imageURL string) error {
	return s.store.UpsertProfile(ctx, userID, email, fullName, imageURL, time.Now())
}

// GetUserByEmail returns nil when no user has signed up under the email, and
// nil on read failure as well (the lookup feeds admin tooling lists).
func (s *UserService) GetUserByEmail(ctx context.Context, email string) *models.User {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("Error fetching user by email: %v", err)
		return nil
	}
	return user
}

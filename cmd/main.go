package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/edulaunch/edumarket/internal/config"
	"github.com/edulaunch/edumarket/internal/db"
	"github.com/edulaunch/edumarket/internal/handlers"
	"github.com/edulaunch/edumarket/internal/middleware"
	"github.com/edulaunch/edumarket/internal/repository"
	"github.com/edulaunch/edumarket/internal/services"
	"github.com/edulaunch/edumarket/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS,POST,PUT,DELETE",
	}))

	// Connect to MongoDB
	database := db.ConnectMongoDB(cfg.Mongo.URI, cfg.Mongo.DB)

	// Repositories
	courseRepo := repository.NewCourseRepo(database)
	purchaseRepo := repository.NewPurchaseRepo(database)
	adminRepo := repository.NewAdminRepo(database)
	userRepo := repository.NewUserRepo(database)

	// Object storage is optional at boot; without credentials the sign-url
	// gateway answers with a fixed misconfiguration error instead.
	var signer services.MediaSigner
	if cfg.Media.AccessKey != "" && cfg.Media.SecretKey != "" {
		store, err := storage.NewMediaStore(cfg.Media)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		signer = store
	} else {
		log.Println("Media storage credentials missing; sign-url gateway disabled")
	}
	imageHost := storage.NewImageHost(cfg.Media.ImageHostURL, cfg.Media.ImagePreset)

	// Services
	courseService := services.NewCourseService(courseRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, courseService)
	adminService := services.NewAdminService(adminRepo, userRepo)
	userService := services.NewUserService(userRepo, cfg.JWT.Secret)
	enrollService := services.NewEnrollmentService(courseService, purchaseService)
	mediaService := services.NewMediaService(signer, imageHost, cfg.Media.PublicBase)

	middleware.Init(cfg.JWT.Secret)
	middleware.InitAdmin(adminService)

	handlers.InitAuthHandlers(userService)
	handlers.InitCourseHandlers(courseService, enrollService)
	handlers.InitPurchaseHandlers(purchaseService)
	handlers.InitAdminHandlers(adminService, userService)
	handlers.InitMediaHandlers(mediaService)

	// Auth Routes
	auth := app.Group("/auth")
	auth.Post("/register", handlers.RegisterHandler)
	auth.Post("/login", handlers.LoginHandler)

	// Public catalog
	app.Get("/courses", handlers.ListCoursesHandler)
	app.Get("/courses/:id", handlers.GetCourseHandler)

	// Student routes
	app.Post("/courses/:id/enroll", middleware.AuthMiddleware, handlers.EnrollCourseHandler)
	app.Post("/courses/:id/purchase-request", middleware.AuthMiddleware, handlers.AttestPaymentHandler)
	app.Get("/me/courses", middleware.AuthMiddleware, handlers.MyEnrollmentsHandler)

	// Authoring routes
	app.Post("/courses", middleware.AdminMiddleware, handlers.CreateCourseHandler)
	app.Put("/courses/:id", middleware.AdminMiddleware, handlers.UpdateCourseHandler)

	// Admin Routes
	admin := app.Group("/admin", middleware.AdminMiddleware)
	admin.Get("/requests", handlers.ListRequestsHandler)
	admin.Get("/requests/counts", handlers.RequestCountsHandler)
	admin.Put("/requests/:id", handlers.UpdateRequestHandler)
	admin.Get("/admins", handlers.ListAdminsHandler)
	admin.Post("/admins", handlers.AddAdminHandler)
	admin.Delete("/admins/:email", handlers.RemoveAdminHandler)
	admin.Post("/enroll", handlers.AdminEnrollHandler)

	// Media gateway
	app.All("/api/sign-url", handlers.SignURLHandler)
	app.Post("/media/upload", middleware.AuthMiddleware, handlers.UploadMediaHandler)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}

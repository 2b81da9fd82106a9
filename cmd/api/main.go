package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yatrasutra/invoice-backend/internal/application/service"
	"github.com/yatrasutra/invoice-backend/internal/config"
	"github.com/yatrasutra/invoice-backend/internal/infrastructure/database"
	"github.com/yatrasutra/invoice-backend/internal/infrastructure/repository"
	"github.com/yatrasutra/invoice-backend/internal/invoice"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/handler"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/routes"
	"github.com/yatrasutra/invoice-backend/pkg/email"
	"github.com/yatrasutra/invoice-backend/pkg/oauth"
	"github.com/yatrasutra/invoice-backend/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	fileRepo := repository.NewStoredFileRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Purge stale reset tokens left over from previous runs
	if err := passwordResetRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("Warning: Failed to purge expired reset tokens: %v", err)
	}

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize the receipt engine
	engineOpts := []invoice.Option{
		invoice.WithAssets(invoice.NewDirProvider(cfg.Invoice.AssetsDir)),
	}
	if cfg.Invoice.CompanyName != "" {
		engineOpts = append(engineOpts, invoice.WithCompany(invoice.Company{
			Name:    cfg.Invoice.CompanyName,
			Tagline: cfg.Invoice.CompanyTagline,
			Address: cfg.Invoice.CompanyAddress,
			Phone:   cfg.Invoice.CompanyPhone,
			Email:   cfg.Invoice.CompanyEmail,
			Website: cfg.Invoice.CompanyWebsite,
		}))
	}
	engine := invoice.New(engineOpts...)

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	bookingService := service.NewBookingService(bookingRepo, fileRepo)
	invoiceService := service.NewInvoiceService(bookingRepo, engine, emailService, cfg.Invoice.DefaultStyle)
	storageService := service.NewStorageService(fileRepo, cfg.Storage.Path, cfg.Storage.UploadMaxSize, cfg.Storage.PublicBaseURL)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Booking: handler.NewBookingHandler(bookingService),
		Invoice: handler.NewInvoiceHandler(invoiceService),
		File:    handler.NewFileHandler(storageService),
		User:    handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yatrasutra/invoice-backend/internal/config"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/response"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/handler"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/middleware"
	"github.com/yatrasutra/invoice-backend/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Booking *handler.BookingHandler
	Invoice *handler.InvoiceHandler
	File    *handler.FileHandler
	User    *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		limiterCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			limiterCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			limiterCfg.BurstSize = deps.Cfg.RateLimit.Requests
		}
		rateLimiter := middleware.NewUserRateLimiter(limiterCfg)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, rateLimiter)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, rl *middleware.UserRateLimiter) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Bookings and receipts
	registerBookingRoutes(protected, h)

	// Object store
	registerFileRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Operational stats (Admin)
	system := protected.Group("/system")
	system.Use(middleware.RequireRole(entity.RoleAdmin))
	system.GET("/rate-limit", func(c *gin.Context) {
		response.OK(c, "Rate limiter stats retrieved successfully", rl.Stats())
	})
}

func registerBookingRoutes(protected *gin.RouterGroup, h *Handlers) {
	bookings := protected.Group("/bookings")
	{
		bookings.GET("", h.Booking.List)
		bookings.POST("", h.Booking.Create)
		bookings.GET("/:id", h.Booking.Get)
		bookings.PUT("/:id", h.Booking.Update)
		bookings.PATCH("/:id/status", h.Booking.UpdateStatus)
		bookings.DELETE("/:id", h.Booking.Delete)

		// Receipt rendering
		bookings.GET("/:id/invoice", h.Invoice.Download)
		bookings.POST("/:id/invoice/email", h.Invoice.Email)
	}
}

func registerFileRoutes(protected *gin.RouterGroup, h *Handlers) {
	files := protected.Group("/files")
	{
		files.GET("", h.File.List)
		files.POST("", h.File.Upload)
		files.GET("/:id", h.File.Download)
		files.DELETE("/:id", h.File.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.UpdateRole)
		users.DELETE("/:id", h.User.Delete)
	}
}

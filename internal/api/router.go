package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/chatop/rental-api/docs"
	"github.com/chatop/rental-api/internal/api/handler"
	"github.com/chatop/rental-api/internal/api/middleware"
	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
	"github.com/chatop/rental-api/internal/core/service"
	mongodb "github.com/chatop/rental-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chatop/rental-api/internal/infrastructure/db/redis"
	"github.com/chatop/rental-api/internal/infrastructure/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The allow-list of the auth gate is realized structurally: public routes
// are registered on the bare instance, everything else goes through the
// authenticated group.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chatop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	rentalRepo := mongodb.NewRentalRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	rentalCache := redisdb.NewRentalCache(rdb)

	codec := token.NewJWTCodec(jwtSecret, tokenTTL)

	authService := service.NewAuthService(userRepo, codec, log)
	userService := service.NewUserService(userRepo)
	rentalService := service.NewRentalService(rentalRepo, userRepo, rentalCache, log)
	messageService := service.NewMessageService(messageRepo, rentalRepo, userRepo, notifier, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	rentalHandler := handler.NewRentalHandler(rentalService)
	messageHandler := handler.NewMessageHandler(messageService)

	// --- Public routes (token-free allow-list) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Protected routes ---
	protected := e.Group("/api", middleware.Auth(codec))

	protected.GET("/auth/me", authHandler.Me)

	protected.GET("/user/:id", userHandler.GetByID)
	protected.GET("/users", userHandler.List, middleware.RBAC(userService, domain.RoleAdmin))

	protected.GET("/rentals", rentalHandler.List)
	protected.GET("/rentals/:id", rentalHandler.Get)
	protected.POST("/rentals", rentalHandler.Create)
	protected.PUT("/rentals/:id", rentalHandler.Update)

	protected.POST("/messages", messageHandler.Create)

	return e
}

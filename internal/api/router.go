package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/techmart/commerce-api/docs"
	"github.com/techmart/commerce-api/internal/api/handler"
	"github.com/techmart/commerce-api/internal/api/middleware"
	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/service"
	"github.com/techmart/commerce-api/internal/infrastructure/config"
	mongodb "github.com/techmart/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/techmart/commerce-api/internal/infrastructure/db/redis"
	"github.com/techmart/commerce-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("techmart"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	productCache := redisdb.NewProductCache(rdb)

	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	productService := service.NewProductService(productRepo, productCache, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	authMW := middleware.Auth(tokenService)
	authLimiter := middleware.NewRateLimiter(cfg.AuthLimit.PerMinute, cfg.AuthLimit.Burst)

	// --- Auth routes (public, rate-limited per IP) ---
	auth := e.Group("/auth", authLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	e.POST("/auth/users/:id/roles", authHandler.GrantRole, authMW, middleware.RBAC(domain.RoleAdmin))

	// --- Catalog routes ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)

	vendorOrAdmin := middleware.RBAC(domain.RoleAdmin, domain.RoleVendor)
	e.POST("/products", productHandler.Create, authMW, vendorOrAdmin)
	e.PUT("/products/:id", productHandler.Update, authMW, vendorOrAdmin)
	e.PUT("/products/:id/stock", productHandler.UpdateStock, authMW, vendorOrAdmin)
	e.DELETE("/products/:id", productHandler.Delete, authMW, middleware.RBAC(domain.RoleAdmin))

	e.GET("/categories", categoryHandler.List)
	e.POST("/categories", categoryHandler.Create, authMW, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/automarket-backend/internal/handlers/dto"
	httphandlers "github.com/rafabene/automarket-backend/internal/handlers/http"
	"github.com/rafabene/automarket-backend/internal/handlers/middleware"
	"github.com/rafabene/automarket-backend/internal/infrastructure/auth"
	"github.com/rafabene/automarket-backend/internal/infrastructure/config"
	"github.com/rafabene/automarket-backend/internal/infrastructure/i18n"
	"github.com/rafabene/automarket-backend/internal/infrastructure/logging"
	"github.com/rafabene/automarket-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/automarket-backend/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting automarket backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("./internal/infrastructure/i18n/locales", "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Registrar validações customizadas do domínio
	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	listingRepo := postgres.NewListingRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	authService := services.NewAuthService(userRepo, tokens, logger)
	listingService := services.NewListingService(listingRepo, userRepo, uow, logger)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	listingHandler := httphandlers.NewListingHandler(listingService)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Rate limit por IP
	router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	// Middleware de autenticação
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		}

		// Listings
		listings := v1.Group("/listings")
		{
			listings.GET("", listingHandler.List)
			listings.POST("", authMiddleware.RequireAuth(), listingHandler.Create)
			listings.GET("/mine", authMiddleware.RequireAuth(), listingHandler.Mine)
			listings.GET("/pending", authMiddleware.RequirePrivileged(), listingHandler.Pending)
			listings.GET("/:id", authMiddleware.OptionalAuth(), listingHandler.Get)
			listings.PATCH("/:id", authMiddleware.RequireAuth(), listingHandler.Update)
			listings.POST("/:id/moderate", authMiddleware.RequirePrivileged(), listingHandler.Moderate)
			listings.DELETE("/:id", authMiddleware.RequirePrivileged(), listingHandler.Delete)
			// Wildcard: referências de foto são caminhos ("/uploads/x.jpg")
			listings.DELETE("/:id/photos/*photoRef", authMiddleware.RequireAuth(), listingHandler.DeletePhoto)
		}
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

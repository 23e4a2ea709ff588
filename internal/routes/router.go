package routes

import (
	"net/http"

	"ecotrade-marketplace/internal/config"
	"ecotrade-marketplace/internal/delivery/http/handler"
	"ecotrade-marketplace/internal/infrastructure/cache"
	"ecotrade-marketplace/internal/infrastructure/database/postgres"
	"ecotrade-marketplace/internal/middleware"
	"ecotrade-marketplace/internal/usecase/chat"
	"ecotrade-marketplace/internal/usecase/product"
	"ecotrade-marketplace/internal/usecase/purchase"
	"ecotrade-marketplace/internal/usecase/question"
	"ecotrade-marketplace/internal/usecase/review"
	"ecotrade-marketplace/internal/usecase/subscription"
	"ecotrade-marketplace/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, redisCache *cache.Cache) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	refreshTokenRepository := postgres.NewRefreshTokenRepository(db)
	productRepository := postgres.NewProductRepository(db)
	purchaseRepository := postgres.NewPurchaseRepository(db)
	messageRepository := postgres.NewMessageRepository(db)
	reviewRepository := postgres.NewReviewRepository(db)
	questionRepository := postgres.NewQuestionRepository(db)
	subscriptionRepository := postgres.NewSubscriptionRepository(db)

	userService := user.NewService(userRepository, refreshTokenRepository, cfg.JWT)
	productService := product.NewService(productRepository, userRepository, purchaseRepository, subscriptionRepository, redisCache)
	productProjector := product.NewProjector(productRepository, purchaseRepository, userRepository)
	purchaseService := purchase.NewService(purchaseRepository, productRepository, reviewRepository, redisCache)
	chatService := chat.NewService(messageRepository, purchaseRepository, productRepository, userRepository)
	reviewService := review.NewService(reviewRepository, purchaseRepository, userRepository)
	questionService := question.NewService(questionRepository, productRepository, userRepository)
	subscriptionService := subscription.NewService(subscriptionRepository)

	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService, productProjector)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	chatHandler := handler.NewChatHandler(chatService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	questionHandler := handler.NewQuestionHandler(questionService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterPublicRoutes(v1)
		productHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		questionHandler.RegisterPublicRoutes(v1)
		subscriptionHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProtectedRoutes(protected)
			productHandler.RegisterProtectedRoutes(protected)
			purchaseHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			questionHandler.RegisterProtectedRoutes(protected)
			subscriptionHandler.RegisterProtectedRoutes(protected)
		}
	}

	return router
}

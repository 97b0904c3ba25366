package routes

import (
	"net/http"

	"linkvault-backend/internal/api/handlers"
	"linkvault-backend/internal/api/middleware"
	"linkvault-backend/internal/api/response"
	"linkvault-backend/internal/auth"
	"linkvault-backend/internal/config"
	"linkvault-backend/internal/repository"
	"linkvault-backend/internal/scraper"
	"linkvault-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg))
	if cfg.RateLimitMax > 0 {
		router.Use(middleware.RateLimit(cfg))
	}

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found")
	})

	validate := validator.New()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	authService := auth.NewService(cfg, userRepo, refreshTokenRepo, validate)
	linkService := service.NewLinkService(linkRepo, categoryRepo, validate)
	categoryService := service.NewCategoryService(categoryRepo, validate)
	collectionService := service.NewCollectionService(collectionRepo, linkRepo, userRepo, validate, cfg.CloneDelay)
	exploreService := service.NewExploreService(userRepo, linkRepo, collectionRepo)
	titleScraper := scraper.New(cfg.ScraperTimeout, logrus.StandardLogger())

	// Handlers
	authHandler := auth.NewHandler(authService, cfg.SecureCookies)
	authMiddleware := auth.NewMiddleware(authService)
	healthHandler := handlers.NewHealthHandler(db)
	linkHandler := handlers.NewLinkHandler(linkService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	publicCollectionHandler := handlers.NewPublicCollectionHandler(collectionService)
	exploreHandler := handlers.NewExploreHandler(exploreService)
	scraperHandler := handlers.NewScraperHandler(titleScraper)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
			authRoutes.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
		}

		explore := api.Group("/explore")
		{
			explore.GET("/users", exploreHandler.SearchUsers)
			explore.GET("/users/:userId", exploreHandler.GetUser)
			explore.GET("/users/:userId/collections", exploreHandler.ListUserCollections)
			explore.GET("/users/:userId/links", exploreHandler.ListUserLinks)
			explore.GET("/users/:userId/collections/:collectionId/links", exploreHandler.ListUserCollectionLinks)
		}

		publicCollections := api.Group("/public/collections")
		{
			publicCollections.GET("/:id", publicCollectionHandler.Get)
			publicCollections.POST("/:id/clone", authMiddleware.RequireAuth(), publicCollectionHandler.Clone)
		}

		protected := api.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			links := protected.Group("/links")
			{
				links.GET("", linkHandler.List)
				links.GET("/public", linkHandler.ListPublic)
				links.GET("/private", linkHandler.ListPrivate)
				links.POST("", linkHandler.Create)
				links.GET("/:id", linkHandler.Get)
				links.PATCH("/:id", linkHandler.Update)
				links.PATCH("/:id/read", linkHandler.ToggleRead)
				links.PATCH("/:id/archive", linkHandler.ToggleArchive)
				links.PATCH("/:id/favorite", linkHandler.ToggleFavorite)
				links.DELETE("/:id", linkHandler.Delete)
			}

			categories := protected.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.GET("/:id", categoryHandler.Get)
				categories.PATCH("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			collections := protected.Group("/collections")
			{
				collections.GET("", collectionHandler.List)
				collections.POST("", collectionHandler.Create)
				collections.GET("/:id", collectionHandler.Get)
				collections.PATCH("/:id", collectionHandler.Update)
				collections.DELETE("/:id", collectionHandler.Delete)
				collections.POST("/:id/links", collectionHandler.AddLinks)
				collections.GET("/:id/links", collectionHandler.ListLinks)
				collections.DELETE("/:id/links/:linkId", collectionHandler.RemoveLink)
				collections.POST("/:id/clone", collectionHandler.Clone)
			}

			protected.GET("/scraper/fetch-title", scraperHandler.FetchTitle)
		}
	}

	return router
}

package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"biashara/pkg/logger"
	"biashara/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Directory Service с использованием Gin
// Чтение публичное, запись только для manager и admin
func SetupRoutes(directoryHandler *DirectoryHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("directory-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "directory-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	entities := router.Group("/entities")
	{
		// Просмотр бизнесов публичный
		entities.GET("", directoryHandler.GetAllEntities)
		entities.GET("/:id", directoryHandler.GetEntity)

		// Внутренний эндпоинт агрегатора рейтинга и фонового воркера
		entities.PUT("/:id/rating", directoryHandler.UpdateEntityRating)

		// Управление справочником только для manager и admin
		entities.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("manager", "admin"), directoryHandler.CreateEntity)
		entities.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("manager", "admin"), directoryHandler.UpdateEntity)
		entities.DELETE("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), directoryHandler.DeleteEntity)
	}

	categories := router.Group("/categories")
	{
		// Список категорий публичный (кеш Redis)
		categories.GET("", directoryHandler.GetAllCategories)
		categories.GET("/:id", directoryHandler.GetCategory)

		categories.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("manager", "admin"), directoryHandler.CreateCategory)
		categories.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("manager", "admin"), directoryHandler.UpdateCategory)
		categories.DELETE("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), directoryHandler.DeleteCategory)
	}

	return router
}

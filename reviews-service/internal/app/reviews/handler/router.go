package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"biashara/pkg/logger"
	"biashara/pkg/metrics"
)

func SetupRoutes(reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("reviews-service"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "reviews-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reviews := router.Group("/reviews")
	{
		// Публичная выдача отзывов бизнеса
		reviews.GET("/entity/:entity_id", reviewHandler.GetReviewsByEntity)

		// Создание и личная выдача требуют идентичности
		reviews.POST("", authMiddleware.Authenticate(), reviewHandler.SubmitReview)
		reviews.GET("/me", authMiddleware.Authenticate(), reviewHandler.GetMyReviews)

		// Административная модерация только для admin
		reviews.POST("/:review_id/moderate",
			authMiddleware.Authenticate(),
			authMiddleware.RequireRole("admin"),
			reviewHandler.ModerateReview,
		)
	}

	// Пересчёт рейтинга открыт: идемпотентный recompute без side effects
	// сверх перезаписи того же результата
	router.POST("/ratings/calculate", reviewHandler.CalculateRatings)

	return router
}

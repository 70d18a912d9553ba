package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"biashara/pkg/logger"
	"biashara/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Chat Service с использованием Gin
// Эндпоинты вызываются мобильным клиентом напрямую, аутентификация
// делегирована внешнему identity-провайдеру на API gateway
func SetupRoutes(chatHandler *ChatHandler) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("chat-service"))

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
			"service": "chat-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	chats := router.Group("/chats")
	{
		chats.POST("", chatHandler.CreateChat)
		chats.POST("/:chat_id/messages", chatHandler.SendMessage)
		chats.POST("/:chat_id/read", chatHandler.MarkRead)
		chats.GET("/:chat_id/messages", chatHandler.GetChatMessages)
		chats.GET("/user/:user_id", chatHandler.GetUserChats)
	}

	return router
}

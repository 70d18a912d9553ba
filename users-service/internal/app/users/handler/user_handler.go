package handler

import (
	"context"
	"errors"
	"net/http"

	"biashara/users-service/internal/app/users/entity"
	"biashara/users-service/internal/app/users/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type UserServiceInterface interface {
	SyncUser(ctx context.Context, userID string, req *entity.SyncUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}

type UserHandler struct {
	userService UserServiceInterface
	validator   *validator.Validate
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// SyncUser обрабатывает POST /users/sync
// Идемпотентный upsert профиля вызывающего
func (h *UserHandler) SyncUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr, ok := userID.(string)
	if !ok || userIDStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	var req entity.SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	user, err := h.userService.SyncUser(c.Request.Context(), userIDStr, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync user"})
		return
	}

	c.JSON(http.StatusOK, entity.SyncUserResponse{
		Success: true,
		User:    user,
	})
}

// GetUser обрабатывает GET /users/:user_id
// Публичный эндпоинт, используется Reviews Service для имени автора
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"biashara/reviews-service/internal/app/reviews/entity"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserClient клиент для взаимодействия с Users Service
// Используется при создании отзыва для получения имени и аватара автора
type UserClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUserClient создает новый клиент для Users Service
func NewUserClient(baseURL string) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetUser получает профиль пользователя по ID
// Отсутствие профиля - штатная ситуация (каркас отзыва подставит "Anonymous")
func (c *UserClient) GetUser(ctx context.Context, userID string) (*entity.UserProfile, error) {
	url := fmt.Sprintf("%s/users/%s", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var profile entity.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &profile, nil
}

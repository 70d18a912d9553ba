package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
)

// EntityClient клиент для взаимодействия с Directory Service
// Агрегатор рейтинга записывает через него счёт и количество отзывов бизнеса
type EntityClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEntityClient создает новый клиент для Directory Service
func NewEntityClient(baseURL string) *EntityClient {
	return &EntityClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type updateRatingPayload struct {
	BiasharaScore float64 `json:"biashara_score"`
	TotalReviews  int     `json:"total_reviews"`
}

// UpdateRating перезаписывает агрегированный рейтинг бизнеса.
// Чистая перезапись: повторные и конкурирующие вызовы безопасны
func (c *EntityClient) UpdateRating(ctx context.Context, entityID string, score float64, totalReviews int) error {
	payload, err := json.Marshal(updateRatingPayload{
		BiasharaScore: score,
		TotalReviews:  totalReviews,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal rating payload: %w", err)
	}

	url := fmt.Sprintf("%s/entities/%s/rating", c.baseURL, entityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrEntityNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

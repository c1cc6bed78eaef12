package userservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetProfiles получает профили пользователей одним запросом.
// Пользователи, которых сервис не вернул, в результат не попадают.
func (c *Client) GetProfiles(ctx context.Context, userIDs []int64) (map[int64]domain.Profile, error) {
	ids := uniqueIDs(userIDs)
	if len(ids) == 0 {
		return map[int64]domain.Profile{}, nil
	}

	body, err := json.Marshal(BatchRequest{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/users/batch", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user IDs", ErrInvalidResponse)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var batch BatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	profiles := make(map[int64]domain.Profile, len(batch.Users))
	for _, user := range batch.Users {
		profiles[user.ID] = user.ToDomain()
	}

	return profiles, nil
}

// GetProfilesWithGracefulDegradation получает профили с graceful degradation.
// При недоступности UserService возвращает пустую карту и ErrServiceDegraded:
// вызывающий код подставляет вместо имён заглушку domain.UnknownName.
func (c *Client) GetProfilesWithGracefulDegradation(ctx context.Context, userIDs []int64) (map[int64]domain.Profile, error) {
	c.log.Info("Fetching %d profiles", len(userIDs))

	profiles, err := c.GetProfiles(ctx, userIDs)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("UserService unavailable, applying graceful degradation for %d users: %v", len(userIDs), err)
		return map[int64]domain.Profile{}, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("Successfully fetched %d of %d profiles", len(profiles), len(userIDs))
	return profiles, nil
}

// uniqueIDs убирает дубликаты и нулевые ID, сортирует для стабильного тела запроса
func uniqueIDs(userIDs []int64) []int64 {
	seen := make(map[int64]struct{}, len(userIDs))
	ids := make([]int64, 0, len(userIDs))
	for _, id := range userIDs {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

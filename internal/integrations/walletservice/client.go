package walletservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// IdempotencyHeader заголовок ключа идемпотентности
	IdempotencyHeader = "Idempotency-Key"

	creditReason = "booking refund"
)

// Client клиент для работы с WalletService.
// Зачисление идемпотентно по ключу, поэтому повтор с тем же ключом безопасен.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента WalletService
func NewClient(baseURL string, timeout time.Duration, maxRetries int, log Logger) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxRetries: maxRetries,
		backoff:    200 * time.Millisecond,
		log:        log,
	}
}

// WithBackoff задаёт паузу между повторами (линейно растёт с номером попытки)
func (c *Client) WithBackoff(d time.Duration) *Client {
	c.backoff = d
	return c
}

// CreditBalance зачисляет amount на кошелёк пользователя.
// Ошибки транспорта и ответы 5xx повторяются с тем же ключом идемпотентности.
func (c *Client) CreditBalance(ctx context.Context, userID int64, amount float64, idempotencyKey string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	body, err := json.Marshal(CreditRequest{Amount: amount, Reason: creditReason})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("CreditBalance: retry %d/%d for user=%d, key=%s: %v", attempt, c.maxRetries, userID, idempotencyKey, lastErr)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		retryable, err := c.credit(ctx, userID, body, idempotencyKey)
		if err == nil {
			c.log.Info("CreditBalance: credited %.2f to user=%d, key=%s", amount, userID, idempotencyKey)
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// credit выполняет одну попытку зачисления и сообщает, имеет ли смысл повтор
func (c *Client) credit(ctx context.Context, userID int64, body []byte, idempotencyKey string) (bool, error) {
	url := fmt.Sprintf("%s/internal/wallets/%d/credit", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(IdempotencyHeader, idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
		}
		return true, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated:
		return false, nil
	case resp.StatusCode == http.StatusConflict:
		// Зачисление с этим ключом уже выполнено
		return false, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrWalletNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		respBody, _ := io.ReadAll(resp.Body)
		return true, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

package walletservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *recorder) add(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	return len(r.keys)
}

func TestClient_CreditBalance_Success(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.Header.Get(IdempotencyHeader))
		assert.Equal(t, "/internal/wallets/42/credit", r.URL.Path)

		var req CreditRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.InDelta(t, 15.0, req.Amount, 0.0001)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2, nopLogger{})

	err := client.CreditBalance(context.Background(), 42, 15, "key-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"key-1"}, rec.keys)
}

func TestClient_CreditBalance_RetriesServerErrorsWithSameKey(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec.add(r.Header.Get(IdempotencyHeader)) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 3, nopLogger{}).WithBackoff(time.Millisecond)

	err := client.CreditBalance(context.Background(), 42, 15, "key-2")

	require.NoError(t, err)
	assert.Equal(t, []string{"key-2", "key-2", "key-2"}, rec.keys)
}

func TestClient_CreditBalance_GivesUpAfterRetries(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.Header.Get(IdempotencyHeader))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2, nopLogger{}).WithBackoff(time.Millisecond)

	err := client.CreditBalance(context.Background(), 42, 15, "key-3")

	require.ErrorIs(t, err, ErrUnavailable)
	assert.Len(t, rec.keys, 3)
}

func TestClient_CreditBalance_ConflictMeansAlreadyApplied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 0, nopLogger{})

	assert.NoError(t, client.CreditBalance(context.Background(), 42, 15, "key-4"))
}

func TestClient_CreditBalance_ClientErrorsAreNotRetried(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.Header.Get(IdempotencyHeader))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 3, nopLogger{})

	err := client.CreditBalance(context.Background(), 42, 15, "key-5")

	require.ErrorIs(t, err, ErrWalletNotFound)
	assert.Len(t, rec.keys, 1)
}

func TestClient_CreditBalance_RejectsNonPositiveAmount(t *testing.T) {
	client := NewClient("http://unused", time.Second, 0, nopLogger{})

	assert.ErrorIs(t, client.CreditBalance(context.Background(), 42, 0, "key-6"), ErrInvalidAmount)
}

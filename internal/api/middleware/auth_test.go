package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func protected(auth *Auth) (http.Handler, *domain.Principal) {
	var got domain.Principal
	h := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = handlers.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &got
}

func TestAuth_ValidToken(t *testing.T) {
	auth := NewAuth("secret", "academy", nopLogger{})
	token, err := auth.Issue(domain.Principal{UserID: 42, Role: domain.RoleCoach}, time.Hour)
	require.NoError(t, err)

	h, got := protected(auth)
	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.Principal{UserID: 42, Role: domain.RoleCoach}, *got)
}

func TestAuth_Rejects(t *testing.T) {
	auth := NewAuth("secret", "academy", nopLogger{})

	expired, err := auth.Issue(domain.Principal{UserID: 1, Role: domain.RoleAdmin}, -time.Minute)
	require.NoError(t, err)

	foreign, err := NewAuth("other", "academy", nopLogger{}).Issue(domain.Principal{UserID: 1, Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := NewAuth("secret", "someone", nopLogger{}).Issue(domain.Principal{UserID: 1, Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	badRole, err := auth.Issue(domain.Principal{UserID: 1, Role: "guest"}, time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1, Role: "admin"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer abc.def.ghi",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + foreign,
		"wrong issuer": "Bearer " + wrongIssuer,
		"unknown role": "Bearer " + badRole,
		"no expiry":    "Bearer " + noExpiry,
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			h, _ := protected(auth)
			req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Claims полезная нагрузка токена доступа
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен (HS256) и кладёт domain.Principal в контекст запроса
type Auth struct {
	secret []byte
	issuer string
	logger Logger
}

// NewAuth создает middleware аутентификации. Пустой issuer не проверяется.
func NewAuth(secret, issuer string, logger Logger) *Auth {
	return &Auth{secret: []byte(secret), issuer: issuer, logger: logger}
}

// Middleware возвращает обёртку для mux.Router.Use
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			a.logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w)
			return
		}

		principal, err := a.Parse(raw)
		if err != nil {
			a.logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithPrincipal(r.Context(), principal)))
	})
}

// Parse проверяет подпись, срок действия и роль токена
func (a *Auth) Parse(raw string) (domain.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return domain.Principal{}, err
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	if claims.UserID <= 0 {
		return domain.Principal{}, errors.New("token has no user id")
	}

	return domain.Principal{UserID: claims.UserID, Role: role}, nil
}

// Issue подписывает токен для principal. Используется в тестах и служебных утилитах.
func (a *Auth) Issue(p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: p.UserID,
		Role:   string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   fmt.Sprintf("%d", p.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

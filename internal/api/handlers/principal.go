package handlers

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

type principalKey struct{}

// WithPrincipal кладёт вызывающего в контекст
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext достаёт вызывающего, положенного middleware.Auth
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// RequirePrincipal возвращает вызывающего или пишет 401
func RequirePrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		RespondUnauthorized(w)
		return domain.Principal{}, false
	}
	return p, true
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aureajoias/aurea/pkg/auth"
	"github.com/aureajoias/aurea/pkg/response"
)

type ctxKey string

const identityKey ctxKey = "auth.identity"

// Identity is the authenticated caller extracted from the bearer token.
type Identity struct {
	Claims *auth.Claims
}

// Auth validates the Authorization bearer token and stores the caller's
// identity in the request context. Requests without a valid token get 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.Replace(r.Header.Get("Authorization"), "Bearer ", "", 1)

		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, &Identity{Claims: claims})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin rejects authenticated callers whose profile is not an administrator.
// Wire it after Auth; without an identity in the context it returns 401.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFromCtx(r.Context())
		if ident == nil {
			response.Unauthorized(w)
			return
		}

		if !ident.Claims.IsAdmin {
			response.Forbidden(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx returns the caller identity set by Auth, or nil.
func IdentityFromCtx(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aureajoias/aurea/pkg/auth"
)

func protected(t *testing.T) (http.Handler, *bool) {
	reached := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		ident := IdentityFromCtx(r.Context())
		require.NotNil(t, ident)
		w.WriteHeader(http.StatusOK)
	})
	return Auth(h), &reached
}

func TestAuthRejectsMissingToken(t *testing.T) {
	h, reached := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	h, reached := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	h, reached := protected(t)

	token, err := auth.GenerateToken(uuid.New(), "ana@aureajoias.com.br", "", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestAdminGate(t *testing.T) {
	h := Auth(Admin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	customer, err := auth.GenerateToken(uuid.New(), "cliente@aureajoias.com.br", "", false)
	require.NoError(t, err)
	admin, err := auth.GenerateToken(uuid.New(), "admin@aureajoias.com.br", "", true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+customer)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminWithoutIdentity(t *testing.T) {
	h := Admin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

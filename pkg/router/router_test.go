package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/products/{id}", path)

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/products/42", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	api := r.Group("/api", mw("outer"))
	admin := api.Group("/admin", mw("inner"))
	admin.Get("/products", "admin.products", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	r.Post("/b", "b", ok)
	r.Get("/a", "a", ok)

	infos := r.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, http.MethodGet, infos[0].Method)
}

func TestUnnamedRouteNotListed(t *testing.T) {
	r := New()
	r.Get("/healthz", "", ok)
	assert.Empty(t, r.Routes())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

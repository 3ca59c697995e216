package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/pkg/auth"
	"github.com/vyshnav-v/food-delivery/pkg/middleware"
	"github.com/vyshnav-v/food-delivery/pkg/rbac"
)

func protected() (http.Handler, *bool) {
	reached := false
	h := middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		id, _ := middleware.UserIDFromCtx(r.Context())
		w.Write([]byte(id))
	}))
	return h, &reached
}

func TestAuthRejectsMissingToken(t *testing.T) {
	h, reached := protected()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	h, reached := protected()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc123")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	token, err := auth.GenerateToken("user-1", "a@b.co", models.RoleCustomer)
	require.NoError(t, err)

	h, reached := protected()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestRoleGate(t *testing.T) {
	adminOnly := middleware.Auth(rbac.HasRole(models.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

	t.Run("customer is forbidden", func(t *testing.T) {
		token, err := auth.GenerateToken("u1", "c@b.co", models.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := auth.GenerateToken("u2", "a@b.co", models.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

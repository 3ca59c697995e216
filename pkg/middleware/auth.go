package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vyshnav-v/food-delivery/pkg/auth"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type claimsKey struct{}

// Auth validates the Authorization bearer token and stores the verified
// claims in the request context. Requests without a valid token get a 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Fail(w, http.StatusUnauthorized, "No token provided. Please authenticate.")
			return
		}

		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims stored by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return c.Role, true
}

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return c.UserID, true
}

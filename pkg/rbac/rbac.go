// Package rbac provides role-gating middleware over the claims stored by
// middleware.Auth.
package rbac

import (
	"net/http"

	"github.com/vyshnav-v/food-delivery/pkg/middleware"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

// HasRole allows access only to users with one of the given roles.
// Wire middleware.Auth before this so the role is in context.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok || !allowed[role] {
				response.Fail(w, http.StatusForbidden,
					"You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

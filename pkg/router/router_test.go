package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vyshnav-v/food-delivery/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Get("/api/products/{id}", "products.show", ok)

	url, err := r.URL("products.show", map[string]string{"id": "abc123"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/api/products/abc123" {
		t.Errorf("url = %q", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("missing params should error")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("unknown route should error")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("outer"))
	orders := api.Group("/orders", mw("inner"))
	orders.Put("/{id}/status", "orders.status", ok)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/42/status", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	// The update is served under PUT only.
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodPatch, "/api/orders/42/status", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PATCH status = %d, want 405", rec.Code)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/health", "health", ok)
	g := r.Group("/api/users")
	g.Delete("/{id}", "users.destroy", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("routes = %d, want 2", len(infos))
	}
	if infos[1].Method != http.MethodDelete || infos[1].Path != "/api/users/{id}" {
		t.Errorf("unexpected route info: %+v", infos[1])
	}
}

// Package routes wires the HTTP surface: middleware stack, REST endpoints
// with their role gates, the live order feed, and operational endpoints.
package routes

import (
	"net/http"
	"time"

	"github.com/vyshnav-v/food-delivery/app/controllers"
	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/config"
	"github.com/vyshnav-v/food-delivery/pkg/event"
	"github.com/vyshnav-v/food-delivery/pkg/metrics"
	"github.com/vyshnav-v/food-delivery/pkg/middleware"
	"github.com/vyshnav-v/food-delivery/pkg/rbac"
	"github.com/vyshnav-v/food-delivery/pkg/reqid"
	"github.com/vyshnav-v/food-delivery/pkg/router"
	"github.com/vyshnav-v/food-delivery/pkg/storage"
	"github.com/vyshnav-v/food-delivery/pkg/ws"
)

// OrderFeed is the WebSocket hub behind /ws/orders. Started by RegisterAPI.
var OrderFeed = ws.NewHub()

// RegisterAPI mounts every route on the router and connects the order
// events to the live feed.
func RegisterAPI(r *router.Router) {
	go OrderFeed.Run()
	event.Listen(event.OrderCreated, func(payload any) {
		OrderFeed.Publish(event.OrderCreated, payload)
	})
	event.Listen(event.OrderStatusChanged, func(payload any) {
		OrderFeed.Publish(event.OrderStatusChanged, payload)
	})

	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions(config.ClientURL())),
		metrics.Middleware(),
	)

	authController := controllers.NewAuthController()
	userController := controllers.NewUserController()
	productController := controllers.NewProductController()
	categoryController := controllers.NewCategoryController()
	orderController := controllers.NewOrderController()
	dashboardController := controllers.NewDashboardController()
	uploadController := controllers.NewUploadController()
	healthController := controllers.NewHealthController()

	admin := rbac.HasRole(models.RoleAdmin)

	// Operational endpoints stay outside /api.
	r.Get("/health", "health", healthController.Check)
	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Auth. Login and register are throttled per IP.
	auth := api.Group("/auth", middleware.RateLimit(10, time.Minute))
	auth.Post("/register", "auth.register", authController.Register)
	auth.Post("/login", "auth.login", authController.Login)

	me := api.Group("/auth", middleware.Auth)
	me.Post("/logout", "auth.logout", authController.Logout)
	me.Get("/me", "auth.me", authController.Me)
	me.Put("/profile", "auth.profile", authController.UpdateProfile)

	// Users: admin only.
	users := api.Group("/users", middleware.Auth, admin)
	users.Get("/", "users.index", userController.Index)
	users.Post("/", "users.store", userController.Store)
	users.Get("/{id}", "users.show", userController.Show)
	users.Put("/{id}", "users.update", userController.Update)
	users.Delete("/{id}", "users.destroy", userController.Destroy)

	// Products: reads for any authenticated user, writes admin only.
	products := api.Group("/products", middleware.Auth)
	products.Get("/", "products.index", productController.Index)
	products.Get("/search", "products.search", productController.Search)
	products.Get("/{id}", "products.show", productController.Show)
	products.Post("/", "products.store", productController.Store, admin)
	products.Put("/{id}", "products.update", productController.Update, admin)
	products.Delete("/{id}", "products.destroy", productController.Destroy, admin)

	// Categories: same split as products.
	categories := api.Group("/categories", middleware.Auth)
	categories.Get("/", "categories.index", categoryController.Index)
	categories.Get("/{id}", "categories.show", categoryController.Show)
	categories.Post("/", "categories.store", categoryController.Store, admin)
	categories.Put("/{id}", "categories.update", categoryController.Update, admin)
	categories.Delete("/{id}", "categories.destroy", categoryController.Destroy, admin)

	// Orders: placement for any authenticated user, management admin only.
	orders := api.Group("/orders", middleware.Auth)
	orders.Post("/", "orders.store", orderController.Store)
	orders.Get("/", "orders.index", orderController.Index, admin)
	orders.Get("/{id}", "orders.show", orderController.Show, admin)
	orders.Put("/{id}/status", "orders.status", orderController.UpdateStatus, admin)
	orders.Delete("/{id}", "orders.destroy", orderController.Destroy, admin)

	// Dashboard and uploads: admin only.
	dashboard := api.Group("/dashboard", middleware.Auth, admin)
	dashboard.Get("/", "dashboard.stats", dashboardController.Stats)

	uploads := api.Group("/upload", middleware.Auth, admin)
	uploads.Post("/", "upload.store", uploadController.Store)

	// Live order feed for admin dashboards.
	feed := r.Group("/ws", middleware.Auth, admin)
	feed.Get("/orders", "ws.orders", OrderFeed.Upgrade)

	// Locally stored uploads are served straight off the disk.
	if config.StorageDisk() == "local" {
		fs := http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(storage.LocalRoot())))
		r.Mount("/uploads", fs)
	}
}

package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/app/repositories"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
	"github.com/vyshnav-v/food-delivery/pkg/cache"
	"github.com/vyshnav-v/food-delivery/pkg/metrics"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
	recentOrderCount  = 10
)

// DashboardService aggregates the admin landing-page numbers. Results are
// cached briefly in Redis; the cache is best-effort and a cold or absent
// Redis just means recomputing.
type DashboardService struct {
	users      *repositories.UserRepository
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	orders     *repositories.OrderRepository
	orderSvc   *OrderService
}

func NewDashboardService() *DashboardService {
	return &DashboardService{
		users:      repositories.NewUserRepository(),
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
		orders:     repositories.NewOrderRepository(),
		orderSvc:   NewOrderService(),
	}
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	TotalUsers      int64                  `json:"totalUsers"`
	TotalProducts   int64                  `json:"totalProducts"`
	TotalCategories int64                  `json:"totalCategories"`
	TotalOrders     int64                  `json:"totalOrders"`
	TotalRevenue    float64                `json:"totalRevenue"`
	OrdersByStatus  query.OrderStats       `json:"ordersByStatus"`
	RecentOrders    []models.PopulatedOrder `json:"recentOrders"`
}

// Stats returns the dashboard summary, serving from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	if cache.Get(dashboardCacheKey, &stats) {
		metrics.CacheHits.Inc()
		return stats, nil
	}
	metrics.CacheMisses.Inc()

	var err error
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return DashboardStats{}, apperr.Internal("Failed to load dashboard", err)
	}
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return DashboardStats{}, apperr.Internal("Failed to load dashboard", err)
	}
	if stats.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return DashboardStats{}, apperr.Internal("Failed to load dashboard", err)
	}
	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return DashboardStats{}, apperr.Internal("Failed to load dashboard", err)
	}

	groups, err := s.orders.StatusStats(ctx, bson.M{})
	if err != nil {
		return DashboardStats{}, apperr.Internal("Failed to load dashboard", err)
	}
	stats.OrdersByStatus = query.FoldOrderStats(groups)
	stats.TotalRevenue = stats.OrdersByStatus.TotalRevenue

	recent, err := s.orders.Recent(ctx, recentOrderCount)
	if err != nil {
		return DashboardStats{}, apperr.Internal("Failed to load dashboard", err)
	}
	if stats.RecentOrders, err = s.orderSvc.populate(ctx, recent); err != nil {
		return DashboardStats{}, apperr.Internal("Failed to load dashboard", err)
	}

	cache.Set(dashboardCacheKey, stats, dashboardCacheTTL)
	return stats, nil
}

// InvalidateDashboard drops the cached summary. Order mutations call this
// so the dashboard never shows a stale total for longer than one request.
func InvalidateDashboard() {
	cache.Del(dashboardCacheKey)
}

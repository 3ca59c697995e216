package controllers

import (
	"net/http"

	"github.com/vyshnav-v/food-delivery/app/services"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController() *DashboardController {
	return &DashboardController{service: services.NewDashboardService()}
}

// Stats returns the landing-page summary: entity totals, revenue, the
// status breakdown, and the most recent orders.
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Stats(r.Context())
	if err != nil {
		response.Error(w, err, "Failed to load dashboard")
		return
	}
	response.Success(w, stats)
}

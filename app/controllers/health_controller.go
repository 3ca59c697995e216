package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/vyshnav-v/food-delivery/pkg/cache"
	"github.com/vyshnav-v/food-delivery/pkg/database"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Check reports liveness plus the state of the two backing stores. Mongo
// being down makes the check fail; Redis is optional and only reported.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{
		"server": "ok",
		"mongo":  "ok",
		"redis":  "ok",
	}

	if err := database.DB().Client().Ping(ctx, nil); err != nil {
		status["mongo"] = "down"
	}
	if !cache.Healthy(ctx) {
		status["redis"] = "down"
	}

	if status["mongo"] != "ok" {
		response.Fail(w, http.StatusServiceUnavailable, "Service degraded")
		return
	}
	response.Success(w, status)
}

package query

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vyshnav-v/food-delivery/app/models"
)

// Grouped-aggregation result shapes and the pure folding step of the list
// aggregator. The grouping pipelines run over the same filter as the page
// fetch, so the summary always reflects the filtered view.

// OrderStatusGroup is one $group row of the order stats pipeline.
type OrderStatusGroup struct {
	Status  string  `bson:"_id"`
	Count   int64   `bson:"count"`
	Revenue float64 `bson:"revenue"`
}

// OrderStats is the fixed-shape order summary. Absent statuses default to
// zero; cancelled orders contribute zero revenue.
type OrderStats struct {
	Pending      int64   `json:"pending"`
	Confirmed    int64   `json:"confirmed"`
	Delivered    int64   `json:"delivered"`
	Cancelled    int64   `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// FoldOrderStats folds status groups into the fixed response shape.
func FoldOrderStats(groups []OrderStatusGroup) OrderStats {
	var s OrderStats
	for _, g := range groups {
		switch g.Status {
		case models.OrderPending:
			s.Pending = g.Count
		case models.OrderConfirmed:
			s.Confirmed = g.Count
		case models.OrderDelivered:
			s.Delivered = g.Count
		case models.OrderCancelled:
			s.Cancelled = g.Count
		}
		s.TotalRevenue += g.Revenue
	}
	return s
}

// RoleGroup is one $group row of the user role pipeline.
type RoleGroup struct {
	Role  string `bson:"_id"`
	Count int64  `bson:"count"`
}

// UserStats is the fixed-shape user summary.
type UserStats struct {
	Admin    int64 `json:"admin"`
	Customer int64 `json:"customer"`
}

// FoldRoleCounts folds role groups into the fixed response shape.
func FoldRoleCounts(groups []RoleGroup) UserStats {
	var s UserStats
	for _, g := range groups {
		switch g.Role {
		case models.RoleAdmin:
			s.Admin = g.Count
		case models.RoleCustomer:
			s.Customer = g.Count
		}
	}
	return s
}

// IDCountGroup is one $group row of a count-by-reference pipeline, such as
// products grouped by their category.
type IDCountGroup struct {
	ID    primitive.ObjectID `bson:"_id"`
	Count int64              `bson:"count"`
}

// CountMap indexes count groups by their grouping ID.
func CountMap(groups []IDCountGroup) map[primitive.ObjectID]int64 {
	m := make(map[primitive.ObjectID]int64, len(groups))
	for _, g := range groups {
		m[g.ID] = g.Count
	}
	return m
}

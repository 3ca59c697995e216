package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFoldOrderStats(t *testing.T) {
	groups := []OrderStatusGroup{
		{Status: "pending", Count: 3, Revenue: 120.50},
		{Status: "delivered", Count: 7, Revenue: 900},
		{Status: "cancelled", Count: 2, Revenue: 0},
	}

	s := FoldOrderStats(groups)

	assert.Equal(t, int64(3), s.Pending)
	assert.Equal(t, int64(0), s.Confirmed)
	assert.Equal(t, int64(7), s.Delivered)
	assert.Equal(t, int64(2), s.Cancelled)
	assert.Equal(t, 1020.50, s.TotalRevenue)
}

func TestFoldOrderStatsEmpty(t *testing.T) {
	s := FoldOrderStats(nil)
	assert.Equal(t, OrderStats{}, s)
}

func TestFoldRoleCounts(t *testing.T) {
	s := FoldRoleCounts([]RoleGroup{
		{Role: "admin", Count: 2},
		{Role: "customer", Count: 40},
		{Role: "unknown", Count: 9}, // ignored
	})
	assert.Equal(t, int64(2), s.Admin)
	assert.Equal(t, int64(40), s.Customer)
}

func TestCountMap(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	m := CountMap([]IDCountGroup{{ID: a, Count: 5}, {ID: b, Count: 1}})

	assert.Equal(t, int64(5), m[a])
	assert.Equal(t, int64(1), m[b])
	assert.Equal(t, int64(0), m[primitive.NewObjectID()])
}

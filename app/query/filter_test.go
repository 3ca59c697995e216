package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductFiltersBuild(t *testing.T) {
	catID := primitive.NewObjectID()
	q := url.Values{
		"search":   {"pizza (large)"},
		"status":   {"available"},
		"category": {catID.Hex()},
		"featured": {"true"},
		"minPrice": {"5"},
		"maxPrice": {"20"},
	}

	f := ParseProductFilters(q).Build()

	assert.Equal(t, "available", f["status"])
	assert.Equal(t, true, f["featured"])
	assert.Equal(t, catID, f["category"])

	price, ok := f["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 5.0, price["$gte"])
	assert.Equal(t, 20.0, price["$lte"])

	or, ok := f["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	re := or[0]["name"].(primitive.Regex)
	// Regex metacharacters in the raw term must be escaped.
	assert.Equal(t, `pizza \(large\)`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestProductFiltersIgnoresBadInput(t *testing.T) {
	q := url.Values{
		"status":   {"all"},
		"category": {"not-an-object-id"},
		"minPrice": {"cheap"},
		"featured": {""},
	}
	f := ParseProductFilters(q).Build()
	assert.Empty(t, f)
}

func TestCategoryFiltersDateRange(t *testing.T) {
	q := url.Values{
		"startDate": {"2026-01-01"},
		"endDate":   {"2026-02-01T12:00:00Z"},
	}
	f := ParseCategoryFilters(q).Build()

	rng, ok := f["createdAt"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), rng["$gte"])
	assert.Equal(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC), rng["$lte"])
}

func TestCategoryFiltersUnparseableDatesOmitted(t *testing.T) {
	q := url.Values{"startDate": {"last tuesday"}}
	f := ParseCategoryFilters(q).Build()
	assert.NotContains(t, f, "createdAt")
}

func TestUserFiltersBuild(t *testing.T) {
	q := url.Values{"role": {"admin"}, "search": {"ram"}}
	f := ParseUserFilters(q).Build()

	assert.Equal(t, "admin", f["role"])
	or := f["$or"].([]bson.M)
	assert.Len(t, or, 3) // name, email, mobile

	// "all" means no role clause.
	f = ParseUserFilters(url.Values{"role": {"all"}}).Build()
	assert.NotContains(t, f, "role")
}

func TestOrderFiltersBuild(t *testing.T) {
	oid := primitive.NewObjectID()
	users := []primitive.ObjectID{primitive.NewObjectID()}

	t.Run("search matching an order id and users", func(t *testing.T) {
		f := OrderFilters{Search: oid.Hex()}.Build(users)
		or := f["$or"].([]bson.M)
		require.Len(t, or, 2)
		assert.Equal(t, oid, or[0]["_id"])
		assert.Equal(t, bson.M{"$in": users}, or[1]["user"])
	})

	t.Run("search resolving to nothing matches no documents", func(t *testing.T) {
		f := OrderFilters{Search: "nobody"}.Build(nil)
		or := f["$or"].([]bson.M)
		require.Len(t, or, 1)
		assert.Equal(t, bson.M{"$in": []primitive.ObjectID{}}, or[0]["_id"])
	})

	t.Run("status and date range without search", func(t *testing.T) {
		f := OrderFilters{Status: "pending", StartDate: "2026-03-01"}.Build(nil)
		assert.Equal(t, "pending", f["status"])
		assert.Contains(t, f, "orderDate")
		assert.NotContains(t, f, "$or")
	})
}

func TestBuildIsDeterministic(t *testing.T) {
	q := url.Values{"search": {"x"}, "status": {"pending"}}
	fl := ParseOrderFilters(q)
	assert.Equal(t, fl.Build(nil), fl.Build(nil))
}

package query

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vyshnav-v/food-delivery/pkg/collection"
)

// Sort is a resolved sort instruction.
type Sort struct {
	Field string
	Desc  bool
}

// Per-entity sortable fields. Anything outside the allow-list falls back to
// createdAt descending rather than erroring.
var (
	ProductSortFields  = []string{"createdAt", "name", "price", "stock", "status"}
	CategorySortFields = []string{"createdAt", "name"}
	UserSortFields     = []string{"createdAt", "name", "email", "role"}
	OrderSortFields    = []string{"createdAt", "orderDate", "totalAmount", "status"}
)

// ResolveSort decodes a single sort token against an allow-list.
//
//   - "-field" sorts descending on field; "field" sorts ascending.
//   - An empty token sorts on createdAt, honouring the order parameter
//     (descending unless order is "asc").
//   - An unrecognised field falls back to createdAt descending.
//
// Identical input always yields an identical result.
func ResolveSort(token, order string, allowed []string) Sort {
	if token == "" {
		return Sort{Field: DefaultSortField, Desc: !strings.EqualFold(order, "asc")}
	}

	desc := false
	field := token
	if strings.HasPrefix(token, "-") {
		field = token[1:]
		desc = true
	}

	if !collection.Contains(allowed, field) {
		return Sort{Field: DefaultSortField, Desc: true}
	}

	return Sort{Field: field, Desc: desc}
}

// Doc returns the bson sort document for a find or aggregate stage.
func (s Sort) Doc() bson.D {
	dir := 1
	if s.Desc {
		dir = -1
	}
	return bson.D{{Key: s.Field, Value: dir}}
}

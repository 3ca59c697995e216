package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter builders translate optional request inputs into bson predicates.
// They never fail: absent, empty, or unparseable inputs simply omit their
// clause. "all" on an enum filter means no filter. Builders hold no state,
// so building twice from the same input yields an identical predicate.

// searchRegex builds a case-insensitive substring matcher with regex
// metacharacters in the raw input escaped.
func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// searchClause ORs the regex across the given text fields.
func searchClause(term string, fields ...string) bson.M {
	re := searchRegex(term)
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}

// dateRange adds inclusive bounds on field for whichever of start/end parse.
// Accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func dateRange(filter bson.M, field, start, end string) {
	bounds := bson.M{}
	if t, ok := parseDate(start); ok {
		bounds["$gte"] = t
	}
	if t, ok := parseDate(end); ok {
		bounds["$lte"] = t
	}
	if len(bounds) > 0 {
		filter[field] = bounds
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func enumSet(s string) bool {
	return s != "" && s != "all"
}

// ── Products ─────────────────────────────────────────────────────────────────

type ProductFilters struct {
	Search   string
	Status   string
	Category string
	Featured string
	MinPrice string
	MaxPrice string
}

func ParseProductFilters(q url.Values) ProductFilters {
	return ProductFilters{
		Search:   strings.TrimSpace(q.Get("search")),
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Featured: q.Get("featured"),
		MinPrice: q.Get("minPrice"),
		MaxPrice: q.Get("maxPrice"),
	}
}

// Build returns the Mongo predicate for the product list.
func (f ProductFilters) Build() bson.M {
	filter := bson.M{}

	if enumSet(f.Status) {
		filter["status"] = f.Status
	}
	if f.Featured != "" {
		filter["featured"] = f.Featured == "true"
	}
	if oid, err := primitive.ObjectIDFromHex(f.Category); err == nil {
		filter["category"] = oid
	}

	price := bson.M{}
	if v, err := strconv.ParseFloat(f.MinPrice, 64); err == nil {
		price["$gte"] = v
	}
	if v, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
		price["$lte"] = v
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if f.Search != "" {
		for k, v := range searchClause(f.Search, "name", "description") {
			filter[k] = v
		}
	}

	return filter
}

// ── Categories ───────────────────────────────────────────────────────────────

type CategoryFilters struct {
	Search    string
	StartDate string
	EndDate   string
}

func ParseCategoryFilters(q url.Values) CategoryFilters {
	return CategoryFilters{
		Search:    strings.TrimSpace(q.Get("search")),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
}

func (f CategoryFilters) Build() bson.M {
	filter := bson.M{}
	if f.Search != "" {
		for k, v := range searchClause(f.Search, "name", "description") {
			filter[k] = v
		}
	}
	dateRange(filter, "createdAt", f.StartDate, f.EndDate)
	return filter
}

// ── Users ────────────────────────────────────────────────────────────────────

type UserFilters struct {
	Search    string
	Role      string
	StartDate string
	EndDate   string
}

func ParseUserFilters(q url.Values) UserFilters {
	return UserFilters{
		Search:    strings.TrimSpace(q.Get("search")),
		Role:      q.Get("role"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
}

func (f UserFilters) Build() bson.M {
	filter := bson.M{}
	if enumSet(f.Role) {
		filter["role"] = f.Role
	}
	if f.Search != "" {
		for k, v := range searchClause(f.Search, "name", "email", "mobile") {
			filter[k] = v
		}
	}
	dateRange(filter, "createdAt", f.StartDate, f.EndDate)
	return filter
}

// UserSearchPredicate matches users whose name, email, or mobile contains
// the term. Used by the order list to resolve user references before the
// order predicate is built.
func UserSearchPredicate(term string) bson.M {
	return searchClause(term, "name", "email", "mobile")
}

// ── Orders ───────────────────────────────────────────────────────────────────

type OrderFilters struct {
	Search    string
	Status    string
	StartDate string
	EndDate   string
}

func ParseOrderFilters(q url.Values) OrderFilters {
	return OrderFilters{
		Search:    strings.TrimSpace(q.Get("search")),
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
}

// Build returns the Mongo predicate for the order list. matchedUsers holds
// the IDs of users whose name/email/mobile matched the search term; the
// caller resolves them first. A search that matches neither an order ID nor
// any user yields a predicate matching nothing: an empty page, not an error.
func (f OrderFilters) Build(matchedUsers []primitive.ObjectID) bson.M {
	filter := bson.M{}

	if enumSet(f.Status) {
		filter["status"] = f.Status
	}
	dateRange(filter, "orderDate", f.StartDate, f.EndDate)

	if f.Search != "" {
		or := []bson.M{}
		if oid, err := primitive.ObjectIDFromHex(f.Search); err == nil {
			or = append(or, bson.M{"_id": oid})
		}
		if len(matchedUsers) > 0 {
			or = append(or, bson.M{"user": bson.M{"$in": matchedUsers}})
		}
		if len(or) == 0 {
			// Term resolves to nothing; match no documents.
			or = append(or, bson.M{"_id": bson.M{"$in": []primitive.ObjectID{}}})
		}
		filter["$or"] = or
	}

	return filter
}

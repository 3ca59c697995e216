// Package query implements the list-endpoint query pipeline shared by every
// entity: parameter normalisation, sort resolution against per-entity
// allow-lists, filter predicates for the Mongo query engine, and pagination
// metadata.
//
// The normaliser is deliberately lenient: malformed page/limit values clamp
// to the nearest valid bound instead of erroring, so a bad page number never
// fails a list request.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Clamping bounds for pagination parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// DefaultSortField is the fallback sort field for every entity.
const DefaultSortField = "createdAt"

// Params is the normalised pagination tuple extracted from a request.
// Sort holds the raw sort token ("" when the client sent none); resolve it
// with ResolveSort before use.
type Params struct {
	Page  int
	Limit int
	Sort  string
	Order string // "asc" or "desc"
}

// ParseParams normalises raw query values into Params. Non-numeric or
// out-of-range page/limit inputs clamp silently; order defaults to "desc".
func ParseParams(q url.Values) Params {
	page := clampAtLeast(atoiDefault(q.Get("page"), DefaultPage), DefaultPage)
	limit := clamp(atoiDefault(q.Get("limit"), DefaultLimit), MinLimit, MaxLimit)

	order := "desc"
	if strings.EqualFold(q.Get("order"), "asc") {
		order = "asc"
	}

	return Params{
		Page:  page,
		Limit: limit,
		Sort:  strings.TrimSpace(q.Get("sort")),
		Order: order,
	}
}

// Skip returns the number of documents to skip for the current page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func clampAtLeast(n, lo int) int {
	if n < lo {
		return lo
	}
	return n
}

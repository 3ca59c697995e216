package query

// Pagination is the page metadata attached to every list response.
type Pagination struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int64 `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination derives page metadata from a total count and the normalised
// params. A page past the end is not an error; it simply has no next page.
func NewPagination(total int64, p Params) Pagination {
	totalPages := (total + int64(p.Limit) - 1) / int64(p.Limit)
	return Pagination{
		Total:       total,
		Page:        p.Page,
		Limit:       p.Limit,
		TotalPages:  totalPages,
		HasNextPage: int64(p.Page) < totalPages,
		HasPrevPage: p.Page > 1,
	}
}

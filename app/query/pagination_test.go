package query

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		page       int
		limit      int
		wantPages  int64
		wantNext   bool
		wantPrev   bool
	}{
		{"empty result", 0, 1, 10, 0, false, false},
		{"exact multiple", 100, 1, 10, 10, true, false},
		{"partial last page", 101, 11, 10, 11, false, true},
		{"middle page", 50, 3, 10, 5, true, true},
		{"single page", 7, 1, 10, 1, false, false},
		{"page beyond range", 10, 5, 10, 1, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, Params{Page: tc.page, Limit: tc.limit})
			if p.TotalPages != tc.wantPages {
				t.Errorf("totalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.HasNextPage != tc.wantNext {
				t.Errorf("hasNextPage = %v, want %v", p.HasNextPage, tc.wantNext)
			}
			if p.HasPrevPage != tc.wantPrev {
				t.Errorf("hasPrevPage = %v, want %v", p.HasPrevPage, tc.wantPrev)
			}
			if p.Total != tc.total || p.Page != tc.page || p.Limit != tc.limit {
				t.Errorf("echo fields mismatch: %+v", p)
			}
		})
	}
}

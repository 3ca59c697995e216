package query

import (
	"net/url"
	"testing"
)

func TestParseParamsDefaults(t *testing.T) {
	p := ParseParams(url.Values{})

	if p.Page != DefaultPage {
		t.Errorf("page = %d, want %d", p.Page, DefaultPage)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Sort != "" {
		t.Errorf("sort = %q, want empty", p.Sort)
	}
	if p.Order != "desc" {
		t.Errorf("order = %q, want desc", p.Order)
	}
}

func TestParseParamsClamping(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"negative page", "-3", "10", 1, 10},
		{"zero page", "0", "10", 1, 10},
		{"non-numeric page", "abc", "10", 1, 10},
		{"zero limit", "2", "0", 2, 1},
		{"limit above cap", "2", "500", 2, 100},
		{"non-numeric limit", "2", "ten", 2, 10},
		{"large page allowed", "9999", "10", 9999, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := url.Values{"page": {tc.page}, "limit": {tc.limit}}
			p := ParseParams(q)
			if p.Page != tc.wantPage {
				t.Errorf("page = %d, want %d", p.Page, tc.wantPage)
			}
			if p.Limit != tc.wantLimit {
				t.Errorf("limit = %d, want %d", p.Limit, tc.wantLimit)
			}
		})
	}
}

func TestParseParamsOrder(t *testing.T) {
	q := url.Values{"order": {"ASC"}}
	if p := ParseParams(q); p.Order != "asc" {
		t.Errorf("order = %q, want asc", p.Order)
	}
	q = url.Values{"order": {"sideways"}}
	if p := ParseParams(q); p.Order != "desc" {
		t.Errorf("order = %q, want desc", p.Order)
	}
}

func TestSkip(t *testing.T) {
	p := Params{Page: 3, Limit: 25}
	if got := p.Skip(); got != 50 {
		t.Errorf("skip = %d, want 50", got)
	}
	p = Params{Page: 1, Limit: 10}
	if got := p.Skip(); got != 0 {
		t.Errorf("skip = %d, want 0", got)
	}
}

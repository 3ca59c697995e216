package query

import "testing"

func TestResolveSort(t *testing.T) {
	cases := []struct {
		name      string
		token     string
		order     string
		allowed   []string
		wantField string
		wantDesc  bool
	}{
		{"empty defaults desc", "", "", ProductSortFields, "createdAt", true},
		{"empty honours asc order", "", "asc", ProductSortFields, "createdAt", false},
		{"plain field is ascending", "price", "", ProductSortFields, "price", false},
		{"minus prefix is descending", "-price", "", ProductSortFields, "price", true},
		{"unknown falls back", "evil", "", ProductSortFields, "createdAt", true},
		{"unknown with minus falls back", "-evil", "asc", ProductSortFields, "createdAt", true},
		{"order param ignored for explicit token", "name", "desc", CategorySortFields, "name", false},
		{"orderDate allowed for orders", "-orderDate", "", OrderSortFields, "orderDate", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveSort(tc.token, tc.order, tc.allowed)
			if got.Field != tc.wantField || got.Desc != tc.wantDesc {
				t.Errorf("ResolveSort(%q, %q) = {%s %v}, want {%s %v}",
					tc.token, tc.order, got.Field, got.Desc, tc.wantField, tc.wantDesc)
			}
		})
	}
}

func TestSortDoc(t *testing.T) {
	d := Sort{Field: "price", Desc: true}.Doc()
	if d[0].Key != "price" || d[0].Value != -1 {
		t.Errorf("doc = %v, want price: -1", d)
	}
	d = Sort{Field: "name"}.Doc()
	if d[0].Key != "name" || d[0].Value != 1 {
		t.Errorf("doc = %v, want name: 1", d)
	}
}

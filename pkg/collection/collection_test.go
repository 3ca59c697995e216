package collection

import (
	"reflect"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(n int) int { return n * n })
	if !reflect.DeepEqual(got, []int{1, 4, 9}) {
		t.Errorf("Map = %v", got)
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]string{"a", "", "b", ""}, func(s string) bool { return s != "" })
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Filter = %v", got)
	}
}

func TestContains(t *testing.T) {
	fields := []string{"createdAt", "name", "price"}
	if !Contains(fields, "price") {
		t.Error("price should be found")
	}
	if Contains(fields, "stock") {
		t.Error("stock should not be found")
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]int{3, 1, 3, 2, 1})
	if !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Errorf("Unique = %v", got)
	}
	if Unique([]int(nil)) != nil {
		t.Error("nil input should stay nil")
	}
}

package service

import (
	"fmt"
	"testing"
)

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("r%d", i+1)
	}
	return items
}

func TestPaginateLastPartialPage(t *testing.T) {
	items := makeItems(25)

	page := Paginate(items, 10, 3)

	if page.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 5 {
		t.Fatalf("Expected 5 items on last page, got %d", len(page.Items))
	}
	if page.Items[0] != "r21" || page.Items[4] != "r25" {
		t.Errorf("Expected items r21..r25, got %s..%s", page.Items[0], page.Items[4])
	}
	if page.HasNext {
		t.Error("Expected HasNext false on last page")
	}
	if !page.HasPrev {
		t.Error("Expected HasPrev true on last page")
	}
}

func TestPaginateCoverage(t *testing.T) {
	items := makeItems(25)

	first := Paginate(items, 10, 1)

	var rebuilt []string
	for p := 1; p <= first.TotalPages; p++ {
		rebuilt = append(rebuilt, Paginate(items, 10, p).Items...)
	}

	if len(rebuilt) != len(items) {
		t.Fatalf("Pages cover %d items, expected %d", len(rebuilt), len(items))
	}
	for i := range items {
		if rebuilt[i] != items[i] {
			t.Errorf("Item %d: expected %s, got %s", i, items[i], rebuilt[i])
		}
	}
}

func TestPaginateClampsPage(t *testing.T) {
	items := makeItems(12)

	// Beyond the last page clamps down
	page := Paginate(items, 10, 99)
	if page.CurrentPage != 2 {
		t.Errorf("Expected page clamped to 2, got %d", page.CurrentPage)
	}
	if len(page.Items) != 2 {
		t.Errorf("Expected 2 items on clamped page, got %d", len(page.Items))
	}

	// Zero and negative pages clamp up
	page = Paginate(items, 10, 0)
	if page.CurrentPage != 1 {
		t.Errorf("Expected page clamped to 1, got %d", page.CurrentPage)
	}
	page = Paginate(items, 10, -5)
	if page.CurrentPage != 1 {
		t.Errorf("Expected page clamped to 1, got %d", page.CurrentPage)
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]string{}, 10, 1)

	if page.TotalPages != 0 {
		t.Errorf("Expected 0 total pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(page.Items))
	}
	if page.HasPrev || page.HasNext {
		t.Error("Expected no navigation on empty collection")
	}
	if page.CurrentPage != 1 {
		t.Errorf("Expected current page 1, got %d", page.CurrentPage)
	}

	// Out-of-range page requests still land on page 1
	page = Paginate([]string{}, 10, 5)
	if page.CurrentPage != 1 {
		t.Errorf("Expected current page 1, got %d", page.CurrentPage)
	}
	if page.HasPrev {
		t.Error("Expected HasPrev false on empty collection")
	}
}

func TestPaginateDefaultPageSize(t *testing.T) {
	items := makeItems(25)

	page := Paginate(items, 0, 1)
	if page.PageSize != DefaultPageSize {
		t.Errorf("Expected default page size %d, got %d", DefaultPageSize, page.PageSize)
	}
	if len(page.Items) != DefaultPageSize {
		t.Errorf("Expected %d items, got %d", DefaultPageSize, len(page.Items))
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	items := makeItems(20)

	page := Paginate(items, 10, 2)
	if page.TotalPages != 2 {
		t.Errorf("Expected 2 total pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 10 {
		t.Errorf("Expected full last page of 10, got %d", len(page.Items))
	}
	if page.HasNext {
		t.Error("Expected HasNext false on final full page")
	}
}

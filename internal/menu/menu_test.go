package menu

import "testing"

func TestByID(t *testing.T) {
	it, ok := ByID(1)
	if !ok || it.Name != "Pizza Margherita" {
		t.Fatalf("unexpected item %+v", it)
	}
	if _, ok := ByID(99); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestCatalogShape(t *testing.T) {
	if len(Items) != 6 {
		t.Fatalf("expected 6 menu items, got %d", len(Items))
	}
	seen := make(map[int64]bool)
	for _, it := range Items {
		if it.Price <= 0 || it.Name == "" {
			t.Fatalf("invalid item %+v", it)
		}
		if seen[it.ID] {
			t.Fatalf("duplicate id %d", it.ID)
		}
		seen[it.ID] = true
	}
}

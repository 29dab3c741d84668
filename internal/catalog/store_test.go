package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kitestore-next/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "products.json"))
}

func TestLoadInitializesMissingCatalog(t *testing.T) {
	store := newTestStore(t)

	products, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(products))
	}
	if _, err := os.Stat(store.path); err != nil {
		t.Fatalf("expected catalog file to be persisted: %v", err)
	}

	// Second load reads the persisted empty list, not the missing-file path.
	again, err := store.Load()
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected empty catalog on reload, got %d products", len(again))
	}
}

func TestSaveAndReload(t *testing.T) {
	store := newTestStore(t)

	old := 52000
	saved := []models.Product{
		{
			ID:       1,
			Name:     "Apex 9m",
			Price:    45000,
			OldPrice: &old,
			Category: "kites",
			Tags:     []string{"Freeride"},
			Sizes:    []models.Size{{Label: "9м²", PriceDelta: -10000}},
			Photos:   []string{},
		},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 product, got %d", len(loaded))
	}
	p := loaded[0]
	if p.ID != 1 || p.Name != "Apex 9m" || p.Price != 45000 {
		t.Fatalf("unexpected product after reload: %+v", p)
	}
	if p.OldPrice == nil || *p.OldPrice != 52000 {
		t.Fatalf("expected old price 52000, got %v", p.OldPrice)
	}
	if len(p.Sizes) != 1 || p.Sizes[0].PriceDelta != -10000 {
		t.Fatalf("unexpected sizes after reload: %+v", p.Sizes)
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Fatalf("expected next id 1 for empty catalog, got %d", got)
	}
	products := []models.Product{{ID: 3}, {ID: 1}, {ID: 7}}
	if got := NextID(products); got != 8 {
		t.Fatalf("expected next id 8, got %d", got)
	}
}

func TestNextIDMonotonicAcrossCreations(t *testing.T) {
	store := newTestStore(t)
	var products []models.Product
	seen := map[int]bool{}
	last := 0
	for i := 0; i < 5; i++ {
		id := NextID(products)
		if id <= last {
			t.Fatalf("ids not strictly increasing: %d after %d", id, last)
		}
		if seen[id] {
			t.Fatalf("id %d allocated twice", id)
		}
		seen[id] = true
		last = id
		products = append(products, models.Product{ID: id})
		if err := store.Save(products); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	// Deleting the newest product must not cause id reuse by formula alone
	// for the remaining max; removing a middle product never reuses its id.
	products = append(products[:2], products[3:]...)
	if id := NextID(products); id != 6 {
		t.Fatalf("expected next id 6 after middle delete, got %d", id)
	}
}

func TestIndexByID(t *testing.T) {
	products := []models.Product{{ID: 1}, {ID: 5}}
	if idx := IndexByID(products, 5); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := IndexByID(products, 9); idx != -1 {
		t.Fatalf("expected -1 for missing id, got %d", idx)
	}
}

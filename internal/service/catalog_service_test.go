package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/models"
	"github.com/kitestore-next/internal/photos"
)

func newTestCatalogService(t *testing.T) (*CatalogService, *catalog.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := catalog.NewStore(filepath.Join(dir, "products.json"))
	photosDir := filepath.Join(dir, "photos")
	manager := photos.NewManager(config.PhotosConfig{
		Dir:       photosDir,
		BaseURL:   "http://127.0.0.1:8080/photos",
		Extension: "jpg",
	})
	return NewCatalogService(store, manager), store, photosDir
}

func TestListPaginates(t *testing.T) {
	svc, store, _ := newTestCatalogService(t)
	var products []models.Product
	for i := 1; i <= 7; i++ {
		products = append(products, models.Product{ID: i, Name: "P"})
	}
	if err := store.Save(products); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	page, total, err := svc.List(2, 5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 7 {
		t.Fatalf("expected total 7, got %d", total)
	}
	if len(page) != 2 || page[0].ID != 6 {
		t.Fatalf("unexpected second page: %+v", page)
	}

	empty, _, err := svc.List(3, 5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", empty)
	}
}

func TestListClampsPageBelowOne(t *testing.T) {
	svc, store, _ := newTestCatalogService(t)
	if err := store.Save([]models.Product{{ID: 1, Name: "P"}, {ID: 2, Name: "P"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, page := range []int{0, -3} {
		got, total, err := svc.List(page, 5)
		if err != nil {
			t.Fatalf("list page %d failed: %v", page, err)
		}
		if total != 2 || len(got) != 2 || got[0].ID != 1 {
			t.Fatalf("page %d should fall back to the first page, got %+v", page, got)
		}
	}
}

func TestGetReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestCatalogService(t)
	if _, err := svc.Get(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesProductAndAssets(t *testing.T) {
	svc, store, photosDir := newTestCatalogService(t)

	manager := photos.NewManager(config.PhotosConfig{
		Dir:       photosDir,
		BaseURL:   "http://127.0.0.1:8080/photos",
		Extension: "jpg",
	})
	var urls []string
	for _, content := range []string{"a", "b"} {
		url, err := manager.Attach("1", []byte(content))
		if err != nil {
			t.Fatalf("attach failed: %v", err)
		}
		urls = append(urls, url)
	}
	if err := store.Save([]models.Product{{ID: 1, Name: "Apex 9m", Photos: urls}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := svc.Delete(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	products, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if catalog.IndexByID(products, 1) != -1 {
		t.Fatalf("product 1 still listed after delete")
	}
	if _, err := os.Stat(filepath.Join(photosDir, "1")); !os.IsNotExist(err) {
		t.Fatalf("photo directory for key 1 still exists")
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	svc, _, _ := newTestCatalogService(t)
	if err := svc.Delete(9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

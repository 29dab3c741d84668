package service

import (
	"strconv"

	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/models"
	"github.com/kitestore-next/internal/photos"
)

// CatalogService exposes read and whole-record operations over the catalog.
type CatalogService struct {
	store  *catalog.Store
	photos *photos.Manager
}

// NewCatalogService creates a catalog service.
func NewCatalogService(store *catalog.Store, photoManager *photos.Manager) *CatalogService {
	return &CatalogService{store: store, photos: photoManager}
}

// List returns one page of products and the total count. Pages start at
// 1; anything lower is treated as the first page.
func (s *CatalogService) List(page, pageSize int) ([]models.Product, int64, error) {
	products, err := s.store.Load()
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	total := int64(len(products))
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}, total, nil
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], total, nil
}

// All returns the full catalog in stored order.
func (s *CatalogService) All() ([]models.Product, error) {
	return s.store.Load()
}

// Count returns the number of catalog entries.
func (s *CatalogService) Count() (int, error) {
	products, err := s.store.Load()
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// Get returns the product with the given id.
func (s *CatalogService) Get(id int) (*models.Product, error) {
	products, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	idx := catalog.IndexByID(products, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	product := products[idx]
	return &product, nil
}

// Delete removes a product from the catalog and its photo directory. The
// catalog save happens first: a product must never stay listed with its
// assets already gone.
func (s *CatalogService) Delete(id int) error {
	products, err := s.store.Load()
	if err != nil {
		return err
	}
	idx := catalog.IndexByID(products, id)
	if idx < 0 {
		return ErrNotFound
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := s.store.Save(products); err != nil {
		return err
	}
	if err := s.photos.DeleteAll(strconv.Itoa(id)); err != nil {
		return err
	}
	logger.Infow("product_deleted", "product_id", id, "remaining", len(products))
	return nil
}

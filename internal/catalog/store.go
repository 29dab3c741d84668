// Package catalog persists the product list as a single flat JSON file.
//
// The whole-list overwrite in Save is the only write primitive: callers
// load the entire collection, mutate their copy, and save everything back.
// The store serializes its own file I/O, but a second concurrent
// load-modify-save sequence still races last-write-wins on the whole
// collection. The deployment model assumes at most one mutating admin
// session at a time; the chat dispatcher processes updates sequentially,
// which is what upholds that assumption in practice.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kitestore-next/internal/models"
)

// Store owns the catalog file and identifier allocation.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store over the given catalog file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full catalog. A missing file initializes an empty catalog
// and persists it, so subsequent reads never special-case "missing".
func (s *Store) Load() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Save atomically overwrites the full catalog file.
func (s *Store) Save(products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(products)
}

// write marshals and replaces the catalog file via a temp file + rename so
// readers never observe a torn write. Caller holds s.mu.
func (s *Store) write(products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create catalog temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close catalog temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace catalog file: %w", err)
	}
	return nil
}

// NextID allocates the next product identifier: max(ids)+1, or 1 for an
// empty catalog. Ids of deleted products are never reclaimed beyond what
// this formula naturally avoids.
func NextID(products []models.Product) int {
	next := 1
	for i := range products {
		if products[i].ID >= next {
			next = products[i].ID + 1
		}
	}
	return next
}

// IndexByID returns the position of the product with the given id, or -1.
func IndexByID(products []models.Product, id int) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

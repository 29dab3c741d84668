package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/models"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/provider"
	"github.com/kitestore-next/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *catalog.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store := catalog.NewStore(filepath.Join(dir, "products.json"))
	manager := photos.NewManager(config.PhotosConfig{
		Dir:       filepath.Join(dir, "photos"),
		BaseURL:   "http://127.0.0.1:8080/photos",
		Extension: "jpg",
	})
	handler := New(&provider.Container{
		Store:          store,
		Photos:         manager,
		CatalogService: service.NewCatalogService(store, manager),
	})

	r := gin.New()
	r.GET("/api/v1/public/products", handler.GetProducts)
	r.GET("/api/v1/public/products/:id", handler.GetProduct)
	r.GET("/api/v1/public/categories", handler.GetCategories)
	return r, store
}

func TestGetProductsPaginates(t *testing.T) {
	r, store := newTestRouter(t)
	var products []models.Product
	for i := 1; i <= 25; i++ {
		products = append(products, models.Product{ID: i, Name: "P"})
	}
	if err := store.Save(products); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/products?page=2&page_size=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int              `json:"status_code"`
		Data       []models.Product `json:"data"`
		Pagination struct {
			Page      int   `json:"page"`
			Total     int64 `json:"total"`
			TotalPage int64 `json:"total_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != 0 || len(resp.Data) != 10 || resp.Data[0].ID != 11 {
		t.Fatalf("unexpected page: %+v", resp)
	}
	if resp.Pagination.Total != 25 || resp.Pagination.TotalPage != 3 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestGetProductsNormalizesBadPaging(t *testing.T) {
	r, store := newTestRouter(t)
	if err := store.Save([]models.Product{{ID: 1, Name: "P"}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/products?page=-3&page_size=9999", nil))
	var resp struct {
		Pagination struct {
			Page     int `json:"page"`
			PageSize int `json:"page_size"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.PageSize != 100 {
		t.Fatalf("paging not normalized: %+v", resp.Pagination)
	}
}

func TestGetProductByID(t *testing.T) {
	r, store := newTestRouter(t)
	if err := store.Save([]models.Product{{ID: 3, Name: "Apex 9m", Price: 45000}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/products/3", nil))
	var resp struct {
		StatusCode int            `json:"status_code"`
		Data       models.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != 0 || resp.Data.Name != "Apex 9m" {
		t.Fatalf("unexpected product: %+v", resp)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/products/99", nil))
	var missing struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &missing); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if missing.StatusCode != 404 {
		t.Fatalf("expected business 404, got %d", missing.StatusCode)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/products/abc", nil))
	var bad struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &bad); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if bad.StatusCode != 400 {
		t.Fatalf("expected business 400, got %d", bad.StatusCode)
	}
}

func TestGetCategories(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/categories", nil))
	var resp struct {
		Data []categoryView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(resp.Data) != 4 || resp.Data[0].Key != "kites" {
		t.Fatalf("unexpected categories: %+v", resp.Data)
	}
}

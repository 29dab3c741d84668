package public

import (
	"errors"
	"strconv"

	"github.com/kitestore-next/internal/constants"
	"github.com/kitestore-next/internal/http/handlers/shared"
	"github.com/kitestore-next/internal/http/response"
	"github.com/kitestore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts returns one page of the catalog.
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	products, total, err := h.CatalogService.List(page, pageSize)
	if err != nil {
		response.Error(c, response.CodeInternal, "catalog unavailable")
		return
	}

	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.CatalogService.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "product not found")
		return
	}
	if err != nil {
		response.Error(c, response.CodeInternal, "catalog unavailable")
		return
	}
	response.Success(c, product)
}

type categoryView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// GetCategories returns the fixed category set in presentation order.
func (h *Handler) GetCategories(c *gin.Context) {
	categories := make([]categoryView, 0, len(constants.CategoryOrder))
	for _, key := range constants.CategoryOrder {
		categories = append(categories, categoryView{Key: key, Label: constants.CategoryLabels[key]})
	}
	response.Success(c, categories)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/catalog"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves product catalog endpoints.
type CatalogHandler struct {
	*BaseHandler
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /products.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product := req.ToDomain()
	if err := h.service.Create(c.Request.Context(), &product); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, product.ID)
}

// List handles GET /products. With ?active=true only active products are
// returned.
func (h *CatalogHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []catalog.Product
		err      error
	)
	if c.Query("active") == "true" {
		products, err = h.service.ListActive(ctx)
	} else {
		products, err = h.service.List(ctx)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	items := dto.FromProducts(products)
	h.OK(c, dto.ListResponse{Items: items, Total: len(items)})
}

// Get handles GET /products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(product))
}

// Update handles PUT /products/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product := req.ToDomain()
	product.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), &product); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(product))
}

// Delete handles DELETE /products/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/catalog"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/posting"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// PostingHandler serves sales and damage batch posting.
type PostingHandler struct {
	*BaseHandler
	posting *posting.Service
	catalog *catalog.Service
	audit   *audit.Service
}

func NewPostingHandler(postingSvc *posting.Service, catalogSvc *catalog.Service, auditSvc *audit.Service) *PostingHandler {
	return &PostingHandler{
		BaseHandler: NewBaseHandler(),
		posting:     postingSvc,
		catalog:     catalogSvc,
		audit:       auditSvc,
	}
}

// PostSales handles POST /sales.
func (h *PostingHandler) PostSales(c *gin.Context) {
	var req dto.SalesBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	items, err := dto.ToItems(req.Items, func(productID string) (catalog.Product, error) {
		return h.catalog.GetByID(ctx, productID)
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	postedAt, err := dto.ParsePostedAt(req.PostedAt)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.posting.Post(ctx, posting.Input{
		Kind:     ledger.KindSale,
		Items:    items,
		PostedAt: postedAt,
		SRName:   req.SRName,
	})
	h.respond(c, result, err, "sale")
}

// PostDamages handles POST /damages.
func (h *PostingHandler) PostDamages(c *gin.Context) {
	var req dto.DamageBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	items, err := dto.ToItems(req.Items, func(productID string) (catalog.Product, error) {
		return h.catalog.GetByID(ctx, productID)
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	postedAt, err := dto.ParsePostedAt(req.PostedAt)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.posting.Post(ctx, posting.Input{
		Kind:        ledger.KindDamage,
		Items:       items,
		PostedAt:    postedAt,
		ReduceStock: req.ReduceStock,
	})
	h.respond(c, result, err, "damage")
}

// respond renders a batch result. Partial failures return the per-item
// outcomes with a 207-style payload carried in the error body.
func (h *PostingHandler) respond(c *gin.Context, result posting.Result, err error, entity string) {
	ctx := c.Request.Context()

	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodePartialPostingFailure {
			h.audit.Log(ctx, audit.ActionPost, entity, "", dto.FromResult(result))
			c.JSON(appErr.HTTPStatus, gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
				"result":  dto.FromResult(result),
			})
			return
		}
		h.Error(c, err)
		return
	}

	h.audit.Log(ctx, audit.ActionPost, entity, "", dto.FromResult(result))
	h.OK(c, dto.FromResult(result))
}

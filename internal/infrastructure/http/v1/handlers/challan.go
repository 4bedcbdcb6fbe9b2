package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/challan"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ChallanHandler serves challan posting, search and deletion.
type ChallanHandler struct {
	*BaseHandler
	service *challan.Service
	audit   *audit.Service
}

func NewChallanHandler(service *challan.Service, auditSvc *audit.Service) *ChallanHandler {
	return &ChallanHandler{BaseHandler: NewBaseHandler(), service: service, audit: auditSvc}
}

// Post handles POST /challans. Partial lift failures return the saved
// challan ID with the per-item outcomes, the same shape batch posting uses.
func (h *ChallanHandler) Post(c *gin.Context) {
	var req dto.ChallanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domain, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	res, err := h.service.Post(ctx, domain)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodePartialPostingFailure {
			h.audit.Log(ctx, audit.ActionPost, "challan", res.Challan.ID, dto.FromChallanResult(res))
			c.JSON(appErr.HTTPStatus, gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
				"result":  dto.FromChallanResult(res),
			})
			return
		}
		h.Error(c, err)
		return
	}

	h.audit.Log(ctx, audit.ActionPost, "challan", res.Challan.ID, res.Challan)
	h.Created(c, res.Challan.ID)
}

// Search handles GET /challans?from=...&to=...
func (h *ChallanHandler) Search(c *gin.Context) {
	var req dto.DateRangeRequest
	if !h.BindQuery(c, &req) {
		return
	}
	rng, err := req.Range()
	if err != nil {
		h.Error(c, err)
		return
	}

	challans, err := h.service.Search(c.Request.Context(), rng)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: challans, Total: len(challans)})
}

// Get handles GET /challans/:id.
func (h *ChallanHandler) Get(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, found)
}

// Delete handles DELETE /challans/:id.
func (h *ChallanHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.service.Delete(ctx, id); err != nil {
		h.Error(c, err)
		return
	}
	h.audit.Log(ctx, audit.ActionDelete, "challan", id, nil)
	h.NoContent(c)
}

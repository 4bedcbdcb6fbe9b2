package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/deliveryorder"
	"stockbook/internal/domain/dues"
	"stockbook/internal/domain/notes"
	"stockbook/internal/domain/profile"
	"stockbook/internal/domain/srlist"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// --- Dues ---

type DuesHandler struct {
	*BaseHandler
	service *dues.Service
}

func NewDuesHandler(service *dues.Service) *DuesHandler {
	return &DuesHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *DuesHandler) Add(c *gin.Context) {
	var req dto.DueRequest
	if !h.BindJSON(c, &req) {
		return
	}
	due, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}
	saved, err := h.service.Add(c.Request.Context(), due)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, saved.ID)
}

func (h *DuesHandler) Report(c *gin.Context) {
	var req dto.DateRangeRequest
	if !h.BindQuery(c, &req) {
		return
	}
	rng, err := req.Range()
	if err != nil {
		h.Error(c, err)
		return
	}
	list, err := h.service.Report(c.Request.Context(), rng)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: list, Total: len(list)})
}

func (h *DuesHandler) MarkCollected(c *gin.Context) {
	due := dues.Due{ID: c.Param("id")}
	if err := h.service.MarkCollected(c.Request.Context(), due, time.Now()); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "due collected")
}

func (h *DuesHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Delivery orders ---

type DeliveryOrderHandler struct {
	*BaseHandler
	service *deliveryorder.Service
}

func NewDeliveryOrderHandler(service *deliveryorder.Service) *DeliveryOrderHandler {
	return &DeliveryOrderHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *DeliveryOrderHandler) Add(c *gin.Context) {
	var req dto.DeliveryOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	order, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}
	saved, err := h.service.Add(c.Request.Context(), order)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, saved.ID)
}

func (h *DeliveryOrderHandler) Report(c *gin.Context) {
	var req dto.DateRangeRequest
	if !h.BindQuery(c, &req) {
		return
	}
	rng, err := req.Range()
	if err != nil {
		h.Error(c, err)
		return
	}
	orders, total, err := h.service.Report(c.Request.Context(), rng)
	if err != nil {
		h.Error(c, err)
		return
	}
	totalAmount, _ := total.Float64()
	h.OK(c, gin.H{
		"items":       orders,
		"total":       len(orders),
		"totalAmount": totalAmount,
	})
}

func (h *DeliveryOrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Notes ---

type NotesHandler struct {
	*BaseHandler
	service *notes.Service
}

func NewNotesHandler(service *notes.Service) *NotesHandler {
	return &NotesHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *NotesHandler) Save(c *gin.Context) {
	var req dto.NoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.service.Save(c.Request.Context(), req.ToDomain()); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "note saved")
}

func (h *NotesHandler) Update(c *gin.Context) {
	var req struct {
		Body string `json:"notes"`
	}
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.service.UpdateBody(c.Request.Context(), c.Param("title"), req.Body); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "note updated")
}

func (h *NotesHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: list, Total: len(list)})
}

func (h *NotesHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("title")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Sales representatives ---

type SRHandler struct {
	*BaseHandler
	service *srlist.Service
}

func NewSRHandler(service *srlist.Service) *SRHandler {
	return &SRHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *SRHandler) Register(c *gin.Context) {
	var req dto.RepresentativeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	rep, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}
	saved, err := h.service.Register(c.Request.Context(), rep)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, saved.ID)
}

func (h *SRHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: list, Total: len(list)})
}

func (h *SRHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Business profile ---

type ProfileHandler struct {
	*BaseHandler
	service *profile.Service
}

func NewProfileHandler(service *profile.Service) *ProfileHandler {
	return &ProfileHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.service.Update(c.Request.Context(), req.ToDomain()); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "profile updated")
}

// --- Audit trail ---

type AuditHandler struct {
	*BaseHandler
	service *audit.Service
}

func NewAuditHandler(service *audit.Service) *AuditHandler {
	return &AuditHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *AuditHandler) Recent(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	records, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: records, Total: len(records)})
}

package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/export"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves aggregated reports, raw entry listings, entry
// deletion and spreadsheet export.
type ReportsHandler struct {
	*BaseHandler
	reports *reports.Service
	ledger  *ledger.Service
	audit   *audit.Service
}

func NewReportsHandler(reportsSvc *reports.Service, ledgerSvc *ledger.Service, auditSvc *audit.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: NewBaseHandler(),
		reports:     reportsSvc,
		ledger:      ledgerSvc,
		audit:       auditSvc,
	}
}

// Sales handles GET /reports/sales?from=&to=
func (h *ReportsHandler) Sales(c *gin.Context) {
	h.aggregate(c, func(ctx *gin.Context, rng dtoRange) (reports.Report, error) {
		return h.reports.Sales(ctx.Request.Context(), rng.rng)
	})
}

// Product handles GET /reports/products/:id?from=&to=
func (h *ReportsHandler) Product(c *gin.Context) {
	h.aggregate(c, func(ctx *gin.Context, rng dtoRange) (reports.Report, error) {
		return h.reports.Product(ctx.Request.Context(), rng.rng, ctx.Param("id"))
	})
}

// SR handles GET /reports/sr/:name?from=&to=
func (h *ReportsHandler) SR(c *gin.Context) {
	h.aggregate(c, func(ctx *gin.Context, rng dtoRange) (reports.Report, error) {
		return h.reports.SR(ctx.Request.Context(), rng.rng, ctx.Param("name"))
	})
}

// Damage handles GET /reports/damages?from=&to=
func (h *ReportsHandler) Damage(c *gin.Context) {
	h.aggregate(c, func(ctx *gin.Context, rng dtoRange) (reports.Report, error) {
		return h.reports.Damage(ctx.Request.Context(), rng.rng)
	})
}

// ExportSales handles GET /reports/sales/export?from=&to=
func (h *ReportsHandler) ExportSales(c *gin.Context) {
	h.export(c, export.QuantitySold, func(ctx *gin.Context, rng dtoRange) (reports.Report, error) {
		return h.reports.Sales(ctx.Request.Context(), rng.rng)
	})
}

// ExportDamage handles GET /reports/damages/export?from=&to=
func (h *ReportsHandler) ExportDamage(c *gin.Context) {
	h.export(c, export.QuantityDamaged, func(ctx *gin.Context, rng dtoRange) (reports.Report, error) {
		return h.reports.Damage(ctx.Request.Context(), rng.rng)
	})
}

// Entries handles GET /reports/entries/:kind?from=&to= for the report
// management listing.
func (h *ReportsHandler) Entries(c *gin.Context) {
	rng, ok := h.parseRange(c)
	if !ok {
		return
	}

	kind := ledger.Kind(c.Param("kind"))
	entries, err := h.reports.Entries(c.Request.Context(), kind, rng.rng)
	if err != nil {
		h.Error(c, err)
		return
	}
	items := dto.FromEntries(entries)
	h.OK(c, dto.ListResponse{Items: items, Total: len(items)})
}

// DeleteEntry handles DELETE /reports/entries/:kind/:id. The request body
// may carry the entry's product and quantity for stock compensation.
func (h *ReportsHandler) DeleteEntry(c *gin.Context) {
	kind := ledger.Kind(c.Param("kind"))
	if !kind.IsValid() {
		h.Error(c, apperror.NewValidation("invalid entry kind").
			WithDetail("kind", string(kind)))
		return
	}

	entry := ledger.Entry{ID: c.Param("id")}
	// Optional body with product reference and quantity.
	var body struct {
		ProductID string `json:"id"`
		Quantity  int64  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		entry.ProductID = body.ProductID
		entry.Quantity = body.Quantity
	}

	ctx := c.Request.Context()
	if err := h.ledger.Delete(ctx, kind, entry); err != nil {
		h.Error(c, err)
		return
	}
	h.audit.Log(ctx, audit.ActionDelete, string(kind), entry.ID, nil)
	h.NoContent(c)
}

type dtoRange struct {
	rng    daterange.Range
	fromTo dto.DateRangeRequest
}

func (h *ReportsHandler) parseRange(c *gin.Context) (dtoRange, bool) {
	var req dto.DateRangeRequest
	if !h.BindQuery(c, &req) {
		return dtoRange{}, false
	}
	rng, err := req.Range()
	if err != nil {
		h.Error(c, err)
		return dtoRange{}, false
	}
	return dtoRange{rng: rng, fromTo: req}, true
}

func (h *ReportsHandler) aggregate(c *gin.Context, fetch func(*gin.Context, dtoRange) (reports.Report, error)) {
	rng, ok := h.parseRange(c)
	if !ok {
		return
	}
	report, err := fetch(c, rng)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromReport(report))
}

func (h *ReportsHandler) export(c *gin.Context, quantity export.QuantityHeader, fetch func(*gin.Context, dtoRange) (reports.Report, error)) {
	rng, ok := h.parseRange(c)
	if !ok {
		return
	}
	report, err := fetch(c, rng)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("report_%s_%s.xlsx", rng.fromTo.From, rng.fromTo.To)
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := export.WriteReport(c.Writer, report, quantity); err != nil {
		h.Error(c, apperror.NewInternal(err))
	}
}

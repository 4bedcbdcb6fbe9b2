// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/catalog"
	"stockbook/internal/domain/challan"
	"stockbook/internal/domain/deliveryorder"
	"stockbook/internal/domain/dues"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/notes"
	"stockbook/internal/domain/posting"
	"stockbook/internal/domain/profile"
	"stockbook/internal/domain/reports"
	"stockbook/internal/domain/srlist"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	// Pool is the Postgres connection pool, nil in memory-store mode.
	Pool *pgxpool.Pool

	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	Catalog       *catalog.Service
	Posting       *posting.Service
	Ledger        *ledger.Service
	Reports       *reports.Service
	Challan       *challan.Service
	Dues          *dues.Service
	DeliveryOrder *deliveryorder.Service
	Notes         *notes.Service
	SRList        *srlist.Service
	Profile       *profile.Service
	Audit         *audit.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTValidator))

	catalogHandler := handlers.NewCatalogHandler(cfg.Catalog)
	products := api.Group("/products")
	{
		products.POST("", catalogHandler.Create)
		products.GET("", catalogHandler.List)
		products.GET("/:id", catalogHandler.Get)
		products.PUT("/:id", catalogHandler.Update)
		products.DELETE("/:id", catalogHandler.Delete)
	}

	postingHandler := handlers.NewPostingHandler(cfg.Posting, cfg.Catalog, cfg.Audit)
	api.POST("/sales", postingHandler.PostSales)
	api.POST("/damages", postingHandler.PostDamages)

	challanHandler := handlers.NewChallanHandler(cfg.Challan, cfg.Audit)
	challans := api.Group("/challans")
	{
		challans.POST("", challanHandler.Post)
		challans.GET("", challanHandler.Search)
		challans.GET("/:id", challanHandler.Get)
		challans.DELETE("/:id", challanHandler.Delete)
	}

	reportsHandler := handlers.NewReportsHandler(cfg.Reports, cfg.Ledger, cfg.Audit)
	reportGroup := api.Group("/reports")
	{
		reportGroup.GET("/sales", reportsHandler.Sales)
		reportGroup.GET("/sales/export", reportsHandler.ExportSales)
		reportGroup.GET("/products/:id", reportsHandler.Product)
		reportGroup.GET("/sr/:name", reportsHandler.SR)
		reportGroup.GET("/damages", reportsHandler.Damage)
		reportGroup.GET("/damages/export", reportsHandler.ExportDamage)
		reportGroup.GET("/entries/:kind", reportsHandler.Entries)
		reportGroup.DELETE("/entries/:kind/:id", reportsHandler.DeleteEntry)
	}

	duesHandler := handlers.NewDuesHandler(cfg.Dues)
	duesGroup := api.Group("/dues")
	{
		duesGroup.POST("", duesHandler.Add)
		duesGroup.GET("", duesHandler.Report)
		duesGroup.POST("/:id/collect", duesHandler.MarkCollected)
		duesGroup.DELETE("/:id", duesHandler.Delete)
	}

	doHandler := handlers.NewDeliveryOrderHandler(cfg.DeliveryOrder)
	doGroup := api.Group("/delivery-orders")
	{
		doGroup.POST("", doHandler.Add)
		doGroup.GET("", doHandler.Report)
		doGroup.DELETE("/:id", doHandler.Delete)
	}

	notesHandler := handlers.NewNotesHandler(cfg.Notes)
	notesGroup := api.Group("/notes")
	{
		notesGroup.POST("", notesHandler.Save)
		notesGroup.GET("", notesHandler.List)
		notesGroup.PUT("/:title", notesHandler.Update)
		notesGroup.DELETE("/:title", notesHandler.Delete)
	}

	srHandler := handlers.NewSRHandler(cfg.SRList)
	srGroup := api.Group("/sr")
	{
		srGroup.POST("", srHandler.Register)
		srGroup.GET("", srHandler.List)
		srGroup.DELETE("/:id", srHandler.Delete)
	}

	profileHandler := handlers.NewProfileHandler(cfg.Profile)
	api.GET("/profile", profileHandler.Get)
	api.PUT("/profile", profileHandler.Update)

	auditHandler := handlers.NewAuditHandler(cfg.Audit)
	api.GET("/audit", auditHandler.Recent)

	return router
}

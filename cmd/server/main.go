// Package main is the entry point for the stockbook API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockbook/internal/config"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/auth"
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
	"stockbook/internal/infrastructure/cache"
	"stockbook/internal/infrastructure/docstore"
	"stockbook/internal/infrastructure/docstore/memory"
	pgstore "stockbook/internal/infrastructure/docstore/postgres"
	v1 "stockbook/internal/infrastructure/http/v1"
	"stockbook/internal/infrastructure/storage/docrepo"
	"stockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockbook server")

	// --- Document store ---
	var (
		store docstore.Store
		pool  *pgxpool.Pool
	)
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalw("failed to ping database", "error", err)
		}

		pg := pgstore.New(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalw("failed to ensure schema", "error", err)
		}
		store = pg
		log.Info("database connection established")
	} else {
		store = memory.New()
		log.Warn("DATABASE_URL not set, running on in-memory store")
	}

	// --- Repositories ---
	productRepo := docrepo.NewProductRepo(store)
	ledgerRepo := docrepo.NewLedgerRepo(store)
	challanRepo := docrepo.NewChallanRepo(store)
	dueRepo := docrepo.NewDueRepo(store)
	doRepo := docrepo.NewDeliveryOrderRepo(store)
	noteRepo := docrepo.NewNoteRepo(store)
	srRepo := docrepo.NewSRRepo(store)
	profileRepo := docrepo.NewProfileRepo(store)
	auditRepo := docrepo.NewAuditRepo(store)

	// --- Services ---
	productCache := cache.NewProductCache(cfg.ProductCacheTTL)

	catalogService := catalog.NewService(productRepo, productCache)
	postingService := posting.NewService(ledgerRepo, productRepo, productCache)

	var ledgerOpts []ledger.Option
	if cfg.CompensateStockOnDelete {
		ledgerOpts = append(ledgerOpts, ledger.WithStockCompensation())
	}
	ledgerService := ledger.NewService(ledgerRepo, productRepo, ledgerOpts...)

	reportsService := reports.NewService(ledgerRepo)
	challanService := challan.NewService(challanRepo, ledgerRepo, productRepo, productCache)
	duesService := dues.NewService(dueRepo)
	doService := deliveryorder.NewService(doRepo)
	notesService := notes.NewService(noteRepo)
	srService := srlist.NewService(srRepo)
	profileService := profile.NewService(profileRepo)

	auditService, err := audit.NewService(auditRepo)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- JWT ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:          pool,
		Logger:        log,
		JWTValidator:  jwtService,
		Catalog:       catalogService,
		Posting:       postingService,
		Ledger:        ledgerService,
		Reports:       reportsService,
		Challan:       challanService,
		Dues:          duesService,
		DeliveryOrder: doService,
		Notes:         notesService,
		SRList:        srService,
		Profile:       profileService,
		Audit:         auditService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
		IdleTimeout:  cfg.AppIdleTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.AppAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/leora/backend/internal/config"
	"github.com/leora/backend/internal/estimate"
	"github.com/leora/backend/internal/handler"
	"github.com/leora/backend/internal/logging"
	"github.com/leora/backend/internal/refnum"
	"github.com/leora/backend/internal/repository"
	"github.com/leora/backend/internal/service"
)

func main() {
	// config.Load reads .env first, so LOG_LEVEL from the file is honoured.
	cfg, err := config.Load()
	logging.Setup("leora-api")
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	panelRepo := repository.NewPgPanelRepository(pool)
	rateRepo := repository.NewPgShippingRateRepository(pool)
	paramRepo := repository.NewPgParameterRepository(pool)
	documentRepo := repository.NewPgDocumentRepository(pool)

	engine := estimate.New(cfg.Estimate)
	refs := refnum.New(documentRepo, refnum.WithLocation(cfg.Location))

	masterDataService := service.NewMasterDataService(panelRepo, rateRepo, paramRepo)
	estimateService := service.NewEstimateService(masterDataService, engine)
	documentService := service.NewDocumentService(documentRepo, masterDataService, engine, refs)

	h := handler.New(pool, masterDataService, engine.Config(), cfg.FrontendURL)
	masterDataHandler := handler.NewMasterDataHandler(masterDataService)
	estimateHandler := handler.NewEstimateHandler(estimateService)
	documentHandler := handler.NewDocumentHandler(documentService)
	limiter := handler.NewRateLimiter(ctx, cfg.RateLimitPerMinute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// ライブ見積（入力のたびに呼ばれるためレート制限付き）
	mux.Handle("POST /api/estimate", limiter.Middleware(http.HandlerFunc(estimateHandler.Preview)))

	// マスタ
	mux.HandleFunc("GET /api/panels", masterDataHandler.ListPanels)
	mux.HandleFunc("POST /api/panels", masterDataHandler.CreatePanel)
	mux.HandleFunc("PUT /api/panels/{id}", masterDataHandler.UpdatePanel)
	mux.HandleFunc("DELETE /api/panels/{id}", masterDataHandler.DeletePanel)
	mux.HandleFunc("GET /api/shipping-rates", masterDataHandler.ListShippingRates)
	mux.HandleFunc("PUT /api/shipping-rates", masterDataHandler.SaveShippingRate)
	mux.HandleFunc("DELETE /api/shipping-rates", masterDataHandler.DeleteShippingRate)
	mux.HandleFunc("GET /api/parameters", masterDataHandler.GetParameters)
	mux.HandleFunc("PUT /api/parameters", masterDataHandler.SaveParameters)

	// 見積書 (RAB)
	mux.HandleFunc("GET /api/documents", documentHandler.List)
	mux.HandleFunc("POST /api/documents", documentHandler.Create)
	mux.HandleFunc("GET /api/documents/{id}", documentHandler.Get)
	mux.HandleFunc("PUT /api/documents/{id}", documentHandler.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", documentHandler.Delete)
	mux.HandleFunc("PATCH /api/documents/{id}/status", documentHandler.PatchStatus)
	mux.HandleFunc("GET /api/documents/{id}/export.xlsx", documentHandler.Export)

	// 監査用（削除済みを含む）
	mux.HandleFunc("GET /api/admin/documents/{id}", documentHandler.AuditGet)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening",
			"addr", server.Addr,
			"joint_formula", cfg.Estimate.Joints,
			"shipping_mode", cfg.Estimate.Shipping,
			"timezone", cfg.Location.String(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/traderisk/trade-risk-backend/internal/api/handlers"
	custommiddleware "github.com/traderisk/trade-risk-backend/internal/api/middleware"
	"github.com/traderisk/trade-risk-backend/internal/config"
	"github.com/traderisk/trade-risk-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	analysisService *service.AnalysisService,
	athService *service.ATHService,
	importService *service.ImportService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/analysis", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(analysisService, athService)
			r.Get("/exposure", analysisHandler.Exposure)
			r.Get("/premiums", analysisHandler.Premiums)
			r.Get("/ath", analysisHandler.ATH)
		})

		r.Route("/trades", func(r chi.Router) {
			tradesHandler := handlers.NewTradesHandler(analysisService)
			r.Get("/", tradesHandler.Positions)
			r.Get("/history", tradesHandler.History)
		})

		r.Route("/ath", func(r chi.Router) {
			athHandler := handlers.NewATHHandler(athService)
			r.Get("/", athHandler.List)
			r.With(custommiddleware.APIKeyMiddleware).Post("/", athHandler.Submit)
		})

		r.Route("/import", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			importHandler := handlers.NewImportHandler(importService)
			r.Post("/positions", importHandler.Positions)
			r.Post("/history", importHandler.History)
		})
	})

	return r
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/traderisk/trade-risk-backend/internal/analysis"
	"github.com/traderisk/trade-risk-backend/internal/api"
	"github.com/traderisk/trade-risk-backend/internal/config"
	"github.com/traderisk/trade-risk-backend/internal/database"
	"github.com/traderisk/trade-risk-backend/internal/jobs"
	"github.com/traderisk/trade-risk-backend/internal/marketdata"
	"github.com/traderisk/trade-risk-backend/internal/repository"
	"github.com/traderisk/trade-risk-backend/internal/service"
	"github.com/traderisk/trade-risk-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	tradeRepo := repository.NewTradeRepository(db)
	historyRepo := repository.NewTradeHistoryRepository(db)
	athRepo := repository.NewATHRepository(db)

	// Market data pipeline
	prices := marketdata.NewService(yahoo.NewFinanceClient(), cfg.Prices.CurrentTTL, cfg.Prices.HistoricalTTL)
	calc := analysis.NewCalculator(prices)

	// Create services
	systemService := service.NewSystemService(db)
	analysisService := service.NewAnalysisService(tradeRepo, historyRepo, calc)
	athService := service.NewATHService(athRepo, tradeRepo, calc)
	importService := service.NewImportService(tradeRepo, historyRepo)

	// Scheduled price warm-up
	scheduler, err := jobs.NewScheduler(cfg.Scheduler.PriceWarmupSchedule, tradeRepo, prices)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, analysisService, athService, importService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cardscout/card-arbitrage/internal/analysis"
	"github.com/cardscout/card-arbitrage/internal/api"
	"github.com/cardscout/card-arbitrage/internal/database"
	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/services"
)

// defaultSearchTerms targets early Yu-Gi-Oh printings and promos, the
// segment where undervalued Japanese listings show up most often.
var defaultSearchTerms = []string{
	"遊戯王 アジア",
	"遊戯王 初期",
	"遊戯王 英語",
	"遊戯王 東映",
	"遊戯王 バンダイ",
	"ブラック・マジシャン",
	"青眼の白龍",
}

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./card_arbitrage.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize the analysis pipeline with the default keyword tables
	analyzer := analysis.NewAnalyzer(lexicon.Default())

	// Initialize services
	buyeeService := services.NewBuyeeService()
	aiService := services.NewAIAnalyzerService()
	imageService := services.NewImageAnalyzerService()
	leadService := services.NewLeadService(database.GetDB())

	searchTerms := defaultSearchTerms
	if raw := os.Getenv("SEARCH_TERMS"); raw != "" {
		searchTerms = nil
		for _, term := range strings.Split(raw, ",") {
			if term = strings.TrimSpace(term); term != "" {
				searchTerms = append(searchTerms, term)
			}
		}
	}
	scanWorker := services.NewScanWorker(buyeeService, analyzer, aiService, imageService, leadService, searchTerms)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start scan worker in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in scan worker: %v - restarting in 30 seconds", r)
					}
				}()
				scanWorker.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Scan worker restarting after panic recovery...")
			}
		}
	}()

	// Setup router
	router := api.SetupRouter(analyzer, buyeeService, scanWorker, leadService)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the scan worker
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Orient Insight itinerary & pricing engine.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load env config, parse command-line flags (flags win)
  2. Initialize SQLite store
  3. Build classifier/tier rule tables (JSON file or defaults)
  4. Wire engine, resolver, handlers, router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port
  -db      SQLite database path (":memory:" for in-memory)
  -rules   Optional JSON rules document (classifier + tiers)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  in-flight requests, close the database, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/api"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/config"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/factory"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	rulesPath := flag.String("rules", cfg.RulesPath, "JSON rules document (classifier + tiers)")
	flag.Parse()

	// Logger
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Rule tables: JSON document if configured, defaults otherwise.
	classifier := factory.DefaultClassifier(cfg.HomeBase)
	tiers := pricing.DefaultTiers()
	if *rulesPath != "" {
		data, err := os.ReadFile(*rulesPath)
		if err != nil {
			logger.Error("failed to read rules document", "path", *rulesPath, "error", err)
			os.Exit(1)
		}
		classifier, tiers, err = factory.NewRuleFactory().Parse(data)
		if err != nil {
			logger.Error("failed to parse rules document", "path", *rulesPath, "error", err)
			os.Exit(1)
		}
	}

	// Engine and resolver
	engine := itinerary.NewEngine(store, store, store, store, classifier, logger)
	resolver := pricing.NewResolver(store, logger)
	resolver.Tiers = tiers

	handler := api.NewHandler(engine, resolver, store, store, store)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

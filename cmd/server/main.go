// Package main - entry point for the construction-cost API server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"construction-cost/api"
	"construction-cost/core/output"
	"construction-cost/core/pricing"
	"construction-cost/internal/config"
	"construction-cost/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "", "config file path")
	addr := flag.String("addr", "", "server address (overrides config)")
	flag.Parse()

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	address := cfg.Server.Address
	if *addr != "" {
		address = *addr
	}

	formatter, err := output.NewFormatter(cfg.Display)
	if err != nil {
		logging.Fatal("invalid display configuration", zap.Error(err))
	}

	tag, err := language.Parse(cfg.Display.Locale)
	if err != nil {
		tag = language.English
	}

	serverCfg := api.DefaultConfig()
	serverCfg.Address = address
	server := api.NewServer(serverCfg, formatter, tag)

	// One load per process. A failure keeps the server up in the
	// degraded state rather than exiting.
	loadCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Pricing.TimeoutSeconds)*time.Second)
	server.LoadPricing(loadCtx, pricingSource(cfg))
	cancel()

	go func() {
		logging.Info("server listening", zap.String("address", address))
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("shutdown failed", zap.Error(err))
	}
}

func pricingSource(cfg *config.Config) pricing.Source {
	if cfg.Pricing.SourcePath != "" {
		return &pricing.FileSource{Path: cfg.Pricing.SourcePath}
	}
	return pricing.NewHTTPSource(cfg.Pricing.SourceURL,
		time.Duration(cfg.Pricing.TimeoutSeconds)*time.Second)
}

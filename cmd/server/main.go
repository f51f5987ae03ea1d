package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Normalno100/InsuranceApplication-sub001/api"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/bootstrap"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/config"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("TRAVEL_QUOTE_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	data, err := bootstrap.Provider(cfg)
	if err != nil {
		logging.Sugar.Fatalw("reference data unavailable", "error", err)
	}
	pipeline, err := bootstrap.Pipeline(cfg, data)
	if err != nil {
		logging.Sugar.Fatalw("pipeline assembly failed", "error", err)
	}

	server := api.NewServer(pipeline, data, time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second)

	errCh := make(chan error, 1)
	go func() {
		logging.Sugar.Infow("listening", "address", cfg.Server.Address)
		errCh <- server.Listen(cfg.Server.Address)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logging.Sugar.Fatalw("server failed", "error", err)
		}
	case sig := <-stop:
		logging.Sugar.Infow("shutting down", "signal", sig.String())
		if err := server.Shutdown(); err != nil {
			logging.Sugar.Errorw("shutdown failed", "error", err)
		}
	}
}

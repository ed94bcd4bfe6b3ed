package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bahjat/adzip-report/internal/adscan"
	"github.com/Bahjat/adzip-report/internal/platform/config"
	"github.com/Bahjat/adzip-report/internal/platform/logger"
	"github.com/Bahjat/adzip-report/internal/platform/middleware"
	"github.com/Bahjat/adzip-report/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogJSON)

	client := adscan.NewHTTPClient(cfg.AnalyzerURL)
	engine := adscan.NewEngine(client)
	transport := upload.NewTransport(engine, upload.Settings{
		Title:          cfg.Title,
		RunBase:        cfg.RunBaseURL,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
		APIKey:         cfg.APIKey,
	}, log)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)
	handler := middleware.RequestID(middleware.Logging(log)(mux))

	// A scan holds the upload request open for however long the service
	// takes to run the creative, so the server sets no overall read or
	// write deadline. Header reads and idle keep-alives still time out.
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("the validator started",
			"port", cfg.Port,
			"analyzer_url", cfg.AnalyzerURL,
			"max_upload_mb", cfg.MaxUploadMB,
		)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}
}

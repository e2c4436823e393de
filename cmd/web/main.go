package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"crowdfund/internal/app"
	"crowdfund/internal/domain"
	"crowdfund/internal/logging"
	"crowdfund/internal/web"
)

const shutdownGrace = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "web:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadWebConfig()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	h, err := newHandler(cfg.Config, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info("web listening", zap.String("addr", cfg.Addr), zap.String("rpc", cfg.RPCURL))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(sctx)
}

// newHandler wires the read-only campaign service behind the access log.
func newHandler(cfg app.Config, log *zap.Logger) (http.Handler, error) {
	w, err := app.NewWire(cfg, log)
	if err != nil {
		return nil, err
	}
	a, err := app.New(w, nil, domain.Address{})
	if err != nil {
		return nil, err
	}
	return logging.AccessLog(log, web.NewHandler(a.Campaigns, log)), nil
}

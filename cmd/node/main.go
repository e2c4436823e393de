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
	"crowdfund/internal/ledger"
	"crowdfund/internal/logging"
	"crowdfund/internal/rpc"
)

const shutdownGrace = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "node:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadNodeConfig()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return err
	}
	dc, err := devConfig(cfg, log)
	if err != nil {
		return err
	}
	chain, err := ledger.NewDevChain(dc)
	if err != nil {
		return err
	}
	defer chain.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	accts, err := chain.Accounts(ctx)
	if err != nil {
		return err
	}
	for i, a := range accts {
		log.Info("account", zap.Int("index", i), zap.Stringer("address", a))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           logging.AccessLog(log, rpc.NewServer(chain, log)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info("node listening",
		zap.String("addr", cfg.Addr),
		zap.Uint64("chain_id", cfg.ChainID),
		zap.String("db", cfg.DB))

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

// devConfig converts the environment settings into ledger terms.
func devConfig(cfg app.NodeConfig, log *zap.Logger) (ledger.DevConfig, error) {
	dc := ledger.DefaultDevConfig(cfg.DB)
	dc.ChainID = cfg.ChainID
	dc.Accounts = cfg.Accounts
	dc.GasLimit = cfg.GasLimit
	dc.Logger = log
	if cfg.Mnemonic != "" {
		dc.Mnemonic = cfg.Mnemonic
	}
	balance, err := domain.ToWei(cfg.Balance, "ether")
	if err != nil {
		return ledger.DevConfig{}, fmt.Errorf("CROWDFUND_NODE_BALANCE: %w", err)
	}
	dc.Balance = balance
	price, err := domain.ParseWei(cfg.GasPrice)
	if err != nil {
		return ledger.DevConfig{}, fmt.Errorf("CROWDFUND_NODE_GAS_PRICE: %w", err)
	}
	dc.GasPrice = price
	return dc, nil
}

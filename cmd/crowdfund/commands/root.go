package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crowdfund/internal/app"
	"crowdfund/internal/domain"
	"crowdfund/internal/logging"
)

var (
	home       string
	passphrase string
	rpcURL     string
	fromFlag   string
	unit       string

	wire   *app.Wire
	appCtx *app.App
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with fresh flag state.
func NewRootCmd() *cobra.Command {
	home, passphrase, rpcURL, fromFlag, unit = "", "", "", "", ""
	wire, appCtx = nil, nil

	root := &cobra.Command{
		Use:           "crowdfund",
		Short:         "Crowdfunding campaigns on an Ethereum-style chain",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if rpcURL != "" {
				cfg.RPCURL = rpcURL
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}
			log, err := logging.NewConsole(cfg.LogLevel)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg, log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if wire != nil {
				_ = wire.Log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default $CROWDFUND_HOME or ~/.crowdfund)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the wallet")
	root.PersistentFlags().StringVar(&rpcURL, "rpc", "", "node URL (default $CROWDFUND_RPC_URL)")
	root.PersistentFlags().StringVar(&fromFlag, "from", "", "sending account (default: first account)")

	root.AddCommand(
		walletCmd(),
		deployCmd(),
		campaignsCmd(),
		createCampaignCmd(),
		contributeCmd(),
		createRequestCmd(),
		approveCmd(),
		finalizeCmd(),
		requestCmd(),
		summaryCmd(),
		balanceCmd(),
	)
	return root
}

// session unlocks the signer and binds the services once per invocation.
func session() (*app.App, error) {
	if appCtx != nil {
		return appCtx, nil
	}
	signer, err := wire.Signer(passphrase)
	if err != nil {
		return nil, err
	}
	var from domain.Address
	if fromFlag != "" {
		if from, err = domain.ParseAddress(fromFlag); err != nil {
			return nil, fmt.Errorf("--from: %w", err)
		}
	}
	appCtx, err = app.New(wire, signer, from)
	if err != nil {
		return nil, err
	}
	wire.Log.Debug("session ready",
		zap.String("rpc", wire.Config.RPCURL),
		zap.Bool("local_signer", signer != nil))
	return appCtx, nil
}

func parseAddress(s string) (domain.Address, error) {
	addr, err := domain.ParseAddress(s)
	if err != nil {
		return domain.Address{}, fmt.Errorf("address %q: %w", s, err)
	}
	return addr, nil
}

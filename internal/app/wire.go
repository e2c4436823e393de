package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"crowdfund/internal/domain"
	"crowdfund/internal/rpc"
	walletsvc "crowdfund/internal/services/wallet"
	"crowdfund/internal/store"
)

// Wire bundles the stores, services and chain client shared by commands.
type Wire struct {
	Config      Config
	Log         *zap.Logger
	Chain       domain.Chain
	Wallets     domain.WalletStore
	Deployments domain.DeploymentStore
	Wallet      *walletsvc.Service
	HTTP        *http.Client
}

// NewWire constructs the dependency graph from cfg. log may be nil.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured; set CROWDFUND_RPC_URL")
	}
	if log == nil {
		log = zap.NewNop()
	}

	// File-based stores
	wallets := store.NewWalletFileStore(cfg.Home)
	deployments := store.NewDeploymentFileStore(cfg.Home)

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Wire{
		Config:      cfg,
		Log:         log,
		Chain:       rpc.NewClient(cfg.RPCURL, httpClient),
		Wallets:     wallets,
		Deployments: deployments,
		Wallet:      walletsvc.New(wallets),
		HTTP:        httpClient,
	}, nil
}

// Signer picks the signing keys: CROWDFUND_MNEMONIC first, then the
// keystore unlocked with passphrase. It returns nil when neither exists, in
// which case transactions are signed by the node's own accounts.
func (w *Wire) Signer(passphrase string) (domain.Signer, error) {
	if w.Config.Mnemonic != "" {
		s, err := walletsvc.SignerFromMnemonic(w.Config.Mnemonic, w.Config.Accounts)
		if err != nil {
			return nil, fmt.Errorf("CROWDFUND_MNEMONIC: %w", err)
		}
		return s, nil
	}
	ok, err := w.Wallets.HasWallet()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if passphrase == "" {
		return nil, fmt.Errorf("a wallet exists in %s; a passphrase is required to unlock it", w.Config.Home)
	}
	return w.Wallet.Signer(passphrase, w.Config.Accounts)
}

// FactoryAddress returns CROWDFUND_FACTORY_ADDRESS, or the factory recorded
// for the configured RPC URL. The zero address means none is known.
func (w *Wire) FactoryAddress() (domain.Address, error) {
	if w.Config.Factory != "" {
		addr, err := domain.ParseAddress(w.Config.Factory)
		if err != nil {
			return domain.Address{}, fmt.Errorf("CROWDFUND_FACTORY_ADDRESS: %w", err)
		}
		return addr, nil
	}
	d, ok, err := w.Deployments.LoadDeployment(w.Config.RPCURL)
	if err != nil || !ok {
		return domain.Address{}, err
	}
	return d.Factory, nil
}

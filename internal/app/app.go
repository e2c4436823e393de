package app

import (
	"crowdfund/internal/domain"
	"crowdfund/internal/provider"
	campaignsvc "crowdfund/internal/services/campaign"
	deploysvc "crowdfund/internal/services/deploy"
)

// App is the set of services bound to one signer.
type App struct {
	Provider  *provider.Provider
	Campaigns *campaignsvc.Service
	Deployer  *deploysvc.Service
}

// New binds w to signer (nil means node-held accounts). Transactions are
// sent from from; the zero address means the first available account.
func New(w *Wire, signer domain.Signer, from domain.Address) (*App, error) {
	p := provider.New(w.Chain, signer, provider.Options{
		Timeout: w.Config.RPCTimeout,
		Gas:     w.Config.Gas,
	})
	factory, err := w.FactoryAddress()
	if err != nil {
		return nil, err
	}
	return &App{
		Provider:  p,
		Campaigns: campaignsvc.New(p, factory, from, w.Config.Gas),
		Deployer:  deploysvc.New(p, w.Deployments, w.Config.RPCURL, w.Log),
	}, nil
}

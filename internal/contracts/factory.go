package contracts

import (
	"context"
	"math/big"

	"crowdfund/internal/domain"
)

// Factory is a typed binding to a CampaignFactory.
type Factory struct {
	*BoundContract
}

// NewFactory binds an already deployed factory.
func NewFactory(address domain.Address, backend Backend) *Factory {
	return &Factory{Bind(address, FactoryArtifact(), backend)}
}

// DeployFactory publishes a new CampaignFactory from opts.From.
func DeployFactory(ctx context.Context, backend Backend, opts TransactOpts) (*Factory, domain.Receipt, error) {
	c, rcpt, err := Deploy(ctx, backend, opts, FactoryArtifact())
	if err != nil {
		return nil, rcpt, err
	}
	return &Factory{c}, rcpt, nil
}

// CreateCampaign creates a campaign owned by opts.From.
func (f *Factory) CreateCampaign(ctx context.Context, opts TransactOpts, minimum *big.Int) (domain.Receipt, error) {
	return f.Transact(ctx, opts, "createCampaign", minimum)
}

// GetDeployedCampaigns lists campaign addresses in creation order.
func (f *Factory) GetDeployedCampaigns(ctx context.Context) ([]domain.Address, error) {
	var out []domain.Address
	if err := f.Call(ctx, CallOpts{}, &out, "getDeployedCampaigns"); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Address{}
	}
	return out, nil
}

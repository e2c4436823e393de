package deploy

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
	"crowdfund/internal/provider"
)

// DefaultGas is the gas limit of the factory creation transaction.
const DefaultGas = 3000000

// Service deploys factories through a provider.
type Service struct {
	p           *provider.Provider
	deployments domain.DeploymentStore
	rpcURL      string
	log         *zap.Logger
	now         func() time.Time
}

// New returns a deploy service. Deployments are recorded under rpcURL.
func New(p *provider.Provider, deployments domain.DeploymentStore, rpcURL string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{p: p, deployments: deployments, rpcURL: rpcURL, log: log, now: time.Now}
}

// DeployFactory sends one creation transaction from the first account. It
// does not retry.
func (s *Service) DeployFactory(ctx context.Context) (domain.Deployment, error) {
	from, err := s.p.DefaultAccount(ctx)
	if err != nil {
		return domain.Deployment{}, err
	}
	s.log.Info("Trying to deploy from account: "+from.Hex(), zap.String("account", from.Hex()))

	f, rcpt, err := contracts.DeployFactory(ctx, s.p, contracts.TransactOpts{From: from, Gas: DefaultGas})
	if err != nil {
		return domain.Deployment{}, err
	}
	s.log.Info("Contract deployed to: "+f.Address().Hex(),
		zap.String("address", f.Address().Hex()),
		zap.String("tx", rcpt.TransactionHash.Hex()))

	chainID, err := s.p.Chain().ChainID(ctx)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("chain id: %w", err)
	}
	d := domain.Deployment{
		RPCURL:     s.rpcURL,
		ChainID:    chainID,
		Factory:    f.Address(),
		DeployedBy: from,
		TxHash:     rcpt.TransactionHash,
		DeployedAt: s.now().UTC().Unix(),
	}
	if s.deployments != nil {
		if err := s.deployments.SaveDeployment(d); err != nil {
			return d, fmt.Errorf("record deployment: %w", err)
		}
	}
	return d, nil
}

var _ domain.DeployService = (*Service)(nil)

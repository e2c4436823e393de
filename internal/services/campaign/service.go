package campaign

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
	"crowdfund/internal/provider"
)

// ErrNoFactory is returned when no factory address is configured.
var ErrNoFactory = errors.New("no CampaignFactory address configured; run deploy or set CROWDFUND_FACTORY_ADDRESS")

// Service drives a factory and its campaigns as one sender.
type Service struct {
	p       *provider.Provider
	factory *contracts.Factory
	from    domain.Address
	gas     uint64
}

// New binds the factory at address. Transactions are sent from from; the
// zero address means the provider's first account.
func New(p *provider.Provider, factory, from domain.Address, gas uint64) *Service {
	s := &Service{p: p, from: from, gas: gas}
	if !factory.IsZero() {
		s.factory = contracts.NewFactory(factory, p)
	}
	return s
}

// Home lists every deployed campaign in creation order. The list is never
// nil.
func (s *Service) Home(ctx context.Context) (domain.HomeProps, error) {
	if s.factory == nil {
		return domain.HomeProps{}, ErrNoFactory
	}
	list, err := s.factory.GetDeployedCampaigns(ctx)
	if err != nil {
		return domain.HomeProps{}, fmt.Errorf("list campaigns: %w", err)
	}
	return domain.HomeProps{Campaigns: list}, nil
}

// CreateCampaign creates a campaign owned by the sender and returns its
// address.
func (s *Service) CreateCampaign(ctx context.Context, minimum *big.Int) (domain.Address, error) {
	if s.factory == nil {
		return domain.Address{}, ErrNoFactory
	}
	opts, err := s.opts(ctx, nil)
	if err != nil {
		return domain.Address{}, err
	}
	if _, err := s.factory.CreateCampaign(ctx, opts, minimum); err != nil {
		return domain.Address{}, err
	}
	list, err := s.factory.GetDeployedCampaigns(ctx)
	if err != nil {
		return domain.Address{}, fmt.Errorf("list campaigns: %w", err)
	}
	if len(list) == 0 {
		return domain.Address{}, errors.New("factory reports no campaigns after creation")
	}
	return list[len(list)-1], nil
}

func (s *Service) Summary(ctx context.Context, campaign domain.Address) (domain.CampaignSummary, error) {
	return contracts.NewCampaign(campaign, s.p).GetSummary(ctx)
}

func (s *Service) Contribute(ctx context.Context, campaign domain.Address, value *big.Int) (domain.Receipt, error) {
	opts, err := s.opts(ctx, value)
	if err != nil {
		return domain.Receipt{}, err
	}
	return contracts.NewCampaign(campaign, s.p).Contribute(ctx, opts)
}

func (s *Service) CreateRequest(ctx context.Context, campaign domain.Address, description string, value *big.Int, recipient domain.Address) (domain.Receipt, error) {
	opts, err := s.opts(ctx, nil)
	if err != nil {
		return domain.Receipt{}, err
	}
	return contracts.NewCampaign(campaign, s.p).CreateRequest(ctx, opts, description, value, recipient)
}

func (s *Service) ApproveRequest(ctx context.Context, campaign domain.Address, index uint64) (domain.Receipt, error) {
	opts, err := s.opts(ctx, nil)
	if err != nil {
		return domain.Receipt{}, err
	}
	return contracts.NewCampaign(campaign, s.p).ApproveRequest(ctx, opts, index)
}

func (s *Service) FinalizeRequest(ctx context.Context, campaign domain.Address, index uint64) (domain.Receipt, error) {
	opts, err := s.opts(ctx, nil)
	if err != nil {
		return domain.Receipt{}, err
	}
	return contracts.NewCampaign(campaign, s.p).FinalizeRequest(ctx, opts, index)
}

func (s *Service) Request(ctx context.Context, campaign domain.Address, index uint64) (domain.Request, error) {
	return contracts.NewCampaign(campaign, s.p).Requests(ctx, index)
}

func (s *Service) opts(ctx context.Context, value *big.Int) (contracts.TransactOpts, error) {
	from := s.from
	if from.IsZero() {
		var err error
		if from, err = s.p.DefaultAccount(ctx); err != nil {
			return contracts.TransactOpts{}, err
		}
	}
	return contracts.TransactOpts{From: from, Value: value, Gas: s.gas}, nil
}

var _ domain.CampaignService = (*Service)(nil)

package campaign_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
	"crowdfund/internal/provider"
	"crowdfund/internal/services/campaign"
)

type env struct {
	p        *provider.Provider
	accounts []domain.Address
	factory  domain.Address
}

func setup(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	chain, err := ledger.NewDevChain(ledger.DefaultDevConfig(filepath.Join(t.TempDir(), "chain.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = chain.Close() })

	p := provider.New(chain, nil, provider.Options{})
	accounts, err := p.Accounts(ctx)
	require.NoError(t, err)
	f, _, err := contracts.DeployFactory(ctx, p, contracts.TransactOpts{From: accounts[0]})
	require.NoError(t, err)
	return env{p: p, accounts: accounts, factory: f.Address()}
}

func TestHomeWithoutFactory(t *testing.T) {
	e := setup(t)
	svc := campaign.New(e.p, domain.Address{}, domain.Address{}, 0)
	_, err := svc.Home(context.Background())
	require.ErrorIs(t, err, campaign.ErrNoFactory)
}

func TestHomeEmptyListIsNotNil(t *testing.T) {
	e := setup(t)
	props, err := campaign.New(e.p, e.factory, domain.Address{}, 0).Home(context.Background())
	require.NoError(t, err)
	require.NotNil(t, props.Campaigns)
	require.Empty(t, props.Campaigns)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	owner := campaign.New(e.p, e.factory, domain.Address{}, 0)
	backer := campaign.New(e.p, e.factory, e.accounts[1], 0)

	addr, err := owner.CreateCampaign(ctx, big.NewInt(100))
	require.NoError(t, err)
	props, err := owner.Home(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Address{addr}, props.Campaigns)

	_, err = backer.Contribute(ctx, addr, big.NewInt(100))
	require.EqualError(t, err, "VM Exception while processing transaction: revert "+ledger.ReasonMinimumContribution)
	_, err = backer.Contribute(ctx, addr, big.NewInt(1000))
	require.NoError(t, err)

	_, err = backer.CreateRequest(ctx, addr, "Buy ETH", big.NewInt(400), e.accounts[5])
	require.ErrorIs(t, err, domain.ErrRevert)
	_, err = owner.CreateRequest(ctx, addr, "Buy ETH", big.NewInt(400), e.accounts[5])
	require.NoError(t, err)

	_, err = backer.ApproveRequest(ctx, addr, 0)
	require.NoError(t, err)
	_, err = owner.FinalizeRequest(ctx, addr, 0)
	require.NoError(t, err)

	req, err := owner.Request(ctx, addr, 0)
	require.NoError(t, err)
	require.True(t, req.Complete)

	sum, err := owner.Summary(ctx, addr)
	require.NoError(t, err)
	require.Equal(t, "600", sum.Balance.String())
	require.EqualValues(t, 1, sum.RequestsCount)
	require.Equal(t, e.accounts[0], sum.Owner)
}

package ledger_test

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
	"crowdfund/internal/provider"
)

const minimumContribution = 100 // wei

type fixture struct {
	chain    *ledger.DevChain
	p        *provider.Provider
	accounts []domain.Address
	factory  *contracts.Factory
	campaign *contracts.Campaign
}

func openChain(t *testing.T, path string) *ledger.DevChain {
	t.Helper()
	chain, err := ledger.NewDevChain(ledger.DefaultDevConfig(path))
	require.NoError(t, err)
	return chain
}

// setup deploys a factory and one campaign from accounts[0], as the
// beforeEach of the contract suite does.
func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	chain := openChain(t, filepath.Join(t.TempDir(), "chain.db"))
	t.Cleanup(func() { _ = chain.Close() })

	p := provider.New(chain, nil, provider.Options{Gas: 3000000})
	accounts, err := p.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 10)

	factory, _, err := contracts.DeployFactory(ctx, p, contracts.TransactOpts{From: accounts[0]})
	require.NoError(t, err)

	_, err = factory.CreateCampaign(ctx, contracts.TransactOpts{From: accounts[0]}, big.NewInt(minimumContribution))
	require.NoError(t, err)

	addrs, err := factory.GetDeployedCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, addrs, 1)

	return &fixture{
		chain:    chain,
		p:        p,
		accounts: accounts,
		factory:  factory,
		campaign: contracts.NewCampaign(addrs[0], p),
	}
}

func ether(t *testing.T, amount string) *big.Int {
	t.Helper()
	v, err := domain.ToWei(amount, "ether")
	require.NoError(t, err)
	return v
}

func TestDeploysFactoryAndCampaign(t *testing.T) {
	f := setup(t)
	require.False(t, f.factory.Address().IsZero())
	require.False(t, f.campaign.Address().IsZero())
	require.NotEqual(t, f.factory.Address(), f.campaign.Address())
}

func TestMarksCallerAsOwner(t *testing.T) {
	f := setup(t)
	owner, err := f.campaign.GetOwner(context.Background())
	require.NoError(t, err)
	require.Equal(t, f.accounts[0], owner)
	require.Equal(t, f.accounts[0].Hex(), owner.Hex())
}

func TestContributeMarksContributor(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[1], Value: big.NewInt(200)})
	require.NoError(t, err)

	ok, err := f.campaign.IsContributor(ctx, f.accounts[1])
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRequiresMinimumContribution(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	before, err := f.chain.Account(f.accounts[1])
	require.NoError(t, err)
	block, err := f.chain.Ledger.BlockNumber()
	require.NoError(t, err)

	_, err = f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[1], Value: big.NewInt(minimumContribution)})
	require.EqualError(t, err,
		"VM Exception while processing transaction: revert Please make sure to send at least the minimum contribution.")

	ok, err := f.campaign.IsContributor(ctx, f.accounts[1])
	require.NoError(t, err)
	require.False(t, ok)

	after, err := f.chain.Account(f.accounts[1])
	require.NoError(t, err)
	require.Equal(t, before.Nonce, after.Nonce)
	require.Zero(t, before.Balance.Cmp(after.Balance))

	blockAfter, err := f.chain.Ledger.BlockNumber()
	require.NoError(t, err)
	require.Equal(t, block, blockAfter)
}

func TestRepeatContributionsCountOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[2], Value: big.NewInt(500)})
		require.NoError(t, err)
	}
	n, err := f.campaign.ContributorsCount(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	summary, err := f.campaign.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, "1500", summary.Balance.String())
	require.EqualValues(t, 1, summary.ContributorsCount)
	require.Equal(t, f.accounts[0], summary.Owner)
	require.Equal(t, "100", summary.MinimumContribution.String())
}

func TestRequiresOwnerToCreateRequest(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, "Buy ETH", big.NewInt(2000), f.accounts[4])
	require.EqualError(t, err, "VM Exception while processing transaction: revert")

	n, err := f.campaign.GetRequestsCount(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestOwnerCreatesPaymentRequest(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, "Buy ETH", big.NewInt(2000), f.accounts[4])
	require.NoError(t, err)

	req, err := f.campaign.Requests(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "Buy ETH", req.Description)
	require.Equal(t, "2000", req.Value.String())
	require.Equal(t, f.accounts[4], req.Recipient)
	require.False(t, req.Complete)
	require.Zero(t, req.ApprovalCount)
}

func TestProcessFullRequest(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	recipient := f.accounts[8]
	amount := ether(t, "10")

	initial, err := f.p.Balance(ctx, recipient)
	require.NoError(t, err)

	_, err = f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[1], Value: amount})
	require.NoError(t, err)
	_, err = f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, "Buy ETH", amount, recipient)
	require.NoError(t, err)
	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 0)
	require.NoError(t, err)
	_, err = f.campaign.FinalizeRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, 0)
	require.NoError(t, err)

	final, err := f.p.Balance(ctx, recipient)
	require.NoError(t, err)
	require.Zero(t, new(big.Int).Sub(final, initial).Cmp(amount))

	req, err := f.campaign.Requests(ctx, 0)
	require.NoError(t, err)
	require.True(t, req.Complete)
	require.EqualValues(t, 1, req.ApprovalCount)

	_, err = f.campaign.FinalizeRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, 0)
	require.ErrorIs(t, err, domain.Revert(ledger.ReasonAlreadyComplete))

	again, err := f.p.Balance(ctx, recipient)
	require.NoError(t, err)
	require.Zero(t, again.Cmp(final))
}

func TestCompletedRequestTakesNoApprovals(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[1], Value: big.NewInt(1000)})
	require.NoError(t, err)
	_, err = f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, "Buy ETH", big.NewInt(500), f.accounts[5])
	require.NoError(t, err)
	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 0)
	require.NoError(t, err)
	_, err = f.campaign.FinalizeRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, 0)
	require.NoError(t, err)

	_, err = f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[2], Value: big.NewInt(1000)})
	require.NoError(t, err)
	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[2]}, 0)
	require.ErrorIs(t, err, domain.Revert(ledger.ReasonAlreadyComplete))

	req, err := f.campaign.Requests(ctx, 0)
	require.NoError(t, err)
	require.True(t, req.Complete)
	require.EqualValues(t, 1, req.ApprovalCount)
}

func TestDoubleApprovalReverts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[1], Value: big.NewInt(1000)})
	require.NoError(t, err)
	_, err = f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, "Buy ETH", big.NewInt(500), f.accounts[5])
	require.NoError(t, err)
	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 0)
	require.NoError(t, err)

	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 0)
	require.EqualError(t, err, "VM Exception while processing transaction: revert "+ledger.ReasonAlreadyApproved)

	req, err := f.campaign.Requests(ctx, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, req.ApprovalCount)
}

func TestOnlyContributorsApprove(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, "Buy ETH", big.NewInt(500), f.accounts[5])
	require.NoError(t, err)

	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[3]}, 0)
	require.ErrorIs(t, err, domain.Revert(ledger.ReasonNotContributor))
}

func TestFinalizeRequiresMajority(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, a := range f.accounts[1:4] {
		_, err := f.campaign.Contribute(ctx, contracts.TransactOpts{From: a, Value: big.NewInt(1000)})
		require.NoError(t, err)
	}
	_, err := f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, "Buy ETH", big.NewInt(2500), f.accounts[9])
	require.NoError(t, err)

	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 0)
	require.NoError(t, err)
	_, err = f.campaign.FinalizeRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, 0)
	require.ErrorIs(t, err, domain.Revert(ledger.ReasonNoMajority))

	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[2]}, 0)
	require.NoError(t, err)
	_, err = f.campaign.FinalizeRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 0)
	require.EqualError(t, err, "VM Exception while processing transaction: revert")

	_, err = f.campaign.FinalizeRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, 0)
	require.NoError(t, err)

	summary, err := f.campaign.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, "500", summary.Balance.String())
}

func TestFinalizeNeedsBalance(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.Contribute(ctx, contracts.TransactOpts{From: f.accounts[1], Value: big.NewInt(1000)})
	require.NoError(t, err)
	_, err = f.campaign.CreateRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, "Too much", big.NewInt(5000), f.accounts[9])
	require.NoError(t, err)
	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 0)
	require.NoError(t, err)

	_, err = f.campaign.FinalizeRequest(ctx, contracts.TransactOpts{From: f.accounts[0]}, 0)
	require.ErrorIs(t, err, domain.Revert(ledger.ReasonLowBalance))

	req, err := f.campaign.Requests(ctx, 0)
	require.NoError(t, err)
	require.False(t, req.Complete)
}

func TestRequestsOutOfRange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.campaign.Requests(ctx, 0)
	require.ErrorIs(t, err, domain.ErrInvalidOpcode)
	require.EqualError(t, err, "VM Exception while processing transaction: invalid opcode")

	_, err = f.campaign.ApproveRequest(ctx, contracts.TransactOpts{From: f.accounts[1]}, 7)
	require.ErrorIs(t, err, domain.ErrInvalidOpcode)
}

func TestFactoryListIsAppendOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.factory.GetDeployedCampaigns(ctx)
	require.NoError(t, err)

	for i, owner := range f.accounts[1:4] {
		_, err := f.factory.CreateCampaign(ctx, contracts.TransactOpts{From: owner}, big.NewInt(int64(10*(i+1))))
		require.NoError(t, err)
	}
	all, err := f.factory.GetDeployedCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, first[0], all[0])

	for i, addr := range all[1:] {
		owner, err := contracts.NewCampaign(addr, f.p).GetOwner(ctx)
		require.NoError(t, err)
		require.Equal(t, f.accounts[i+1], owner)
	}
}

func TestMalformedArgumentsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.factory.Transact(ctx, contracts.TransactOpts{From: f.accounts[0]}, "createCampaign", "one hundred")
	var argErr *contracts.ArgumentError
	require.True(t, errors.As(err, &argErr))

	_, err = f.factory.Transact(ctx, contracts.TransactOpts{From: f.accounts[0]}, "createCampaign")
	require.ErrorIs(t, err, contracts.ErrInvalidArguments)

	// Bypass the binding: the ledger validates too.
	to := f.factory.Address()
	_, err = f.chain.SendTransaction(ctx, domain.CallMsg{
		From:  f.accounts[0],
		To:    &to,
		Input: domain.TxInput{Method: "createCampaign", Args: nil},
	})
	require.ErrorIs(t, err, contracts.ErrInvalidArguments)

	all, err := f.factory.GetDeployedCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestNonPayableRejectsValue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	to := f.campaign.Address()
	_, err := f.chain.SendTransaction(ctx, domain.CallMsg{
		From:  f.accounts[0],
		To:    &to,
		Value: big.NewInt(1),
		Input: domain.TxInput{Method: "getOwner"},
	})
	require.ErrorIs(t, err, domain.ErrRevert)
}

func TestOutOfGasRollsBack(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.factory.CreateCampaign(ctx, contracts.TransactOpts{From: f.accounts[0], Gas: 50000}, big.NewInt(1))
	require.ErrorIs(t, err, domain.ErrOutOfGas)

	all, err := f.factory.GetDeployedCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCallDoesNotPersist(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	to := f.campaign.Address()
	_, err := f.chain.Call(ctx, domain.CallMsg{
		From:  f.accounts[1],
		To:    &to,
		Value: big.NewInt(1000),
		Input: domain.TxInput{Method: "contribute"},
	})
	require.NoError(t, err)

	ok, err := f.campaign.IsContributor(ctx, f.accounts[1])
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUnknownAccountCannotSend(t *testing.T) {
	f := setup(t)
	stranger := domain.BytesToAddress([]byte{0xde, 0xad})
	_, err := f.factory.CreateCampaign(context.Background(), contracts.TransactOpts{From: stranger}, big.NewInt(1))
	require.ErrorIs(t, err, domain.ErrUnknownAccount)
}

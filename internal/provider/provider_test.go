package provider_test

import (
	"context"
	"encoding/json"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crowdfund/internal/contracts"
	"crowdfund/internal/crypto"
	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
	"crowdfund/internal/provider"
)

func devChain(t *testing.T) *ledger.DevChain {
	t.Helper()
	chain, err := ledger.NewDevChain(ledger.DefaultDevConfig(filepath.Join(t.TempDir(), "chain.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = chain.Close() })
	return chain
}

func TestAccountsComeFromSigner(t *testing.T) {
	ctx := context.Background()
	chain := devChain(t)

	p := provider.New(chain, nil, provider.Options{})
	accts, err := p.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accts, 10)

	keys, err := crypto.DeriveAccounts(ledger.DefaultMnemonic, 2)
	require.NoError(t, err)
	signer, err := provider.NewKeySigner(keys...)
	require.NoError(t, err)

	p = provider.New(chain, signer, provider.Options{})
	mine, err := p.Accounts(ctx)
	require.NoError(t, err)
	require.Equal(t, accts[:2], mine)

	first, err := p.DefaultAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, accts[0], first)
}

func TestLocalSigningTracksNonce(t *testing.T) {
	ctx := context.Background()
	chain := devChain(t)

	keys, err := crypto.DeriveAccounts(ledger.DefaultMnemonic, 1)
	require.NoError(t, err)
	signer, err := provider.NewKeySigner(keys...)
	require.NoError(t, err)
	p := provider.New(chain, signer, provider.Options{Gas: 3000000})
	from := signer.Accounts()[0]

	f, _, err := contracts.DeployFactory(ctx, p, contracts.TransactOpts{From: from})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := f.CreateCampaign(ctx, contracts.TransactOpts{From: from}, big.NewInt(int64(i)))
		require.NoError(t, err)
	}
	nonce, err := chain.Nonce(ctx, from)
	require.NoError(t, err)
	require.EqualValues(t, 4, nonce)

	list, err := f.GetDeployedCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
}

func TestLocalSignerPaysNodeGasPrice(t *testing.T) {
	ctx := context.Background()
	cfg := ledger.DefaultDevConfig(filepath.Join(t.TempDir(), "chain.db"))
	cfg.GasPrice = big.NewInt(1_000_000_000)
	chain, err := ledger.NewDevChain(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = chain.Close() })

	keys, err := crypto.DeriveAccounts(ledger.DefaultMnemonic, 2)
	require.NoError(t, err)
	signer, err := provider.NewKeySigner(keys[0])
	require.NoError(t, err)
	accts, err := chain.Accounts(ctx)
	require.NoError(t, err)

	spent := func(p *provider.Provider, from domain.Address) *big.Int {
		before, err := chain.Balance(ctx, from)
		require.NoError(t, err)
		_, _, err = contracts.DeployFactory(ctx, p, contracts.TransactOpts{From: from})
		require.NoError(t, err)
		after, err := chain.Balance(ctx, from)
		require.NoError(t, err)
		return new(big.Int).Sub(before, after)
	}

	local := spent(provider.New(chain, signer, provider.Options{Gas: 3000000}), accts[0])
	node := spent(provider.New(chain, nil, provider.Options{Gas: 3000000}), accts[1])
	require.Positive(t, local.Sign())
	require.Equal(t, node, local)
}

func TestWipedSignerRefuses(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer, err := provider.NewKeySigner(key)
	require.NoError(t, err)
	from := signer.Accounts()[0]

	signer.Wipe()
	_, err = signer.SignTransaction(from, domain.Transaction{})
	require.ErrorIs(t, err, domain.ErrUnknownAccount)
}

// stalled is a chain whose every call blocks until the context ends.
type stalled struct{ domain.Chain }

func (stalled) Call(ctx context.Context, _ domain.CallMsg) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalled) Balance(ctx context.Context, _ domain.Address) (*big.Int, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTimeoutBoundsRoundTrips(t *testing.T) {
	p := provider.New(stalled{}, nil, provider.Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := p.Call(context.Background(), domain.CallMsg{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 5*time.Second)

	_, err = p.Balance(context.Background(), domain.Address{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

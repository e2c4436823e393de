package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crowdfund/internal/app"
	"crowdfund/internal/contracts"
	"crowdfund/internal/ledger"
	"crowdfund/internal/provider"
	"crowdfund/internal/rpc"
	"crowdfund/internal/web"
)

func TestServesCampaignPages(t *testing.T) {
	home := t.TempDir()
	chain, err := ledger.NewDevChain(ledger.DefaultDevConfig(filepath.Join(home, "chain.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = chain.Close() })
	node := httptest.NewServer(rpc.NewServer(chain, nil))
	t.Cleanup(node.Close)

	ctx := context.Background()
	p := provider.New(chain, nil, provider.Options{Gas: 3000000})
	accts, err := p.Accounts(ctx)
	require.NoError(t, err)
	factory, _, err := contracts.DeployFactory(ctx, p, contracts.TransactOpts{From: accts[0]})
	require.NoError(t, err)

	cfg := app.Config{
		Home:    home,
		RPCURL:  node.URL,
		Factory: factory.Address().Hex(),
		Gas:     3000000,
	}
	h, err := newHandler(cfg, zap.NewNop())
	require.NoError(t, err)
	site := httptest.NewServer(h)
	t.Cleanup(site.Close)

	resp, err := http.Get(site.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), web.EmptyStateText)
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

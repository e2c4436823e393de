package app_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crowdfund/internal/app"
	"crowdfund/internal/domain"
	"crowdfund/internal/store"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CROWDFUND_HOME", home)

	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, home, cfg.Home)
	require.Equal(t, "http://127.0.0.1:8545", cfg.RPCURL)
	require.Equal(t, 30*time.Second, cfg.RPCTimeout)
	require.Equal(t, 10, cfg.Accounts)
	require.EqualValues(t, 3000000, cfg.Gas)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CROWDFUND_HOME", t.TempDir())
	t.Setenv("CROWDFUND_RPC_URL", "http://node:9000")
	t.Setenv("CROWDFUND_RPC_TIMEOUT", "2s")
	t.Setenv("CROWDFUND_ACCOUNTS", "3")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://node:9000", cfg.RPCURL)
	require.Equal(t, 2*time.Second, cfg.RPCTimeout)
	require.Equal(t, 3, cfg.Accounts)

	t.Setenv("CROWDFUND_ACCOUNTS", "many")
	_, err = app.LoadConfig()
	require.Error(t, err)
}

func TestLoadNodeAndWebConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CROWDFUND_HOME", home)
	t.Setenv("CROWDFUND_WEB_ADDR", ":4000")

	node, err := app.LoadNodeConfig()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "chain.db"), node.DB)
	require.EqualValues(t, 1337, node.ChainID)
	require.Equal(t, "127.0.0.1:8545", node.Addr)

	web, err := app.LoadWebConfig()
	require.NoError(t, err)
	require.Equal(t, ":4000", web.Addr)
	require.Equal(t, "http://127.0.0.1:8545", web.RPCURL)
}

func TestFactoryAddressResolution(t *testing.T) {
	home := t.TempDir()
	cfg := app.Config{Home: home, RPCURL: "http://127.0.0.1:8545"}
	w, err := app.NewWire(cfg, nil)
	require.NoError(t, err)

	addr, err := w.FactoryAddress()
	require.NoError(t, err)
	require.True(t, addr.IsZero())

	recorded := domain.BytesToAddress([]byte{0xbe, 0xef})
	require.NoError(t, store.NewDeploymentFileStore(home).SaveDeployment(domain.Deployment{
		RPCURL:  cfg.RPCURL,
		Factory: recorded,
	}))
	addr, err = w.FactoryAddress()
	require.NoError(t, err)
	require.Equal(t, recorded, addr)

	cfg.Factory = "0x000000000000000000000000000000000000dEaD"
	w, err = app.NewWire(cfg, nil)
	require.NoError(t, err)
	addr, err = w.FactoryAddress()
	require.NoError(t, err)
	require.Equal(t, cfg.Factory, addr.Hex())

	cfg.Factory = "0x12"
	w, err = app.NewWire(cfg, nil)
	require.NoError(t, err)
	_, err = w.FactoryAddress()
	require.Error(t, err)
}

func TestSignerPrecedence(t *testing.T) {
	cfg := app.Config{Home: t.TempDir(), RPCURL: "http://127.0.0.1:8545", Accounts: 2}
	w, err := app.NewWire(cfg, nil)
	require.NoError(t, err)

	s, err := w.Signer("")
	require.NoError(t, err)
	require.Nil(t, s)

	cfg.Mnemonic = "test test test test test test test test test test test junk"
	w, err = app.NewWire(cfg, nil)
	require.NoError(t, err)
	s, err = w.Signer("")
	require.NoError(t, err)
	require.Len(t, s.Accounts(), 2)
	require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", s.Accounts()[0].Hex())

	_, err = app.NewWire(app.Config{Home: t.TempDir()}, nil)
	require.Error(t, err)
}

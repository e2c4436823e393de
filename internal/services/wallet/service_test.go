package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"crowdfund/internal/domain"
	"crowdfund/internal/services/wallet"
	"crowdfund/internal/store"
)

const (
	pass     = "Correct-Horse-42"
	mnemonic = "test test test test test test test test test test test junk"
)

func newService(t *testing.T) (*wallet.Service, *store.WalletFileStore) {
	t.Helper()
	ws := store.NewWalletFileStore(t.TempDir()).WithKDF(store.KDFParams{N: 1 << 10, R: 8, P: 1})
	return wallet.New(ws), ws
}

func TestWeakPassphraseRejected(t *testing.T) {
	svc, ws := newService(t)
	for _, p := range []string{"short1!A", "alllowercase123!", "NoDigitsHere!!", "NoSymbols12345"} {
		_, err := svc.NewWallet(p)
		require.ErrorIs(t, err, wallet.ErrWeakPassphrase, p)
	}
	ok, err := ws.HasWallet()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestImportMnemonic(t *testing.T) {
	svc, _ := newService(t)

	addrs, err := svc.ImportMnemonic(pass, "  TEST test test test test test test test test test test junk \n")
	require.NoError(t, err)
	require.Len(t, addrs, wallet.DefaultAccounts)
	require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", addrs[0].Hex())

	signer, err := svc.Signer(pass, 2)
	require.NoError(t, err)
	require.Equal(t, addrs[:2], signer.Accounts())

	_, err = svc.Signer("Wrong-Horse-42", 2)
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestImportRejectsBadWordCount(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.ImportMnemonic(pass, "test test junk")
	require.ErrorIs(t, err, wallet.ErrBadMnemonic)
}

func TestNewWalletSigns(t *testing.T) {
	svc, _ := newService(t)
	addr, err := svc.NewWallet(pass)
	require.NoError(t, err)

	signer, err := svc.Signer(pass, 0)
	require.NoError(t, err)
	require.Equal(t, []domain.Address{addr}, signer.Accounts())

	stx, err := signer.SignTransaction(addr, domain.Transaction{ChainID: 1337})
	require.NoError(t, err)
	require.Len(t, stx.Signature, 65)
}

func TestSignerFromMnemonic(t *testing.T) {
	s, err := wallet.SignerFromMnemonic(mnemonic, 0)
	require.NoError(t, err)
	require.Len(t, s.Accounts(), wallet.DefaultAccounts)
}

package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crowdfund/internal/domain"
	"crowdfund/internal/store"
)

// cheap keeps scrypt fast in tests.
var cheap = store.KDFParams{N: 1 << 10, R: 8, P: 1}

func TestWallet_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var ws domain.WalletStore = store.NewWalletFileStore(home).WithKDF(cheap)

	ok, err := ws.HasWallet()
	if err != nil || ok {
		t.Fatalf("fresh home: has=%v err=%v", ok, err)
	}

	w := domain.Wallet{
		Mnemonic:   "test test test test test test test test test test test junk",
		CreatedUTC: 1700000000,
	}
	if err := ws.SaveWallet("pass", w); err != nil {
		t.Fatalf("save wallet: %v", err)
	}
	if ok, _ := ws.HasWallet(); !ok {
		t.Fatal("wallet not reported after save")
	}

	got, err := ws.LoadWallet("pass")
	if err != nil {
		t.Fatalf("load wallet: %v", err)
	}
	if got.Mnemonic != w.Mnemonic || got.CreatedUTC != w.CreatedUTC {
		t.Fatalf("mismatch after load: %+v", got)
	}
}

func TestWallet_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	ws := store.NewWalletFileStore(home).WithKDF(cheap)

	if err := ws.SaveWallet("correct", domain.Wallet{PrivateKey: domain.PrivateKey{7}}); err != nil {
		t.Fatalf("save wallet: %v", err)
	}
	if _, err := ws.LoadWallet("wrong"); err != store.ErrWrongPassphrase {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestWallet_FileIsSealed(t *testing.T) {
	home := t.TempDir()
	ws := store.NewWalletFileStore(home).WithKDF(cheap)
	const secret = "myth like bonus scare over problem client lizard pioneer submit female collect"

	if err := ws.SaveWallet("pass", domain.Wallet{Mnemonic: secret}); err != nil {
		t.Fatalf("save wallet: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, "wallet.json.enc"))
	if err != nil {
		t.Fatalf("read keystore: %v", err)
	}
	if len(b) == 0 || strings.Contains(string(b), "bonus") {
		t.Fatal("keystore leaks the mnemonic")
	}
	info, err := os.Stat(filepath.Join(home, "wallet.json.enc"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("keystore mode %v", info.Mode().Perm())
	}
}

func TestWallet_MissingFails(t *testing.T) {
	ws := store.NewWalletFileStore(filepath.Join(t.TempDir(), "nested"))
	if _, err := ws.LoadWallet("pass"); err == nil {
		t.Fatal("expected error for missing wallet")
	}
}

func TestDeployment_SaveLoad(t *testing.T) {
	home := filepath.Join(t.TempDir(), "new-dir")
	var ds domain.DeploymentStore = store.NewDeploymentFileStore(home)

	if _, ok, err := ds.LoadDeployment("http://127.0.0.1:8545"); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	a := domain.Deployment{RPCURL: "http://127.0.0.1:8545", ChainID: 1337, Factory: domain.Address{1}}
	b := domain.Deployment{RPCURL: "http://node:8545", ChainID: 1337, Factory: domain.Address{2}}
	for _, d := range []domain.Deployment{a, b} {
		if err := ds.SaveDeployment(d); err != nil {
			t.Fatalf("save deployment: %v", err)
		}
	}
	a.Factory = domain.Address{3}
	if err := ds.SaveDeployment(a); err != nil {
		t.Fatalf("replace deployment: %v", err)
	}

	got, ok, err := ds.LoadDeployment(a.RPCURL)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Factory != (domain.Address{3}) {
		t.Fatalf("factory = %s", got.Factory)
	}
	got, _, _ = ds.LoadDeployment(b.RPCURL)
	if got.Factory != (domain.Address{2}) {
		t.Fatalf("other endpoint clobbered: %s", got.Factory)
	}
}

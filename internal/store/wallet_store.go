package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"crowdfund/internal/crypto"
	"crowdfund/internal/domain"
)

const walletFilename = "wallet.json.enc"

// WalletFileStore keeps the wallet sealed under a passphrase.
type WalletFileStore struct {
	dir string
	kdf KDFParams
	mu  sync.Mutex
}

// NewWalletFileStore returns a WalletFileStore rooted at dir using
// DefaultKDF.
func NewWalletFileStore(dir string) *WalletFileStore {
	return &WalletFileStore{dir: dir, kdf: DefaultKDF}
}

// WithKDF overrides the scrypt cost for wallets saved from now on.
func (s *WalletFileStore) WithKDF(kdf KDFParams) *WalletFileStore {
	s.kdf = kdf
	return s
}

// SaveWallet seals w and replaces any existing keystore.
func (s *WalletFileStore) SaveWallet(passphrase string, w domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)
	ct, err := seal(passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(s.path(), ct, 0o600)
}

// LoadWallet opens the keystore.
func (s *WalletFileStore) LoadWallet(passphrase string) (domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path())
	if err != nil {
		return domain.Wallet{}, err
	}
	if b == nil {
		return domain.Wallet{}, fmt.Errorf("no wallet in %s", s.dir)
	}
	pt, err := open(passphrase, b)
	if err != nil {
		return domain.Wallet{}, err
	}
	defer crypto.Wipe(pt)
	var w domain.Wallet
	if err := json.Unmarshal(pt, &w); err != nil {
		return domain.Wallet{}, fmt.Errorf("decode wallet: %w", err)
	}
	return w, nil
}

// HasWallet reports whether a keystore exists.
func (s *WalletFileStore) HasWallet() (bool, error) {
	b, err := readFile(s.path())
	return b != nil, err
}

func (s *WalletFileStore) path() string { return filepath.Join(s.dir, walletFilename) }

var _ domain.WalletStore = (*WalletFileStore)(nil)

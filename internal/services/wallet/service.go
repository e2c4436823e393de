package wallet

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"crowdfund/internal/crypto"
	"crowdfund/internal/domain"
	"crowdfund/internal/provider"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	// DefaultAccounts is how many mnemonic accounts are unlocked when no
	// count is given.
	DefaultAccounts = 10
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	// ErrBadMnemonic is returned for a phrase whose word count BIP39 does not allow.
	ErrBadMnemonic = errors.New("mnemonic must have 12, 15, 18, 21 or 24 words")
)

// Service manages the local wallet using a backing store.
type Service struct {
	store domain.WalletStore
	now   func() time.Time
}

// New returns a wallet service backed by the given store.
func New(s domain.WalletStore) *Service { return &Service{store: s, now: time.Now} }

// NewWallet generates a random key, saves it encrypted with the passphrase
// and returns its address.
func (s *Service) NewWallet(passphrase string) (domain.Address, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.Address{}, ErrWeakPassphrase
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return domain.Address{}, err
	}
	addr, err := crypto.AddressOf(key)
	if err != nil {
		return domain.Address{}, err
	}
	w := domain.Wallet{PrivateKey: key, CreatedUTC: s.now().UTC().Unix()}
	if err := s.store.SaveWallet(passphrase, w); err != nil {
		return domain.Address{}, fmt.Errorf("save wallet: %w", err)
	}
	return addr, nil
}

// ImportMnemonic stores mnemonic encrypted with the passphrase and returns
// the first DefaultAccounts addresses it derives.
func (s *Service) ImportMnemonic(passphrase, mnemonic string) ([]domain.Address, error) {
	if !isSecurePassphrase(passphrase) {
		return nil, ErrWeakPassphrase
	}
	mnemonic, err := normalizeMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	signer, err := SignerFromMnemonic(mnemonic, DefaultAccounts)
	if err != nil {
		return nil, err
	}
	defer signer.Wipe()

	w := domain.Wallet{Mnemonic: mnemonic, CreatedUTC: s.now().UTC().Unix()}
	if err := s.store.SaveWallet(passphrase, w); err != nil {
		return nil, fmt.Errorf("save wallet: %w", err)
	}
	return signer.Accounts(), nil
}

// Signer decrypts the wallet and unlocks its keys. accounts only applies to
// mnemonic wallets; zero means DefaultAccounts.
func (s *Service) Signer(passphrase string, accounts int) (domain.Signer, error) {
	w, err := s.store.LoadWallet(passphrase)
	if err != nil {
		return nil, err
	}
	if w.HasMnemonic() {
		return SignerFromMnemonic(w.Mnemonic, accounts)
	}
	return provider.NewKeySigner(w.PrivateKey)
}

// SignerFromMnemonic unlocks the first n accounts of mnemonic without
// touching the keystore. n <= 0 means DefaultAccounts.
func SignerFromMnemonic(mnemonic string, n int) (*provider.KeySigner, error) {
	if n <= 0 {
		n = DefaultAccounts
	}
	keys, err := crypto.DeriveAccounts(mnemonic, n)
	if err != nil {
		return nil, err
	}
	defer crypto.WipeKeys(keys)
	return provider.NewKeySigner(keys...)
}

func normalizeMnemonic(m string) (string, error) {
	words := strings.Fields(strings.ToLower(m))
	switch len(words) {
	case 12, 15, 18, 21, 24:
		return strings.Join(words, " "), nil
	}
	return "", ErrBadMnemonic
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.WalletService.
var _ domain.WalletService = (*Service)(nil)

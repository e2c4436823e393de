package crypto

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"

	"crowdfund/internal/domain"
)

const (
	seedIterations = 2048
	seedBytes      = 64

	purpose  = 44
	coinType = 60 // Ethereum
)

// SeedFromMnemonic derives the 64-byte BIP39 seed. The word list is not
// validated; any phrase yields a seed, as with HD wallet providers.
func SeedFromMnemonic(mnemonic, passphrase string) []byte {
	words := strings.Join(strings.Fields(mnemonic), " ")
	pw := norm.NFKD.String(words)
	salt := norm.NFKD.String("mnemonic" + passphrase)
	return pbkdf2.Key([]byte(pw), []byte(salt), seedIterations, seedBytes, sha512.New)
}

// DeriveAccounts returns the first n keys on m/44'/60'/0'/0/i. Hardened
// steps serialize the parent key as 32 bytes, leading zeros included.
func DeriveAccounts(mnemonic string, n int) ([]domain.PrivateKey, error) {
	if strings.TrimSpace(mnemonic) == "" {
		return nil, fmt.Errorf("mnemonic is empty")
	}
	if n <= 0 {
		return nil, fmt.Errorf("account count must be positive, got %d", n)
	}
	seed := SeedFromMnemonic(mnemonic, "")
	defer Wipe(seed)

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}
	external, err := derivePath(master,
		hdkeychain.HardenedKeyStart+purpose,
		hdkeychain.HardenedKeyStart+coinType,
		hdkeychain.HardenedKeyStart+0,
		0,
	)
	if err != nil {
		return nil, err
	}

	keys := make([]domain.PrivateKey, 0, n)
	for i := 0; i < n; i++ {
		child, err := external.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("derive account %d: %w", i, err)
		}
		ec, err := child.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("derive account %d: %w", i, err)
		}
		var k domain.PrivateKey
		copy(k[:], ec.Serialize())
		keys = append(keys, k)
	}
	return keys, nil
}

func derivePath(k *hdkeychain.ExtendedKey, path ...uint32) (*hdkeychain.ExtendedKey, error) {
	var err error
	for _, idx := range path {
		if k, err = k.Derive(idx); err != nil {
			return nil, fmt.Errorf("derive path: %w", err)
		}
	}
	return k, nil
}

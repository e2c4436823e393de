package crypto

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"crowdfund/internal/domain"
)

// GenerateKey returns a fresh secp256k1 private key.
func GenerateKey() (domain.PrivateKey, error) {
	var out domain.PrivateKey
	k, err := btcec.NewPrivateKey()
	if err != nil {
		return out, err
	}
	copy(out[:], k.Serialize())
	return out, nil
}

// AddressOf derives the account address controlled by priv.
func AddressOf(priv domain.PrivateKey) (domain.Address, error) {
	if priv == (domain.PrivateKey{}) {
		return domain.Address{}, fmt.Errorf("empty private key")
	}
	_, pub := btcec.PrivKeyFromBytes(priv.Slice())
	return PubkeyToAddress(pub), nil
}

// PubkeyToAddress is the last 20 bytes of Keccak-256 over the uncompressed
// public key without its 0x04 prefix.
func PubkeyToAddress(pub *btcec.PublicKey) domain.Address {
	raw := pub.SerializeUncompressed()
	return domain.BytesToAddress(Keccak256(raw[1:]))
}

package crypto

import (
	"golang.org/x/crypto/sha3"

	"crowdfund/internal/domain"
)

// Keccak256 returns the legacy Keccak-256 digest of the concatenated inputs.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash is Keccak256 returned as a domain.Hash.
func Keccak256Hash(data ...[]byte) domain.Hash {
	return domain.BytesToHash(Keccak256(data...))
}

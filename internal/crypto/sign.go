package crypto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"crowdfund/internal/domain"
)

// SignatureLength is r || s || v.
const SignatureLength = 65

var errBadSignature = errors.New("invalid signature")

// Sign produces a recoverable signature over a 32-byte digest.
func Sign(priv domain.PrivateKey, digest domain.Hash) ([]byte, error) {
	k, _ := btcec.PrivKeyFromBytes(priv.Slice())
	compact, err := ecdsa.SignCompact(k, digest.Slice(), false)
	if err != nil {
		return nil, err
	}
	// btcec emits [27+v] || r || s; rotate to r || s || v.
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0] - 27
	return sig, nil
}

// RecoverAddress returns the address whose key produced sig over digest.
func RecoverAddress(digest domain.Hash, sig []byte) (domain.Address, error) {
	if len(sig) != SignatureLength || sig[64] > 1 {
		return domain.Address{}, errBadSignature
	}
	compact := make([]byte, SignatureLength)
	compact[0] = sig[64] + 27
	copy(compact[1:], sig[:64])
	pub, _, err := ecdsa.RecoverCompact(compact, digest.Slice())
	if err != nil {
		return domain.Address{}, fmt.Errorf("%w: %v", errBadSignature, err)
	}
	return PubkeyToAddress(pub), nil
}

// SigningHash is Keccak-256 over the canonical JSON encoding of tx.
func SigningHash(tx domain.Transaction) (domain.Hash, error) {
	b, err := json.Marshal(tx)
	if err != nil {
		return domain.Hash{}, err
	}
	return Keccak256Hash(b), nil
}

// TransactionHash identifies a signed transaction.
func TransactionHash(stx domain.SignedTransaction) (domain.Hash, error) {
	b, err := json.Marshal(stx)
	if err != nil {
		return domain.Hash{}, err
	}
	return Keccak256Hash(b), nil
}

// SignTransaction signs tx with priv.
func SignTransaction(priv domain.PrivateKey, tx domain.Transaction) (domain.SignedTransaction, error) {
	h, err := SigningHash(tx)
	if err != nil {
		return domain.SignedTransaction{}, err
	}
	sig, err := Sign(priv, h)
	if err != nil {
		return domain.SignedTransaction{}, err
	}
	return domain.SignedTransaction{Tx: tx, Signature: sig}, nil
}

// Sender recovers the address that signed stx.
func Sender(stx domain.SignedTransaction) (domain.Address, error) {
	h, err := SigningHash(stx.Tx)
	if err != nil {
		return domain.Address{}, err
	}
	return RecoverAddress(h, stx.Signature)
}

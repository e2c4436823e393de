package types

// PrivateKey is a raw secp256k1 scalar.
type PrivateKey [32]byte

// Slice returns the key as a []byte.
func (k PrivateKey) Slice() []byte { return k[:] }

// Wallet is the secret material stored in the local keystore. Exactly one of
// Mnemonic or PrivateKey is set.
type Wallet struct {
	Mnemonic   string     `json:"mnemonic,omitempty"`
	PrivateKey PrivateKey `json:"private_key"`
	CreatedUTC int64      `json:"created_utc"`
}

// HasMnemonic reports whether the wallet derives keys from a mnemonic.
func (w Wallet) HasMnemonic() bool { return w.Mnemonic != "" }

// Package wallet manages creation, encryption and loading of the local
// signing keys.
//
// It enforces the passphrase policy, generates or imports secp256k1 keys,
// and persists them via the domain.WalletStore. A wallet holds either a
// single random key or a BIP39 mnemonic from which accounts are derived on
// m/44'/60'/0'/0/i.
package wallet

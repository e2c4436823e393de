// Package crypto exposes the primitives used by crowdfund.
//
// Contents
//
//   - Keccak-256 hashing (Keccak256, Keccak256Hash)
//   - secp256k1 key generation and address derivation (GenerateKey,
//     PubkeyToAddress, AddressOf)
//   - BIP39 seeds and BIP32/BIP44 account derivation (SeedFromMnemonic,
//     DeriveAccounts)
//   - Recoverable signatures and transaction signing (Sign, RecoverAddress,
//     SignTransaction, Sender)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Keys are returned as fixed-size array types defined in internal/domain.
// Callers should treat them as sensitive and rely on Wipe when practical.
package crypto

// Package ledger is a local development chain.
//
// State (accounts, contract storage, receipts) lives in a bbolt database.
// Every transaction runs inside one read-write bbolt transaction: a revert,
// an out-of-gas condition, a bad nonce or insufficient funds aborts it and
// nothing it touched is written, including the sender's nonce and fee.
//
// Contracts are native Go programs registered under the bytecode object of
// their artifact. Arguments are checked against the artifact ABI before a
// program sees them. Each transaction is mined into its own block.
//
// DevChain wraps a Ledger with a set of funded accounts whose keys it holds,
// in the way local test chains unlock their accounts for eth_sendTransaction.
package ledger

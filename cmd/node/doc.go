// Package main runs the development node: a single-process chain backed by
// a bbolt file, served over JSON-RPC 2.0 with Ethereum method names.
//
// JSON-RPC (POST /)
//
//	eth_chainId, eth_accounts, eth_blockNumber
//	eth_getBalance, eth_getTransactionCount, eth_gasPrice
//	eth_call, eth_sendTransaction, eth_sendRawTransaction
//	eth_getTransactionReceipt
//
// Behaviour
//
//   - State persists in CROWDFUND_NODE_DB (default $CROWDFUND_HOME/chain.db).
//     Genesis balances are applied only when the file is new.
//   - Accounts are derived from CROWDFUND_NODE_MNEMONIC and are unlocked, so
//     eth_sendTransaction signs on the caller's behalf.
//   - Every transaction is mined into its own block immediately.
//   - The access log records method, path, remote, status, bytes, duration
//     and request id for each request.
//   - The default listen address is 127.0.0.1:8545.
//
// The node is meant for local development and tests. Its keys are derived
// from a well-known mnemonic unless one is configured.
package main

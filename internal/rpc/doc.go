// Package rpc carries domain.Chain over JSON-RPC 2.0 on HTTP.
//
// The method names follow the Ethereum node API so the usual vocabulary
// applies, while payloads are the JSON forms of the domain types:
//
//	eth_chainId                      -> quantity
//	eth_accounts                     -> [address]
//	eth_blockNumber                  -> quantity
//	eth_getBalance [address, tag]    -> quantity
//	eth_getTransactionCount [address, tag] -> quantity
//	eth_gasPrice                     -> quantity (minimum accepted)
//	eth_call [CallMsg, tag]          -> method result (JSON)
//	eth_sendTransaction [CallMsg]    -> transaction hash
//	eth_sendRawTransaction [SignedTransaction] -> transaction hash
//	eth_getTransactionReceipt [hash] -> Receipt or null
//
// Quantities are 0x-prefixed hex. Block tags are accepted and ignored: the
// node only serves the latest state.
//
// Failures raised while executing a transaction use code -32000. The
// message is the node's own text, and data.kind names the error class so
// the Client can hand callers the same typed error the ledger produced.
// Contract failures additionally carry data.op and data.reason.
package rpc

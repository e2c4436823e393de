package interfaces

import (
	"context"
	"encoding/json"
	"math/big"

	"crowdfund/internal/domain/types"
)

// Chain is a connection to a ledger, local or remote. Every method is a
// single request/response round-trip.
type Chain interface {
	ChainID(ctx context.Context) (uint64, error)
	Accounts(ctx context.Context) ([]types.Address, error)
	BlockNumber(ctx context.Context) (uint64, error)
	Balance(ctx context.Context, addr types.Address) (*big.Int, error)
	Nonce(ctx context.Context, addr types.Address) (uint64, error)
	// GasPrice is the minimum price, in wei, the chain accepts.
	GasPrice(ctx context.Context) (*big.Int, error)

	// Call executes a read-only method and returns its JSON result.
	Call(ctx context.Context, msg types.CallMsg) (json.RawMessage, error)
	// SendTransaction asks the chain to sign with one of its own accounts.
	SendTransaction(ctx context.Context, msg types.CallMsg) (types.Receipt, error)
	SendRawTransaction(ctx context.Context, tx types.SignedTransaction) (types.Receipt, error)
	Receipt(ctx context.Context, hash types.Hash) (types.Receipt, bool, error)
}

// Signer holds private keys for a set of accounts.
type Signer interface {
	Accounts() []types.Address
	SignTransaction(from types.Address, tx types.Transaction) (types.SignedTransaction, error)
}

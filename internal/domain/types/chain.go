package types

import (
	"encoding/json"
	"math/big"
)

// TxInput is the payload of a transaction or call. Contract creation sets
// Code (hex artifact bytecode) and optional constructor Args; a method call
// sets Method and Args.
type TxInput struct {
	Code   string            `json:"code,omitempty"`
	Method string            `json:"method,omitempty"`
	Args   []json.RawMessage `json:"args,omitempty"`
}

// IsCreate reports whether the input deploys a contract.
func (in TxInput) IsCreate() bool { return in.Code != "" }

// Transaction is the unsigned body of a state-changing request.
type Transaction struct {
	ChainID  uint64   `json:"chainId"`
	Nonce    uint64   `json:"nonce"`
	To       *Address `json:"to,omitempty"`
	Value    *big.Int `json:"value"`
	Gas      uint64   `json:"gas"`
	GasPrice *big.Int `json:"gasPrice"`
	Input    TxInput  `json:"input"`
}

// SignedTransaction pairs a Transaction with a 65-byte recoverable
// secp256k1 signature (r || s || v, v in {0,1}).
type SignedTransaction struct {
	Tx        Transaction `json:"tx"`
	Signature []byte      `json:"signature"`
}

// CallMsg describes a read-only call, or a transaction the node signs on
// behalf of one of its own accounts.
type CallMsg struct {
	From     Address  `json:"from"`
	To       *Address `json:"to,omitempty"`
	Value    *big.Int `json:"value,omitempty"`
	Gas      uint64   `json:"gas,omitempty"`
	GasPrice *big.Int `json:"gasPrice,omitempty"`
	Input    TxInput  `json:"input"`
}

// Receipt is produced for every mined transaction. Reverted transactions are
// rolled back and never produce one.
type Receipt struct {
	TransactionHash Hash            `json:"transactionHash"`
	BlockNumber     uint64          `json:"blockNumber"`
	From            Address         `json:"from"`
	To              *Address        `json:"to,omitempty"`
	ContractAddress *Address        `json:"contractAddress,omitempty"`
	GasUsed         uint64          `json:"gasUsed"`
	Return          json.RawMessage `json:"return,omitempty"`
}

// Account is the ledger record kept for every address.
type Account struct {
	Balance *big.Int `json:"balance"`
	Nonce   uint64   `json:"nonce"`
	Code    string   `json:"code,omitempty"`
}

// IsContract reports whether the account holds program code.
func (a Account) IsContract() bool { return a.Code != "" }

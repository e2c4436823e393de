package domain

import (
	interfaces "crowdfund/internal/domain/interfaces"
	types "crowdfund/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Address           = types.Address
	Hash              = types.Hash
	PrivateKey        = types.PrivateKey
	Wallet            = types.Wallet
	Deployment        = types.Deployment
	Account           = types.Account
	TxInput           = types.TxInput
	Transaction       = types.Transaction
	SignedTransaction = types.SignedTransaction
	CallMsg           = types.CallMsg
	Receipt           = types.Receipt
	Request           = types.Request
	CampaignSummary   = types.CampaignSummary
	HomeProps         = types.HomeProps
	VMError           = types.VMError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Chain           = interfaces.Chain
	Signer          = interfaces.Signer
	WalletStore     = interfaces.WalletStore
	DeploymentStore = interfaces.DeploymentStore
	WalletService   = interfaces.WalletService
	DeployService   = interfaces.DeployService
	CampaignService = interfaces.CampaignService
)

// Function and error re-exports.
var (
	ParseAddress   = types.ParseAddress
	BytesToAddress = types.BytesToAddress
	ParseHash      = types.ParseHash
	BytesToHash    = types.BytesToHash
	ParseWei       = types.ParseWei
	ToWei          = types.ToWei
	FromWei        = types.FromWei
	Revert         = types.Revert

	ErrRevert            = types.ErrRevert
	ErrInvalidOpcode     = types.ErrInvalidOpcode
	ErrOutOfGas          = types.ErrOutOfGas
	ErrInsufficientFunds = types.ErrInsufficientFunds
	ErrNonceMismatch     = types.ErrNonceMismatch
	ErrUnknownAccount    = types.ErrUnknownAccount
	ErrUnknownCode       = types.ErrUnknownCode
	ErrWrongChain        = types.ErrWrongChain
	ErrNoContract        = types.ErrNoContract
	ErrGasPriceTooLow    = types.ErrGasPriceTooLow
)

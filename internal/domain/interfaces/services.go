package interfaces

import (
	"context"
	"math/big"

	"crowdfund/internal/domain/types"
)

// WalletService manages the local signing keys.
type WalletService interface {
	NewWallet(passphrase string) (types.Address, error)
	ImportMnemonic(passphrase, mnemonic string) ([]types.Address, error)
	Signer(passphrase string, accounts int) (Signer, error)
}

// DeployService publishes a CampaignFactory.
type DeployService interface {
	DeployFactory(ctx context.Context) (types.Deployment, error)
}

// CampaignService is the client integration layer used by the CLI and web.
type CampaignService interface {
	Home(ctx context.Context) (types.HomeProps, error)
	CreateCampaign(ctx context.Context, minimum *big.Int) (types.Address, error)
	Summary(ctx context.Context, campaign types.Address) (types.CampaignSummary, error)
	Contribute(ctx context.Context, campaign types.Address, value *big.Int) (types.Receipt, error)
	CreateRequest(ctx context.Context, campaign types.Address, description string, value *big.Int, recipient types.Address) (types.Receipt, error)
	ApproveRequest(ctx context.Context, campaign types.Address, index uint64) (types.Receipt, error)
	FinalizeRequest(ctx context.Context, campaign types.Address, index uint64) (types.Receipt, error)
	Request(ctx context.Context, campaign types.Address, index uint64) (types.Request, error)
}

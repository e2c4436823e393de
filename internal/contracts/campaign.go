package contracts

import (
	"context"
	"math/big"

	"crowdfund/internal/domain"
)

// Campaign is a typed binding to a Campaign contract.
type Campaign struct {
	*BoundContract
}

// NewCampaign binds a deployed campaign.
func NewCampaign(address domain.Address, backend Backend) *Campaign {
	return &Campaign{Bind(address, CampaignArtifact(), backend)}
}

// Contribute sends opts.Value to the campaign.
func (c *Campaign) Contribute(ctx context.Context, opts TransactOpts) (domain.Receipt, error) {
	return c.Transact(ctx, opts, "contribute")
}

// CreateRequest proposes paying value to recipient. Owner only.
func (c *Campaign) CreateRequest(ctx context.Context, opts TransactOpts, description string, value *big.Int, recipient domain.Address) (domain.Receipt, error) {
	return c.Transact(ctx, opts, "createRequest", description, value, recipient)
}

// ApproveRequest records opts.From's approval. Contributors only.
func (c *Campaign) ApproveRequest(ctx context.Context, opts TransactOpts, index uint64) (domain.Receipt, error) {
	return c.Transact(ctx, opts, "approveRequest", index)
}

// FinalizeRequest pays out an approved request. Owner only.
func (c *Campaign) FinalizeRequest(ctx context.Context, opts TransactOpts, index uint64) (domain.Receipt, error) {
	return c.Transact(ctx, opts, "finalizeRequest", index)
}

// GetOwner returns the account that created the campaign.
func (c *Campaign) GetOwner(ctx context.Context) (domain.Address, error) {
	var out domain.Address
	err := c.Call(ctx, CallOpts{}, &out, "getOwner")
	return out, err
}

// MinimumContribution returns the amount a contribution must exceed, in wei.
func (c *Campaign) MinimumContribution(ctx context.Context) (*big.Int, error) {
	out := new(big.Int)
	err := c.Call(ctx, CallOpts{}, out, "minimumContribution")
	return out, err
}

// IsContributor reports whether account has contributed.
func (c *Campaign) IsContributor(ctx context.Context, account domain.Address) (bool, error) {
	var out bool
	err := c.Call(ctx, CallOpts{}, &out, "isContributor", account)
	return out, err
}

// ContributorsCount returns the number of distinct contributors.
func (c *Campaign) ContributorsCount(ctx context.Context) (uint64, error) {
	var out uint64
	err := c.Call(ctx, CallOpts{}, &out, "contributorsCount")
	return out, err
}

// GetRequestsCount returns the number of payment requests.
func (c *Campaign) GetRequestsCount(ctx context.Context) (uint64, error) {
	var out uint64
	err := c.Call(ctx, CallOpts{}, &out, "getRequestsCount")
	return out, err
}

// Requests returns the request at index.
func (c *Campaign) Requests(ctx context.Context, index uint64) (domain.Request, error) {
	var out domain.Request
	err := c.Call(ctx, CallOpts{}, &out, "requests", index)
	return out, err
}

// GetSummary returns the campaign aggregate view.
func (c *Campaign) GetSummary(ctx context.Context) (domain.CampaignSummary, error) {
	var out domain.CampaignSummary
	err := c.Call(ctx, CallOpts{}, &out, "getSummary")
	return out, err
}

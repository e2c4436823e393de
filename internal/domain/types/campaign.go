package types

import "math/big"

// Request is a proposed expenditure from a campaign's balance.
type Request struct {
	Description   string   `json:"description"`
	Value         *big.Int `json:"value"`
	Recipient     Address  `json:"recipient"`
	Complete      bool     `json:"complete"`
	ApprovalCount uint64   `json:"approvalCount"`
}

// CampaignSummary is the aggregate view returned by Campaign.getSummary.
type CampaignSummary struct {
	MinimumContribution *big.Int `json:"minimumContribution"`
	Balance             *big.Int `json:"balance"`
	RequestsCount       uint64   `json:"requestsCount"`
	ContributorsCount   uint64   `json:"contributorsCount"`
	Owner               Address  `json:"owner"`
}

// HomeProps is the payload of the campaign index page.
type HomeProps struct {
	Campaigns []Address `json:"campaigns"`
}

package web

import (
	"fmt"

	"github.com/a-h/templ"

	"crowdfund/internal/domain"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

// EmptyStateText is shown when the factory lists no campaigns.
const EmptyStateText = "No campaigns have been created yet."

type summaryRow struct{ label, value string }

func summaryRows(s domain.CampaignSummary) []summaryRow {
	balance, err := domain.FromWei(s.Balance, "ether")
	if err != nil {
		balance = s.Balance.String() + " wei"
	}
	return []summaryRow{
		{"Manager", s.Owner.Hex()},
		{"Minimum contribution (wei)", s.MinimumContribution.String()},
		{"Balance (ether)", balance},
		{"Requests", fmt.Sprint(s.RequestsCount)},
		{"Contributors", fmt.Sprint(s.ContributorsCount)},
	}
}

func campaignURL(addr domain.Address) templ.SafeURL {
	return templ.URL("/campaigns/" + addr.Hex())
}

package commands

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"crowdfund/internal/domain"
	"crowdfund/internal/web"
)

func amountFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&unit, "unit", "wei", "unit of amounts (wei, gwei, ether, ...)")
}

func parseAmount(s string) (*big.Int, error) {
	u := unit
	if u == "" {
		u = "wei"
	}
	v, err := domain.ToWei(s, u)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", s, err)
	}
	return v, nil
}

func parseIndex(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("request index %q: %w", s, err)
	}
	return n, nil
}

func printReceipt(cmd *cobra.Command, r domain.Receipt) {
	fmt.Fprintf(cmd.OutOrStdout(), "Transaction: %s (block %d, gas %d)\n", r.TransactionHash, r.BlockNumber, r.GasUsed)
}

func campaignsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "campaigns",
		Short: "List deployed campaigns in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := session()
			if err != nil {
				return err
			}
			props, err := a.Campaigns.Home(cmd.Context())
			if err != nil {
				return err
			}
			if len(props.Campaigns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), web.EmptyStateText)
				return nil
			}
			for _, c := range props.Campaigns {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func createCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-campaign <minimum>",
		Short: "Create a campaign managed by the sender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minimum, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			a, err := session()
			if err != nil {
				return err
			}
			addr, err := a.Campaigns.CreateCampaign(cmd.Context(), minimum)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Campaign: %s\n", addr)
			return nil
		},
	}
	amountFlag(cmd)
	return cmd
}

func contributeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contribute <campaign> <amount>",
		Short: "Contribute more than the campaign minimum",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaign, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			value, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			a, err := session()
			if err != nil {
				return err
			}
			r, err := a.Campaigns.Contribute(cmd.Context(), campaign, value)
			if err != nil {
				return err
			}
			printReceipt(cmd, r)
			return nil
		},
	}
	amountFlag(cmd)
	return cmd
}

func createRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-request <campaign> <description> <value> <recipient>",
		Short: "Propose a payment from the campaign balance",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaign, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			value, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			recipient, err := parseAddress(args[3])
			if err != nil {
				return err
			}
			a, err := session()
			if err != nil {
				return err
			}
			r, err := a.Campaigns.CreateRequest(cmd.Context(), campaign, args[1], value, recipient)
			if err != nil {
				return err
			}
			printReceipt(cmd, r)
			return nil
		},
	}
	amountFlag(cmd)
	return cmd
}

func approveCmd() *cobra.Command {
	return indexedCmd("approve", "Approve a payment request as a contributor",
		func(cmd *cobra.Command, campaign domain.Address, index uint64) error {
			a, err := session()
			if err != nil {
				return err
			}
			r, err := a.Campaigns.ApproveRequest(cmd.Context(), campaign, index)
			if err != nil {
				return err
			}
			printReceipt(cmd, r)
			return nil
		})
}

func finalizeCmd() *cobra.Command {
	return indexedCmd("finalize", "Pay out a request approved by a majority",
		func(cmd *cobra.Command, campaign domain.Address, index uint64) error {
			a, err := session()
			if err != nil {
				return err
			}
			r, err := a.Campaigns.FinalizeRequest(cmd.Context(), campaign, index)
			if err != nil {
				return err
			}
			printReceipt(cmd, r)
			return nil
		})
}

func requestCmd() *cobra.Command {
	return indexedCmd("request", "Show a payment request",
		func(cmd *cobra.Command, campaign domain.Address, index uint64) error {
			a, err := session()
			if err != nil {
				return err
			}
			req, err := a.Campaigns.Request(cmd.Context(), campaign, index)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Description: %s\n", req.Description)
			fmt.Fprintf(out, "Value: %s wei\n", req.Value)
			fmt.Fprintf(out, "Recipient: %s\n", req.Recipient)
			fmt.Fprintf(out, "Approvals: %d\n", req.ApprovalCount)
			fmt.Fprintf(out, "Complete: %t\n", req.Complete)
			return nil
		})
}

// indexedCmd builds a "<name> <campaign> <index>" command.
func indexedCmd(name, short string, run func(*cobra.Command, domain.Address, uint64) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <campaign> <index>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaign, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return run(cmd, campaign, index)
		},
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <campaign>",
		Short: "Show a campaign's summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaign, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			a, err := session()
			if err != nil {
				return err
			}
			s, err := a.Campaigns.Summary(cmd.Context(), campaign)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Manager: %s\n", s.Owner)
			fmt.Fprintf(out, "Minimum contribution: %s wei\n", s.MinimumContribution)
			fmt.Fprintf(out, "Balance: %s wei\n", s.Balance)
			fmt.Fprintf(out, "Requests: %d\n", s.RequestsCount)
			fmt.Fprintf(out, "Contributors: %d\n", s.ContributorsCount)
			return nil
		},
	}
}

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			a, err := session()
			if err != nil {
				return err
			}
			bal, err := a.Provider.Balance(cmd.Context(), addr)
			if err != nil {
				return err
			}
			u := unit
			if u == "" {
				u = "wei"
			}
			s, err := domain.FromWei(bal, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s, u)
			return nil
		},
	}
	amountFlag(cmd)
	return cmd
}

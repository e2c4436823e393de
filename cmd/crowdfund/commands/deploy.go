package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Publish a CampaignFactory from the first account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := session()
			if err != nil {
				return err
			}
			d, err := a.Deployer.DeployFactory(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Factory: %s\nTransaction: %s\n", d.Factory, d.TxHash)
			return nil
		},
	}
}

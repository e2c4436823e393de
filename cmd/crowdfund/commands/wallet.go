package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the local signing keys",
	}
	cmd.AddCommand(walletNewCmd(), walletImportCmd(), walletAccountsCmd())
	return cmd
}

func walletNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate a key and store it encrypted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			addr, err := wire.Wallet.NewWallet(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet created.\nAddress: %s\n", addr)
			return nil
		},
	}
}

func walletImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <mnemonic words...>",
		Short: "Store a BIP39 mnemonic encrypted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			addrs, err := wire.Wallet.ImportMnemonic(passphrase, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Mnemonic imported.")
			for i, a := range addrs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i, a)
			}
			return nil
		},
	}
}

func walletAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the addresses that will sign transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := session()
			if err != nil {
				return err
			}
			accts, err := a.Provider.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			for i, addr := range accts {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i, addr)
			}
			return nil
		},
	}
}

// Package commands defines the crowdfund CLI and wires dependencies for subcommands.
//
// Commands
//
//   - wallet new        Generate a key and store it encrypted
//   - wallet import     Store a BIP39 mnemonic encrypted
//   - wallet accounts   List the wallet's addresses
//   - deploy            Publish a CampaignFactory and record its address
//   - campaigns         List deployed campaigns
//   - create-campaign   Create a campaign with a minimum contribution
//   - contribute        Contribute to a campaign
//   - create-request    Propose a payment from a campaign (manager only)
//   - approve           Approve a payment request (contributors only)
//   - finalize          Pay out an approved request (manager only)
//   - request           Show one payment request
//   - summary           Show a campaign's summary
//   - balance           Show an account balance
//
// # Implementation
//
// The root command reads CROWDFUND_* settings, applies flag overrides and
// builds the dependency graph (stores, RPC client, services) before any
// subcommand runs. Commands that talk to the chain unlock a signer on first
// use: CROWDFUND_MNEMONIC, else the keystore, else the node's own accounts.
package commands

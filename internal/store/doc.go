// Package store provides file-based persistence for the crowdfund CLI.
//
// It contains the concrete implementations of the domain storage
// interfaces. Files live under the configured home directory and are
// replaced atomically (temp file, then rename). All methods are safe for
// concurrent use.
//
// The package includes:
//   - the wallet keystore (WalletFileStore), sealed with scrypt and
//     ChaCha20-Poly1305 under a passphrase
//   - the deployment registry (DeploymentFileStore), mapping an RPC
//     endpoint to the CampaignFactory deployed there
package store

package interfaces

import "crowdfund/internal/domain/types"

// WalletStore persists the local wallet encrypted under a passphrase.
type WalletStore interface {
	SaveWallet(passphrase string, w types.Wallet) error
	LoadWallet(passphrase string) (types.Wallet, error)
	HasWallet() (bool, error)
}

// DeploymentStore remembers which factory was deployed to which endpoint.
type DeploymentStore interface {
	SaveDeployment(d types.Deployment) error
	LoadDeployment(rpcURL string) (types.Deployment, bool, error)
}

package types

// Deployment records a CampaignFactory published to a specific RPC endpoint.
type Deployment struct {
	RPCURL     string  `json:"rpc_url"`
	ChainID    uint64  `json:"chain_id"`
	Factory    Address `json:"factory"`
	DeployedBy Address `json:"deployed_by"`
	TxHash     Hash    `json:"tx_hash"`
	DeployedAt int64   `json:"deployed_at"`
}

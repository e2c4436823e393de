package ledger

import (
	"math/big"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
)

type factoryState struct {
	Deployed []domain.Address `json:"deployed"`
}

// factoryProgram is the CampaignFactory contract.
type factoryProgram struct{}

func (factoryProgram) Construct(env *Env, _ []any) error {
	return env.Store(factoryState{Deployed: []domain.Address{}})
}

func (factoryProgram) Invoke(env *Env, method string, args []any) (any, error) {
	var st factoryState
	if err := env.Load(&st); err != nil {
		return nil, err
	}
	switch method {
	case "createCampaign":
		minimum := args[0].(*big.Int)
		addr, err := env.Create(contracts.CampaignArtifact().Bytecode(), minimum, env.Sender)
		if err != nil {
			return nil, err
		}
		st.Deployed = append(st.Deployed, addr)
		return nil, env.Store(st)

	case "getDeployedCampaigns":
		if st.Deployed == nil {
			st.Deployed = []domain.Address{}
		}
		return st.Deployed, nil
	}
	return nil, domain.Revert("")
}

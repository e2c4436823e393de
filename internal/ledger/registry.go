package ledger

import (
	"fmt"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
)

// Program is a contract implemented natively. Args arrive already decoded
// against the artifact ABI.
type Program interface {
	Construct(env *Env, args []any) error
	Invoke(env *Env, method string, args []any) (any, error)
}

type registered struct {
	artifact *contracts.Artifact
	program  Program
}

// Registry maps artifact bytecode to programs.
type Registry struct {
	byCode map[string]registered
}

// NewRegistry returns a registry holding the crowdfunding contracts.
func NewRegistry() *Registry {
	r := &Registry{byCode: make(map[string]registered)}
	r.Register(contracts.FactoryArtifact(), factoryProgram{})
	r.Register(contracts.CampaignArtifact(), campaignProgram{})
	return r
}

// Register adds artifact's program. A later registration of the same
// bytecode replaces the earlier one.
func (r *Registry) Register(a *contracts.Artifact, p Program) {
	r.byCode[a.Bytecode()] = registered{artifact: a, program: p}
}

func (r *Registry) lookup(code string) (registered, error) {
	reg, ok := r.byCode[code]
	if !ok {
		return registered{}, domain.ErrUnknownCode
	}
	return reg, nil
}

// decode resolves an ABI entry for a create or call input.
func (r registered) decode(in domain.TxInput, value bool) (contracts.Entry, []any, error) {
	var entry contracts.Entry
	if in.IsCreate() {
		entry = r.artifact.ABI.Constructor()
	} else {
		m, ok := r.artifact.ABI.Method(in.Method)
		if !ok {
			// Unknown selectors hit the fallback, which these contracts lack.
			return entry, nil, domain.Revert("")
		}
		entry = m
	}
	if value && !entry.Payable() {
		return entry, nil, domain.Revert("")
	}
	args, err := entry.DecodeArgs(in.Args)
	if err != nil {
		return entry, nil, fmt.Errorf("%s: %w", r.artifact.ContractName, err)
	}
	return entry, args, nil
}

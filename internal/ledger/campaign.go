package ledger

import (
	"math/big"

	"crowdfund/internal/domain"
)

// Revert reasons surfaced by the Campaign contract.
const (
	ReasonMinimumContribution = "Please make sure to send at least the minimum contribution."
	ReasonNotContributor      = "Only contributors can approve requests."
	ReasonAlreadyApproved     = "You have already approved this request."
	ReasonAlreadyComplete     = "Request has already been finalized."
	ReasonNoMajority          = "Request needs approval from a majority of contributors."
	ReasonLowBalance          = "Campaign balance is too low to pay this request."
)

type requestState struct {
	Description   string                  `json:"description"`
	Value         *big.Int                `json:"value"`
	Recipient     domain.Address          `json:"recipient"`
	Complete      bool                    `json:"complete"`
	ApprovalCount uint64                  `json:"approvalCount"`
	Approvals     map[domain.Address]bool `json:"approvals"`
}

type campaignState struct {
	Owner               domain.Address          `json:"owner"`
	MinimumContribution *big.Int                `json:"minimumContribution"`
	Contributors        map[domain.Address]bool `json:"contributors"`
	ContributorsCount   uint64                  `json:"contributorsCount"`
	Requests            []requestState          `json:"requests"`
}

// campaignProgram is the Campaign contract.
type campaignProgram struct{}

func (campaignProgram) Construct(env *Env, args []any) error {
	return env.Store(campaignState{
		MinimumContribution: args[0].(*big.Int),
		Owner:               args[1].(domain.Address),
		Contributors:        map[domain.Address]bool{},
		Requests:            []requestState{},
	})
}

func (campaignProgram) Invoke(env *Env, method string, args []any) (any, error) {
	var st campaignState
	if err := env.Load(&st); err != nil {
		return nil, err
	}
	if st.Contributors == nil {
		st.Contributors = map[domain.Address]bool{}
	}

	switch method {
	case "contribute":
		if env.Value.Cmp(st.MinimumContribution) <= 0 {
			return nil, domain.Revert(ReasonMinimumContribution)
		}
		if !st.Contributors[env.Sender] {
			st.Contributors[env.Sender] = true
			st.ContributorsCount++
		}
		return nil, env.Store(st)

	case "createRequest":
		if env.Sender != st.Owner {
			return nil, domain.Revert("")
		}
		st.Requests = append(st.Requests, requestState{
			Description: args[0].(string),
			Value:       args[1].(*big.Int),
			Recipient:   args[2].(domain.Address),
			Approvals:   map[domain.Address]bool{},
		})
		return nil, env.Store(st)

	case "approveRequest":
		req, err := st.request(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		switch {
		case !st.Contributors[env.Sender]:
			return nil, domain.Revert(ReasonNotContributor)
		case req.Approvals[env.Sender]:
			return nil, domain.Revert(ReasonAlreadyApproved)
		case req.Complete:
			return nil, domain.Revert(ReasonAlreadyComplete)
		}
		if req.Approvals == nil {
			req.Approvals = map[domain.Address]bool{}
		}
		req.Approvals[env.Sender] = true
		req.ApprovalCount++
		return nil, env.Store(st)

	case "finalizeRequest":
		if env.Sender != st.Owner {
			return nil, domain.Revert("")
		}
		req, err := st.request(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		switch {
		case req.Complete:
			return nil, domain.Revert(ReasonAlreadyComplete)
		case req.ApprovalCount*2 <= st.ContributorsCount:
			return nil, domain.Revert(ReasonNoMajority)
		}
		bal, err := env.Balance(env.Self)
		if err != nil {
			return nil, err
		}
		if bal.Cmp(req.Value) < 0 {
			return nil, domain.Revert(ReasonLowBalance)
		}
		if err := env.Transfer(req.Recipient, req.Value); err != nil {
			return nil, err
		}
		req.Complete = true
		return nil, env.Store(st)

	case "getOwner":
		return st.Owner, nil

	case "minimumContribution":
		return st.MinimumContribution, nil

	case "isContributor":
		return st.Contributors[args[0].(domain.Address)], nil

	case "contributorsCount":
		return st.ContributorsCount, nil

	case "getRequestsCount":
		return uint64(len(st.Requests)), nil

	case "requests":
		req, err := st.request(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		return domain.Request{
			Description:   req.Description,
			Value:         req.Value,
			Recipient:     req.Recipient,
			Complete:      req.Complete,
			ApprovalCount: req.ApprovalCount,
		}, nil

	case "getSummary":
		bal, err := env.Balance(env.Self)
		if err != nil {
			return nil, err
		}
		return domain.CampaignSummary{
			MinimumContribution: st.MinimumContribution,
			Balance:             bal,
			RequestsCount:       uint64(len(st.Requests)),
			ContributorsCount:   st.ContributorsCount,
			Owner:               st.Owner,
		}, nil
	}
	return nil, domain.Revert("")
}

// request returns a pointer into st.Requests, or ErrInvalidOpcode when index
// is out of range.
func (st *campaignState) request(index *big.Int) (*requestState, error) {
	if !index.IsUint64() || index.Uint64() >= uint64(len(st.Requests)) {
		return nil, domain.ErrInvalidOpcode
	}
	return &st.Requests[index.Uint64()], nil
}

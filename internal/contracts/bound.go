package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"crowdfund/internal/domain"
)

// TransactOpts carries the sender and attached value of a transaction.
type TransactOpts struct {
	From  domain.Address
	Value *big.Int
	Gas   uint64
}

// CallOpts carries the optional msg.sender of a read-only call.
type CallOpts struct {
	From domain.Address
}

// Backend executes calls and transactions for bindings.
type Backend interface {
	Call(ctx context.Context, msg domain.CallMsg) (json.RawMessage, error)
	Transact(ctx context.Context, opts TransactOpts, to *domain.Address, input domain.TxInput) (domain.Receipt, error)
}

// BoundContract is an artifact bound to a deployed address.
type BoundContract struct {
	address  domain.Address
	artifact *Artifact
	backend  Backend
}

// Bind returns a BoundContract for address.
func Bind(address domain.Address, artifact *Artifact, backend Backend) *BoundContract {
	return &BoundContract{address: address, artifact: artifact, backend: backend}
}

// Address returns the bound contract address.
func (c *BoundContract) Address() domain.Address { return c.address }

// Deploy publishes artifact with constructor args and returns the binding.
func Deploy(ctx context.Context, backend Backend, opts TransactOpts, artifact *Artifact, args ...any) (*BoundContract, domain.Receipt, error) {
	ctor := artifact.ABI.Constructor()
	if hasValue(opts.Value) && !ctor.Payable() {
		return nil, domain.Receipt{}, fmt.Errorf("%s constructor is not payable", artifact.ContractName)
	}
	wire, err := ctor.EncodeArgs(args...)
	if err != nil {
		return nil, domain.Receipt{}, err
	}
	rcpt, err := backend.Transact(ctx, opts, nil, domain.TxInput{Code: artifact.Bytecode(), Args: wire})
	if err != nil {
		return nil, domain.Receipt{}, fmt.Errorf("deploy %s: %w", artifact.ContractName, err)
	}
	if rcpt.ContractAddress == nil {
		return nil, rcpt, fmt.Errorf("deploy %s: receipt has no contract address", artifact.ContractName)
	}
	return Bind(*rcpt.ContractAddress, artifact, backend), rcpt, nil
}

// Call invokes a read-only method and decodes its result into out.
func (c *BoundContract) Call(ctx context.Context, opts CallOpts, out any, method string, args ...any) error {
	m, ok := c.artifact.ABI.Method(method)
	if !ok {
		return fmt.Errorf("%s has no method %q", c.artifact.ContractName, method)
	}
	wire, err := m.EncodeArgs(args...)
	if err != nil {
		return err
	}
	to := c.address
	res, err := c.backend.Call(ctx, domain.CallMsg{
		From:  opts.From,
		To:    &to,
		Input: domain.TxInput{Method: method, Args: wire},
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// Transact sends a state-changing method call.
func (c *BoundContract) Transact(ctx context.Context, opts TransactOpts, method string, args ...any) (domain.Receipt, error) {
	m, ok := c.artifact.ABI.Method(method)
	if !ok {
		return domain.Receipt{}, fmt.Errorf("%s has no method %q", c.artifact.ContractName, method)
	}
	if hasValue(opts.Value) && !m.Payable() {
		return domain.Receipt{}, fmt.Errorf("%s.%s is not payable", c.artifact.ContractName, method)
	}
	wire, err := m.EncodeArgs(args...)
	if err != nil {
		return domain.Receipt{}, err
	}
	to := c.address
	return c.backend.Transact(ctx, opts, &to, domain.TxInput{Method: method, Args: wire})
}

func hasValue(v *big.Int) bool { return v != nil && v.Sign() > 0 }

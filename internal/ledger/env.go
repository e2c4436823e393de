package ledger

import (
	"encoding/binary"
	"math/big"

	"crowdfund/internal/crypto"
	"crowdfund/internal/domain"
)

// Env is the execution context handed to a program: who called, with how
// much value, on which contract, and access to that contract's storage.
type Env struct {
	Sender domain.Address
	Value  *big.Int
	Self   domain.Address

	st       *state
	meter    *meter
	registry *Registry
}

// Load decodes the contract's storage into out. Missing storage leaves out
// untouched.
func (e *Env) Load(out any) error {
	return e.st.storage(e.Self, out)
}

// Store persists v as the contract's storage.
func (e *Env) Store(v any) error {
	if err := e.meter.consume(gasStore); err != nil {
		return err
	}
	return e.st.putStorage(e.Self, v)
}

// Balance returns the balance of addr.
func (e *Env) Balance(addr domain.Address) (*big.Int, error) {
	return e.st.balance(addr)
}

// Transfer pays amount from the contract to to.
func (e *Env) Transfer(to domain.Address, amount *big.Int) error {
	if err := e.meter.consume(gasTransfer); err != nil {
		return err
	}
	return e.st.transfer(e.Self, to, amount)
}

// Create deploys a contract from code with the current contract as creator.
func (e *Env) Create(code string, args ...any) (domain.Address, error) {
	reg, err := e.registry.lookup(code)
	if err != nil {
		return domain.Address{}, err
	}
	if err := e.meter.consume(gasCreate); err != nil {
		return domain.Address{}, err
	}
	addr, err := e.st.deploy(e.Self, code)
	if err != nil {
		return domain.Address{}, err
	}
	child := &Env{
		Sender:   e.Self,
		Value:    new(big.Int),
		Self:     addr,
		st:       e.st,
		meter:    e.meter,
		registry: e.registry,
	}
	if err := reg.program.Construct(child, args); err != nil {
		return domain.Address{}, err
	}
	return addr, nil
}

// deploy allocates the next contract address of creator and installs code.
func (s *state) deploy(creator domain.Address, code string) (domain.Address, error) {
	acct, err := s.account(creator)
	if err != nil {
		return domain.Address{}, err
	}
	addr := contractAddress(creator, acct.Nonce)
	acct.Nonce++
	if err := s.putAccount(creator, acct); err != nil {
		return domain.Address{}, err
	}
	target, err := s.account(addr)
	if err != nil {
		return domain.Address{}, err
	}
	target.Code = code
	return addr, s.putAccount(addr, target)
}

// contractAddress is keccak256(creator || nonce)[12:].
func contractAddress(creator domain.Address, nonce uint64) domain.Address {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)
	return domain.BytesToAddress(crypto.Keccak256(creator.Slice(), n[:]))
}

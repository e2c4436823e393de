// Package provider binds a chain connection to a signer.
//
// A Provider is an explicit value rather than process-wide state: several
// callers may hold different providers, and each carries its own timeout.
// Transactions from accounts the signer holds are signed locally and sent
// raw; any other sender is left to the chain to sign.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"crowdfund/internal/contracts"
	"crowdfund/internal/crypto"
	"crowdfund/internal/domain"
)

// DefaultTimeout bounds every chain round-trip when none is configured.
const DefaultTimeout = 30 * time.Second

// Options tune a Provider.
type Options struct {
	Timeout  time.Duration
	Gas      uint64   // default gas limit; zero lets the chain decide
	GasPrice *big.Int // default gas price; nil uses the chain's price
}

// Provider sends calls and transactions through a domain.Chain.
type Provider struct {
	chain  domain.Chain
	signer domain.Signer
	opts   Options

	mu      sync.Mutex // serializes nonce lookup and submission
	chainID uint64
}

var _ contracts.Backend = (*Provider)(nil)

// New returns a provider. signer may be nil.
func New(chain domain.Chain, signer domain.Signer, opts Options) *Provider {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Provider{chain: chain, signer: signer, opts: opts}
}

// Chain returns the underlying connection.
func (p *Provider) Chain() domain.Chain { return p.chain }

// Accounts lists the signer's accounts, or the chain's own when there is no
// signer.
func (p *Provider) Accounts(ctx context.Context) ([]domain.Address, error) {
	if p.signer != nil {
		return p.signer.Accounts(), nil
	}
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	accts, err := p.chain.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accts, nil
}

// DefaultAccount returns the first account.
func (p *Provider) DefaultAccount(ctx context.Context) (domain.Address, error) {
	accts, err := p.Accounts(ctx)
	if err != nil {
		return domain.Address{}, err
	}
	if len(accts) == 0 {
		return domain.Address{}, fmt.Errorf("no accounts available")
	}
	return accts[0], nil
}

// Balance returns the balance of addr.
func (p *Provider) Balance(ctx context.Context, addr domain.Address) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	return p.chain.Balance(ctx, addr)
}

// Call performs a read-only call.
func (p *Provider) Call(ctx context.Context, msg domain.CallMsg) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	return p.chain.Call(ctx, msg)
}

// Transact submits a transaction and waits for its receipt.
func (p *Provider) Transact(ctx context.Context, opts contracts.TransactOpts, to *domain.Address, input domain.TxInput) (domain.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	gas := opts.Gas
	if gas == 0 {
		gas = p.opts.Gas
	}
	if !p.holds(opts.From) {
		return p.chain.SendTransaction(ctx, domain.CallMsg{
			From:     opts.From,
			To:       to,
			Value:    opts.Value,
			Gas:      gas,
			GasPrice: p.opts.GasPrice,
			Input:    input,
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	chainID, err := p.loadChainID(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}
	nonce, err := p.chain.Nonce(ctx, opts.From)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("nonce for %s: %w", opts.From, err)
	}
	value := opts.Value
	if value == nil {
		value = new(big.Int)
	}
	gasPrice := p.opts.GasPrice
	if gasPrice == nil {
		if gasPrice, err = p.chain.GasPrice(ctx); err != nil {
			return domain.Receipt{}, fmt.Errorf("gas price: %w", err)
		}
	}
	stx, err := p.signer.SignTransaction(opts.From, domain.Transaction{
		ChainID:  chainID,
		Nonce:    nonce,
		To:       to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Input:    input,
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return p.chain.SendRawTransaction(ctx, stx)
}

func (p *Provider) holds(addr domain.Address) bool {
	if p.signer == nil {
		return false
	}
	for _, a := range p.signer.Accounts() {
		if a == addr {
			return true
		}
	}
	return false
}

func (p *Provider) loadChainID(ctx context.Context) (uint64, error) {
	if p.chainID != 0 {
		return p.chainID, nil
	}
	id, err := p.chain.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("chain id: %w", err)
	}
	p.chainID = id
	return id, nil
}

// KeySigner signs with an in-memory set of keys.
type KeySigner struct {
	accounts []domain.Address
	keys     map[domain.Address]domain.PrivateKey
}

var _ domain.Signer = (*KeySigner)(nil)

// NewKeySigner builds a signer over keys, in order.
func NewKeySigner(keys ...domain.PrivateKey) (*KeySigner, error) {
	s := &KeySigner{keys: make(map[domain.Address]domain.PrivateKey, len(keys))}
	for _, k := range keys {
		addr, err := crypto.AddressOf(k)
		if err != nil {
			return nil, err
		}
		s.accounts = append(s.accounts, addr)
		s.keys[addr] = k
	}
	return s, nil
}

func (s *KeySigner) Accounts() []domain.Address {
	out := make([]domain.Address, len(s.accounts))
	copy(out, s.accounts)
	return out
}

func (s *KeySigner) SignTransaction(from domain.Address, tx domain.Transaction) (domain.SignedTransaction, error) {
	k, ok := s.keys[from]
	if !ok {
		return domain.SignedTransaction{}, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, from)
	}
	return crypto.SignTransaction(k, tx)
}

// Wipe drops the held keys.
func (s *KeySigner) Wipe() {
	for addr := range s.keys {
		s.keys[addr] = domain.PrivateKey{}
		delete(s.keys, addr)
	}
}

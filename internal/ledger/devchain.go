package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"crowdfund/internal/crypto"
	"crowdfund/internal/domain"
)

// DefaultMnemonic seeds the development accounts when none is configured.
const DefaultMnemonic = "myth like bonus scare over problem client lizard pioneer submit female collect"

// DevConfig configures a DevChain.
type DevConfig struct {
	Path     string // bbolt file
	ChainID  uint64
	Mnemonic string
	Accounts int
	Balance  *big.Int // per account, applied at genesis
	GasPrice *big.Int
	GasLimit uint64
	Logger   *zap.Logger
}

// DefaultDevConfig mirrors the usual local test chain: ten accounts holding
// 100 ether each, zero gas price.
func DefaultDevConfig(path string) DevConfig {
	balance, _ := domain.ToWei("100", "ether")
	return DevConfig{
		Path:     path,
		ChainID:  1337,
		Mnemonic: DefaultMnemonic,
		Accounts: 10,
		Balance:  balance,
		GasPrice: new(big.Int),
		GasLimit: DefaultGasLimit,
	}
}

// DevChain is a Ledger with unlocked accounts. It implements domain.Chain.
type DevChain struct {
	*Ledger

	mu       sync.Mutex // serializes nonce assignment for held accounts
	accounts []domain.Address
	keys     map[domain.Address]domain.PrivateKey
}

var _ domain.Chain = (*DevChain)(nil)

// NewDevChain opens a ledger at cfg.Path and unlocks the derived accounts.
func NewDevChain(cfg DevConfig) (*DevChain, error) {
	keys, err := crypto.DeriveAccounts(cfg.Mnemonic, cfg.Accounts)
	if err != nil {
		return nil, fmt.Errorf("dev accounts: %w", err)
	}
	dc := &DevChain{keys: make(map[domain.Address]domain.PrivateKey, len(keys))}
	alloc := make(map[domain.Address]*big.Int, len(keys))
	for _, k := range keys {
		addr, err := crypto.AddressOf(k)
		if err != nil {
			return nil, err
		}
		dc.accounts = append(dc.accounts, addr)
		dc.keys[addr] = k
		alloc[addr] = orZero(cfg.Balance)
	}

	var opts []Option
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger))
	}
	l, err := Open(cfg.Path, Genesis{
		ChainID:  cfg.ChainID,
		Alloc:    alloc,
		GasPrice: cfg.GasPrice,
		GasLimit: cfg.GasLimit,
	}, opts...)
	if err != nil {
		return nil, err
	}
	dc.Ledger = l
	return dc, nil
}

// Close drops held keys and closes the ledger.
func (d *DevChain) Close() error {
	d.mu.Lock()
	for addr := range d.keys {
		d.keys[addr] = domain.PrivateKey{}
		delete(d.keys, addr)
	}
	d.mu.Unlock()
	return d.Ledger.Close()
}

func (d *DevChain) ChainID(ctx context.Context) (uint64, error) {
	return d.Ledger.ChainID(), ctx.Err()
}

func (d *DevChain) Accounts(ctx context.Context) ([]domain.Address, error) {
	out := make([]domain.Address, len(d.accounts))
	copy(out, d.accounts)
	return out, ctx.Err()
}

func (d *DevChain) BlockNumber(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return d.Ledger.BlockNumber()
}

func (d *DevChain) Balance(ctx context.Context, addr domain.Address) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	acct, err := d.Account(addr)
	if err != nil {
		return nil, err
	}
	return acct.Balance, nil
}

func (d *DevChain) Nonce(ctx context.Context, addr domain.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	acct, err := d.Account(addr)
	if err != nil {
		return 0, err
	}
	return acct.Nonce, nil
}

func (d *DevChain) GasPrice(ctx context.Context) (*big.Int, error) {
	return d.Ledger.GasPrice(), ctx.Err()
}

func (d *DevChain) Call(ctx context.Context, msg domain.CallMsg) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Ledger.Call(msg)
}

// SendTransaction signs msg with the held key of msg.From and applies it.
func (d *DevChain) SendTransaction(ctx context.Context, msg domain.CallMsg) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	key, ok := d.keys[msg.From]
	if !ok {
		return domain.Receipt{}, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, msg.From)
	}
	acct, err := d.Account(msg.From)
	if err != nil {
		return domain.Receipt{}, err
	}
	gasPrice := msg.GasPrice
	if gasPrice == nil {
		gasPrice = d.Ledger.GasPrice()
	}
	stx, err := crypto.SignTransaction(key, domain.Transaction{
		ChainID:  d.Ledger.ChainID(),
		Nonce:    acct.Nonce,
		To:       msg.To,
		Value:    orZero(msg.Value),
		Gas:      msg.Gas,
		GasPrice: gasPrice,
		Input:    msg.Input,
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return d.Apply(stx)
}

func (d *DevChain) SendRawTransaction(ctx context.Context, stx domain.SignedTransaction) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}
	return d.Apply(stx)
}

func (d *DevChain) Receipt(ctx context.Context, h domain.Hash) (domain.Receipt, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, false, err
	}
	return d.Ledger.Receipt(h)
}

package ledger

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"crowdfund/internal/crypto"
	"crowdfund/internal/domain"
)

// errRollback aborts a bbolt transaction after a simulated call.
var errRollback = errors.New("rollback")

// Genesis describes the initial chain state. It is applied only when the
// database is new.
type Genesis struct {
	ChainID  uint64
	Alloc    map[domain.Address]*big.Int
	GasPrice *big.Int // default gas price; nil means zero
	GasLimit uint64   // default per-transaction gas limit
}

// Ledger executes transactions against bbolt-backed state.
type Ledger struct {
	db       *bbolt.DB
	chainID  uint64
	gasPrice *big.Int
	gasLimit uint64
	registry *Registry
	log      *zap.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the ledger logger.
func WithLogger(l *zap.Logger) Option { return func(led *Ledger) { led.log = l } }

// WithRegistry replaces the default program registry.
func WithRegistry(r *Registry) Option { return func(led *Ledger) { led.registry = r } }

// Open opens or creates the ledger database at path.
func Open(path string, g Genesis, opts ...Option) (*Ledger, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	l := &Ledger{
		db:       db,
		chainID:  g.ChainID,
		gasPrice: new(big.Int),
		gasLimit: g.GasLimit,
		log:      zap.NewNop(),
	}
	if g.GasPrice != nil {
		l.gasPrice.Set(g.GasPrice)
	}
	if l.gasLimit == 0 {
		l.gasLimit = DefaultGasLimit
	}
	for _, o := range opts {
		o(l)
	}
	if l.registry == nil {
		l.registry = NewRegistry()
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketAccounts, bucketStorage, bucketReceipts, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return l.applyGenesis(tx, g)
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) applyGenesis(tx *bbolt.Tx, g Genesis) error {
	meta := tx.Bucket([]byte(bucketMeta))
	if meta.Get(metaGenesis) != nil {
		stored := binary.BigEndian.Uint64(meta.Get(metaChainID))
		if stored != g.ChainID {
			return fmt.Errorf("ledger was created for chain %d, not %d", stored, g.ChainID)
		}
		return nil
	}
	st := &state{tx: tx}
	for addr, bal := range g.Alloc {
		if err := st.putAccount(addr, domain.Account{Balance: new(big.Int).Set(bal)}); err != nil {
			return err
		}
	}
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], g.ChainID)
	if err := meta.Put(metaChainID, id[:]); err != nil {
		return err
	}
	return meta.Put(metaGenesis, []byte(time.Now().UTC().Format(time.RFC3339)))
}

// Close releases the database.
func (l *Ledger) Close() error { return l.db.Close() }

// ChainID returns the chain identifier.
func (l *Ledger) ChainID() uint64 { return l.chainID }

// GasPrice returns the minimum and default gas price.
func (l *Ledger) GasPrice() *big.Int { return new(big.Int).Set(l.gasPrice) }

// Account returns the ledger record for addr.
func (l *Ledger) Account(addr domain.Address) (domain.Account, error) {
	var acct domain.Account
	err := l.db.View(func(tx *bbolt.Tx) error {
		var err error
		acct, err = (&state{tx: tx}).account(addr)
		return err
	})
	return acct, err
}

// BlockNumber returns the number of the latest block.
func (l *Ledger) BlockNumber() (uint64, error) {
	var n uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		n = (&state{tx: tx}).blockNumber()
		return nil
	})
	return n, err
}

// Receipt looks up a mined transaction.
func (l *Ledger) Receipt(h domain.Hash) (domain.Receipt, bool, error) {
	var (
		r  domain.Receipt
		ok bool
	)
	err := l.db.View(func(tx *bbolt.Tx) error {
		var err error
		r, ok, err = (&state{tx: tx}).receipt(h)
		return err
	})
	return r, ok, err
}

// Apply verifies and executes a signed transaction. On any error the
// ledger is left exactly as it was.
func (l *Ledger) Apply(stx domain.SignedTransaction) (domain.Receipt, error) {
	from, err := crypto.Sender(stx)
	if err != nil {
		return domain.Receipt{}, err
	}
	hash, err := crypto.TransactionHash(stx)
	if err != nil {
		return domain.Receipt{}, err
	}
	tx := stx.Tx
	if tx.ChainID != l.chainID {
		return domain.Receipt{}, fmt.Errorf("%w: got %d, want %d", domain.ErrWrongChain, tx.ChainID, l.chainID)
	}

	var rcpt domain.Receipt
	err = l.db.Update(func(btx *bbolt.Tx) error {
		st := &state{tx: btx}
		if _, seen, err := st.receipt(hash); err != nil {
			return err
		} else if seen {
			return fmt.Errorf("%w: transaction %s already mined", domain.ErrNonceMismatch, hash)
		}
		r, err := l.execute(st, from, tx)
		if err != nil {
			return err
		}
		r.TransactionHash = hash
		if r.BlockNumber, err = st.nextBlock(); err != nil {
			return err
		}
		rcpt = r
		return st.putReceipt(r)
	})
	if err != nil {
		l.log.Debug("transaction rejected",
			zap.String("from", from.Hex()),
			zap.String("method", tx.Input.Method),
			zap.Error(err))
		return domain.Receipt{}, err
	}
	l.log.Info("transaction mined",
		zap.String("hash", rcpt.TransactionHash.Hex()),
		zap.Uint64("block", rcpt.BlockNumber),
		zap.String("from", from.Hex()),
		zap.String("method", tx.Input.Method),
		zap.Uint64("gas_used", rcpt.GasUsed))
	return rcpt, nil
}

// execute runs tx from sender within st.
func (l *Ledger) execute(st *state, from domain.Address, tx domain.Transaction) (domain.Receipt, error) {
	value := orZero(tx.Value)
	gasPrice := l.gasPrice
	if tx.GasPrice != nil {
		if tx.GasPrice.Cmp(l.gasPrice) < 0 {
			return domain.Receipt{}, fmt.Errorf("%w: got %s, want at least %s", domain.ErrGasPriceTooLow, tx.GasPrice, l.gasPrice)
		}
		gasPrice = tx.GasPrice
	}
	limit := tx.Gas
	if limit == 0 {
		limit = l.gasLimit
	}

	sender, err := st.account(from)
	if err != nil {
		return domain.Receipt{}, err
	}
	if sender.Nonce != tx.Nonce {
		return domain.Receipt{}, fmt.Errorf("%w: expected %d, got %d", domain.ErrNonceMismatch, sender.Nonce, tx.Nonce)
	}
	upfront := new(big.Int).Mul(new(big.Int).SetUint64(limit), gasPrice)
	upfront.Add(upfront, value)
	if sender.Balance.Cmp(upfront) < 0 {
		return domain.Receipt{}, domain.ErrInsufficientFunds
	}

	m := &meter{limit: limit}
	if err := m.consume(gasTx); err != nil {
		return domain.Receipt{}, err
	}

	rcpt := domain.Receipt{From: from}
	if tx.Input.IsCreate() {
		addr, err := l.create(st, m, from, value, tx.Input)
		if err != nil {
			return domain.Receipt{}, err
		}
		rcpt.ContractAddress = &addr
	} else {
		if tx.To == nil {
			return domain.Receipt{}, errors.New("transaction has neither a recipient nor contract code")
		}
		sender.Nonce++
		if err := st.putAccount(from, sender); err != nil {
			return domain.Receipt{}, err
		}
		ret, err := l.call(st, m, from, *tx.To, value, tx.Input)
		if err != nil {
			return domain.Receipt{}, err
		}
		to := *tx.To
		rcpt.To = &to
		rcpt.Return = ret
	}

	fee := new(big.Int).Mul(new(big.Int).SetUint64(m.used), gasPrice)
	if err := st.debit(from, fee); err != nil {
		return domain.Receipt{}, err
	}
	rcpt.GasUsed = m.used
	return rcpt, nil
}

func (l *Ledger) create(st *state, m *meter, from domain.Address, value *big.Int, in domain.TxInput) (domain.Address, error) {
	reg, err := l.registry.lookup(in.Code)
	if err != nil {
		return domain.Address{}, err
	}
	if err := m.consume(gasCreate); err != nil {
		return domain.Address{}, err
	}
	_, args, err := reg.decode(in, value.Sign() > 0)
	if err != nil {
		return domain.Address{}, err
	}
	addr, err := st.deploy(from, in.Code)
	if err != nil {
		return domain.Address{}, err
	}
	if err := st.transfer(from, addr, value); err != nil {
		return domain.Address{}, err
	}
	env := &Env{Sender: from, Value: value, Self: addr, st: st, meter: m, registry: l.registry}
	if err := reg.program.Construct(env, args); err != nil {
		return domain.Address{}, err
	}
	return addr, nil
}

func (l *Ledger) call(st *state, m *meter, from, to domain.Address, value *big.Int, in domain.TxInput) (json.RawMessage, error) {
	target, err := st.account(to)
	if err != nil {
		return nil, err
	}
	if !target.IsContract() {
		if in.Method != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoContract, to)
		}
		return nil, st.transfer(from, to, value)
	}
	reg, err := l.registry.lookup(target.Code)
	if err != nil {
		return nil, err
	}
	if err := m.consume(gasCall); err != nil {
		return nil, err
	}
	_, args, err := reg.decode(in, value.Sign() > 0)
	if err != nil {
		return nil, err
	}
	if err := st.transfer(from, to, value); err != nil {
		return nil, err
	}
	env := &Env{Sender: from, Value: value, Self: to, st: st, meter: m, registry: l.registry}
	out, err := reg.program.Invoke(env, in.Method, args)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return json.Marshal(out)
}

// Call executes msg without persisting anything and returns the method's
// JSON result. Mutating methods are simulated and rolled back.
func (l *Ledger) Call(msg domain.CallMsg) (json.RawMessage, error) {
	if msg.To == nil {
		return nil, errors.New("call has no target address")
	}
	limit := msg.Gas
	if limit == 0 {
		limit = l.gasLimit
	}
	var out json.RawMessage
	err := l.db.Update(func(btx *bbolt.Tx) error {
		st := &state{tx: btx}
		res, err := l.call(st, &meter{limit: limit}, msg.From, *msg.To, orZero(msg.Value), msg.Input)
		if err != nil {
			return err
		}
		out = res
		return errRollback
	})
	if errors.Is(err, errRollback) {
		return out, nil
	}
	return nil, err
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

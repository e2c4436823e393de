package ledger

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"

	"go.etcd.io/bbolt"

	"crowdfund/internal/domain"
)

const (
	bucketAccounts = "accounts" // key: address -> Account JSON
	bucketStorage  = "storage"  // key: address -> program state JSON
	bucketReceipts = "receipts" // key: tx hash -> Receipt JSON
	bucketMeta     = "meta"     // key: name -> value
)

var (
	metaBlock   = []byte("block")
	metaGenesis = []byte("genesis")
	metaChainID = []byte("chain_id")
)

// state is the view of the ledger inside one bbolt transaction.
type state struct {
	tx *bbolt.Tx
}

func (s *state) account(addr domain.Address) (domain.Account, error) {
	var acct domain.Account
	raw := s.tx.Bucket([]byte(bucketAccounts)).Get(addr.Slice())
	if raw != nil {
		if err := json.Unmarshal(raw, &acct); err != nil {
			return acct, fmt.Errorf("decode account %s: %w", addr, err)
		}
	}
	if acct.Balance == nil {
		acct.Balance = new(big.Int)
	}
	return acct, nil
}

func (s *state) putAccount(addr domain.Address, acct domain.Account) error {
	b, err := json.Marshal(acct)
	if err != nil {
		return err
	}
	return s.tx.Bucket([]byte(bucketAccounts)).Put(addr.Slice(), b)
}

func (s *state) balance(addr domain.Address) (*big.Int, error) {
	acct, err := s.account(addr)
	if err != nil {
		return nil, err
	}
	return acct.Balance, nil
}

// transfer moves amount between accounts.
func (s *state) transfer(from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	src, err := s.account(from)
	if err != nil {
		return err
	}
	if src.Balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	src.Balance.Sub(src.Balance, amount)
	if err := s.putAccount(from, src); err != nil {
		return err
	}
	dst, err := s.account(to)
	if err != nil {
		return err
	}
	dst.Balance.Add(dst.Balance, amount)
	return s.putAccount(to, dst)
}

func (s *state) debit(addr domain.Address, amount *big.Int) error {
	acct, err := s.account(addr)
	if err != nil {
		return err
	}
	if acct.Balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	acct.Balance.Sub(acct.Balance, amount)
	return s.putAccount(addr, acct)
}

func (s *state) storage(addr domain.Address, out any) error {
	raw := s.tx.Bucket([]byte(bucketStorage)).Get(addr.Slice())
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (s *state) putStorage(addr domain.Address, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.tx.Bucket([]byte(bucketStorage)).Put(addr.Slice(), b)
}

func (s *state) blockNumber() uint64 {
	raw := s.tx.Bucket([]byte(bucketMeta)).Get(metaBlock)
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

func (s *state) nextBlock() (uint64, error) {
	n := s.blockNumber() + 1
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return n, s.tx.Bucket([]byte(bucketMeta)).Put(metaBlock, buf[:])
}

func (s *state) putReceipt(r domain.Receipt) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.tx.Bucket([]byte(bucketReceipts)).Put(r.TransactionHash.Slice(), b)
}

func (s *state) receipt(h domain.Hash) (domain.Receipt, bool, error) {
	raw := s.tx.Bucket([]byte(bucketReceipts)).Get(h.Slice())
	if raw == nil {
		return domain.Receipt{}, false, nil
	}
	var r domain.Receipt
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.Receipt{}, false, err
	}
	return r, true, nil
}

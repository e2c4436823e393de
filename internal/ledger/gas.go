package ledger

import "crowdfund/internal/domain"

// Gas schedule. Only the relative order of magnitude matters; it keeps
// limits such as the customary 3,000,000 meaningful.
const (
	gasTx       uint64 = 21000
	gasCreate   uint64 = 32000
	gasCall     uint64 = 700
	gasStore    uint64 = 20000
	gasTransfer uint64 = 9000

	// DefaultGasLimit applies when a transaction does not set gas.
	DefaultGasLimit uint64 = 6721975
)

type meter struct {
	limit uint64
	used  uint64
}

func (m *meter) consume(n uint64) error {
	if m.used+n > m.limit {
		m.used = m.limit
		return domain.ErrOutOfGas
	}
	m.used += n
	return nil
}

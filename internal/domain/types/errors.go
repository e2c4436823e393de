package types

import "errors"

const vmException = "VM Exception while processing transaction"

// VMError is a failure raised while executing contract code. Its message
// reproduces the wording of the development chain verbatim, because callers
// and tests match on it.
type VMError struct {
	Op     string // "revert", "invalid opcode", "out of gas"
	Reason string // optional revert reason
}

func (e *VMError) Error() string {
	msg := vmException + ": " + e.Op
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	return msg
}

// Is matches another VMError with the same Op; an empty target Reason
// matches any reason.
func (e *VMError) Is(target error) bool {
	t, ok := target.(*VMError)
	if !ok {
		return false
	}
	return t.Op == e.Op && (t.Reason == "" || t.Reason == e.Reason)
}

// Revert returns a revert error carrying reason (may be empty).
func Revert(reason string) error { return &VMError{Op: "revert", Reason: reason} }

var (
	// ErrRevert matches every revert, regardless of reason.
	ErrRevert = &VMError{Op: "revert"}
	// ErrInvalidOpcode is raised on out-of-range array access.
	ErrInvalidOpcode = &VMError{Op: "invalid opcode"}
	// ErrOutOfGas is raised when execution exceeds the transaction gas limit.
	ErrOutOfGas = &VMError{Op: "out of gas"}

	ErrInsufficientFunds = errors.New("sender doesn't have enough funds to send tx")
	ErrNonceMismatch     = errors.New("the tx doesn't have the correct nonce")
	ErrUnknownAccount    = errors.New("sender account not recognized")
	ErrUnknownCode       = errors.New("contract code is not recognized by this chain")
	ErrWrongChain        = errors.New("transaction chain id does not match")
	ErrNoContract        = errors.New("no contract code at address")
	ErrGasPriceTooLow    = errors.New("transaction gas price is below the node minimum")
)

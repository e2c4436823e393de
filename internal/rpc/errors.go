package rpc

import (
	"errors"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeServer         = -32000
)

const kindVM = "vm"

// Error is a JSON-RPC error object.
type Error struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    *ErrorData `json:"data,omitempty"`
}

// ErrorData classifies a server error.
type ErrorData struct {
	Kind   string `json:"kind"`
	Op     string `json:"op,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the sentinel named by data.kind, if any.
func (e *Error) Unwrap() error {
	if e.Data == nil {
		return nil
	}
	for _, k := range kinds {
		if k.name == e.Data.Kind {
			return k.err
		}
	}
	return nil
}

var kinds = []struct {
	name string
	err  error
}{
	{"insufficient_funds", domain.ErrInsufficientFunds},
	{"nonce", domain.ErrNonceMismatch},
	{"unknown_account", domain.ErrUnknownAccount},
	{"unknown_code", domain.ErrUnknownCode},
	{"wrong_chain", domain.ErrWrongChain},
	{"no_contract", domain.ErrNoContract},
	{"gas_price", domain.ErrGasPriceTooLow},
	{"invalid_arguments", contracts.ErrInvalidArguments},
}

func invalidParams(msg string) *Error {
	return &Error{Code: CodeInvalidParams, Message: msg}
}

// toWire converts a chain error into its JSON-RPC form.
func toWire(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	var vm *domain.VMError
	if errors.As(err, &vm) {
		return &Error{
			Code:    CodeServer,
			Message: vm.Error(),
			Data:    &ErrorData{Kind: kindVM, Op: vm.Op, Reason: vm.Reason},
		}
	}
	var argErr *contracts.ArgumentError
	if errors.As(err, &argErr) {
		return &Error{Code: CodeServer, Message: err.Error(), Data: &ErrorData{Kind: "invalid_arguments"}}
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return &Error{Code: CodeServer, Message: err.Error(), Data: &ErrorData{Kind: k.name}}
		}
	}
	return &Error{Code: CodeServer, Message: err.Error()}
}

// fromWire restores the typed error carried by e. Contract failures come
// back as *domain.VMError with the original wording.
func fromWire(e *Error) error {
	if e.Data != nil && e.Data.Kind == kindVM {
		return &domain.VMError{Op: e.Data.Op, Reason: e.Data.Reason}
	}
	return e
}

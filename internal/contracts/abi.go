package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"crowdfund/internal/domain"
)

// ErrInvalidArguments is returned when a call carries the wrong number of
// arguments for its method.
var ErrInvalidArguments = errors.New("invalid number of parameters")

// maxUint256 bounds uint256 arguments.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Param is one ABI input or output.
type Param struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Components []Param `json:"components,omitempty"`
}

// Entry is a constructor or function in an ABI.
type Entry struct {
	Type            string  `json:"type"`
	Name            string  `json:"name,omitempty"`
	Inputs          []Param `json:"inputs"`
	Outputs         []Param `json:"outputs,omitempty"`
	StateMutability string  `json:"stateMutability"`
}

// Payable reports whether the entry accepts value.
func (e Entry) Payable() bool { return e.StateMutability == "payable" }

// ReadOnly reports whether the entry is a view or pure function.
func (e Entry) ReadOnly() bool {
	return e.StateMutability == "view" || e.StateMutability == "pure"
}

// ABI is the list of entries of a contract.
type ABI []Entry

// Method finds a function by name.
func (a ABI) Method(name string) (Entry, bool) {
	for _, e := range a {
		if e.Type == "function" && e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Constructor returns the constructor entry, or an empty one.
func (a ABI) Constructor() Entry {
	for _, e := range a {
		if e.Type == "constructor" {
			return e
		}
	}
	return Entry{Type: "constructor", StateMutability: "nonpayable"}
}

// ArgumentError reports an argument that does not match its ABI type.
type ArgumentError struct {
	Method string
	Index  int
	Param  Param
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %d (%s %s): %v", e.Method, e.Index, e.Param.Type, e.Param.Name, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func (e Entry) label() string {
	if e.Type == "constructor" {
		return "constructor"
	}
	return e.Name
}

// EncodeArgs converts Go values to wire arguments after checking them
// against the entry inputs. uint256 accepts *big.Int, integer kinds and
// decimal strings; address accepts domain.Address and hex strings.
func (e Entry) EncodeArgs(args ...any) ([]json.RawMessage, error) {
	if len(args) != len(e.Inputs) {
		return nil, fmt.Errorf("%w for %q: got %d expected %d", ErrInvalidArguments, e.label(), len(args), len(e.Inputs))
	}
	out := make([]json.RawMessage, len(args))
	for i, p := range e.Inputs {
		v, err := normalize(p.Type, args[i])
		if err != nil {
			return nil, &ArgumentError{Method: e.label(), Index: i, Param: p, Err: err}
		}
		b, err := json.Marshal(wireValue(v))
		if err != nil {
			return nil, &ArgumentError{Method: e.label(), Index: i, Param: p, Err: err}
		}
		out[i] = b
	}
	return out, nil
}

// DecodeArgs checks wire arguments against the entry inputs and returns
// typed values: *big.Int, domain.Address, string, bool or []domain.Address.
func (e Entry) DecodeArgs(raw []json.RawMessage) ([]any, error) {
	if len(raw) != len(e.Inputs) {
		return nil, fmt.Errorf("%w for %q: got %d expected %d", ErrInvalidArguments, e.label(), len(raw), len(e.Inputs))
	}
	out := make([]any, len(raw))
	for i, p := range e.Inputs {
		dec := json.NewDecoder(bytes.NewReader(raw[i]))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, &ArgumentError{Method: e.label(), Index: i, Param: p, Err: err}
		}
		typed, err := normalize(p.Type, v)
		if err != nil {
			return nil, &ArgumentError{Method: e.label(), Index: i, Param: p, Err: err}
		}
		out[i] = typed
	}
	return out, nil
}

// normalize coerces v into the Go representation of an ABI type.
func normalize(typ string, v any) (any, error) {
	switch {
	case typ == "uint256":
		return toUint256(v)
	case typ == "address":
		return toAddress(v)
	case typ == "string":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", v)
		}
		return s, nil
	case typ == "bool":
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool, got %T", v)
		}
		return b, nil
	case typ == "address[]":
		return toAddresses(v)
	default:
		return nil, fmt.Errorf("unsupported abi type %q", typ)
	}
}

func toUint256(v any) (*big.Int, error) {
	var n *big.Int
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, errors.New("nil integer")
		}
		n = new(big.Int).Set(x)
	case int:
		n = big.NewInt(int64(x))
	case int64:
		n = big.NewInt(x)
	case uint64:
		n = new(big.Int).SetUint64(x)
	case json.Number:
		parsed, ok := new(big.Int).SetString(x.String(), 10)
		if !ok {
			return nil, fmt.Errorf("%s is not an integer", x)
		}
		n = parsed
	case string:
		parsed, ok := new(big.Int).SetString(strings.TrimSpace(x), 10)
		if !ok {
			return nil, fmt.Errorf("%q is not a decimal integer", x)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("want uint256, got %T", v)
	}
	if n.Sign() < 0 || n.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("%s is out of uint256 range", n)
	}
	return n, nil
}

func toAddress(v any) (domain.Address, error) {
	switch x := v.(type) {
	case domain.Address:
		return x, nil
	case string:
		return domain.ParseAddress(x)
	default:
		return domain.Address{}, fmt.Errorf("want address, got %T", v)
	}
}

func toAddresses(v any) ([]domain.Address, error) {
	switch x := v.(type) {
	case []domain.Address:
		return x, nil
	case []any:
		out := make([]domain.Address, len(x))
		for i := range x {
			a, err := toAddress(x[i])
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	default:
		return nil, fmt.Errorf("want address[], got %T", v)
	}
}

// wireValue renders uint256 values as decimal strings so that no JSON
// consumer rounds them through float64.
func wireValue(v any) any {
	if n, ok := v.(*big.Int); ok {
		return n.String()
	}
	return v
}

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"crowdfund/internal/domain"
)

// maxRequestBytes bounds a request body.
const maxRequestBytes = 1 << 20

type handlerFunc func(ctx context.Context, params []json.RawMessage) (any, error)

// Server exposes a domain.Chain as a JSON-RPC endpoint.
type Server struct {
	chain   domain.Chain
	log     *zap.Logger
	methods map[string]handlerFunc
}

// NewServer returns an http.Handler serving chain. log may be nil.
func NewServer(chain domain.Chain, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{chain: chain, log: log}
	s.methods = map[string]handlerFunc{
		"eth_chainId":               s.chainID,
		"eth_accounts":              s.accounts,
		"eth_blockNumber":           s.blockNumber,
		"eth_getBalance":            s.getBalance,
		"eth_getTransactionCount":   s.getTransactionCount,
		"eth_gasPrice":              s.gasPrice,
		"eth_call":                  s.call,
		"eth_sendTransaction":       s.sendTransaction,
		"eth_sendRawTransaction":    s.sendRawTransaction,
		"eth_getTransactionReceipt": s.getTransactionReceipt,
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.write(w, nil, nil, &Error{Code: CodeParseError, Message: "parse error: " + err.Error()})
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		s.write(w, req.ID, nil, &Error{Code: CodeInvalidRequest, Message: "invalid request"})
		return
	}
	h, ok := s.methods[req.Method]
	if !ok {
		s.write(w, req.ID, nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("the method %s does not exist/is not available", req.Method)})
		return
	}

	var params []json.RawMessage
	if len(req.Params) > 0 && string(req.Params) != "null" {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.write(w, req.ID, nil, invalidParams("params must be an array"))
			return
		}
	}

	result, err := h(r.Context(), params)
	if err != nil {
		wire := toWire(err)
		s.log.Debug("rpc call failed",
			zap.String("method", req.Method),
			zap.Int("code", wire.Code),
			zap.String("message", wire.Message))
		s.write(w, req.ID, nil, wire)
		return
	}
	s.write(w, req.ID, result, nil)
}

func (s *Server) write(w http.ResponseWriter, id json.RawMessage, result any, rpcErr *Error) {
	resp := response{JSONRPC: "2.0", ID: id, Error: rpcErr}
	if id == nil {
		resp.ID = json.RawMessage("null")
	}
	if rpcErr == nil {
		b, err := json.Marshal(result)
		if err != nil {
			resp.Error = &Error{Code: CodeInternal, Message: err.Error()}
		} else {
			resp.Result = b
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Warn("write rpc response", zap.Error(err))
	}
}

// param decodes params[i] into out. Positions at or past required may be
// absent.
func param(params []json.RawMessage, i, required int, out any) error {
	if i >= len(params) {
		if i < required {
			return invalidParams(fmt.Sprintf("missing value for required argument %d", i))
		}
		return nil
	}
	if err := json.Unmarshal(params[i], out); err != nil {
		return invalidParams(fmt.Sprintf("invalid argument %d: %v", i, err))
	}
	return nil
}

func (s *Server) chainID(ctx context.Context, _ []json.RawMessage) (any, error) {
	id, err := s.chain.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	return encodeUint(id), nil
}

func (s *Server) accounts(ctx context.Context, _ []json.RawMessage) (any, error) {
	accts, err := s.chain.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	if accts == nil {
		accts = []domain.Address{}
	}
	return accts, nil
}

func (s *Server) blockNumber(ctx context.Context, _ []json.RawMessage) (any, error) {
	n, err := s.chain.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	return encodeUint(n), nil
}

func (s *Server) gasPrice(ctx context.Context, _ []json.RawMessage) (any, error) {
	price, err := s.chain.GasPrice(ctx)
	if err != nil {
		return nil, err
	}
	return encodeBig(price), nil
}

func (s *Server) getBalance(ctx context.Context, params []json.RawMessage) (any, error) {
	var addr domain.Address
	if err := param(params, 0, 1, &addr); err != nil {
		return nil, err
	}
	bal, err := s.chain.Balance(ctx, addr)
	if err != nil {
		return nil, err
	}
	return encodeBig(bal), nil
}

func (s *Server) getTransactionCount(ctx context.Context, params []json.RawMessage) (any, error) {
	var addr domain.Address
	if err := param(params, 0, 1, &addr); err != nil {
		return nil, err
	}
	n, err := s.chain.Nonce(ctx, addr)
	if err != nil {
		return nil, err
	}
	return encodeUint(n), nil
}

func (s *Server) call(ctx context.Context, params []json.RawMessage) (any, error) {
	var msg domain.CallMsg
	if err := param(params, 0, 1, &msg); err != nil {
		return nil, err
	}
	out, err := s.chain.Call(ctx, msg)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out, nil
}

func (s *Server) sendTransaction(ctx context.Context, params []json.RawMessage) (any, error) {
	var msg domain.CallMsg
	if err := param(params, 0, 1, &msg); err != nil {
		return nil, err
	}
	r, err := s.chain.SendTransaction(ctx, msg)
	if err != nil {
		return nil, err
	}
	return r.TransactionHash, nil
}

func (s *Server) sendRawTransaction(ctx context.Context, params []json.RawMessage) (any, error) {
	var stx domain.SignedTransaction
	if err := param(params, 0, 1, &stx); err != nil {
		return nil, err
	}
	r, err := s.chain.SendRawTransaction(ctx, stx)
	if err != nil {
		return nil, err
	}
	return r.TransactionHash, nil
}

func (s *Server) getTransactionReceipt(ctx context.Context, params []json.RawMessage) (any, error) {
	var h domain.Hash
	if err := param(params, 0, 1, &h); err != nil {
		return nil, err
	}
	r, ok, err := s.chain.Receipt(ctx, h)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return r, nil
}

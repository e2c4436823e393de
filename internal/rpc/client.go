package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/google/uuid"

	"crowdfund/internal/domain"
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Client is a domain.Chain reached over HTTP.
type Client struct {
	URL  string
	HTTP *http.Client
}

var _ domain.Chain = (*Client)(nil)

// NewClient returns a client for the node at url. hc may be nil.
func NewClient(url string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{URL: url, HTTP: hc}
}

func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	return c.quantity(ctx, "eth_chainId")
}

func (c *Client) Accounts(ctx context.Context) ([]domain.Address, error) {
	var out []domain.Address
	if err := c.call(ctx, &out, "eth_accounts"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.quantity(ctx, "eth_blockNumber")
}

func (c *Client) Balance(ctx context.Context, addr domain.Address) (*big.Int, error) {
	var s string
	if err := c.call(ctx, &s, "eth_getBalance", addr, "latest"); err != nil {
		return nil, err
	}
	return decodeBig(s)
}

func (c *Client) Nonce(ctx context.Context, addr domain.Address) (uint64, error) {
	return c.quantity(ctx, "eth_getTransactionCount", addr, "latest")
}

func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	var s string
	if err := c.call(ctx, &s, "eth_gasPrice"); err != nil {
		return nil, err
	}
	return decodeBig(s)
}

func (c *Client) Call(ctx context.Context, msg domain.CallMsg) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.call(ctx, &out, "eth_call", msg, "latest"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendTransaction(ctx context.Context, msg domain.CallMsg) (domain.Receipt, error) {
	var h domain.Hash
	if err := c.call(ctx, &h, "eth_sendTransaction", msg); err != nil {
		return domain.Receipt{}, err
	}
	return c.mined(ctx, h)
}

func (c *Client) SendRawTransaction(ctx context.Context, stx domain.SignedTransaction) (domain.Receipt, error) {
	var h domain.Hash
	if err := c.call(ctx, &h, "eth_sendRawTransaction", stx); err != nil {
		return domain.Receipt{}, err
	}
	return c.mined(ctx, h)
}

func (c *Client) Receipt(ctx context.Context, h domain.Hash) (domain.Receipt, bool, error) {
	var r *domain.Receipt
	if err := c.call(ctx, &r, "eth_getTransactionReceipt", h); err != nil {
		return domain.Receipt{}, false, err
	}
	if r == nil {
		return domain.Receipt{}, false, nil
	}
	return *r, true, nil
}

// mined fetches the receipt of a transaction the node just accepted. The
// node mines on submission, so a missing receipt is an error.
func (c *Client) mined(ctx context.Context, h domain.Hash) (domain.Receipt, error) {
	r, ok, err := c.Receipt(ctx, h)
	if err != nil {
		return domain.Receipt{}, err
	}
	if !ok {
		return domain.Receipt{}, fmt.Errorf("rpc: no receipt for accepted transaction %s", h)
	}
	return r, nil
}

func (c *Client) quantity(ctx context.Context, method string, params ...any) (uint64, error) {
	var s string
	if err := c.call(ctx, &s, method, params...); err != nil {
		return 0, err
	}
	n, err := decodeUint(s)
	if err != nil {
		return 0, fmt.Errorf("rpc %s: %w", method, err)
	}
	return n, nil
}

func (c *Client) call(ctx context.Context, out any, method string, params ...any) error {
	if params == nil {
		params = []any{}
	}
	p, err := json.Marshal(params)
	if err != nil {
		return err
	}
	id, err := json.Marshal(uuid.NewString())
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(request{JSONRPC: "2.0", ID: id, Method: method, Params: p}); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %s: %w", method, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("rpc %s: %s", method, resp.Status)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("rpc %s: decode response: %w", method, err)
	}
	if r.Error != nil {
		return fromWire(r.Error)
	}
	if !bytes.Equal(r.ID, id) {
		return fmt.Errorf("rpc %s: response id %s does not match request", method, r.ID)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(r.Result, out); err != nil {
		return fmt.Errorf("rpc %s: decode result: %w", method, err)
	}
	return nil
}

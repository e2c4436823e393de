package rpc

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

func encodeUint(n uint64) string { return "0x" + strconv.FormatUint(n, 16) }

func decodeUint(s string) (uint64, error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok || digits == "" {
		return 0, fmt.Errorf("quantity %q lacks 0x prefix", s)
	}
	return strconv.ParseUint(digits, 16, 64)
}

func encodeBig(n *big.Int) string {
	if n == nil {
		return "0x0"
	}
	return "0x" + n.Text(16)
}

func decodeBig(s string) (*big.Int, error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok || digits == "" {
		return nil, fmt.Errorf("quantity %q lacks 0x prefix", s)
	}
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("quantity %q is not hex", s)
	}
	return n, nil
}

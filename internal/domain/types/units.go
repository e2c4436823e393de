package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Denominations in wei, keyed by unit name.
var units = map[string]int{
	"wei":    0,
	"kwei":   3,
	"mwei":   6,
	"gwei":   9,
	"szabo":  12,
	"finney": 15,
	"ether":  18,
}

// ParseWei parses a non-negative decimal integer amount of wei.
func ParseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative wei amount %q", s)
	}
	return v, nil
}

// ToWei converts a decimal amount expressed in unit into wei. Fractions finer
// than one wei are rejected.
func ToWei(amount, unit string) (*big.Int, error) {
	exp, ok := units[strings.ToLower(unit)]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", unit)
	}
	amount = strings.TrimSpace(amount)
	whole, frac, _ := strings.Cut(amount, ".")
	if len(frac) > exp {
		if strings.TrimRight(frac[exp:], "0") != "" {
			return nil, fmt.Errorf("amount %q has more than %d decimals", amount, exp)
		}
		frac = frac[:exp]
	}
	if whole == "" {
		whole = "0"
	}
	return ParseWei(whole + frac + strings.Repeat("0", exp-len(frac)))
}

// FromWei renders wei in unit, trimming trailing zeros of the fraction.
func FromWei(wei *big.Int, unit string) (string, error) {
	exp, ok := units[strings.ToLower(unit)]
	if !ok {
		return "", fmt.Errorf("unknown unit %q", unit)
	}
	if wei == nil {
		return "0", nil
	}
	neg := wei.Sign() < 0
	digits := new(big.Int).Abs(wei).String()
	if len(digits) <= exp {
		digits = strings.Repeat("0", exp-len(digits)+1) + digits
	}
	whole, frac := digits[:len(digits)-exp], strings.TrimRight(digits[len(digits)-exp:], "0")
	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out, nil
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"errors"
	"math/big"
	"strings"
)

// ParseUnits converts a decimal token amount such as "4.99" into base units.
// Fractions finer than TokenDecimals are rejected.
func ParseUnits(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, errors.New("negative amount")
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if hasDot && frac == "" {
		return nil, errors.New("invalid amount")
	}
	if len(frac) > TokenDecimals {
		return nil, errors.New("too many decimal places")
	}
	if whole == "" {
		whole = "0"
	}
	frac += strings.Repeat("0", TokenDecimals-len(frac))

	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, errors.New("invalid amount")
	}
	return v, nil
}

// FormatUnits renders base units as a decimal token amount, trimming trailing zeros.
func FormatUnits(v *big.Int) string {
	if v == nil {
		return "0"
	}
	q, r := new(big.Int).QuoRem(v, TokenUnit, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := r.String()
	frac = strings.Repeat("0", TokenDecimals-len(frac)) + frac
	return q.String() + "." + strings.TrimRight(frac, "0")
}

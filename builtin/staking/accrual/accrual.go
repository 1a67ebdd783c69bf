// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual computes simple interest owed on staked principal.
package accrual

import (
	"math/big"

	"github.com/vechain/stakepool/thor"
)

var (
	rate = new(big.Int).SetUint64(thor.RewardRateBPS)
	// denominator = bps * seconds per year
	denominator = new(big.Int).Mul(
		new(big.Int).SetUint64(thor.BPSDenominator),
		new(big.Int).SetUint64(thor.SecondsPerYear),
	)
)

// Accrued returns floor(principal * rate * elapsed / (bps * year)).
// The result is always a new value; nil principal counts as zero.
func Accrued(principal *big.Int, elapsed uint64) *big.Int {
	if principal == nil || principal.Sign() <= 0 || elapsed == 0 {
		return new(big.Int)
	}
	x := new(big.Int).SetUint64(elapsed)
	x.Mul(x, principal)
	x.Mul(x, rate)
	return x.Quo(x, denominator)
}

// Elapsed returns now - since, or 0 when now is not after since.
func Elapsed(since, now uint64) uint64 {
	if now <= since {
		return 0
	}
	return now - since
}

// Calculate returns unclaimed plus what principal earned between lastAccrual and now.
func Calculate(principal, unclaimed *big.Int, lastAccrual, now uint64) *big.Int {
	total := Accrued(principal, Elapsed(lastAccrual, now))
	if unclaimed != nil {
		total.Add(total, unclaimed)
	}
	return total
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import "math/big"

// Token and pool constants.
const (
	TokenName     = "StakeX"
	TokenSymbol   = "STX"
	TokenDecimals = 8

	RewardRateBPS  uint64 = 500    // 5% per year, simple interest
	BPSDenominator uint64 = 10_000 // basis points in 100%
	SecondsPerYear uint64 = 365 * 24 * 3600
)

var (
	// TokenUnit is one whole token expressed in base units.
	TokenUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)

	// MinterRole identifies the capability allowed to mint tokens.
	MinterRole = Keccak256([]byte("MINTER_ROLE"))
)

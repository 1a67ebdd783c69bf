// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/thor"
)

type Summary struct {
	Address     thor.Address          `json:"address"`
	TotalStaked *math.HexOrDecimal256 `json:"totalStaked"`
	Balance     *math.HexOrDecimal256 `json:"balance"`
	Timestamp   uint64                `json:"timestamp"`
}

// Account is the staking position of an address. Rewards are evaluated at Timestamp.
type Account struct {
	Staked      *math.HexOrDecimal256 `json:"staked"`
	Unclaimed   *math.HexOrDecimal256 `json:"unclaimed"`
	Rewards     *math.HexOrDecimal256 `json:"rewards"`
	LastAccrual uint64                `json:"lastAccrual"`
	Timestamp   uint64                `json:"timestamp"`
}

type AmountRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Claimed struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

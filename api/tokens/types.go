// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/thor"
)

type Info struct {
	Address     thor.Address          `json:"address"`
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

type Balance struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Allowance struct {
	Owner     thor.Address          `json:"owner"`
	Spender   thor.Address          `json:"spender"`
	Allowance *math.HexOrDecimal256 `json:"allowance"`
}

type TransferRequest struct {
	To     *thor.Address         `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type ApproveRequest struct {
	Spender *thor.Address         `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

// Receipt describes an applied token operation.
type Receipt struct {
	From   thor.Address          `json:"from"`
	To     thor.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

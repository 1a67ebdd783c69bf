// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

// FilteredEvent is a stored pool event.
type FilteredEvent struct {
	Seq       uint64                `json:"seq"`
	Kind      staking.EventKind     `json:"kind"`
	Account   thor.Address          `json:"account"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Timestamp uint64                `json:"timestamp"`
}

func convertEvent(ev *eventdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Seq:       ev.Seq,
		Kind:      ev.Kind,
		Account:   ev.Account,
		Amount:    utils.Amount(ev.Amount),
		Timestamp: ev.Timestamp,
	}
}

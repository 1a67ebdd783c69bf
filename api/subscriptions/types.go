// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/thor"
)

// EventMessage is pushed to subscribers for every completed pool operation.
type EventMessage struct {
	Kind      staking.EventKind     `json:"kind"`
	Account   thor.Address          `json:"account"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Timestamp uint64                `json:"timestamp"`
}

func newEventMessage(ev *staking.Event) *EventMessage {
	return &EventMessage{
		Kind:      ev.Kind,
		Account:   ev.Account,
		Amount:    utils.Amount(ev.Amount),
		Timestamp: ev.Timestamp,
	}
}

// EventFilter selects the events a subscriber receives. Empty fields match everything.
type EventFilter struct {
	Account *thor.Address
	Kinds   []staking.EventKind
}

func (f *EventFilter) Match(ev *staking.Event) bool {
	if f.Account != nil && *f.Account != ev.Account {
		return false
	}
	if len(f.Kinds) == 0 {
		return true
	}
	for _, k := range f.Kinds {
		if k == ev.Kind {
			return true
		}
	}
	return false
}

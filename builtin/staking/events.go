// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/stakepool/thor"
)

// EventKind names a pool state transition.
type EventKind string

const (
	Staked         EventKind = "Staked"
	Unstaked       EventKind = "Unstaked"
	RewardsClaimed EventKind = "RewardsClaimed"
)

// ParseEventKind returns the kind named s.
func ParseEventKind(s string) (EventKind, bool) {
	switch k := EventKind(s); k {
	case Staked, Unstaked, RewardsClaimed:
		return k, true
	}
	return "", false
}

// Event records a completed pool operation.
type Event struct {
	Kind      EventKind
	Account   thor.Address
	Amount    *big.Int
	Timestamp uint64
}

// EventSink receives events of completed operations.
type EventSink interface {
	Emit(ev *Event) error
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(ev *Event) error

func (f SinkFunc) Emit(ev *Event) error { return f(ev) }

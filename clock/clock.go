// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the unix-second time source used for reward accrual.
package clock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/stakepool/log"
)

var logger = log.WithContext("pkg", "clock")

// Clock returns the current time in unix seconds.
type Clock interface {
	Now() uint64
}

// System reads the wall clock and never goes backwards, even if the host clock is stepped back.
type System struct {
	last atomic.Uint64
}

// NewSystem creates a system clock.
func NewSystem() *System {
	return &System{}
}

func (s *System) Now() uint64 {
	now := uint64(time.Now().Unix())
	for {
		last := s.last.Load()
		if now <= last {
			return last
		}
		if s.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

// Manual is a clock moved by hand.
type Manual struct {
	mu  sync.Mutex
	now uint64
}

// NewManual creates a manual clock starting at now.
func NewManual(now uint64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now. Going backwards is allowed.
func (m *Manual) Set(now uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance moves the clock forward by seconds and returns the new time.
func (m *Manual) Advance(seconds uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += seconds
	return m.now
}

// CheckOffset queries server and warns when the local clock drifts beyond tolerance.
func CheckOffset(server string, tolerance time.Duration) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "server", server, "err", err)
		return 0, err
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > tolerance {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
	return resp.ClockOffset, nil
}

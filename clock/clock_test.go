// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemMonotonic(t *testing.T) {
	s := NewSystem()
	first := s.Now()
	assert.InDelta(t, time.Now().Unix(), int64(first), 2)

	// pretend an earlier read saw a later time
	s.last.Store(first + 100)
	assert.Equal(t, first+100, s.Now())
}

func TestManual(t *testing.T) {
	m := NewManual(1_000)
	assert.Equal(t, uint64(1_000), m.Now())

	assert.Equal(t, uint64(1_060), m.Advance(60))
	assert.Equal(t, uint64(1_060), m.Now())

	m.Set(500)
	assert.Equal(t, uint64(500), m.Now())
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCacheSize(t *testing.T) {
	assert.Equal(t, 16, normalizeCacheSize(0))
	assert.Equal(t, 16, normalizeCacheSize(-5))
	// far beyond any physical memory
	assert.Less(t, normalizeCacheSize(1<<40), 1<<40)
}

func TestSuggestFDCache(t *testing.T) {
	n := suggestFDCache()
	assert.Positive(t, n)
	assert.LessOrEqual(t, n, 1024)
}

func TestFullVersion(t *testing.T) {
	version, gitCommit = "1.0.0", "abcdef"
	t.Cleanup(func() { version, gitCommit = "", "" })

	assert.Equal(t, "1.0.0-abcdef-dev", fullVersion())
}

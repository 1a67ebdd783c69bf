// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", false},
		{"7567d83b7b8d80addcb281a71d54fc7b3364ffed", false},
		{"1x7567d83b7b8d80addcb281a71d54fc7b3364ffed", true},
		{"0x7567d83b", true},
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffzz", true},
	}
	for _, tt := range tests {
		_, err := ParseAddress(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
	}
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("user1"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x12"`), &decoded))
}

func TestAddressText(t *testing.T) {
	addr := BytesToAddress([]byte("pool"))
	text, err := addr.MarshalText()
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, addr, decoded)
	assert.False(t, decoded.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestMinterRole(t *testing.T) {
	// keccak256("MINTER_ROLE"), as used by role-gated token contracts
	assert.Equal(t,
		"0x9f2df0fed2c77648de5860a4cc508cd0818c85b8b8a1ab4ceeef8d981c8956a6",
		MinterRole.String())
}

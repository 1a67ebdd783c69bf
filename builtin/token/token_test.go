// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/thor"
)

var (
	tokenAddr = thor.BytesToAddress([]byte("token"))
	admin     = thor.BytesToAddress([]byte("admin"))
	alice     = thor.BytesToAddress([]byte("alice"))
	bob       = thor.BytesToAddress([]byte("bob"))
)

func newToken(t *testing.T) (*Token, *Capability) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tok, err := New(tokenAddr, admin, db)
	require.NoError(t, err)

	c, err := tok.GrantMinter(admin, admin)
	require.NoError(t, err)
	return tok, c
}

func balance(t *testing.T, tok *Token, addr thor.Address) string {
	bal, err := tok.BalanceOf(addr)
	require.NoError(t, err)
	return bal.String()
}

func TestMetadata(t *testing.T) {
	tok, _ := newToken(t)
	assert.Equal(t, "StakeX", tok.Name())
	assert.Equal(t, "STX", tok.Symbol())
	assert.Equal(t, uint8(8), tok.Decimals())
	assert.Equal(t, tokenAddr, tok.Address())

	a, err := tok.Admin()
	require.NoError(t, err)
	assert.Equal(t, admin, a)
}

func TestNewZeroAdmin(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = New(tokenAddr, thor.Address{}, db)
	assert.ErrorIs(t, err, reverts.ErrZeroAddress)
}

func TestReopenKeepsAdmin(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = New(tokenAddr, admin, db)
	require.NoError(t, err)

	tok, err := New(tokenAddr, alice, db)
	require.NoError(t, err)
	a, err := tok.Admin()
	require.NoError(t, err)
	assert.Equal(t, admin, a)
}

func TestMint(t *testing.T) {
	tok, c := newToken(t)

	require.NoError(t, tok.Mint(c, alice, big.NewInt(1000)))
	assert.Equal(t, "1000", balance(t, tok, alice))

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, "1000", supply.String())

	assert.ErrorIs(t, tok.Mint(nil, alice, big.NewInt(1)), reverts.ErrUnauthorized)
	assert.ErrorIs(t, tok.Mint(&Capability{holder: alice}, alice, big.NewInt(1)), reverts.ErrUnauthorized)
	assert.ErrorIs(t, tok.Mint(c, thor.Address{}, big.NewInt(1)), reverts.ErrZeroAddress)
	assert.ErrorIs(t, tok.Mint(c, alice, big.NewInt(-1)), reverts.ErrOverflow)

	// failed mints leave no trace
	assert.Equal(t, "1000", balance(t, tok, alice))
}

func TestMintOverflow(t *testing.T) {
	tok, c := newToken(t)

	maxValue := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, tok.Mint(c, alice, maxValue))
	assert.ErrorIs(t, tok.Mint(c, bob, big.NewInt(1)), reverts.ErrOverflow)
	assert.ErrorIs(t, tok.Mint(c, bob, new(big.Int).Lsh(big.NewInt(1), 256)), reverts.ErrOverflow)
	assert.Equal(t, "0", balance(t, tok, bob))
}

func TestGrantAndRevokeMinter(t *testing.T) {
	tok, _ := newToken(t)

	_, err := tok.GrantMinter(alice, alice)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	c, err := tok.GrantMinter(admin, alice)
	require.NoError(t, err)
	assert.Equal(t, alice, c.Holder())

	ok, err := tok.IsMinter(alice)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := tok.LoadCapability(alice)
	require.NoError(t, err)
	require.NoError(t, tok.Mint(loaded, bob, big.NewInt(7)))

	assert.ErrorIs(t, tok.RevokeMinter(alice, alice), reverts.ErrUnauthorized)
	require.NoError(t, tok.RevokeMinter(admin, alice))

	assert.ErrorIs(t, tok.Mint(c, bob, big.NewInt(1)), reverts.ErrUnauthorized)
	_, err = tok.LoadCapability(alice)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)
	assert.Equal(t, "7", balance(t, tok, bob))
}

func TestCapabilityBoundToToken(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	other, err := New(thor.BytesToAddress([]byte("other")), admin, db)
	require.NoError(t, err)
	foreign, err := other.GrantMinter(admin, alice)
	require.NoError(t, err)

	tok, _ := newToken(t)
	_, err = tok.GrantMinter(admin, alice)
	require.NoError(t, err)

	assert.ErrorIs(t, tok.Mint(foreign, alice, big.NewInt(1)), reverts.ErrUnauthorized)
}

func TestTransfer(t *testing.T) {
	tok, c := newToken(t)
	require.NoError(t, tok.Mint(c, alice, big.NewInt(100)))

	tests := []struct {
		from, to thor.Address
		amount   int64
		err      error
		alice    string
		bob      string
	}{
		{alice, bob, 30, nil, "70", "30"},
		{alice, bob, 71, reverts.ErrInsufficientBalance, "70", "30"},
		{alice, alice, 70, nil, "70", "30"},
		{bob, alice, 0, nil, "70", "30"},
		{bob, thor.Address{}, 1, reverts.ErrZeroAddress, "70", "30"},
		{bob, alice, 30, nil, "100", "0"},
	}
	for i, tt := range tests {
		err := tok.Transfer(tt.from, tt.to, big.NewInt(tt.amount))
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "case %d", i)
		} else {
			assert.NoError(t, err, "case %d", i)
		}
		assert.Equal(t, tt.alice, balance(t, tok, alice), "case %d", i)
		assert.Equal(t, tt.bob, balance(t, tok, bob), "case %d", i)
	}
}

func TestTransferFrom(t *testing.T) {
	tok, c := newToken(t)
	pool := thor.BytesToAddress([]byte("pool"))
	require.NoError(t, tok.Mint(c, alice, big.NewInt(100)))

	err := tok.TransferFrom(pool, alice, pool, big.NewInt(10))
	assert.ErrorIs(t, err, reverts.ErrInsufficientAllowance)

	require.NoError(t, tok.Approve(alice, pool, big.NewInt(150)))
	allowance, err := tok.Allowance(alice, pool)
	require.NoError(t, err)
	assert.Equal(t, "150", allowance.String())

	// allowance covers it, balance does not
	err = tok.TransferFrom(pool, alice, pool, big.NewInt(120))
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)
	allowance, _ = tok.Allowance(alice, pool)
	assert.Equal(t, "150", allowance.String(), "failed pull keeps allowance")

	require.NoError(t, tok.TransferFrom(pool, alice, pool, big.NewInt(60)))
	assert.Equal(t, "40", balance(t, tok, alice))
	assert.Equal(t, "60", balance(t, tok, pool))
	allowance, _ = tok.Allowance(alice, pool)
	assert.Equal(t, "90", allowance.String())

	assert.ErrorIs(t, tok.Approve(thor.Address{}, pool, big.NewInt(1)), reverts.ErrZeroAddress)
}

func TestTransferFromInfiniteAllowance(t *testing.T) {
	tok, c := newToken(t)
	require.NoError(t, tok.Mint(c, alice, big.NewInt(100)))

	maxValue := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, tok.Approve(alice, bob, maxValue))
	require.NoError(t, tok.TransferFrom(bob, alice, bob, big.NewInt(100)))

	allowance, err := tok.Allowance(alice, bob)
	require.NoError(t, err)
	assert.Equal(t, maxValue.String(), allowance.String())
}

func TestReturnFrom(t *testing.T) {
	tok, c := newToken(t)
	pool := thor.BytesToAddress([]byte("pool"))
	require.NoError(t, tok.Mint(c, alice, big.NewInt(100)))
	require.NoError(t, tok.Approve(alice, pool, big.NewInt(80)))

	require.NoError(t, tok.TransferFrom(pool, alice, pool, big.NewInt(50)))
	require.NoError(t, tok.ReturnFrom(pool, alice, pool, big.NewInt(50)))

	assert.Equal(t, "100", balance(t, tok, alice))
	assert.Equal(t, "0", balance(t, tok, pool))
	allowance, err := tok.Allowance(alice, pool)
	require.NoError(t, err)
	assert.Equal(t, "80", allowance.String())

	// nothing to give back
	err = tok.ReturnFrom(pool, alice, pool, big.NewInt(1))
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)
	allowance, _ = tok.Allowance(alice, pool)
	assert.Equal(t, "80", allowance.String(), "failed return keeps allowance")
}

func TestReturnFromInfiniteAllowance(t *testing.T) {
	tok, c := newToken(t)
	require.NoError(t, tok.Mint(c, alice, big.NewInt(100)))

	maxValue := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, tok.Approve(alice, bob, maxValue))
	require.NoError(t, tok.TransferFrom(bob, alice, bob, big.NewInt(100)))
	require.NoError(t, tok.ReturnFrom(bob, alice, bob, big.NewInt(100)))

	allowance, err := tok.Allowance(alice, bob)
	require.NoError(t, err)
	assert.Equal(t, maxValue.String(), allowance.String())
	assert.Equal(t, "100", balance(t, tok, alice))
}

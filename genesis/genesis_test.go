// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/thor"
)

func TestDevAccounts(t *testing.T) {
	accs := genesis.DevAccounts()
	require.Len(t, accs, 5)
	assert.Equal(t, "0xf077b491b355e64048ce21e3a6fc4751eeea77fa", accs[0].Address.String())
	assert.Equal(t, accs, genesis.DevAccounts())
}

func TestDeployDev(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	cfg := genesis.DevConfig()
	d, err := genesis.Deploy(db, cfg, clock.NewManual(1_700_000_000))
	require.NoError(t, err)

	owner := genesis.DevAccounts()[0].Address
	user := genesis.DevAccounts()[1].Address
	assert.Equal(t, owner, d.Owner)
	assert.Equal(t, genesis.ContractAddress(owner, 0), d.Token.Address())
	assert.Equal(t, genesis.ContractAddress(owner, 1), d.Pool.Address())
	assert.NotEqual(t, d.Token.Address(), d.Pool.Address())

	for _, addr := range []thor.Address{owner, user} {
		bal, err := d.Token.BalanceOf(addr)
		require.NoError(t, err)
		assert.Equal(t, "100000000000", bal.String())
	}
	supply, err := d.Token.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, "200000000000", supply.String())

	ok, err := d.Token.IsMinter(d.Pool.Address())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = d.Token.IsMinter(owner)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = d.Token.IsMinter(user)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = genesis.Deploy(db, cfg, clock.NewManual(0))
	assert.ErrorIs(t, err, genesis.ErrAlreadyDeployed)
}

func TestOpen(t *testing.T) {
	path := t.TempDir()
	db, err := lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)

	_, err = genesis.Open(db, clock.NewManual(0))
	assert.ErrorIs(t, err, genesis.ErrNotDeployed)

	clk := clock.NewManual(1_700_000_000)
	d, err := genesis.Deploy(db, genesis.DevConfig(), clk)
	require.NoError(t, err)
	user := genesis.DevAccounts()[1].Address
	stake := new(big.Int).Mul(big.NewInt(100), thor.TokenUnit)
	require.NoError(t, d.Token.Approve(user, d.Pool.Address(), stake))
	require.NoError(t, d.Pool.Stake(user, stake))
	require.NoError(t, db.Close())

	db, err = lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)
	defer db.Close()

	clk.Advance(thor.SecondsPerYear)
	reopened, err := genesis.Open(db, clk)
	require.NoError(t, err)
	assert.Equal(t, d.Pool.Address(), reopened.Pool.Address())

	staked, err := reopened.Pool.StakedBalance(user)
	require.NoError(t, err)
	assert.Equal(t, stake.String(), staked.String())

	// the pool can still mint after a restart
	claimed, err := reopened.Pool.ClaimRewards(user)
	require.NoError(t, err)
	assert.Equal(t, "500000000", claimed.String())
}

func TestConfigValidate(t *testing.T) {
	a := thor.BytesToAddress([]byte("a"))
	one := genesis.NewHexOrDecimal256(big.NewInt(1))
	tests := []struct {
		name string
		cfg  genesis.Config
		err  string
	}{
		{"ok", genesis.Config{Owner: a, Accounts: []genesis.Account{{Address: a, Balance: one}}}, ""},
		{"no owner", genesis.Config{}, "owner must be set"},
		{"zero account", genesis.Config{Owner: a, Accounts: []genesis.Account{{Balance: one}}}, "account address must not be zero"},
		{"duplicated", genesis.Config{Owner: a, Accounts: []genesis.Account{{Address: a, Balance: one}, {Address: a, Balance: one}}}, a.String() + ": duplicated account"},
		{"no balance", genesis.Config{Owner: a, Accounts: []genesis.Account{{Address: a}}}, a.String() + ": balance must be set"},
		{"zero balance", genesis.Config{Owner: a, Accounts: []genesis.Account{{Address: a, Balance: genesis.NewHexOrDecimal256(new(big.Int))}}}, a.String() + ": balance must be a non-zero integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "deploy.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(`
owner: "0xf077b491b355e64048ce21e3a6fc4751eeea77fa"
accounts:
  - address: "0x435933c8064b4ae76be665428e0307ef2ccfbd68"
    balance: 100000000000
  - address: "0x0f872421dc479f3c11edd89512731814d0598db5"
    balance: "0x174876e800"
`), 0o600))

	cfg, err := genesis.LoadConfig(yml)
	require.NoError(t, err)
	assert.Equal(t, "0xf077b491b355e64048ce21e3a6fc4751eeea77fa", cfg.Owner.String())
	require.Len(t, cfg.Accounts, 2)
	assert.Equal(t, "100000000000", cfg.Accounts[0].Balance.Int().String())
	assert.Equal(t, "100000000000", cfg.Accounts[1].Balance.Int().String())

	js := filepath.Join(dir, "deploy.json")
	require.NoError(t, os.WriteFile(js, []byte(`{
		"owner": "0xf077b491b355e64048ce21e3a6fc4751eeea77fa",
		"accounts": [{"address": "0x435933c8064b4ae76be665428e0307ef2ccfbd68", "balance": "5"}]
	}`), 0o600))
	cfg, err = genesis.LoadConfig(js)
	require.NoError(t, err)
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, "5", cfg.Accounts[0].Balance.Int().String())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("owner: \"0xf077b491b355e64048ce21e3a6fc4751eeea77fa\"\nunknown: 1\n"), 0o600))
	_, err = genesis.LoadConfig(bad)
	assert.Error(t, err)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{
		"owner": "0xf077b491b355e64048ce21e3a6fc4751eeea77fa",
		"accounts": [
			{"address": "0x435933c8064b4ae76be665428e0307ef2ccfbd68", "balance": "5"},
			{"address": "0x435933c8064b4ae76be665428e0307ef2ccfbd68", "balance": "6"}
		]
	}`), 0o600))
	_, err = genesis.LoadConfig(dup)
	assert.ErrorContains(t, err, "duplicated account")

	_, err = genesis.LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDeployRejectsInvalid(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = genesis.Deploy(db, &genesis.Config{}, clock.NewManual(0))
	assert.Error(t, err)
	assert.False(t, reverts.IsRevertErr(err))
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/thor"
)

var (
	ts    *httptest.Server
	owner = genesis.DevAccounts()[0].Address
	user  = genesis.DevAccounts()[1].Address
	other = genesis.DevAccounts()[2].Address
)

func TestTokens(t *testing.T) {
	initTokensServer(t)
	defer ts.Close()

	for name, tt := range map[string]func(*testing.T){
		"getInfo":           getInfo,
		"getBalance":        getBalance,
		"getBalanceBadAddr": getBalanceBadAddr,
		"transfer":          transfer,
		"transferRevert":    transferRevert,
		"transferMalformed": transferMalformed,
		"approve":           approve,
	} {
		t.Run(name, tt)
	}
}

func initTokensServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	d, err := genesis.Deploy(db, genesis.DevConfig(), clock.NewManual(1_700_000_000))
	require.NoError(t, err)

	router := mux.NewRouter()
	New(d.Token).Mount(router, "/token")
	ts = httptest.NewServer(router)
}

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), thor.TokenUnit)
}

func balanceOf(t *testing.T, addr thor.Address) string {
	res, code := httpGet(t, ts.URL+"/token/"+addr.String())
	require.Equal(t, http.StatusOK, code)
	var b Balance
	require.NoError(t, json.Unmarshal(res, &b))
	return (*big.Int)(b.Balance).String()
}

func getInfo(t *testing.T) {
	res, code := httpGet(t, ts.URL+"/token")
	require.Equal(t, http.StatusOK, code)

	var info Info
	require.NoError(t, json.Unmarshal(res, &info))
	assert.Equal(t, "StakeX", info.Name)
	assert.Equal(t, "STX", info.Symbol)
	assert.Equal(t, uint8(8), info.Decimals)
	assert.Equal(t, genesis.ContractAddress(owner, 0), info.Address)
	assert.Equal(t, units(2000).String(), (*big.Int)(info.TotalSupply).String())
}

func getBalance(t *testing.T) {
	assert.Equal(t, units(1000).String(), balanceOf(t, owner))
	assert.Equal(t, "0", balanceOf(t, thor.BytesToAddress([]byte("nobody"))))
}

func getBalanceBadAddr(t *testing.T) {
	_, code := httpGet(t, ts.URL+"/token/0xbad")
	assert.Equal(t, http.StatusBadRequest, code)
}

func transfer(t *testing.T) {
	before := balanceOf(t, other)
	assert.Equal(t, "0", before)

	body := map[string]any{"to": other.String(), "amount": units(10).String()}
	res, code := httpPost(t, ts.URL+"/token/"+user.String()+"/transfer", body)
	require.Equal(t, http.StatusOK, code, string(res))

	var receipt Receipt
	require.NoError(t, json.Unmarshal(res, &receipt))
	assert.Equal(t, user, receipt.From)
	assert.Equal(t, other, receipt.To)
	assert.Equal(t, units(10).String(), (*big.Int)(receipt.Amount).String())

	assert.Equal(t, units(10).String(), balanceOf(t, other))
}

func transferRevert(t *testing.T) {
	body := map[string]any{"to": owner.String(), "amount": units(1_000_000).String()}
	res, code := httpPost(t, ts.URL+"/token/"+user.String()+"/transfer", body)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "transfer amount exceeds balance\n", string(res))
}

func transferMalformed(t *testing.T) {
	for _, body := range []any{
		map[string]any{"amount": "1"},
		map[string]any{"to": owner.String()},
		map[string]any{"to": owner.String(), "amount": "-1"},
		map[string]any{"to": owner.String(), "amount": "1", "extra": true},
		"not an object",
	} {
		_, code := httpPost(t, ts.URL+"/token/"+user.String()+"/transfer", body)
		assert.Equal(t, http.StatusBadRequest, code, body)
	}
}

func approve(t *testing.T) {
	spender := genesis.ContractAddress(owner, 1)
	body := map[string]any{"spender": spender.String(), "amount": "0x5f5e100"}
	res, code := httpPost(t, ts.URL+"/token/"+user.String()+"/approve", body)
	require.Equal(t, http.StatusOK, code, string(res))

	res, code = httpGet(t, ts.URL+"/token/"+user.String()+"/allowance/"+spender.String())
	require.Equal(t, http.StatusOK, code)
	var a Allowance
	require.NoError(t, json.Unmarshal(res, &a))
	assert.Equal(t, user, a.Owner)
	assert.Equal(t, spender, a.Spender)
	assert.Equal(t, "100000000", (*big.Int)(a.Allowance).String())
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}

func httpPost(t *testing.T, url string, body any) ([]byte, int) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}

// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/reverts"
)

func serve(f utils.HandlerFunc) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	utils.WrapHandlerFunc(f)(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	return rr
}

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", utils.BadRequest(errors.New("bad")), http.StatusBadRequest, "bad\n"},
		{"forbidden", utils.Forbidden(errors.New("nope")), http.StatusForbidden, "nope\n"},
		{"custom status", utils.HTTPError(errors.New("x"), http.StatusTeapot), http.StatusTeapot, "x\n"},
		{"revert", reverts.ErrZeroAmount, http.StatusForbidden, "amount must be greater than zero\n"},
		{"wrapped revert", reverts.ErrTransferFailed.Wrap(errors.New("boom")), http.StatusForbidden, "token transfer failed: boom\n"},
		{"internal", errors.New("disk"), http.StatusInternalServerError, "disk\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(func(http.ResponseWriter, *http.Request) error { return tt.err })
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestRevertDataHeader(t *testing.T) {
	rr := serve(func(http.ResponseWriter, *http.Request) error {
		return reverts.ErrNoRewardsAvailable
	})
	data, err := hexutil.Decode(rr.Header().Get(utils.RevertDataHeader))
	require.NoError(t, err)
	assert.Equal(t, reverts.ErrNoRewardsAvailable.Bytes(), data)
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, utils.ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)

	assert.Error(t, utils.ParseJSON(strings.NewReader(`{"a":1,"b":2}`), &v))
}

func TestAddressVar(t *testing.T) {
	router := mux.NewRouter()
	router.Path("/{address}").HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, req *http.Request) error {
		addr, err := utils.AddressVar(req, "address")
		if err != nil {
			return err
		}
		return utils.WriteJSON(w, utils.M{"address": addr.String()})
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/0x0000000000000000000000000000000000000001", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, utils.JSONContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"address":"0x0000000000000000000000000000000000000001"}`+"\n", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/0xzz", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "address"))
}

// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/thor"
)

const JSONContentType = "application/json; charset=utf-8"

// M is a free-form JSON object.
type M map[string]any

// ParseJSON decodes a request body, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// AddressVar reads the route variable name as an address. Malformed input is a bad request.
func AddressVar(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// Amount copies v into its JSON form. Nil renders as 0.
func Amount(v *big.Int) *math.HexOrDecimal256 {
	out := new(big.Int)
	if v != nil {
		out.Set(v)
	}
	return (*math.HexOrDecimal256)(out)
}

// ParseAmount copies a request amount, which must be present and not negative.
func ParseAmount(v *math.HexOrDecimal256, name string) (*big.Int, error) {
	switch b := (*big.Int)(v); {
	case b == nil:
		return nil, BadRequest(errors.Errorf("%s: missing", name))
	case b.Sign() < 0:
		return nil, BadRequest(errors.Errorf("%s: negative", name))
	default:
		return new(big.Int).Set(b), nil
	}
}

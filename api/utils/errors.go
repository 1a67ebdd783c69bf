// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
)

// RevertDataHeader carries the ABI encoded revert reason of a 403 response.
const RevertDataHeader = "x-revert-data"

// httpError pins the status a handler error is answered with.
type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string { return e.cause.Error() }

func HTTPError(cause error, status int) error {
	return &httpError{cause, status}
}

func BadRequest(cause error) error {
	return &httpError{cause, http.StatusBadRequest}
}

func Forbidden(cause error) error {
	return &httpError{cause, http.StatusForbidden}
}

// HandlerFunc is an http.HandlerFunc that may fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc answers the error returned by f, if any, in plain text:
// an httpError with its own status, a revert with 403 and its encoded reason
// in RevertDataHeader, anything else with 500.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(w, err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	var he *httpError
	if errors.As(err, &he) {
		if he.cause == nil {
			w.WriteHeader(he.status)
			return
		}
		http.Error(w, he.cause.Error(), he.status)
		return
	}
	if reverts.IsRevertErr(err) {
		w.Header().Set(RevertDataHeader, hexutil.Encode(reverts.Unwrap(err).Bytes()))
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

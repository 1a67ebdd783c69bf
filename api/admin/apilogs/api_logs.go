// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/log"
)

var logger = log.WithContext("pkg", "apilogs")

// LogStatus reports whether every API request is logged. Slow queries are
// logged regardless.
type LogStatus struct {
	Enabled bool `json:"enabled"`
}

// Toggle flips request logging of a running API server.
type Toggle struct {
	enabled *atomic.Bool
}

func New(enabled *atomic.Bool) *Toggle {
	return &Toggle{enabled}
}

func (t *Toggle) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /admin/apilogs").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetStatus))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /admin/apilogs").
		HandlerFunc(utils.WrapHandlerFunc(t.handleSetStatus))
}

func (t *Toggle) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &LogStatus{t.enabled.Load()})
}

func (t *Toggle) handleSetStatus(w http.ResponseWriter, r *http.Request) error {
	var status LogStatus
	if err := utils.ParseJSON(r.Body, &status); err != nil {
		return utils.BadRequest(err)
	}
	if prev := t.enabled.Swap(status.Enabled); prev != status.Enabled {
		logger.Info("api request logging toggled", "enabled", status.Enabled)
	}
	return utils.WriteJSON(w, &status)
}

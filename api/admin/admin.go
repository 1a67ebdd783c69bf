// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves runtime switches of a running node: log verbosity and request logging.
package admin

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/admin/apilogs"
	"github.com/vechain/stakepool/api/admin/loglevel"
)

func New(logLevel loglevel.Leveler, apiLogsToggle *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(apiLogsToggle).Mount(sub, "/apilogs")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}

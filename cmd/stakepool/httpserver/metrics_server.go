// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/metrics"
)

// StartMetricsServer exposes the collected metrics on addr/metrics.
func StartMetricsServer(addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	listenAddr, closeFn, err := start("metrics API", addr, handlers.CompressHandler(router))
	if err != nil {
		return "", nil, err
	}
	return "http://" + listenAddr.String() + "/metrics", closeFn, nil
}

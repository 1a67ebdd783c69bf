// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"sync/atomic"

	"github.com/vechain/stakepool/api/admin"
	"github.com/vechain/stakepool/api/admin/loglevel"
)

// StartAdminServer serves the log verbosity and request logging switches on addr/admin.
func StartAdminServer(addr string, logLevel loglevel.Leveler, apiLogs *atomic.Bool) (string, func(), error) {
	listenAddr, closeFn, err := start("admin API", addr, admin.New(logLevel, apiLogs))
	if err != nil {
		return "", nil, err
	}
	return "http://" + listenAddr.String() + "/admin", closeFn, nil
}

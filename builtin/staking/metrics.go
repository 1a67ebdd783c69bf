// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/metrics"
)

var (
	metricOperations  = metrics.LazyLoadCounterVec("operations_count", []string{"op", "result"})
	metricTotalStaked = metrics.LazyLoadGauge("total_staked")
)

func observe(op string, err error) {
	result := "success"
	switch {
	case err == nil:
	case reverts.IsRevertErr(err):
		result = "revert"
	default:
		result = "error"
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": result})
}

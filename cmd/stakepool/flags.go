// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		EnvVar: "STAKEPOOL_DATA_DIR",
		Usage:  "directory for ledger and event databases",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		EnvVar: "STAKEPOOL_VERBOSITY",
		Usage:  "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "log-json",
		EnvVar: "STAKEPOOL_LOG_JSON",
		Usage:  "output logs in JSON format",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  64,
		Usage:  "megabytes of ram allocated to the ledger database cache",
		Hidden: true,
	}

	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml or json deployment config, the dev allocation is used if omitted",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "account address",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "sender address",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient address",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "token holder granting the allowance",
	}
	spenderFlag = cli.StringFlag{
		Name:  "spender",
		Usage: "address allowed to spend, defaults to the staking pool",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount in whole tokens, up to 8 decimal places (e.g. 4.99)",
	}
	noProgressFlag = cli.BoolFlag{
		Name:  "no-progress",
		Usage: "do not render a progress bar",
	}

	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8669",
		EnvVar: "STAKEPOOL_API_ADDR",
		Usage:  "API service listening address (unauthenticated, keep it on loopback)",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	apiBacklogLimitFlag = cli.IntFlag{
		Name:  "api-backlog-limit",
		Value: 1000,
		Usage: "number of events buffered for each websocket subscriber",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration longer than this threshold (ms) will be logged",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server used to check the local clock, empty to skip",
	}
)

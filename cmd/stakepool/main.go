// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/log"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "stakepool")
)

const logHandlerKey = "log-handler"

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "stakepool"
	app.Usage = "Staking pool for the StakeX token"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Metadata = map[string]any{}
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		dataDirFlag,
		verbosityFlag,
		jsonLogsFlag,
		cacheFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		ctx.App.Metadata[logHandlerKey] = initLogger(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "deploy",
			Usage:  "create the token with its genesis allocations and the staking pool",
			Flags:  []cli.Flag{configFlag},
			Action: deployAction,
		},
		{
			Name:   "mint",
			Usage:  "mint tokens to an address through the owner capability",
			Flags:  []cli.Flag{addressFlag, amountFlag},
			Action: mintAction,
		},
		{
			Name:   "transfer",
			Usage:  "transfer tokens between addresses",
			Flags:  []cli.Flag{fromFlag, toFlag, amountFlag},
			Action: transferAction,
		},
		{
			Name:   "balance",
			Usage:  "show the token balance of an address",
			Flags:  []cli.Flag{addressFlag},
			Action: balanceAction,
		},
		{
			Name:   "approve",
			Usage:  "allow a spender to move tokens of the owner",
			Flags:  []cli.Flag{ownerFlag, spenderFlag, amountFlag},
			Action: approveAction,
		},
		{
			Name:   "stake",
			Usage:  "stake approved tokens into the pool",
			Flags:  []cli.Flag{addressFlag, amountFlag},
			Action: stakeAction,
		},
		{
			Name:   "unstake",
			Usage:  "withdraw staked tokens from the pool",
			Flags:  []cli.Flag{addressFlag, amountFlag},
			Action: unstakeAction,
		},
		{
			Name:   "claim",
			Usage:  "claim all accrued rewards",
			Flags:  []cli.Flag{addressFlag},
			Action: claimAction,
		},
		{
			Name:   "rewards",
			Usage:  "show staked principal and claimable rewards of an address",
			Flags:  []cli.Flag{addressFlag},
			Action: rewardsAction,
		},
		{
			Name:   "verify",
			Usage:  "check the ledger against the pool balance",
			Flags:  []cli.Flag{noProgressFlag},
			Action: verifyAction,
		},
		{
			Name:  "serve",
			Usage: "serve the HTTP API",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiEventsLimitFlag,
				apiBacklogLimitFlag,
				apiSlowQueriesThresholdFlag,
				enableAPILogsFlag,
				pprofFlag,
				enableMetricsFlag,
				metricsAddrFlag,
				enableAdminFlag,
				adminAddrFlag,
				ntpServerFlag,
			},
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

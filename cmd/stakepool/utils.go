// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/thor"
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".stakepool")
}

func initLogger(ctx *cli.Context) *log.Handler {
	lvl := log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name))
	return log.Install(os.Stderr, lvl, ctx.GlobalBool(jsonLogsFlag.Name))
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir at '%v'", dataDir)
	}
	return dataDir, nil
}

func openMainDB(ctx *cli.Context, dataDir string) (*lvldb.LevelDB, error) {
	dir := filepath.Join(dataDir, "ledger")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              normalizeCacheSize(ctx.GlobalInt(cacheFlag.Name)),
		OpenFilesCacheCapacity: suggestFDCache(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger database at '%v'", dir)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
	} else {
		// limit to 1/4 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 4)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 64
	}
	if limit <= 256 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 4
	if n > 1024 {
		return 1024
	}
	return n
}

func openEventDB(dataDir string) (*eventdb.EventDB, error) {
	path := filepath.Join(dataDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database at '%v'", path)
	}
	return db, nil
}

// instance holds the opened databases of the data dir.
type instance struct {
	mainDB  *lvldb.LevelDB
	eventDB *eventdb.EventDB
}

func openInstance(ctx *cli.Context) (*instance, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}
	mainDB, err := openMainDB(ctx, dataDir)
	if err != nil {
		return nil, err
	}
	eventDB, err := openEventDB(dataDir)
	if err != nil {
		mainDB.Close()
		return nil, err
	}
	return &instance{mainDB, eventDB}, nil
}

func (i *instance) Close() {
	if err := i.eventDB.Close(); err != nil {
		logger.Warn("failed to close event database", "err", err)
	}
	if err := i.mainDB.Close(); err != nil {
		logger.Warn("failed to close ledger database", "err", err)
	}
}

// openDeployment opens the deployment of the data dir, recording pool events into its event database.
func (i *instance) openDeployment(clk clock.Clock) (*genesis.Deployment, error) {
	d, err := genesis.Open(i.mainDB, clk, staking.EventSink(i.eventDB))
	if err != nil {
		if errors.Is(err, genesis.ErrNotDeployed) {
			return nil, errors.New("nothing deployed in data dir, run 'deploy' first")
		}
		return nil, err
	}
	return d, nil
}

func requireAddress(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	v := ctx.String(flag.Name)
	if v == "" {
		return thor.Address{}, fmt.Errorf("missing --%s", flag.Name)
	}
	addr, err := thor.ParseAddress(v)
	if err != nil {
		return thor.Address{}, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return addr, nil
}

func requireAmount(ctx *cli.Context) (*big.Int, error) {
	v := ctx.String(amountFlag.Name)
	if v == "" {
		return nil, fmt.Errorf("missing --%s", amountFlag.Name)
	}
	amount, err := thor.ParseUnits(v)
	if err != nil {
		return nil, errors.WithMessagef(err, "--%s", amountFlag.Name)
	}
	return amount, nil
}

func printf(ctx *cli.Context, format string, args ...any) {
	fmt.Fprintf(ctx.App.Writer, format, args...)
}

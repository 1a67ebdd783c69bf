// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"math/big"

	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/builtin/staking/ledger"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/thor"
)

type verifyResult struct {
	Accounts    int
	Staked      *big.Int // sum over accounts
	Unclaimed   *big.Int
	TotalStaked *big.Int // pool aggregate
	PoolBalance *big.Int // tokens held by the pool
}

func (r *verifyResult) check() error {
	if r.Staked.Cmp(r.TotalStaked) != 0 {
		return fmt.Errorf("ledger mismatch: accounts stake %v, total staked is %v", r.Staked, r.TotalStaked)
	}
	if r.Staked.Cmp(r.PoolBalance) != 0 {
		return fmt.Errorf("ledger mismatch: accounts stake %v, pool holds %v", r.Staked, r.PoolBalance)
	}
	return nil
}

func verifyLedger(d *genesis.Deployment, progress io.Writer) (*verifyResult, error) {
	res := &verifyResult{Staked: &big.Int{}, Unclaimed: &big.Int{}}

	var count int64
	if err := d.Ledger.Iterate(func(thor.Address, *ledger.Account) bool {
		count++
		return true
	}); err != nil {
		return nil, err
	}

	bar := pb.New64(count).SetMaxWidth(90)
	if progress != nil {
		bar.Output = progress
		bar.Start()
	} else {
		bar.NotPrint = true
	}
	defer func() { bar.NotPrint = true }()

	if err := d.Ledger.Iterate(func(_ thor.Address, acc *ledger.Account) bool {
		res.Accounts++
		res.Staked.Add(res.Staked, acc.Staked)
		res.Unclaimed.Add(res.Unclaimed, acc.Unclaimed)
		bar.Add64(1)
		return true
	}); err != nil {
		return nil, err
	}
	bar.Finish()

	var err error
	if res.TotalStaked, err = d.Pool.TotalStaked(); err != nil {
		return nil, err
	}
	if res.PoolBalance, err = d.Pool.Balance(); err != nil {
		return nil, err
	}
	return res, nil
}

func verifyAction(ctx *cli.Context) error {
	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	d, err := inst.openDeployment(clock.NewSystem())
	if err != nil {
		return err
	}

	var progress io.Writer
	if !ctx.Bool(noProgressFlag.Name) {
		progress = ctx.App.ErrWriter
	}
	res, err := verifyLedger(d, progress)
	if err != nil {
		return err
	}

	printf(ctx, "Accounts:     %d\n", res.Accounts)
	printf(ctx, "Staked:       %v\n", thor.FormatUnits(res.Staked))
	printf(ctx, "Unclaimed:    %v\n", thor.FormatUnits(res.Unclaimed))
	printf(ctx, "Pool balance: %v\n", thor.FormatUnits(res.PoolBalance))
	if err := res.check(); err != nil {
		return err
	}
	printf(ctx, "ledger OK\n")
	return nil
}

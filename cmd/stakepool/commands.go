// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/thor"
)

func withDeployment(ctx *cli.Context, fn func(d *genesis.Deployment) error) error {
	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	d, err := inst.openDeployment(clock.NewSystem())
	if err != nil {
		return err
	}
	return fn(d)
}

func deployAction(ctx *cli.Context) error {
	cfg := genesis.DevConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = genesis.LoadConfig(path); err != nil {
			return err
		}
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	d, err := genesis.Deploy(inst.mainDB, cfg, clock.NewSystem(), inst.eventDB)
	if err != nil {
		return err
	}
	supply, err := d.Token.TotalSupply()
	if err != nil {
		return err
	}

	printf(ctx, "Owner:        %v\n", d.Owner)
	printf(ctx, "Token:        %v (%v)\n", d.Token.Address(), d.Token.Symbol())
	printf(ctx, "Staking pool: %v\n", d.Pool.Address())
	printf(ctx, "Total supply: %v %v\n", thor.FormatUnits(supply), d.Token.Symbol())
	return nil
}

func mintAction(ctx *cli.Context) error {
	to, err := requireAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		c, err := d.Token.LoadCapability(d.Owner)
		if err != nil {
			return errors.WithMessage(err, "load owner capability")
		}
		if err := d.Token.Mint(c, to, amount); err != nil {
			return err
		}
		printf(ctx, "minted %v %v to %v\n", thor.FormatUnits(amount), d.Token.Symbol(), to)
		return nil
	})
}

func transferAction(ctx *cli.Context) error {
	from, err := requireAddress(ctx, fromFlag)
	if err != nil {
		return err
	}
	to, err := requireAddress(ctx, toFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		if err := d.Token.Transfer(from, to, amount); err != nil {
			return err
		}
		printf(ctx, "transferred %v %v from %v to %v\n", thor.FormatUnits(amount), d.Token.Symbol(), from, to)
		return nil
	})
}

func balanceAction(ctx *cli.Context) error {
	addr, err := requireAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		bal, err := d.Token.BalanceOf(addr)
		if err != nil {
			return err
		}
		printf(ctx, "%v %v\n", thor.FormatUnits(bal), d.Token.Symbol())
		return nil
	})
}

func approveAction(ctx *cli.Context) error {
	owner, err := requireAddress(ctx, ownerFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		spender := d.Pool.Address()
		if ctx.IsSet(spenderFlag.Name) {
			if spender, err = requireAddress(ctx, spenderFlag); err != nil {
				return err
			}
		}
		if err := d.Token.Approve(owner, spender, amount); err != nil {
			return err
		}
		printf(ctx, "%v may spend %v %v of %v\n", spender, thor.FormatUnits(amount), d.Token.Symbol(), owner)
		return nil
	})
}

func stakeAction(ctx *cli.Context) error {
	addr, err := requireAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		if err := d.Pool.Stake(addr, amount); err != nil {
			return err
		}
		staked, err := d.Pool.StakedBalance(addr)
		if err != nil {
			return err
		}
		printf(ctx, "staked %v %v, now staking %v\n", thor.FormatUnits(amount), d.Token.Symbol(), thor.FormatUnits(staked))
		return nil
	})
}

func unstakeAction(ctx *cli.Context) error {
	addr, err := requireAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		if err := d.Pool.Unstake(addr, amount); err != nil {
			return err
		}
		staked, err := d.Pool.StakedBalance(addr)
		if err != nil {
			return err
		}
		printf(ctx, "unstaked %v %v, now staking %v\n", thor.FormatUnits(amount), d.Token.Symbol(), thor.FormatUnits(staked))
		return nil
	})
}

func claimAction(ctx *cli.Context) error {
	addr, err := requireAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		claimed, err := d.Pool.ClaimRewards(addr)
		if err != nil {
			return err
		}
		printf(ctx, "claimed %v %v\n", thor.FormatUnits(claimed), d.Token.Symbol())
		return nil
	})
}

func rewardsAction(ctx *cli.Context) error {
	addr, err := requireAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	return withDeployment(ctx, func(d *genesis.Deployment) error {
		staked, err := d.Pool.StakedBalance(addr)
		if err != nil {
			return err
		}
		rewards, err := d.Pool.CalculateRewards(addr)
		if err != nil {
			return err
		}
		printf(ctx, "Staked:  %v %v\n", thor.FormatUnits(staked), d.Token.Symbol())
		printf(ctx, "Rewards: %v %v\n", thor.FormatUnits(rewards), d.Token.Symbol())
		return nil
	})
}

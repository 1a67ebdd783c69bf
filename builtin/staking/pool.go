// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the staking pool: principal goes in through
// Stake, comes back through Unstake, and rewards are minted by ClaimRewards.
package staking

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/builtin/staking/ledger"
	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "staking")

// Token is the token surface the pool moves principal and rewards with.
type Token interface {
	TransferFrom(spender, from, to thor.Address, amount *big.Int) error
	ReturnFrom(spender, from, to thor.Address, amount *big.Int) error
	Transfer(from, to thor.Address, amount *big.Int) error
	Mint(c *token.Capability, to thor.Address, amount *big.Int) error
	BalanceOf(addr thor.Address) (*big.Int, error)
}

// Pool coordinates token movements with the ledger. Operations on the same
// account are serialized; each one either completes or leaves no trace.
type Pool struct {
	addr    thor.Address
	token   Token
	minter  *token.Capability
	ledger  *ledger.Ledger
	clock   clock.Clock
	locks   accountLocks
	sinksMu sync.RWMutex
	sinks   []EventSink
}

// New creates the pool at addr. minter is the capability rewards are minted with.
func New(addr thor.Address, tok Token, minter *token.Capability, l *ledger.Ledger, clk clock.Clock, sinks ...EventSink) *Pool {
	return &Pool{
		addr:   addr,
		token:  tok,
		minter: minter,
		ledger: l,
		clock:  clk,
		sinks:  sinks,
	}
}

// Address returns the pool address that holds staked tokens.
func (p *Pool) Address() thor.Address { return p.addr }

// AddSink registers an additional event sink.
func (p *Pool) AddSink(s EventSink) {
	p.sinksMu.Lock()
	defer p.sinksMu.Unlock()
	p.sinks = append(p.sinks, s)
}

// emit hands ev to every sink. Callers must not hold an account lock.
func (p *Pool) emit(ev *Event) {
	p.sinksMu.RLock()
	sinks := p.sinks
	p.sinksMu.RUnlock()

	for _, s := range sinks {
		if err := s.Emit(ev); err != nil {
			logger.Warn("failed to emit event", "kind", ev.Kind, "account", ev.Account, "error", err)
		}
	}
}

// Stake pulls amount from caller into the pool and credits it as principal.
// The caller must have approved the pool for at least amount.
func (p *Pool) Stake(caller thor.Address, amount *big.Int) (err error) {
	logger.Debug("staking", "caller", caller, "amount", amount)
	defer func() { observe("stake", err) }()

	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrZeroAmount
	}
	ev, err := p.stake(caller, amount)
	if err != nil {
		return err
	}
	p.afterMutation()
	p.emit(ev)
	return nil
}

func (p *Pool) stake(caller thor.Address, amount *big.Int) (*Event, error) {
	unlock := p.locks.lock(caller)
	defer unlock()

	now := p.clock.Now()
	if err := p.token.TransferFrom(p.addr, caller, p.addr, amount); err != nil {
		logger.Info("stake failed", "caller", caller, "error", err)
		return nil, reverts.ErrTransferFailed.Wrap(err)
	}

	acc, err := p.ledger.IncreasePrincipal(caller, amount, now)
	if err != nil {
		logger.Info("stake failed", "caller", caller, "error", err)
		// undo the pull, allowance included
		if rerr := p.token.ReturnFrom(p.addr, caller, p.addr, amount); rerr != nil {
			logger.Error("failed to refund stake", "caller", caller, "amount", amount, "error", rerr)
			return nil, errors.WithMessagef(err, "refund failed: %v", rerr)
		}
		return nil, err
	}

	logger.Info("staked", "caller", caller, "amount", amount, "staked", acc.Staked)
	return &Event{Kind: Staked, Account: caller, Amount: new(big.Int).Set(amount), Timestamp: now}, nil
}

// Unstake takes amount off the principal of caller and sends it back.
// Rewards accrued so far stay claimable.
func (p *Pool) Unstake(caller thor.Address, amount *big.Int) (err error) {
	logger.Debug("unstaking", "caller", caller, "amount", amount)
	defer func() { observe("unstake", err) }()

	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrZeroAmount
	}
	ev, err := p.unstake(caller, amount)
	if err != nil {
		return err
	}
	p.afterMutation()
	p.emit(ev)
	return nil
}

func (p *Pool) unstake(caller thor.Address, amount *big.Int) (*Event, error) {
	unlock := p.locks.lock(caller)
	defer unlock()

	prev, err := p.ledger.Account(caller)
	if err != nil {
		return nil, err
	}
	if prev.Staked.Cmp(amount) < 0 {
		logger.Info("unstake failed", "caller", caller, "error", reverts.ErrInsufficientStake)
		return nil, reverts.ErrInsufficientStake
	}

	now := p.clock.Now()
	acc, err := p.ledger.DecreasePrincipal(caller, amount, now)
	if err != nil {
		logger.Info("unstake failed", "caller", caller, "error", err)
		return nil, err
	}

	if err := p.token.Transfer(p.addr, caller, amount); err != nil {
		logger.Info("unstake failed", "caller", caller, "error", err)
		if rerr := p.ledger.Restore(caller, prev); rerr != nil {
			logger.Error("failed to restore account", "caller", caller, "error", rerr)
			return nil, errors.WithMessagef(reverts.ErrTransferFailed.Wrap(err), "restore failed: %v", rerr)
		}
		return nil, reverts.ErrTransferFailed.Wrap(err)
	}

	logger.Info("unstaked", "caller", caller, "amount", amount, "staked", acc.Staked)
	return &Event{Kind: Unstaked, Account: caller, Amount: new(big.Int).Set(amount), Timestamp: now}, nil
}

// ClaimRewards pays out all rewards of caller by minting them.
func (p *Pool) ClaimRewards(caller thor.Address) (claimed *big.Int, err error) {
	logger.Debug("claiming rewards", "caller", caller)
	defer func() { observe("claim", err) }()

	ev, err := p.claim(caller)
	if err != nil {
		return nil, err
	}
	p.emit(ev)
	return new(big.Int).Set(ev.Amount), nil
}

func (p *Pool) claim(caller thor.Address) (*Event, error) {
	unlock := p.locks.lock(caller)
	defer unlock()

	prev, err := p.ledger.Account(caller)
	if err != nil {
		return nil, err
	}

	now := p.clock.Now()
	drained, err := p.ledger.DrainRewards(caller, now)
	if err != nil {
		logger.Info("claim failed", "caller", caller, "error", err)
		return nil, err
	}

	if err := p.token.Mint(p.minter, caller, drained); err != nil {
		logger.Info("claim failed", "caller", caller, "error", err)
		if rerr := p.ledger.Restore(caller, prev); rerr != nil {
			logger.Error("failed to restore account", "caller", caller, "error", rerr)
			return nil, errors.WithMessagef(err, "restore failed: %v", rerr)
		}
		return nil, err
	}

	logger.Info("claimed rewards", "caller", caller, "amount", drained)
	return &Event{Kind: RewardsClaimed, Account: caller, Amount: drained, Timestamp: now}, nil
}

// CalculateRewards returns what addr could claim right now.
func (p *Pool) CalculateRewards(addr thor.Address) (*big.Int, error) {
	acc, err := p.ledger.Account(addr)
	if err != nil {
		return nil, err
	}
	return acc.Rewards(p.clock.Now()), nil
}

// StakedBalance returns the principal of addr.
func (p *Pool) StakedBalance(addr thor.Address) (*big.Int, error) {
	acc, err := p.ledger.Account(addr)
	if err != nil {
		return nil, err
	}
	return acc.Staked, nil
}

// Account returns the ledger record of addr.
func (p *Pool) Account(addr thor.Address) (*ledger.Account, error) {
	return p.ledger.Account(addr)
}

// TotalStaked returns the principal held for all accounts.
func (p *Pool) TotalStaked() (*big.Int, error) {
	return p.ledger.TotalStaked()
}

// Balance returns the token balance of the pool address.
func (p *Pool) Balance() (*big.Int, error) {
	return p.token.BalanceOf(p.addr)
}

// Now returns the time of the pool clock.
func (p *Pool) Now() uint64 {
	return p.clock.Now()
}

func (p *Pool) afterMutation() {
	total, err := p.ledger.TotalStaked()
	if err != nil {
		logger.Warn("failed to read total staked", "error", err)
		return
	}
	metricTotalStaked().Set(new(big.Int).Quo(total, thor.TokenUnit).Int64())
}

// accountLocks serializes operations per account. An entry lives only while
// some operation holds or waits for it.
type accountLocks struct {
	mu sync.Mutex
	m  map[thor.Address]*accountLock
}

type accountLock struct {
	sync.Mutex
	refs int
}

func (a *accountLocks) lock(addr thor.Address) (unlock func()) {
	a.mu.Lock()
	if a.m == nil {
		a.m = make(map[thor.Address]*accountLock)
	}
	l, ok := a.m[addr]
	if !ok {
		l = &accountLock{}
		a.m[addr] = l
	}
	l.refs++
	a.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		a.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(a.m, addr)
		}
		a.mu.Unlock()
	}
}

func (a *accountLocks) len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.m)
}

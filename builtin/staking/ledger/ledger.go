// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger keeps the per-account principal and reward bookkeeping of the pool.
package ledger

import (
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "ledger")

const (
	accountsBucket = kv.Bucket("ledger/a/")
	metaBucket     = kv.Bucket("ledger/m/")

	cacheSize = 4096
)

var totalStakedKey = []byte("total-staked")

var (
	metricStoreDuration = metrics.LazyLoadHistogramVec("ledger_store_duration_ms", []string{"op"}, metrics.BucketStoreOps)
	metricCacheHitMiss  = metrics.LazyLoadGaugeVec("ledger_cache_hit_miss", []string{"event"})
)

// Ledger stores staking accounts and their running total. Mutations of
// a single account are committed in one batch together with the total.
type Ledger struct {
	db       kv.Store
	accounts kv.Store
	meta     kv.Store
	cache    *cache.LRU[thor.Address, *Account]
	mu       sync.Mutex
}

// New creates a ledger on top of db.
func New(db kv.Store) (*Ledger, error) {
	c, err := cache.NewLRU[thor.Address, *Account](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		db:       db,
		accounts: accountsBucket.NewStore(db),
		meta:     metaBucket.NewStore(db),
		cache:    c,
	}, nil
}

func (l *Ledger) read(addr thor.Address) (*Account, error) {
	data, err := l.accounts.Get(addr.Bytes())
	if err != nil && !l.accounts.IsNotFound(err) {
		return nil, errors.Wrap(err, "load account")
	}
	var acc Account
	if err := acc.Decode(data); err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	return &acc, nil
}

// load reads addr through the cache, filling it on a miss. Callers hold l.mu,
// so no write can land between the read and the fill.
func (l *Ledger) load(addr thor.Address) (*Account, error) {
	acc, err := l.cache.GetOrLoad(addr, l.read)
	if err != nil {
		return nil, err
	}
	l.reportCache()
	return acc.Copy(), nil
}

// peek reads addr without l.mu. A miss goes to the store and leaves the cache
// alone, otherwise a record read before a concurrent write could be cached
// after it.
func (l *Ledger) peek(addr thor.Address) (*Account, error) {
	acc, ok := l.cache.Get(addr)
	l.reportCache()
	if ok {
		return acc.Copy(), nil
	}
	return l.read(addr)
}

func (l *Ledger) reportCache() {
	if stats, moved := l.cache.Stats(); moved {
		metricCacheHitMiss().SetWithLabel(stats.Hits, map[string]string{"event": "hit"})
		metricCacheHitMiss().SetWithLabel(stats.Misses, map[string]string{"event": "miss"})
	}
}

func (l *Ledger) totalStaked() (*big.Int, error) {
	data, err := l.meta.Get(totalStakedKey)
	if err != nil {
		if l.meta.IsNotFound(err) {
			return &big.Int{}, nil
		}
		return nil, errors.Wrap(err, "load total staked")
	}
	return new(big.Int).SetBytes(data), nil
}

// Account returns a copy of the record of addr. Unknown addresses read as zero.
func (l *Ledger) Account(addr thor.Address) (*Account, error) {
	return l.peek(addr)
}

// TotalStaked returns the sum of principal over all accounts.
func (l *Ledger) TotalStaked() (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalStaked()
}

// write commits acc for addr and moves the total by the principal difference to prev.
// Callers hold l.mu.
func (l *Ledger) write(addr thor.Address, prev, acc *Account) error {
	start := time.Now()
	defer func() {
		metricStoreDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": "write"})
	}()

	if acc.IsDormant() {
		// forget the clock too, a dormant account reads like a new one
		*acc = *newAccount()
	}
	data, err := acc.Encode()
	if err != nil {
		return errors.Wrap(err, "encode account")
	}

	batch := l.db.NewBatch()
	accounts := accountsBucket.NewPutter(batch)
	if data == nil {
		err = accounts.Delete(addr.Bytes())
	} else {
		err = accounts.Put(addr.Bytes(), data)
	}
	if err != nil {
		return err
	}

	if diff := new(big.Int).Sub(acc.Staked, prev.Staked); diff.Sign() != 0 {
		total, err := l.totalStaked()
		if err != nil {
			return err
		}
		total.Add(total, diff)
		if total.Sign() < 0 {
			return errors.Errorf("total staked below zero: %v", total)
		}
		if err := metaBucket.NewPutter(batch).Put(totalStakedKey, total.Bytes()); err != nil {
			return err
		}
	}

	if err := batch.Write(); err != nil {
		l.cache.Remove(addr)
		return errors.Wrap(err, "commit account")
	}
	l.cache.Add(addr, acc.Copy())
	return nil
}

func (l *Ledger) update(addr thor.Address, fn func(acc *Account) error) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, err := l.load(addr)
	if err != nil {
		return nil, err
	}
	acc := prev.Copy()
	if err := fn(acc); err != nil {
		return nil, err
	}
	if err := l.write(addr, prev, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Settle banks the rewards addr accrued up to now.
// Calling it twice with the same now banks nothing the second time.
func (l *Ledger) Settle(addr thor.Address, now uint64) (*Account, error) {
	return l.update(addr, func(acc *Account) error {
		acc.settle(now)
		return nil
	})
}

// IncreasePrincipal settles addr and adds amount to its principal.
func (l *Ledger) IncreasePrincipal(addr thor.Address, amount *big.Int, now uint64) (*Account, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}
	return l.update(addr, func(acc *Account) error {
		acc.settle(now)
		acc.Staked.Add(acc.Staked, amount)
		return nil
	})
}

// DecreasePrincipal settles addr and takes amount off its principal.
// Rewards already accrued stay claimable.
func (l *Ledger) DecreasePrincipal(addr thor.Address, amount *big.Int, now uint64) (*Account, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}
	return l.update(addr, func(acc *Account) error {
		if acc.Staked.Cmp(amount) < 0 {
			return reverts.ErrInsufficientStake
		}
		acc.settle(now)
		acc.Staked.Sub(acc.Staked, amount)
		return nil
	})
}

// DrainRewards settles addr, zeroes its unclaimed rewards and returns them.
func (l *Ledger) DrainRewards(addr thor.Address, now uint64) (*big.Int, error) {
	var drained *big.Int
	_, err := l.update(addr, func(acc *Account) error {
		acc.settle(now)
		if acc.Unclaimed.Sign() == 0 {
			return reverts.ErrNoRewardsAvailable
		}
		drained = acc.Unclaimed
		acc.Unclaimed = &big.Int{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drained, nil
}

// Restore overwrites the record of addr with acc, keeping the total consistent.
// It undoes a mutation whose follow-up failed.
func (l *Ledger) Restore(addr thor.Address, acc *Account) error {
	_, err := l.update(addr, func(cur *Account) error {
		*cur = *acc.Copy()
		return nil
	})
	if err == nil {
		logger.Debug("account restored", "addr", addr, "staked", acc.Staked, "unclaimed", acc.Unclaimed)
	}
	return err
}

// Iterate calls fn for every non-dormant account in address order until fn returns false.
func (l *Ledger) Iterate(fn func(addr thor.Address, acc *Account) bool) error {
	var decodeErr error
	err := l.accounts.Iterate(kv.Range{}, func(key, value []byte) bool {
		var acc Account
		if decodeErr = acc.Decode(value); decodeErr != nil {
			decodeErr = errors.Wrapf(decodeErr, "decode account %x", key)
			return false
		}
		return fn(thor.BytesToAddress(key), &acc)
	})
	if err != nil {
		return errors.Wrap(err, "iterate accounts")
	}
	return decodeErr
}

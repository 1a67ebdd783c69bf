// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the 8-decimal value token staked into the pool.
package token

import (
	"math/big"
	"sync"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "token")

// Bucket is the key prefix the token keeps its state under.
const Bucket = kv.Bucket("token/")

// Token is a fungible token with role gated minting, persisted in a kv store.
type Token struct {
	addr  thor.Address
	store kv.Store
	mu    sync.Mutex
}

// New opens the token stored at addr. The first opening records admin as the
// account allowed to grant minter capabilities; later openings keep the stored admin.
func New(addr thor.Address, admin thor.Address, store kv.Store) (*Token, error) {
	t := &Token{
		addr:  addr,
		store: Bucket.NewStore(store),
	}
	has, err := t.store.Has(adminKey)
	if err != nil {
		return nil, errors.Wrap(err, "load admin")
	}
	if !has {
		if admin.IsZero() {
			return nil, reverts.ErrZeroAddress
		}
		if err := t.store.Put(adminKey, admin.Bytes()); err != nil {
			return nil, errors.Wrap(err, "save admin")
		}
	}
	return t, nil
}

// Address returns the token address.
func (t *Token) Address() thor.Address { return t.addr }

func (t *Token) Name() string    { return thor.TokenName }
func (t *Token) Symbol() string  { return thor.TokenSymbol }
func (t *Token) Decimals() uint8 { return thor.TokenDecimals }

// Admin returns the account allowed to grant minter capabilities.
func (t *Token) Admin() (thor.Address, error) {
	data, err := t.store.Get(adminKey)
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "load admin")
	}
	return thor.BytesToAddress(data), nil
}

func (t *Token) getU256(key []byte) (*uint256.Int, error) {
	data, err := t.store.Get(key)
	if err != nil {
		if t.store.IsNotFound(err) {
			return new(uint256.Int), nil
		}
		return nil, err
	}
	return decodeU256(data)
}

func putU256(w kv.Putter, key []byte, v *uint256.Int) error {
	data, err := encodeU256(v)
	if err != nil {
		return err
	}
	if data == nil {
		return w.Delete(key)
	}
	return w.Put(key, data)
}

// BalanceOf returns the balance of addr in base units.
func (t *Token) BalanceOf(addr thor.Address) (*big.Int, error) {
	bal, err := t.getU256(balanceKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "load balance")
	}
	return bal.ToBig(), nil
}

// TotalSupply returns the amount minted so far.
func (t *Token) TotalSupply() (*big.Int, error) {
	supply, err := t.getU256(supplyKey)
	if err != nil {
		return nil, errors.Wrap(err, "load supply")
	}
	return supply.ToBig(), nil
}

// Allowance returns how much spender may still pull from owner.
func (t *Token) Allowance(owner, spender thor.Address) (*big.Int, error) {
	allowance, err := t.getU256(allowanceKey(owner, spender))
	if err != nil {
		return nil, errors.Wrap(err, "load allowance")
	}
	return allowance.ToBig(), nil
}

// Approve sets the amount spender may pull from owner, replacing any previous allowance.
func (t *Token) Approve(owner, spender thor.Address, amount *big.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return reverts.ErrZeroAddress
	}
	v, err := toU256(amount)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := putU256(t.store, allowanceKey(owner, spender), v); err != nil {
		return errors.Wrap(err, "save allowance")
	}
	logger.Debug("approved", "owner", owner, "spender", spender, "amount", amount)
	return nil
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to thor.Address, amount *big.Int) error {
	v, err := toU256(amount)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	batch := t.store.NewBatch()
	if err := t.move(batch, from, to, v); err != nil {
		return err
	}
	return errors.Wrap(batch.Write(), "commit transfer")
}

// TransferFrom moves amount from one account to another on behalf of spender,
// consuming the allowance from granted to spender. An allowance of 2^256-1 is never consumed.
func (t *Token) TransferFrom(spender, from, to thor.Address, amount *big.Int) error {
	v, err := toU256(amount)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := allowanceKey(from, spender)
	allowance, err := t.getU256(key)
	if err != nil {
		return errors.Wrap(err, "load allowance")
	}

	batch := t.store.NewBatch()
	if !allowance.Eq(maxU256) {
		if allowance.Lt(v) {
			return reverts.ErrInsufficientAllowance
		}
		if err := putU256(batch, key, new(uint256.Int).Sub(allowance, v)); err != nil {
			return err
		}
	}
	if err := t.move(batch, from, to, v); err != nil {
		return err
	}
	return errors.Wrap(batch.Write(), "commit transfer")
}

// ReturnFrom reverses a TransferFrom: amount moves back from to to from and
// the allowance spender consumed is credited back, in one batch.
func (t *Token) ReturnFrom(spender, from, to thor.Address, amount *big.Int) error {
	v, err := toU256(amount)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := allowanceKey(from, spender)
	allowance, err := t.getU256(key)
	if err != nil {
		return errors.Wrap(err, "load allowance")
	}

	batch := t.store.NewBatch()
	if !allowance.Eq(maxU256) {
		restored, overflow := new(uint256.Int).AddOverflow(allowance, v)
		if overflow {
			restored = maxU256
		}
		if err := putU256(batch, key, restored); err != nil {
			return err
		}
	}
	if err := t.move(batch, to, from, v); err != nil {
		return err
	}
	return errors.Wrap(batch.Write(), "commit return")
}

var maxU256 = new(uint256.Int).SetAllOne()

// move stages a balance transfer into batch. Callers hold t.mu.
func (t *Token) move(batch kv.Batch, from, to thor.Address, v *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return reverts.ErrZeroAddress
	}
	fromBal, err := t.getU256(balanceKey(from))
	if err != nil {
		return errors.Wrap(err, "load balance")
	}
	if fromBal.Lt(v) {
		return reverts.ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	toBal, err := t.getU256(balanceKey(to))
	if err != nil {
		return errors.Wrap(err, "load balance")
	}
	newTo, overflow := new(uint256.Int).AddOverflow(toBal, v)
	if overflow {
		return reverts.ErrOverflow
	}
	if err := putU256(batch, balanceKey(from), new(uint256.Int).Sub(fromBal, v)); err != nil {
		return err
	}
	return putU256(batch, balanceKey(to), newTo)
}

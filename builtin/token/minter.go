// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/thor"
)

// GrantMinter issues a minting capability to holder. Only the admin may grant.
// Granting again returns an equivalent capability.
func (t *Token) GrantMinter(caller, holder thor.Address) (*Capability, error) {
	admin, err := t.Admin()
	if err != nil {
		return nil, err
	}
	if caller != admin {
		return nil, reverts.ErrUnauthorized
	}
	if holder.IsZero() {
		return nil, reverts.ErrZeroAddress
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := capabilityID(t.addr, holder)
	if err := t.store.Put(minterKey(holder), id.Bytes()); err != nil {
		return nil, errors.Wrap(err, "save minter")
	}
	logger.Info("minter granted", "holder", holder)
	return &Capability{id: id, holder: holder}, nil
}

// RevokeMinter withdraws the capability of holder. Capabilities already handed out stop working.
func (t *Token) RevokeMinter(caller, holder thor.Address) error {
	admin, err := t.Admin()
	if err != nil {
		return err
	}
	if caller != admin {
		return reverts.ErrUnauthorized
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Delete(minterKey(holder)); err != nil {
		return errors.Wrap(err, "delete minter")
	}
	logger.Info("minter revoked", "holder", holder)
	return nil
}

// IsMinter reports whether holder currently holds a minting capability.
func (t *Token) IsMinter(holder thor.Address) (bool, error) {
	has, err := t.store.Has(minterKey(holder))
	return has, errors.Wrap(err, "load minter")
}

// LoadCapability re-issues the capability previously granted to holder,
// for wiring a restarted process back to its minter.
func (t *Token) LoadCapability(holder thor.Address) (*Capability, error) {
	if ok, err := t.IsMinter(holder); err != nil {
		return nil, err
	} else if !ok {
		return nil, reverts.ErrUnauthorized
	}
	return &Capability{id: capabilityID(t.addr, holder), holder: holder}, nil
}

func (t *Token) checkCapability(c *Capability) error {
	if c == nil {
		return reverts.ErrUnauthorized
	}
	data, err := t.store.Get(minterKey(c.holder))
	if err != nil {
		if t.store.IsNotFound(err) {
			return reverts.ErrUnauthorized
		}
		return errors.Wrap(err, "load minter")
	}
	if thor.BytesToBytes32(data) != c.id {
		return reverts.ErrUnauthorized
	}
	return nil
}

// Mint creates amount new tokens for to. c must be a live capability issued by this token.
func (t *Token) Mint(c *Capability, to thor.Address, amount *big.Int) error {
	v, err := toU256(amount)
	if err != nil {
		return err
	}
	if to.IsZero() {
		return reverts.ErrZeroAddress
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkCapability(c); err != nil {
		return err
	}

	supply, err := t.getU256(supplyKey)
	if err != nil {
		return errors.Wrap(err, "load supply")
	}
	newSupply, overflow := new(uint256.Int).AddOverflow(supply, v)
	if overflow {
		return reverts.ErrOverflow
	}
	bal, err := t.getU256(balanceKey(to))
	if err != nil {
		return errors.Wrap(err, "load balance")
	}
	// balance <= supply, so this cannot overflow once supply did not
	newBal := new(uint256.Int).Add(bal, v)

	batch := t.store.NewBatch()
	if err := putU256(batch, supplyKey, newSupply); err != nil {
		return err
	}
	if err := putU256(batch, balanceKey(to), newBal); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit mint")
	}
	logger.Debug("minted", "minter", c.holder, "to", to, "amount", amount)
	return nil
}

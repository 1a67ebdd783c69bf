// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis deploys the token and the staking pool into a store and
// reopens an existing deployment.
package genesis

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/builtin/staking/ledger"
	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "genesis")

// Bucket is the key prefix the deployment record is kept under.
const Bucket = kv.Bucket("genesis/")

var deploymentKey = []byte("deployment")

var (
	ErrNotDeployed     = errors.New("nothing deployed")
	ErrAlreadyDeployed = errors.New("already deployed")
)

// Deployment is an opened token and pool pair.
type Deployment struct {
	Owner  thor.Address
	Token  *token.Token
	Ledger *ledger.Ledger
	Pool   *staking.Pool
}

type record struct {
	Owner thor.Address
	Token thor.Address
	Pool  thor.Address
}

// ContractAddress derives the address of the nonce-th contract created by owner.
func ContractAddress(owner thor.Address, nonce uint64) thor.Address {
	return thor.Address(crypto.CreateAddress(common.Address(owner), nonce))
}

// Deploy creates the token with the allocations of cfg, creates the pool and
// grants it the minter capability. The owner keeps a minter capability too.
//
// The deployment record is written last, a failed deploy leaves a store that
// should be discarded.
func Deploy(db kv.Store, cfg *Config, clk clock.Clock, sinks ...staking.EventSink) (*Deployment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	has, err := Bucket.NewGetter(db).Has(deploymentKey)
	if err != nil {
		return nil, errors.Wrap(err, "load deployment")
	}
	if has {
		return nil, ErrAlreadyDeployed
	}

	rec := record{
		Owner: cfg.Owner,
		Token: ContractAddress(cfg.Owner, 0),
		Pool:  ContractAddress(cfg.Owner, 1),
	}

	tok, err := token.New(rec.Token, rec.Owner, db)
	if err != nil {
		return nil, errors.WithMessage(err, "create token")
	}
	ownerCap, err := tok.GrantMinter(rec.Owner, rec.Owner)
	if err != nil {
		return nil, errors.WithMessage(err, "grant owner")
	}
	for _, a := range cfg.Accounts {
		if err := tok.Mint(ownerCap, a.Address, a.Balance.Int()); err != nil {
			return nil, errors.WithMessagef(err, "allocate %s", a.Address)
		}
	}
	if _, err := tok.GrantMinter(rec.Owner, rec.Pool); err != nil {
		return nil, errors.WithMessage(err, "grant pool")
	}

	data, err := rlp.EncodeToBytes(&rec)
	if err != nil {
		return nil, err
	}
	if err := Bucket.NewPutter(db).Put(deploymentKey, data); err != nil {
		return nil, errors.Wrap(err, "save deployment")
	}
	logger.Info("deployed", "owner", rec.Owner, "token", rec.Token, "pool", rec.Pool, "accounts", len(cfg.Accounts))

	return open(db, &rec, clk, sinks)
}

// Open reopens the deployment found in db.
func Open(db kv.Store, clk clock.Clock, sinks ...staking.EventSink) (*Deployment, error) {
	getter := Bucket.NewGetter(db)
	data, err := getter.Get(deploymentKey)
	if err != nil {
		if getter.IsNotFound(err) {
			return nil, ErrNotDeployed
		}
		return nil, errors.Wrap(err, "load deployment")
	}
	var rec record
	if err := rlp.DecodeBytes(data, &rec); err != nil {
		return nil, errors.Wrap(err, "decode deployment")
	}
	return open(db, &rec, clk, sinks)
}

func open(db kv.Store, rec *record, clk clock.Clock, sinks []staking.EventSink) (*Deployment, error) {
	tok, err := token.New(rec.Token, rec.Owner, db)
	if err != nil {
		return nil, err
	}
	poolCap, err := tok.LoadCapability(rec.Pool)
	if err != nil {
		return nil, errors.WithMessage(err, "pool capability")
	}
	l, err := ledger.New(db)
	if err != nil {
		return nil, err
	}
	return &Deployment{
		Owner:  rec.Owner,
		Token:  tok,
		Ledger: l,
		Pool:   staking.New(rec.Pool, tok, poolCap, l, clk, sinks...),
	}, nil
}

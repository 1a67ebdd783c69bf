// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/thor"
)

type Pool struct {
	pool *staking.Pool
}

func New(pool *staking.Pool) *Pool {
	return &Pool{pool}
}

func (p *Pool) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	total, err := p.pool.TotalStaked()
	if err != nil {
		return err
	}
	balance, err := p.pool.Balance()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Summary{
		Address:     p.pool.Address(),
		TotalStaked: utils.Amount(total),
		Balance:     utils.Amount(balance),
		Timestamp:   p.pool.Now(),
	})
}

func (p *Pool) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc, err := p.pool.Account(addr)
	if err != nil {
		return err
	}
	now := p.pool.Now()
	return utils.WriteJSON(w, &Account{
		Staked:      utils.Amount(acc.Staked),
		Unclaimed:   utils.Amount(acc.Unclaimed),
		Rewards:     utils.Amount(acc.Rewards(now)),
		LastAccrual: acc.LastAccrual,
		Timestamp:   now,
	})
}

func parseAmount(req *http.Request) (*big.Int, error) {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.ParseAmount(body.Amount, "amount")
}

func (p *Pool) handleStake(w http.ResponseWriter, req *http.Request) error {
	return p.moveStake(w, req, p.pool.Stake)
}

func (p *Pool) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	return p.moveStake(w, req, p.pool.Unstake)
}

func (p *Pool) moveStake(w http.ResponseWriter, req *http.Request, op func(thor.Address, *big.Int) error) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	amount, err := parseAmount(req)
	if err != nil {
		return err
	}
	if err := op(addr, amount); err != nil {
		return err
	}
	return p.handleGetAccount(w, req)
}

func (p *Pool) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	claimed, err := p.pool.ClaimRewards(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Claimed{Amount: utils.Amount(claimed)})
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staking").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetSummary))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetAccount))
	sub.Path("/{address}/stake").
		Methods(http.MethodPost).
		Name("POST /staking/{address}/stake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleStake))
	sub.Path("/{address}/unstake").
		Methods(http.MethodPost).
		Name("POST /staking/{address}/unstake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleUnstake))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("POST /staking/{address}/claim").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClaim))
}

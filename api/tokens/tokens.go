// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/token"
)

type Tokens struct {
	token *token.Token
}

func New(tok *token.Token) *Tokens {
	return &Tokens{tok}
}

func (t *Tokens) handleGetInfo(w http.ResponseWriter, _ *http.Request) error {
	supply, err := t.token.TotalSupply()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Info{
		Address:     t.token.Address(),
		Name:        t.token.Name(),
		Symbol:      t.token.Symbol(),
		Decimals:    t.token.Decimals(),
		TotalSupply: utils.Amount(supply),
	})
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	b, err := t.token.BalanceOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Balance: utils.Amount(b)})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	spender, err := utils.AddressVar(req, "spender")
	if err != nil {
		return err
	}
	a, err := t.token.Allowance(owner, spender)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{
		Owner:     owner,
		Spender:   spender,
		Allowance: utils.Amount(a),
	})
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	from, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.To == nil {
		return utils.BadRequest(errors.New("to: missing"))
	}
	amount, err := utils.ParseAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	if err := t.token.Transfer(from, *body.To, amount); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Receipt{From: from, To: *body.To, Amount: utils.Amount(amount)})
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Spender == nil {
		return utils.BadRequest(errors.New("spender: missing"))
	}
	amount, err := utils.ParseAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	if err := t.token.Approve(owner, *body.Spender, amount); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{Owner: owner, Spender: *body.Spender, Allowance: utils.Amount(amount)})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /token").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetInfo))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /token/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{owner}/allowance/{spender}").
		Methods(http.MethodGet).
		Name("GET /token/{owner}/allowance/{spender}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/{address}/transfer").
		Methods(http.MethodPost).
		Name("POST /token/{address}/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer))
	sub.Path("/{address}/approve").
		Methods(http.MethodPost).
		Name("POST /token/{address}/approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
}

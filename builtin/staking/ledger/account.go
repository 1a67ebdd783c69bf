// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/builtin/staking/accrual"
)

// Account is the per-address staking record.
type Account struct {
	Staked    *big.Int // principal, base units
	Unclaimed *big.Int // settled but unpaid rewards

	// unix seconds accrual is measured from
	LastAccrual uint64
}

func newAccount() *Account {
	return &Account{Staked: &big.Int{}, Unclaimed: &big.Int{}}
}

// IsDormant reports whether the account holds neither principal nor rewards.
// Dormant accounts are not stored.
func (a *Account) IsDormant() bool {
	return a.Staked.Sign() == 0 && a.Unclaimed.Sign() == 0
}

// Copy returns a deep copy.
func (a *Account) Copy() *Account {
	return &Account{
		Staked:      new(big.Int).Set(a.Staked),
		Unclaimed:   new(big.Int).Set(a.Unclaimed),
		LastAccrual: a.LastAccrual,
	}
}

// Rewards returns the unclaimed rewards plus what accrued up to now, without settling.
func (a *Account) Rewards(now uint64) *big.Int {
	return accrual.Calculate(a.Staked, a.Unclaimed, a.LastAccrual, now)
}

// settle banks the rewards accrued up to now. The clock never moves back.
func (a *Account) settle(now uint64) {
	a.Unclaimed = a.Rewards(now)
	if now > a.LastAccrual {
		a.LastAccrual = now
	}
}

// Encode encodes the account, a dormant one as empty bytes.
func (a *Account) Encode() ([]byte, error) {
	if a.IsDormant() {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

// Decode decodes an account, empty bytes as a fresh one.
func (a *Account) Decode(data []byte) error {
	if len(data) == 0 {
		*a = *newAccount()
		return nil
	}
	if err := rlp.DecodeBytes(data, a); err != nil {
		return err
	}
	if a.Staked == nil {
		a.Staked = &big.Int{}
	}
	if a.Unclaimed == nil {
		a.Unclaimed = &big.Int{}
	}
	return nil
}

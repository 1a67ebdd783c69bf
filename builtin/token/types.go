// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/thor"
)

var (
	supplyKey = []byte("supply")
	adminKey  = []byte("admin")
)

func balanceKey(addr thor.Address) []byte {
	return append([]byte("b"), addr.Bytes()...)
}

func allowanceKey(owner, spender thor.Address) []byte {
	return append([]byte("a"), thor.Keccak256(owner.Bytes(), spender.Bytes()).Bytes()...)
}

func minterKey(holder thor.Address) []byte {
	return append([]byte("m"), holder.Bytes()...)
}

// Capability authorizes minting. Only the token hands them out, through GrantMinter or LoadCapability.
type Capability struct {
	id     thor.Bytes32
	holder thor.Address
}

// Holder returns the address the capability was issued to.
func (c *Capability) Holder() thor.Address {
	return c.holder
}

func capabilityID(tokenAddr, holder thor.Address) thor.Bytes32 {
	return thor.Keccak256(thor.MinterRole.Bytes(), tokenAddr.Bytes(), holder.Bytes())
}

// toU256 converts a caller supplied amount, rejecting negatives and values wider than 256 bits.
func toU256(amount *big.Int) (*uint256.Int, error) {
	if amount == nil {
		return new(uint256.Int), nil
	}
	if amount.Sign() < 0 {
		return nil, reverts.ErrOverflow
	}
	v, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return v, nil
}

func encodeU256(v *uint256.Int) ([]byte, error) {
	if v.IsZero() {
		return nil, nil
	}
	return rlp.EncodeToBytes(v)
}

func decodeU256(data []byte) (*uint256.Int, error) {
	v := new(uint256.Int)
	if len(data) == 0 {
		return v, nil
	}
	if err := rlp.DecodeBytes(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

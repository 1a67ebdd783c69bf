// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the failures a token or pool call reverts with.
package reverts

import (
	"encoding/binary"
	"errors"
)

// Pool failures.
var (
	ErrZeroAmount         = New("amount must be greater than zero")
	ErrInsufficientStake  = New("insufficient staked balance")
	ErrTransferFailed     = New("token transfer failed")
	ErrNoRewardsAvailable = New("no rewards available")
	ErrUnauthorized       = New("caller is not a minter")
)

// Token failures.
var (
	ErrInsufficientBalance   = New("transfer amount exceeds balance")
	ErrInsufficientAllowance = New("insufficient allowance")
	ErrOverflow              = New("arithmetic overflow")
	ErrZeroAddress           = New("zero address")
)

// errorSelector is the 4-byte selector of Error(string).
var errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Bytes returns the ABI encoded Error(string) revert data.
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}

	msg := []byte(e.message)
	padded := (len(msg) + 31) / 32 * 32

	// selector + offset (32 bytes) + length (32 bytes) + data (padded to 32)
	encoded := make([]byte, 4+32+32+padded)
	copy(encoded, errorSelector)
	binary.BigEndian.PutUint64(encoded[4+24:], 32)
	binary.BigEndian.PutUint64(encoded[4+32+24:], uint64(len(msg)))
	copy(encoded[4+64:], msg)

	return encoded
}

// Wrap attaches cause to the revert. The result matches both with errors.Is.
func (e *ErrRevert) Wrap(cause error) error {
	if cause == nil {
		return e
	}
	return &wrapped{revert: e, cause: cause}
}

type wrapped struct {
	revert *ErrRevert
	cause  error
}

func (w *wrapped) Error() string   { return w.revert.message + ": " + w.cause.Error() }
func (w *wrapped) Unwrap() []error { return []error{w.revert, w.cause} }

// IsRevertErr reports whether err carries an ErrRevert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Unwrap returns the outermost ErrRevert carried by err, or nil.
func Unwrap(err error) *ErrRevert {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

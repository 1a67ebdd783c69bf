// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value storage contract shared by the ledger,
// the token and the deployment record.
package kv

// Getter reads keys. A missing key is an error for which IsNotFound reports true.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(error) bool
}

type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Batch buffers writes. Nothing is visible until Write, which applies all
// of them or none.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Store is the full read, write and scan surface.
type Store interface {
	Getter
	Putter
	NewBatch() Batch
	Iterate(r Range, fn func(key, value []byte) bool) error
}

type StoreCloser interface {
	Store
	Close() error
}

// Range selects keys in [Start, Limit). An empty Limit is unbounded.
type Range struct {
	Start []byte
	Limit []byte
}

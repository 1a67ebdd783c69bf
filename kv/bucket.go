// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket namespaces keys of a shared store with a fixed prefix.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	full := make([]byte, 0, len(b)+len(k))
	return append(append(full, b...), k...)
}

// NewGetter reads keys of the bucket from src.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter writes keys of the bucket to src.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewBatch writes keys of the bucket to the batch src.
func (b Bucket) NewBatch(src Batch) Batch {
	return &bucketBatch{bucketPutter{b, src}, src}
}

// NewStore scopes every operation on src to the bucket. Iterated keys come
// back without the prefix.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucketGetter{b, src}, bucketPutter{b, src}, src}
}

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.b.key(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.b.key(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	b   Bucket
	src Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.b.key(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.b.key(key)) }

type bucketBatch struct {
	bucketPutter
	src Batch
}

func (bb *bucketBatch) Len() int     { return bb.src.Len() }
func (bb *bucketBatch) Write() error { return bb.src.Write() }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) NewBatch() Batch {
	return s.bucketGetter.b.NewBatch(s.src.NewBatch())
}

func (s *bucketStore) Iterate(r Range, fn func(key, value []byte) bool) error {
	b := s.bucketGetter.b
	rng := Range{
		Start: b.key(r.Start),
		Limit: util.BytesPrefix([]byte(b)).Limit,
	}
	if len(r.Limit) > 0 {
		rng.Limit = b.key(r.Limit)
	}
	return s.src.Iterate(rng, func(key, value []byte) bool {
		return fn(key[len(b):], value)
	})
}

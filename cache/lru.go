// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// Stats is a snapshot of cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// HitRate returns the share of lookups that hit, 0 before any lookup.
func (s Stats) HitRate() float64 {
	if total := s.Hits + s.Misses; total > 0 {
		return float64(s.Hits) / float64(total)
	}
	return 0
}

// LRU is a typed LRU cache on top of golang-lru that counts hits and misses.
type LRU[K comparable, V any] struct {
	cache        *lru.Cache
	hits, misses atomic.Int64
	permille     atomic.Int32 // hit rate at the last Stats call
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: c}, nil
}

// Get returns the cached value for key.
func (l *LRU[K, V]) Get(key K) (v V, ok bool) {
	raw, ok := l.cache.Get(key)
	if !ok {
		l.misses.Add(1)
		return v, false
	}
	l.hits.Add(1)
	return raw.(V), true
}

// Add puts the value into the cache.
func (l *LRU[K, V]) Add(key K, v V) {
	l.cache.Add(key, v)
}

// Remove evicts key.
func (l *LRU[K, V]) Remove(key K) {
	l.cache.Remove(key)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.cache.Len()
}

// Purge drops all entries.
func (l *LRU[K, V]) Purge() {
	l.cache.Purge()
}

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU[K, V]) GetOrLoad(key K, loader func(K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		return v, err
	}

	l.cache.Add(key, v)
	return v, nil
}

// Stats returns the lookup counters, and whether the hit rate moved by at
// least 0.1% since the previous call.
func (l *LRU[K, V]) Stats() (Stats, bool) {
	s := Stats{Hits: l.hits.Load(), Misses: l.misses.Load()}
	permille := int32(s.HitRate() * 1000)
	return s, l.permille.Swap(permille) != permille
}

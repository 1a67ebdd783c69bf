// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/stakepool/kv"
)

var _ kv.StoreCloser = (*LevelDB)(nil)

const minCache = 16

// Options tunes a persistent instance. Values below 16 are raised to 16.
type Options struct {
	CacheSize              int // MiB, split between block cache and write buffers
	OpenFilesCacheCapacity int
}

func (o Options) leveldb() *opt.Options {
	cache := max(o.CacheSize, minCache)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, minCache),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	}
}

var (
	readOpts  = &opt.ReadOptions{}
	writeOpts = &opt.WriteOptions{Sync: true}
)

// LevelDB is a kv.Store on goleveldb. Every write is synced to disk.
type LevelDB struct {
	db  *leveldb.DB
	stg storage.Storage
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %v", path)
	}
	return open(stg, opts)
}

// NewMem returns an empty in-memory database, mostly for tests.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.leveldb())
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db, stg}, nil
}

func (l *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get fails with an error matching IsNotFound when key is absent.
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, readOpts)
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, readOpts)
}

func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, writeOpts)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, writeOpts)
}

// Close releases the database and the lock on its directory.
func (l *LevelDB) Close() error {
	if err := l.db.Close(); err != nil {
		return err
	}
	return l.stg.Close()
}

// Iterate visits [r.Start, r.Limit) in key order while fn returns true.
// Key and value must not be retained after fn returns.
func (l *LevelDB) Iterate(r kv.Range, fn func(key, value []byte) bool) error {
	it := l.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, readOpts)
	defer it.Release()

	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{db: l.db}
}

// batch buffers writes until Write commits them in one atomic, synced write.
type batch struct {
	db *leveldb.DB
	b  leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.b.Len() }

func (b *batch) Write() error {
	return b.db.Write(&b.b, writeOpts)
}

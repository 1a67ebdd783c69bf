// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/kv"
)

func openAll(t *testing.T) []*LevelDB {
	disk, err := New(filepath.Join(t.TempDir(), "ledger"), Options{16, 16})
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	mem, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { mem.Close() })

	return []*LevelDB{disk, mem}
}

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	for _, db := range openAll(t) {
		require.NoError(t, db.Put(key, value))

		ret1, err := db.Get(key)
		require.NoError(t, err)

		ret2, err := db.Has(key)
		require.NoError(t, err)

		ret3, err := db.Has(inValidKey)
		require.NoError(t, err)

		require.NoError(t, db.Delete(key))

		_, ret4 := db.Get(key)

		tests := []struct {
			ret      any
			expected any
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{db.IsNotFound(ret4), true},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestLevelDBBatch(t *testing.T) {
	for _, db := range openAll(t) {
		require.NoError(t, db.Put([]byte("gone"), []byte("x")))

		batch := db.NewBatch()
		require.NoError(t, batch.Put([]byte("123"), []byte("456")))
		require.NoError(t, batch.Delete([]byte("gone")))
		assert.Equal(t, 2, batch.Len())

		has, err := db.Has([]byte("123"))
		require.NoError(t, err)
		assert.False(t, has, "batch must not be visible before write")

		require.NoError(t, batch.Write())

		v, err := db.Get([]byte("123"))
		require.NoError(t, err)
		assert.Equal(t, []byte("456"), v)

		has, err = db.Has([]byte("gone"))
		require.NoError(t, err)
		assert.False(t, has)
	}
}

func TestLevelDBIterate(t *testing.T) {
	for _, db := range openAll(t) {
		for _, k := range []string{"a1", "b1", "b2", "c1"} {
			require.NoError(t, db.Put([]byte(k), []byte(k)))
		}

		var keys []string
		err := kv.Bucket("b").NewStore(db).Iterate(kv.Range{}, func(k, v []byte) bool {
			keys = append(keys, string(k))
			return true
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, keys)

		keys = nil
		require.NoError(t, db.Iterate(kv.Range{Start: []byte("b2")}, func(k, _ []byte) bool {
			keys = append(keys, string(k))
			return true
		}))
		assert.Equal(t, []string{"b2", "c1"}, keys)
	}
}

func TestLevelDBReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger")

	db, err := New(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	require.NoError(t, db.Close())

	db, err = New(path, Options{})
	require.NoError(t, err)
	defer db.Close()

	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

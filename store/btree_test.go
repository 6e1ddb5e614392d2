package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, kv ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	v, err := kv.Get(key)
	require.NoError(t, err)
	return v
}

func mustHas(t *testing.T, kv ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := kv.Has(key)
	require.NoError(t, err)
	return ok
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	// base is the root of our data, we can layer on top and
	// all queries should work
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, mustGet(t, base, k))
	assert.False(t, mustHas(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, mustGet(t, base, k))
	assert.True(t, mustHas(t, base, k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, cache, k))
	assert.True(t, mustHas(t, cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, mustGet(t, cache, k2))
	assert.Nil(t, mustGet(t, base, k2))
	assert.False(t, mustHas(t, base, k2))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assert.Nil(t, mustGet(t, base, k3))

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assert.False(t, mustHas(t, c3, k))
	assert.True(t, mustHas(t, base, k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assert.Nil(t, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
	assert.Nil(t, mustGet(t, base, k3))
}

func TestMemStoreRootIsNotWritable(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	assert.Error(t, base.(KVCacheWrap).Write())
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Set([]byte("e"), []byte("cache-e")))
	require.NoError(t, cache.Delete([]byte("c")))

	cases := map[string]struct {
		start, end []byte
		want       []Model
	}{
		"full range": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("e"), Value: []byte("cache-e")},
				{Key: []byte("g"), Value: []byte("base-g")},
			},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("g"),
			want: []Model{
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("e"), Value: []byte("cache-e")},
			},
		},
		"open end": {
			start: []byte("f"),
			want: []Model{
				{Key: []byte("g"), Value: []byte("base-g")},
			},
		},
		"open start": {
			end: []byte("b"),
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := cache.Iterator(tc.start, tc.end)
			require.NoError(t, err)
			defer it.Close()

			var got []Model
			for ; it.Valid(); it.Next() {
				got = append(got, Model{Key: it.Key(), Value: it.Value()})
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

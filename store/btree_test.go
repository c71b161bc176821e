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
	assert.Nil(t, mustGet(t, cache, k2))
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, mustGet(t, cache, k2))
	assert.Nil(t, mustGet(t, base, k2))
	assert.True(t, mustHas(t, cache, k2))
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
	assert.Nil(t, mustGet(t, c3, k))
	assert.False(t, mustHas(t, c3, k))
	assert.True(t, mustHas(t, base, k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assert.Nil(t, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
	assert.Nil(t, mustGet(t, base, k3))
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	k, v := []byte("key"), []byte("value")

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	require.NoError(t, inner.Set(k, v))
	assert.Nil(t, mustGet(t, outer, k))

	require.NoError(t, inner.Write())
	assert.Equal(t, v, mustGet(t, outer, k))
	assert.Nil(t, mustGet(t, base, k))

	require.NoError(t, outer.Write())
	assert.Equal(t, v, mustGet(t, base, k))
}

func TestCacheWrapIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Delete([]byte("e")))
	require.NoError(t, cache.Set([]byte("z"), []byte("cache-z")))

	cases := map[string]struct {
		start, end []byte
		wantKeys   []string
		wantValues []string
	}{
		"everything": {
			wantKeys:   []string{"a", "b", "c", "g", "z"},
			wantValues: []string{"base-a", "cache-b", "cache-c", "base-g", "cache-z"},
		},
		"bounded": {
			start:      []byte("b"),
			end:        []byte("g"),
			wantKeys:   []string{"b", "c"},
			wantValues: []string{"cache-b", "cache-c"},
		},
		"open end": {
			start:      []byte("d"),
			wantKeys:   []string{"g", "z"},
			wantValues: []string{"base-g", "cache-z"},
		},
		"open start": {
			end:        []byte("c"),
			wantKeys:   []string{"a", "b"},
			wantValues: []string{"base-a", "cache-b"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := cache.Iterator(tc.start, tc.end)
			require.NoError(t, err)
			defer it.Close()

			var keys, values []string
			for ; it.Valid(); it.Next() {
				keys = append(keys, string(it.Key()))
				values = append(values, string(it.Value()))
			}
			assert.Equal(t, tc.wantKeys, keys)
			assert.Equal(t, tc.wantValues, values)
		})
	}
}

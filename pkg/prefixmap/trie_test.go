package prefixmap_test

import (
	"testing"

	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrie_ZeroValue(t *testing.T) {
	var trie prefixmap.Trie[string]
	assert.False(t, trie.Begin().Valid())
	_, err := trie.At("a")
	assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)

	require.NoError(t, trie.Insert("apple", "red"))
	got, err := trie.At("a")
	require.NoError(t, err)
	assert.Equal(t, "red", got)
}

func TestTrie_CopyIsIndependent(t *testing.T) {
	original, err := prefixmap.TrieFrom(entry("value", 1), entry("something", 2))
	require.NoError(t, err)

	clone := original.Clone()
	require.NoError(t, original.Insert("other", 3))
	require.NoError(t, clone.Insert("zzz", 4))

	got, err := clone.At("v")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	got, err = clone.At("s")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	_, err = clone.At("o")
	assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)
	_, err = original.At("z")
	assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)

	assert.Equal(t, 3, original.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestTrie_CloneWith(t *testing.T) {
	original, err := prefixmap.TrieFrom(prefixmap.Entry[[]int]{Key: "list", Value: []int{1, 2}})
	require.NoError(t, err)

	shallow := original.Clone()
	deep := original.CloneWith(func(v []int) []int { return append([]int(nil), v...) })

	v, err := original.At("l")
	require.NoError(t, err)
	v[0] = 100

	got, _ := shallow.At("l")
	assert.Equal(t, 100, got[0])
	got, _ = deep.At("l")
	assert.Equal(t, 1, got[0])
}

func TestTrie_MoveLeavesSourceEmpty(t *testing.T) {
	source, err := prefixmap.TrieFrom(entry("value", 1), entry("something", 2))
	require.NoError(t, err)

	moved := source.Move()

	_, err = source.At("value")
	assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)
	_, err = source.At("s")
	assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)
	assert.Equal(t, 0, source.Len())
	assert.False(t, source.Begin().Valid())

	got, err := moved.At("value")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	got, err = moved.At("s")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// the moved-from trie stays usable
	require.NoError(t, source.Insert("value", 5))
	got, err = source.At("v")
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestTrie_IterateValuedInnerNodes(t *testing.T) {
	trie := prefixmap.NewTrie[int]()
	for i, key := range []string{"abc", "a", "ab", "abd", "b", "abcd"} {
		require.NoError(t, trie.Insert(key, i))
	}

	var keys []string
	for it := trie.Begin(); it.Valid(); it.Next() {
		keys = append(keys, it.Key())
	}
	assert.Equal(t, []string{"a", "ab", "abc", "abcd", "abd", "b"}, keys)
	assert.Equal(t, 6, trie.Len())

	it := trie.Find("abd")
	require.True(t, it.Valid())
	assert.Equal(t, 3, it.Value())
	it.Next()
	require.True(t, it.Valid())
	assert.Equal(t, "b", it.Key())
	it.Next()
	assert.False(t, it.Valid())
}

func TestTrie_FindUniqueDescendant(t *testing.T) {
	trie, err := prefixmap.TrieFrom(entry("config", 1), entry("commit", 2), entry("push", 3))
	require.NoError(t, err)

	it := trie.Find("con")
	require.True(t, it.Valid())
	assert.Equal(t, "config", it.Key())
	it.Next()
	require.True(t, it.Valid())
	assert.Equal(t, "push", it.Key())

	assert.False(t, trie.Find("co").Valid())
	assert.False(t, trie.Find("configs").Valid())
}

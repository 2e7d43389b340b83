package prefixmap_test

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kinds = []prefixmap.Kind{prefixmap.KindTrie, prefixmap.KindSorted}

func forEachKind(t *testing.T, f func(t *testing.T, kind prefixmap.Kind)) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			f(t, kind)
		})
	}
}

func entry(key string, value int) prefixmap.Entry[int] {
	return prefixmap.Entry[int]{Key: key, Value: value}
}

func TestMap_OneValue(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m := prefixmap.New[int](kind)
		require.NoError(t, m.Insert("value", 10))

		for _, query := range []string{"v", "va", "val", "valu", "value"} {
			got, err := m.At(query)
			require.NoError(t, err, query)
			assert.Equal(t, 10, got, query)
		}

		for _, query := range []string{"x", "valuee", "w"} {
			_, err := m.At(query)
			assert.ErrorIs(t, err, prefixmap.ErrValueNotFound, query)
		}
	})
}

func TestMap_DistinctValues(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m, err := prefixmap.From(kind, entry("value", 324), entry("something", 238))
		require.NoError(t, err)

		got, err := m.At("v")
		require.NoError(t, err)
		assert.Equal(t, 324, got)

		got, err = m.At("s")
		require.NoError(t, err)
		assert.Equal(t, 238, got)

		_, err = m.At("x")
		assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)
	})
}

func TestMap_PrefixValues(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m, err := prefixmap.From(kind, entry("value", 12), entry("vaaaa", 74))
		require.NoError(t, err)

		tests := []struct {
			query string
			want  int
			err   error
		}{
			{query: "val", want: 12},
			{query: "value", want: 12},
			{query: "vaa", want: 74},
			{query: "vaaaa", want: 74},
			{query: "x", err: prefixmap.ErrValueNotFound},
			{query: "vb", err: prefixmap.ErrValueNotFound},
			{query: "v", err: prefixmap.ErrAmbiguousValue},
			{query: "va", err: prefixmap.ErrAmbiguousValue},
			{query: "", err: prefixmap.ErrAmbiguousValue},
		}

		for _, tt := range tests {
			got, err := m.At(tt.query)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err, tt.query)
				assert.Zero(t, got, tt.query)
				continue
			}
			require.NoError(t, err, tt.query)
			assert.Equal(t, tt.want, got, tt.query)
		}
	})
}

func TestMap_FindDoesNotDistinguishFailures(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m, err := prefixmap.From(kind, entry("value", 12), entry("vaaaa", 74))
		require.NoError(t, err)

		assert.False(t, m.Find("v").Valid())
		assert.False(t, m.Find("x").Valid())
		_, err = m.At("v")
		assert.ErrorIs(t, err, prefixmap.ErrAmbiguousValue)
		assert.True(t, prefixmap.IsAmbiguous(err))
		assert.False(t, prefixmap.IsNotFound(err))
		_, err = m.At("x")
		assert.True(t, prefixmap.IsNotFound(err))
		assert.False(t, prefixmap.IsAmbiguous(err))

		it := m.Find("val")
		require.True(t, it.Valid())
		assert.Equal(t, "value", it.Key())
		assert.Equal(t, 12, it.Value())
		assert.Equal(t, entry("value", 12), it.Entry())
	})
}

func TestMap_FindContinuesInKeyOrder(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m, err := prefixmap.From(kind,
			entry("alpha", 1), entry("beta", 2), entry("gamma", 3), entry("gammb", 4), entry("zeta", 5))
		require.NoError(t, err)

		it := m.Find("b")
		var keys []string
		for ; it.Valid(); it.Next() {
			keys = append(keys, it.Key())
		}
		assert.Equal(t, []string{"beta", "gamma", "gammb", "zeta"}, keys)

		// Next on an end iterator is a no-op
		it.Next()
		assert.False(t, it.Valid())
	})
}

func TestMap_DuplicateValues(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m := prefixmap.New[int](kind)
		require.NoError(t, m.Insert("value", 234))

		err := m.Insert("value", 745)
		require.ErrorIs(t, err, prefixmap.ErrDuplicateValue)
		assert.True(t, prefixmap.IsDuplicate(err))
		assert.Equal(t, 1, m.Len())

		var perr *prefixmap.Error
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "insert", perr.Op)
		assert.Equal(t, "value", perr.Key)
		assert.EqualError(t, err, `prefixmap: insert "value": duplicate value`)

		got, err := m.At("value")
		require.NoError(t, err)
		assert.Equal(t, 234, got)
	})
}

func TestMap_ListConstruction(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		_, err := prefixmap.From(kind, entry("a", 1), entry("b", 2), entry("a", 3))
		assert.ErrorIs(t, err, prefixmap.ErrDuplicateValue)

		m, err := prefixmap.From(kind, entry("value", 1), entry("something", 3))
		require.NoError(t, err)
		assert.Equal(t, 2, m.Len())

		err = m.InsertAll(entry("other", 5), entry("value", 6))
		assert.ErrorIs(t, err, prefixmap.ErrDuplicateValue)
		assert.Equal(t, 2, m.Len(), "failed batch must not be applied")
		_, ok := m.Get("other")
		assert.False(t, ok)

		require.NoError(t, m.InsertAll(entry("other", 5), entry("third", 6)))
		assert.Equal(t, []string{"other", "something", "third", "value"}, m.Keys())
	})
}

func TestMap_SeqConstruction(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		src := map[string]int{"value": 1123, "something": 56}
		m, err := prefixmap.FromSeq(kind, maps.All(src))
		require.NoError(t, err)

		got, err := m.At("v")
		require.NoError(t, err)
		assert.Equal(t, 1123, got)

		got, err = m.At("s")
		require.NoError(t, err)
		assert.Equal(t, 56, got)

		other := prefixmap.New[int](kind)
		require.NoError(t, other.InsertSeq(m.All()))
		assert.Equal(t, m.Keys(), other.Keys())

		err = other.InsertSeq(m.All())
		assert.ErrorIs(t, err, prefixmap.ErrDuplicateValue)
	})
}

func TestMap_Iterate(t *testing.T) {
	input := []prefixmap.Entry[int]{
		entry("value1", 12), entry("value2", 42), entry("something", 333), entry("value3", 0), entry("soooo", 235),
	}
	want := []string{"something", "soooo", "value1", "value2", "value3"}

	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		for _, order := range [][]int{{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {2, 0, 4, 1, 3}} {
			m := prefixmap.New[int](kind)
			for _, i := range order {
				require.NoError(t, m.Insert(input[i].Key, input[i].Value))
			}

			var keys []string
			for it := m.Begin(); it.Valid(); it.Next() {
				keys = append(keys, it.Key())
				v, ok := m.Get(it.Key())
				require.True(t, ok)
				assert.Equal(t, v, it.Value())
			}
			assert.Equal(t, want, keys)
			assert.Equal(t, want, m.Keys())
		}
	})
}

func TestMap_IterateEmpty(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m := prefixmap.New[int](kind)
		assert.False(t, m.Begin().Valid())
		assert.Empty(t, m.Keys())
		assert.Equal(t, 0, m.Len())

		_, err := m.At("")
		assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)
	})
}

func TestMap_EmptyKey(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m := prefixmap.New[int](kind)
		require.NoError(t, m.Insert("", 7))
		assert.ErrorIs(t, m.Insert("", 8), prefixmap.ErrDuplicateValue)

		got, err := m.At("")
		require.NoError(t, err)
		assert.Equal(t, 7, got)

		require.NoError(t, m.Insert("abc", 9))
		assert.Equal(t, []string{"", "abc"}, m.Keys())
		_, err = m.At("")
		assert.ErrorIs(t, err, prefixmap.ErrAmbiguousValue)
	})
}

func TestMap_PrefixOfStoredKeyIsAccepted(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m := prefixmap.New[int](kind)
		require.NoError(t, m.Insert("value", 1))
		require.NoError(t, m.Insert("val", 2))
		require.NoError(t, m.Insert("values", 3))

		assert.Equal(t, []string{"val", "value", "values"}, m.Keys())

		// the shorter key cannot be reached by abbreviation any more
		_, err := m.At("val")
		assert.ErrorIs(t, err, prefixmap.ErrAmbiguousValue)
		_, err = m.At("value")
		assert.ErrorIs(t, err, prefixmap.ErrAmbiguousValue)

		got, err := m.At("values")
		require.NoError(t, err)
		assert.Equal(t, 3, got)

		got, ok := m.Get("val")
		assert.True(t, ok)
		assert.Equal(t, 2, got)
	})
}

func TestMap_PrefixedBy(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind prefixmap.Kind) {
		m, err := prefixmap.From(kind,
			entry("get", 1), entry("getall", 2), entry("go", 3), entry("put", 4))
		require.NoError(t, err)

		var keys []string
		for k := range m.PrefixedBy("g") {
			keys = append(keys, k)
		}
		assert.Equal(t, []string{"get", "getall", "go"}, keys)

		keys = keys[:0]
		for k := range m.PrefixedBy("ge") {
			keys = append(keys, k)
			break
		}
		assert.Equal(t, []string{"get"}, keys)

		for range m.PrefixedBy("x") {
			t.Fatal("unexpected key")
		}
	})
}

func TestMap_NonASCIIOrderMatches(t *testing.T) {
	input := []prefixmap.Entry[int]{
		entry("北京", 1), entry("北海", 2), entry("上海", 3), entry("abc", 4), entry("Zeta", 5), entry("ähnlich", 6),
	}
	trie, err := prefixmap.TrieFrom(input...)
	require.NoError(t, err)
	vector, err := prefixmap.VectorFrom(input...)
	require.NoError(t, err)

	assert.Equal(t, vector.Keys(), trie.Keys())
	assert.True(t, slices.IsSorted(trie.Keys()))

	for _, query := range []string{"北", "北京", "上", "a", "ä", "Z"} {
		tv, terr := trie.At(query)
		vv, verr := vector.At(query)
		assert.Equal(t, vv, tv, query)
		assert.Equal(t, verr == nil, terr == nil, query)
	}

	_, err = trie.At("北")
	assert.ErrorIs(t, err, prefixmap.ErrAmbiguousValue)
}

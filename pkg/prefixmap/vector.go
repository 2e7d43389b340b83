package prefixmap

import (
	"iter"
	"slices"
	"strings"
)

// Vector 基于有序数组的前缀表
// 共享同一前缀的键在有序数组中必然相邻, 因此歧义判断只需检查下一个元素.
// 零值可直接使用.
type Vector[V any] struct {
	entries []Entry[V]
}

var _ Map[int] = (*Vector[int])(nil)

// NewVector 创建空有序数组前缀表
func NewVector[V any]() *Vector[V] {
	return &Vector[V]{}
}

// VectorFrom 从键值对列表创建, 先整体排序再检查相邻重复键
func VectorFrom[V any](entries ...Entry[V]) (*Vector[V], error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareEntry[V])
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Key == sorted[i].Key {
			return nil, duplicate(sorted[i].Key)
		}
	}
	return &Vector[V]{entries: sorted}, nil
}

// VectorFromSeq 从序列创建
func VectorFromSeq[V any](seq iter.Seq2[string, V]) (*Vector[V], error) {
	return VectorFrom(collect(seq)...)
}

func compareEntry[V any](a, b Entry[V]) int { return strings.Compare(a.Key, b.Key) }

// search 二分查找第一个键不小于 key 的位置
func (v *Vector[V]) search(key string) (int, bool) {
	return slices.BinarySearchFunc(v.entries, key, func(e Entry[V], k string) int {
		return strings.Compare(e.Key, k)
	})
}

// Insert 插入键值对, 保持有序
func (v *Vector[V]) Insert(key string, value V) error {
	pos, found := v.search(key)
	if found {
		return duplicate(key)
	}
	v.entries = slices.Insert(v.entries, pos, Entry[V]{Key: key, Value: value})
	return nil
}

// InsertAll 批量插入, 全部成功或不做修改
func (v *Vector[V]) InsertAll(entries ...Entry[V]) error {
	if err := checkBatch[V](v, entries); err != nil {
		return err
	}
	v.entries = append(v.entries, entries...)
	slices.SortStableFunc(v.entries, compareEntry[V])
	return nil
}

func (v *Vector[V]) InsertSeq(seq iter.Seq2[string, V]) error {
	return v.InsertAll(collect(seq)...)
}

// resolve 返回 query 唯一对应的下标
func (v *Vector[V]) resolve(query string) (int, error) {
	pos, _ := v.search(query)
	if pos == len(v.entries) || !strings.HasPrefix(v.entries[pos].Key, query) {
		return 0, notFound(query)
	}
	if next := pos + 1; next < len(v.entries) && strings.HasPrefix(v.entries[next].Key, query) {
		return 0, ambiguous(query)
	}
	return pos, nil
}

// At 按缩写查询
func (v *Vector[V]) At(query string) (V, error) {
	pos, err := v.resolve(query)
	if err != nil {
		var zero V
		return zero, err
	}
	return v.entries[pos].Value, nil
}

// Find 按缩写查询, 返回的迭代器按数组顺序继续遍历
func (v *Vector[V]) Find(query string) Iterator[V] {
	pos, err := v.resolve(query)
	if err != nil {
		return &VectorIterator[V]{entries: v.entries, pos: len(v.entries)}
	}
	return &VectorIterator[V]{entries: v.entries, pos: pos}
}

// Get 精确查询
func (v *Vector[V]) Get(key string) (V, bool) {
	pos, found := v.search(key)
	if !found {
		var zero V
		return zero, false
	}
	return v.entries[pos].Value, true
}

func (v *Vector[V]) Begin() Iterator[V] {
	return &VectorIterator[V]{entries: v.entries}
}

func (v *Vector[V]) All() iter.Seq2[string, V] {
	return iterate(v.Begin())
}

func (v *Vector[V]) PrefixedBy(query string) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		pos, _ := v.search(query)
		for ; pos < len(v.entries) && strings.HasPrefix(v.entries[pos].Key, query); pos++ {
			if !yield(v.entries[pos].Key, v.entries[pos].Value) {
				return
			}
		}
	}
}

func (v *Vector[V]) Keys() []string {
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}
	return keys
}

func (v *Vector[V]) Len() int { return len(v.entries) }

// Clone 复制, 值按赋值复制
func (v *Vector[V]) Clone() *Vector[V] {
	return &Vector[V]{entries: slices.Clone(v.entries)}
}

// CloneWith 复制, 值通过 copyValue 复制
func (v *Vector[V]) CloneWith(copyValue func(V) V) *Vector[V] {
	c := &Vector[V]{entries: make([]Entry[V], len(v.entries))}
	for i, e := range v.entries {
		c.entries[i] = Entry[V]{Key: e.Key, Value: copyValue(e.Value)}
	}
	return c
}

// Move 转移全部内容, 原表被清空
func (v *Vector[V]) Move() *Vector[V] {
	moved := &Vector[V]{entries: v.entries}
	v.entries = nil
	return moved
}

// VectorIterator 有序数组迭代器
type VectorIterator[V any] struct {
	entries []Entry[V]
	pos     int
}

var _ Iterator[int] = (*VectorIterator[int])(nil)

func (it *VectorIterator[V]) Valid() bool { return it.pos < len(it.entries) }

func (it *VectorIterator[V]) Next() {
	if it.pos < len(it.entries) {
		it.pos++
	}
}

func (it *VectorIterator[V]) Key() string { return it.entries[it.pos].Key }

func (it *VectorIterator[V]) Value() V { return it.entries[it.pos].Value }

func (it *VectorIterator[V]) Entry() Entry[V] { return it.entries[it.pos] }

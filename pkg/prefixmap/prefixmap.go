// Package prefixmap 提供支持缩写查询的前缀表
//
// 任意已存键的前缀都可以作为查询串使用, 只要该前缀不被多个已存键共享.
// 提供两种实现: 字符前缀树 Trie 与有序数组 Vector, 行为完全一致.
//
// 容器不做任何同步: 先单线程构建, 构建完成后可并发只读.
package prefixmap

import (
	"fmt"
	"iter"
)

// Entry 键值对
type Entry[V any] struct {
	Key   string
	Value V
}

// Map 前缀表公共接口
type Map[V any] interface {
	// Insert 插入键值对, 键已存在时返回 ErrDuplicateValue
	Insert(key string, value V) error
	// InsertAll 批量插入, 任意一个键冲突则整体失败且不做任何修改
	InsertAll(entries ...Entry[V]) error
	// InsertSeq 从序列插入, 语义同 InsertAll
	InsertSeq(seq iter.Seq2[string, V]) error

	// At 按缩写查询, 区分未找到与歧义
	At(query string) (V, error)
	// Find 按缩写查询, 未找到与歧义均返回结束迭代器
	Find(query string) Iterator[V]
	// Get 精确查询
	Get(key string) (V, bool)

	// Begin 按键升序遍历的起始迭代器
	Begin() Iterator[V]
	All() iter.Seq2[string, V]
	// PrefixedBy 以 query 为前缀的全部键值对, 按键升序
	PrefixedBy(query string) iter.Seq2[string, V]
	Keys() []string
	Len() int
}

// Iterator 前向迭代器
// Valid 为 false 时表示结束迭代器
type Iterator[V any] interface {
	Valid() bool
	Next()
	Key() string
	Value() V
	Entry() Entry[V]
}

// Kind 底层实现类型
type Kind int

const (
	KindTrie Kind = iota
	KindSorted
)

func (k Kind) String() string {
	switch k {
	case KindTrie:
		return "trie"
	case KindSorted:
		return "sorted"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// New 按类型创建空前缀表
func New[V any](kind Kind) Map[V] {
	if kind == KindSorted {
		return NewVector[V]()
	}
	return NewTrie[V]()
}

// From 按类型从键值对列表创建前缀表, 有重复键时整体失败
func From[V any](kind Kind, entries ...Entry[V]) (Map[V], error) {
	m := New[V](kind)
	if err := m.InsertAll(entries...); err != nil {
		return nil, err
	}
	return m, nil
}

// FromSeq 按类型从序列创建前缀表, 有重复键时整体失败
func FromSeq[V any](kind Kind, seq iter.Seq2[string, V]) (Map[V], error) {
	m := New[V](kind)
	if err := m.InsertSeq(seq); err != nil {
		return nil, err
	}
	return m, nil
}

// collect 将序列收集为键值对列表
func collect[V any](seq iter.Seq2[string, V]) []Entry[V] {
	var entries []Entry[V]
	for k, v := range seq {
		entries = append(entries, Entry[V]{Key: k, Value: v})
	}
	return entries
}

// iterate 将迭代器转为序列
func iterate[V any](it Iterator[V]) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for ; it.Valid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// checkBatch 检查批量插入的键是否与已存键或批内其他键冲突
func checkBatch[V any](m Map[V], entries []Entry[V]) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Key]; ok {
			return duplicate(e.Key)
		}
		if _, ok := m.Get(e.Key); ok {
			return duplicate(e.Key)
		}
		seen[e.Key] = struct{}{}
	}
	return nil
}

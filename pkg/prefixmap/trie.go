package prefixmap

import (
	"iter"
)

// Trie 基于字符前缀树的前缀表
// 零值可直接使用
type Trie[V any] struct {
	root *trieNode[V]
	size int
}

var _ Map[int] = (*Trie[int])(nil)

// NewTrie 创建空前缀树
func NewTrie[V any]() *Trie[V] {
	return &Trie[V]{root: &trieNode[V]{}}
}

// TrieFrom 从键值对列表创建前缀树
func TrieFrom[V any](entries ...Entry[V]) (*Trie[V], error) {
	t := NewTrie[V]()
	if err := t.InsertAll(entries...); err != nil {
		return nil, err
	}
	return t, nil
}

// TrieFromSeq 从序列创建前缀树
func TrieFromSeq[V any](seq iter.Seq2[string, V]) (*Trie[V], error) {
	return TrieFrom(collect(seq)...)
}

// node 返回根节点, 只读路径不初始化零值前缀树
func (t *Trie[V]) node() *trieNode[V] {
	if t.root == nil {
		return &trieNode[V]{}
	}
	return t.root
}

// walk 沿键消耗字符下行, 返回能到达的最深节点及其深度
func (t *Trie[V]) walk(key string) (*trieNode[V], int) {
	n := t.node()
	for i := 0; i < len(key); i++ {
		child, _, ok := n.child(key[i])
		if !ok {
			return n, i
		}
		n = child
	}
	return n, len(key)
}

// Insert 插入键值对
// 仅当键路径上已存在的最深节点带值且深度等于键长时拒绝,
// 因此插入一个已存长键的真前缀是允许的.
func (t *Trie[V]) Insert(key string, value V) error {
	if t.root == nil {
		t.root = &trieNode[V]{}
	}
	n, depth := t.walk(key)
	if n.entry != nil && depth == len(key) {
		return duplicate(key)
	}
	for i := depth; i < len(key); i++ {
		_, pos, _ := n.child(key[i])
		n = n.addChild(key[i], pos)
	}
	n.entry = &Entry[V]{Key: key, Value: value}
	t.size++
	return nil
}

// InsertAll 批量插入, 全部成功或不做修改
func (t *Trie[V]) InsertAll(entries ...Entry[V]) error {
	if err := checkBatch[V](t, entries); err != nil {
		return err
	}
	for _, e := range entries {
		if err := t.Insert(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// InsertSeq 从序列批量插入
func (t *Trie[V]) InsertSeq(seq iter.Seq2[string, V]) error {
	return t.InsertAll(collect(seq)...)
}

// resolve 查找 query 唯一对应的带值节点
func (t *Trie[V]) resolve(query string) (*trieNode[V], error) {
	n, depth := t.walk(query)
	if depth != len(query) {
		return nil, notFound(query)
	}
	found, count := n.unique()
	switch count {
	case 0:
		return nil, notFound(query)
	case 1:
		return found, nil
	}
	return nil, ambiguous(query)
}

// At 按缩写查询
func (t *Trie[V]) At(query string) (V, error) {
	n, err := t.resolve(query)
	if err != nil {
		var zero V
		return zero, err
	}
	return n.entry.Value, nil
}

// Find 按缩写查询, 返回的迭代器继续遍历整棵树的剩余部分
func (t *Trie[V]) Find(query string) Iterator[V] {
	n, err := t.resolve(query)
	if err != nil {
		return &TrieIterator[V]{}
	}
	return seekTrieIterator(t.node(), n.entry.Key)
}

// Get 精确查询
func (t *Trie[V]) Get(key string) (V, bool) {
	n, depth := t.walk(key)
	if depth != len(key) || n.entry == nil {
		var zero V
		return zero, false
	}
	return n.entry.Value, true
}

func (t *Trie[V]) Begin() Iterator[V] {
	return newTrieIterator(t.node())
}

func (t *Trie[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		t.node().each(yield)
	}
}

func (t *Trie[V]) PrefixedBy(query string) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		n, depth := t.walk(query)
		if depth != len(query) {
			return
		}
		n.each(yield)
	}
}

func (t *Trie[V]) Keys() []string {
	keys := make([]string, 0, t.size)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

func (t *Trie[V]) Len() int { return t.size }

// Clone 深拷贝, 值按赋值复制
func (t *Trie[V]) Clone() *Trie[V] {
	return t.CloneWith(func(v V) V { return v })
}

// CloneWith 深拷贝, 值通过 copyValue 复制
func (t *Trie[V]) CloneWith(copyValue func(V) V) *Trie[V] {
	return &Trie[V]{root: t.node().clone(copyValue), size: t.size}
}

// Move 转移全部内容到新前缀树, 原前缀树被清空
func (t *Trie[V]) Move() *Trie[V] {
	moved := &Trie[V]{root: t.root, size: t.size}
	t.root = &trieNode[V]{}
	t.size = 0
	return moved
}

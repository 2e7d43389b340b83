package prefixmap

import (
	"cmp"
	"slices"
)

// trieNode 前缀树节点
type trieNode[V any] struct {
	entry    *Entry[V]     // 从根到此节点的路径恰为一个已存键时非空
	children []trieEdge[V] // 子节点, 按字符升序
}

// trieEdge 子节点边, 消耗键的一个字节
type trieEdge[V any] struct {
	char byte
	node *trieNode[V]
}

func compareEdge[V any](e trieEdge[V], c byte) int { return cmp.Compare(e.char, c) }

// child 查找字符 c 对应的子节点, 未找到时 pos 为插入位置
func (n *trieNode[V]) child(c byte) (node *trieNode[V], pos int, ok bool) {
	pos, ok = slices.BinarySearchFunc(n.children, c, compareEdge[V])
	if !ok {
		return nil, pos, false
	}
	return n.children[pos].node, pos, true
}

// addChild 在 pos 处新建字符 c 的子节点
func (n *trieNode[V]) addChild(c byte, pos int) *trieNode[V] {
	node := &trieNode[V]{}
	n.children = slices.Insert(n.children, pos, trieEdge[V]{char: c, node: node})
	return node
}

// unique 在以 n 为根的子树中查找唯一带值节点
// count 为 0, 1 或 2 (表示至少两个)
func (n *trieNode[V]) unique() (found *trieNode[V], count int) {
	queue := []*trieNode[V]{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.entry != nil {
			if found != nil {
				return nil, 2
			}
			found = node
		}
		for _, e := range node.children {
			queue = append(queue, e.node)
		}
	}
	if found == nil {
		return nil, 0
	}
	return found, 1
}

// each 先序遍历子树, 即按键升序
func (n *trieNode[V]) each(yield func(string, V) bool) bool {
	if n.entry != nil && !yield(n.entry.Key, n.entry.Value) {
		return false
	}
	for _, e := range n.children {
		if !e.node.each(yield) {
			return false
		}
	}
	return true
}

// clone 深拷贝子树
func (n *trieNode[V]) clone(copyValue func(V) V) *trieNode[V] {
	c := &trieNode[V]{}
	if n.entry != nil {
		c.entry = &Entry[V]{Key: n.entry.Key, Value: copyValue(n.entry.Value)}
	}
	if len(n.children) > 0 {
		c.children = make([]trieEdge[V], len(n.children))
		for i, e := range n.children {
			c.children[i] = trieEdge[V]{char: e.char, node: e.node.clone(copyValue)}
		}
	}
	return c
}

package prefixmap

// trieFrame 遍历栈帧, pos 指向下一个待访问的兄弟节点
type trieFrame[V any] struct {
	children []trieEdge[V]
	pos      int
}

// TrieIterator 前缀树迭代器
// 深度优先, 兄弟节点按字符从小到大, 节点先于其子树访问.
// 栈为空且无当前节点即为结束迭代器.
type TrieIterator[V any] struct {
	stack []trieFrame[V]
	cur   *trieNode[V]
}

var _ Iterator[int] = (*TrieIterator[int])(nil)

func newTrieIterator[V any](root *trieNode[V]) *TrieIterator[V] {
	it := &TrieIterator[V]{}
	it.push(root)
	if root.entry != nil {
		it.cur = root
		return it
	}
	it.advance()
	return it
}

// seekTrieIterator 构造定位在 key 节点上的迭代器, key 必须存在
func seekTrieIterator[V any](root *trieNode[V], key string) *TrieIterator[V] {
	it := &TrieIterator[V]{}
	n := root
	for i := 0; i < len(key); i++ {
		_, pos, _ := n.child(key[i])
		it.stack = append(it.stack, trieFrame[V]{children: n.children, pos: pos + 1})
		n = n.children[pos].node
	}
	it.push(n)
	it.cur = n
	return it
}

func (it *TrieIterator[V]) push(n *trieNode[V]) {
	if len(n.children) > 0 {
		it.stack = append(it.stack, trieFrame[V]{children: n.children})
	}
}

// advance 移动到下一个带值节点
func (it *TrieIterator[V]) advance() {
	it.cur = nil
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.pos == len(top.children) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		n := top.children[top.pos].node
		top.pos++
		it.push(n)
		if n.entry != nil {
			it.cur = n
			return
		}
	}
}

func (it *TrieIterator[V]) Valid() bool { return it.cur != nil }

// Next 前进一步, 在结束迭代器上调用无效果
func (it *TrieIterator[V]) Next() {
	if it.cur == nil {
		return
	}
	it.advance()
}

func (it *TrieIterator[V]) Key() string { return it.cur.entry.Key }

func (it *TrieIterator[V]) Value() V { return it.cur.entry.Value }

func (it *TrieIterator[V]) Entry() Entry[V] { return *it.cur.entry }

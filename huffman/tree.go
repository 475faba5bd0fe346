package huffman

import (
	"container/heap"
	"fmt"
)

// NodeIndex addresses a node inside a Tree arena
type NodeIndex int32

// NoChild marks an absent child link
const NoChild NodeIndex = -1

// Node is a Huffman tree node. Leaves carry a value; internal nodes
// carry the sum of their children's frequencies.
type Node struct {
	Leaf  bool
	Value byte
	Freq  int64
	Left  NodeIndex
	Right NodeIndex
}

// Tree is a Huffman tree stored as an arena of nodes.
// Child links are indices into the arena, never pointers.
type Tree struct {
	nodes []Node
	root  NodeIndex
}

// queueItem orders tree nodes by frequency, then by arrival
type queueItem struct {
	node NodeIndex
	freq int64
	seq  int
}

type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// BuildTree builds a Huffman tree with the greedy two-smallest merge.
//
// Ties are resolved first-in first-out: leaves arrive in ascending value
// order and every merged node arrives after all nodes already queued.
// The first node extracted becomes the left child. The same frequency
// table therefore always yields the same tree.
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	if ft == nil || ft.Len() == 0 {
		return nil, ErrEmptyInput
	}

	entries := ft.Entries()
	t := &Tree{nodes: make([]Node, 0, 2*len(entries)-1)}

	q := make(nodeQueue, 0, len(entries))
	seq := 0
	for _, e := range entries {
		idx := t.add(Node{Leaf: true, Value: e.Value, Freq: e.Count, Left: NoChild, Right: NoChild})
		q = append(q, queueItem{node: idx, freq: e.Count, seq: seq})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		left := heap.Pop(&q).(queueItem)
		right := heap.Pop(&q).(queueItem)

		parent := t.add(Node{
			Freq:  left.freq + right.freq,
			Left:  left.node,
			Right: right.node,
		})
		heap.Push(&q, queueItem{node: parent, freq: left.freq + right.freq, seq: seq})
		seq++
	}

	t.root = heap.Pop(&q).(queueItem).node
	return t, nil
}

// TreeFromCodeBook rebuilds a decoding trie from a codebook.
// Node frequencies are zero since a codebook carries no counts.
func TreeFromCodeBook(cb *CodeBook) (*Tree, error) {
	if cb == nil || cb.Len() == 0 {
		return nil, ErrUntrainedTree
	}

	t := &Tree{}
	entries := cb.Entries()

	// A lone "0" codeword maps back to the single-leaf tree
	if len(entries) == 1 && entries[0].Code.Len == 1 && entries[0].Code.Bits == 0 {
		t.root = t.add(Node{Leaf: true, Value: entries[0].Value, Left: NoChild, Right: NoChild})
		return t, nil
	}

	t.root = t.add(Node{Left: NoChild, Right: NoChild})
	for _, e := range entries {
		cur := t.root
		for i := e.Code.Len - 1; i >= 0; i-- {
			if t.nodes[cur].Leaf {
				return nil, fmt.Errorf("%w: codeword %s for value %d passes through the leaf of value %d",
					ErrMalformedTree, e.Code, e.Value, t.nodes[cur].Value)
			}
			bit := (e.Code.Bits >> uint(i)) & 1
			next := t.child(cur, bit)
			if next == NoChild {
				if i == 0 {
					next = t.add(Node{Leaf: true, Value: e.Value, Left: NoChild, Right: NoChild})
				} else {
					next = t.add(Node{Left: NoChild, Right: NoChild})
				}
				t.setChild(cur, bit, next)
			} else if i == 0 {
				return nil, fmt.Errorf("%w: codeword %s for value %d is a prefix of another codeword",
					ErrMalformedTree, e.Code, e.Value)
			}
			cur = next
		}
	}
	return t, nil
}

func (t *Tree) add(n Node) NodeIndex {
	t.nodes = append(t.nodes, n)
	return NodeIndex(len(t.nodes) - 1)
}

func (t *Tree) child(i NodeIndex, bit uint64) NodeIndex {
	if bit == 0 {
		return t.nodes[i].Left
	}
	return t.nodes[i].Right
}

func (t *Tree) setChild(i NodeIndex, bit uint64, c NodeIndex) {
	if bit == 0 {
		t.nodes[i].Left = c
	} else {
		t.nodes[i].Right = c
	}
}

// Root returns the root index
func (t *Tree) Root() NodeIndex {
	return t.root
}

// Node returns the node at index i
func (t *Tree) Node(i NodeIndex) Node {
	return t.nodes[i]
}

// Len returns the number of nodes in the arena
func (t *Tree) Len() int {
	return len(t.nodes)
}

// LeafCount returns the number of leaves
func (t *Tree) LeafCount() int {
	n := 0
	for _, node := range t.nodes {
		if node.Leaf {
			n++
		}
	}
	return n
}

// Height returns the depth of the deepest leaf; a single-leaf tree has height 0.
// Unlike Walk it is not limited to MaxCodeLength.
func (t *Tree) Height() int {
	if t == nil || len(t.nodes) == 0 {
		return 0
	}
	type entry struct {
		index NodeIndex
		depth int
	}
	height := 0
	stack := []entry{{t.root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		height = max(height, e.depth)
		node := t.nodes[e.index]
		for _, c := range [2]NodeIndex{node.Left, node.Right} {
			if c != NoChild {
				stack = append(stack, entry{c, e.depth + 1})
			}
		}
	}
	return height
}

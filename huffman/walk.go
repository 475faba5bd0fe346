package huffman

import "fmt"

// Side tells which link of its parent a node hangs from
type Side int

const (
	SideRoot Side = iota
	SideLeft
	SideRight
)

// String returns the edge label
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "0"
	case SideRight:
		return "1"
	default:
		return ""
	}
}

// NodeInfo describes one node during a Walk
type NodeInfo struct {
	Index  NodeIndex
	Parent NodeIndex // NoChild for the root
	Side   Side
	Depth  int
	Leaf   bool
	Value  byte // leaves only
	Freq   int64
	Code   Code // path from the root; "0" for a single-leaf tree
}

// Walk visits every node in pre-order, left before right, using an
// explicit stack. A non-nil error from visit stops the walk and is returned.
func (t *Tree) Walk(visit func(NodeInfo) error) error {
	if t == nil || len(t.nodes) == 0 {
		return ErrUntrainedTree
	}

	root := t.nodes[t.root]
	if root.Leaf {
		return visit(NodeInfo{
			Index:  t.root,
			Parent: NoChild,
			Side:   SideRoot,
			Leaf:   true,
			Value:  root.Value,
			Freq:   root.Freq,
			Code:   Code{Bits: 0, Len: 1},
		})
	}

	stack := []NodeInfo{{Index: t.root, Parent: NoChild, Side: SideRoot}}
	for len(stack) > 0 {
		info := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[info.Index]
		info.Leaf = node.Leaf
		info.Value = node.Value
		info.Freq = node.Freq
		if err := visit(info); err != nil {
			return err
		}
		if node.Leaf {
			continue
		}
		if info.Depth+1 > MaxCodeLength {
			return fmt.Errorf("%w: depth %d below node %d", ErrCodeTooLong, info.Depth+1, info.Index)
		}

		// Right is pushed first so the left subtree is visited first
		if node.Right != NoChild {
			stack = append(stack, NodeInfo{
				Index:  node.Right,
				Parent: info.Index,
				Side:   SideRight,
				Depth:  info.Depth + 1,
				Code:   info.Code.append(1),
			})
		}
		if node.Left != NoChild {
			stack = append(stack, NodeInfo{
				Index:  node.Left,
				Parent: info.Index,
				Side:   SideLeft,
				Depth:  info.Depth + 1,
				Code:   info.Code.append(0),
			})
		}
	}
	return nil
}

package lookahead

import (
	"fmt"

	"github.com/timpalpant/go-deepstack"
)

// depthOffset is the index of depth 0 in a PerDepth table.
// Depths -2 and -1 are the virtual ancestors of the root.
const depthOffset = 2

// PerDepth holds one count per depth, from depth -2 through the last depth.
type PerDepth []int

func newPerDepth(depth int) PerDepth {
	return make(PerDepth, depth+depthOffset)
}

// At returns the count at depth d, where -2 <= d < Depth().
func (c PerDepth) At(d int) int {
	i := d + depthOffset
	if i < 0 || i >= len(c) {
		panic(fmt.Errorf("lookahead: depth %d out of range [-2, %d)", d, c.Depth()))
	}

	return c[i]
}

func (c PerDepth) set(d, v int) {
	c[d+depthOffset] = v
}

// Depth returns the number of real depths in the table.
func (c PerDepth) Depth() int {
	return len(c) - depthOffset
}

func (c PerDepth) Equal(other PerDepth) bool {
	if len(c) != len(other) {
		return false
	}

	for i, v := range c {
		if other[i] != v {
			return false
		}
	}

	return true
}

// Structure describes the shape of every layer of a public tree.
// Each count is the maximum over all nodes of the layer.
type Structure struct {
	// Number of layers in the tree. The last layer has no children.
	Depth int

	// Child slots per node, including padding for missing bets.
	ActionsCount PerDepth
	// Fold/call (or transition) slots per node. Always the leading slots.
	TerminalActionsCount PerDepth
	// Bet slots per node, including all-in.
	BetsCount PerDepth
	// Bet slots per node excluding all-in.
	NonAllinBetsCount PerDepth
}

// Equal reports whether both structures describe the same layers.
func (s *Structure) Equal(other *Structure) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Depth == other.Depth &&
		s.ActionsCount.Equal(other.ActionsCount) &&
		s.TerminalActionsCount.Equal(other.TerminalActionsCount) &&
		s.BetsCount.Equal(other.BetsCount) &&
		s.NonAllinBetsCount.Equal(other.NonAllinBetsCount)
}

// NewStructure derives a Structure from the number of actions and
// terminal actions at each layer, where the last layer has no actions.
func NewStructure(actions, terminalActions []int) (*Structure, error) {
	depth := len(actions)
	if depth == 0 {
		return nil, structureErrorf(0, nil, nil, "empty tree")
	}
	if len(terminalActions) != depth {
		return nil, structureErrorf(0, nil, nil, "%d layers of actions but %d of terminal actions",
			depth, len(terminalActions))
	}

	s := &Structure{
		Depth:                depth,
		ActionsCount:         newPerDepth(depth),
		TerminalActionsCount: newPerDepth(depth),
		BetsCount:            newPerDepth(depth),
		NonAllinBetsCount:    newPerDepth(depth),
	}

	// The root is the single child of a virtual parent and grandparent.
	for d := -2; d < 0; d++ {
		s.ActionsCount.set(d, 1)
		s.TerminalActionsCount.set(d, 0)
		s.BetsCount.set(d, 1)
		s.NonAllinBetsCount.set(d, 1)
	}

	for d := 0; d < depth; d++ {
		n, term := actions[d], terminalActions[d]
		last := d == depth-1
		switch {
		case last && n != 0:
			return nil, structureErrorf(d, nil, nil, "last layer has %d actions", n)
		case !last && n < 2:
			return nil, structureErrorf(d, nil, nil, "inner layer has %d actions, need at least 2", n)
		case term < 0 || term > n:
			return nil, structureErrorf(d, nil, nil, "%d terminal actions out of %d", term, n)
		case n == 2 && term != 2:
			return nil, structureErrorf(d, nil, nil, "layer with 2 actions must be fold and call, got %d terminal", term)
		}

		bets := n - term
		nonallin := 0
		if bets > 0 {
			nonallin = bets - 1
		}

		s.ActionsCount.set(d, n)
		s.TerminalActionsCount.set(d, term)
		s.BetsCount.set(d, bets)
		s.NonAllinBetsCount.set(d, nonallin)
	}

	return s, nil
}

// ComputeStructure measures the layers of the public tree rooted at root.
//
// Every node with children must place its fold/call/transition children
// first, and all such nodes within a layer must agree on how many there are.
func ComputeStructure(root deepstack.PublicNode) (*Structure, error) {
	layers := deepstack.Layers(root)
	actions := make([]int, len(layers))
	terminalActions := make([]int, len(layers))
	for d, layer := range layers {
		maxActions, maxTerminal := 0, 0
		for _, node := range layer {
			if err := checkLeaf(d, node); err != nil {
				return nil, err
			}

			if n := node.NumChildren(); n > maxActions {
				maxActions = n
			}
			if k := leadingTerminalChildren(node); k > maxTerminal {
				maxTerminal = k
			}
		}

		for _, node := range layer {
			n := node.NumChildren()
			if n == 0 {
				continue
			}

			if k := leadingTerminalChildren(node); k != maxTerminal {
				return nil, structureErrorf(d, nil, node,
					"%d leading terminal children, layer has %d", k, maxTerminal)
			}

			for i := maxTerminal; i < n; i++ {
				child := node.GetChild(i)
				if child.Terminal() || child.Player() == deepstack.Chance {
					return nil, structureErrorf(d, nil, node,
						"child %d is terminal or chance after a bet", i)
				}
			}
		}

		actions[d] = maxActions
		terminalActions[d] = maxTerminal
	}

	if len(layers) != root.Depth() {
		return nil, structureErrorf(0, nil, root, "tree has %d layers but root reports depth %d",
			len(layers), root.Depth())
	}

	return NewStructure(actions, terminalActions)
}

// Terminal and chance nodes end a line of play in the lookahead.
func checkLeaf(depth int, node deepstack.PublicNode) error {
	if node.NumChildren() == 0 {
		return nil
	}

	if node.Terminal() {
		return structureErrorf(depth, nil, node, "terminal node has %d children", node.NumChildren())
	} else if node.Player() == deepstack.Chance {
		return structureErrorf(depth, nil, node, "chance node has %d children", node.NumChildren())
	}

	return nil
}

func leadingTerminalChildren(node deepstack.PublicNode) int {
	k := 0
	for ; k < node.NumChildren(); k++ {
		child := node.GetChild(k)
		if !child.Terminal() && child.Player() != deepstack.Chance {
			break
		}
	}

	return k
}

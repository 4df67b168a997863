package lookahead

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/internal/f32"
)

const (
	foldAction = 0
	callAction = 1
)

// Coordinates locate a node along the leading axes of its layer.
type Coordinates struct {
	Action      int
	Parent      int
	Grandparent int
}

func (c Coordinates) String() string {
	return fmt.Sprintf("[%d %d %d]", c.Action, c.Parent, c.Grandparent)
}

// Placement records where a tree node was written in the lookahead.
type Placement struct {
	Node   deepstack.PublicNode
	Depth  int
	Coords Coordinates
}

// scatter writes the pots and action masks of a public tree into
// the allocated layers with a depth-first walk.
type scatter struct {
	s          *Structure
	layers     []*Layer
	reached    [][]bool
	placements []Placement
}

func newScatter(s *Structure, layers []*Layer) *scatter {
	reached := make([][]bool, len(layers))
	for d, layer := range layers {
		reached[d] = make([]bool, layer.Actions*layer.Parents*layer.Grandparents)
	}

	return &scatter{
		s:       s,
		layers:  layers,
		reached: reached,
	}
}

func (sc *scatter) run(root deepstack.PublicNode) error {
	if err := sc.visit(root, 0, Coordinates{}); err != nil {
		return err
	}

	sc.maskUnreached()
	return nil
}

func (sc *scatter) slot(depth int, c Coordinates) int {
	layer := sc.layers[depth]
	return (c.Action*layer.Parents+c.Parent)*layer.Grandparents + c.Grandparent
}

func (sc *scatter) visit(node deepstack.PublicNode, depth int, c Coordinates) error {
	if depth >= len(sc.layers) {
		return structureErrorf(depth, &c, node, "node below the last layer")
	}

	layer := sc.layers[depth]
	if !layer.hasSlot(c) {
		return structureErrorf(depth, &c, node, "coordinates outside layer of shape [%d %d %d]",
			layer.Actions, layer.Parents, layer.Grandparents)
	}

	slot := sc.slot(depth, c)
	if sc.reached[depth][slot] {
		return structureErrorf(depth, &c, node, "two nodes map to the same slot")
	}
	sc.reached[depth][slot] = true

	pot := node.Pot()
	if pot <= 0 {
		return errors.Wrapf(ErrMissingPot, "node at depth %d %v: %v", depth, c, node)
	}

	f32.Fill(pot, layer.PotSize.Sub(c.Action, c.Parent, c.Grandparent))

	sc.placements = append(sc.placements, Placement{Node: node, Depth: depth, Coords: c})
	glog.V(3).Infof("Placed %v at depth %d %v", node, depth, c)

	if node.Terminal() {
		return nil
	}

	// A line of play continues only below a bet that left chips behind.
	if c.Parent >= sc.s.NonAllinBetsCount.At(depth-2) {
		if node.Player() == deepstack.Chance {
			return structureErrorf(depth, &c, node, "transition below an all-in bet")
		} else if node.NumChildren() > 0 {
			return structureErrorf(depth, &c, node, "actions below an all-in bet")
		}
	}

	if node.Player() == deepstack.Chance || node.NumChildren() == 0 {
		return nil
	}

	return sc.visitChildren(node, depth, c)
}

func (sc *scatter) visitChildren(node deepstack.PublicNode, depth int, c Coordinates) error {
	next := Coordinates{
		Parent:      c.Action - sc.s.TerminalActionsCount.At(depth-1),
		Grandparent: c.Grandparent*sc.s.NonAllinBetsCount.At(depth-2) + c.Parent,
	}

	if next.Parent < 0 {
		return structureErrorf(depth, &c, node, "node in a terminal action slot has children")
	}

	actions := sc.s.ActionsCount.At(depth)
	terminal := sc.s.TerminalActionsCount.At(depth)
	n := node.NumChildren()
	bets := n - terminal

	for i := 0; i < terminal; i++ {
		next.Action = i
		if err := sc.visit(node.GetChild(i), depth+1, next); err != nil {
			return err
		}
	}

	// Missing bets are the smaller ones, so existing bets are aligned to
	// the right with all-in in the last slot.
	for i := 0; i < bets; i++ {
		next.Action = actions - bets + i
		if err := sc.visit(node.GetChild(terminal+i), depth+1, next); err != nil {
			return err
		}
	}

	mask := sc.layers[depth+1].EmptyActionMask
	for a := terminal; a < actions-bets; a++ {
		f32.Fill(0, mask.Sub(a, next.Parent, next.Grandparent))
	}

	return nil
}

// maskUnreached zeros the action mask at every slot that no node occupies.
func (sc *scatter) maskUnreached() {
	for d := 1; d < len(sc.layers); d++ {
		layer := sc.layers[d]
		var c Coordinates
		for c.Action = 0; c.Action < layer.Actions; c.Action++ {
			for c.Parent = 0; c.Parent < layer.Parents; c.Parent++ {
				for c.Grandparent = 0; c.Grandparent < layer.Grandparents; c.Grandparent++ {
					if sc.reached[d][sc.slot(d, c)] {
						continue
					}

					f32.Fill(0, layer.EmptyActionMask.Sub(c.Action, c.Parent, c.Grandparent))
				}
			}
		}
	}
}

// Package lookahead lays out a public tree as dense per-depth tensors
// for vectorized counterfactual regret minimization.
//
// Nodes at each depth are addressed by [action, parent, grandparent]:
// the action that reached the node, the bet its parent made among the
// grandparent's bets, and the non-all-in line of play that led to the
// grandparent. Nodes missing from the tree are padded and masked out.
package lookahead

import (
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/internal/f32"
	"github.com/timpalpant/go-deepstack/nn"
)

// Lookahead holds the tensors built from one public tree.
type Lookahead struct {
	Root   deepstack.PublicNode
	Params deepstack.Params

	Depth  int
	Street int

	Structure *Structure
	Counts    *NodeCounts
	Layers    []*Layer

	// ActingPlayer[d] is the player acting at depth d. P1 acts at the root.
	ActingPlayer []deepstack.Player

	// How the root's check/call child continues.
	FirstCallTerminal   bool
	FirstCallTransition bool
	FirstCallCheck      bool

	// NextStreetBoxes[d] values the transitions reached at depth d.
	// Nil when the lookahead ends with the hand.
	NextStreetBoxes []*nn.NextRoundValue

	// Placements lists every tree node in depth-first order.
	Placements []Placement
}

// Builder builds lookaheads sharing the same game parameters
// and value network.
type Builder struct {
	params deepstack.Params
	values nn.Provider
}

// NewBuilder returns a Builder. values may be nil if every tree built
// ends on the last street.
func NewBuilder(params deepstack.Params, values nn.Provider) *Builder {
	return &Builder{params: params, values: values}
}

// Build lays out the public tree rooted at root.
func (b *Builder) Build(root deepstack.PublicNode) (*Lookahead, error) {
	if err := b.params.Validate(); err != nil {
		return nil, err
	}

	street := root.Street()
	if street < 1 || street > b.params.StreetsCount {
		return nil, errors.Errorf("root street %d out of range [1, %d]", street, b.params.StreetsCount)
	}

	if root.NumChildren() <= callAction {
		return nil, errors.WithStack(ErrMissingCallChild)
	}

	start := time.Now()
	s, err := ComputeStructure(root)
	if err != nil {
		return nil, err
	}

	if t := s.TerminalActionsCount.At(0); t < 1 || t > 2 {
		return nil, structureErrorf(0, nil, root, "root has %d fold/call actions", t)
	}

	counts := ComputeNodeCounts(s)
	la := &Lookahead{
		Root:      root,
		Params:    b.params,
		Depth:     s.Depth,
		Street:    street,
		Structure: s,
		Counts:    counts,
		Layers:    allocate(s, counts, b.params),
	}

	sc := newScatter(s, la.Layers)
	if err := sc.run(root); err != nil {
		return nil, err
	}
	la.Placements = sc.placements

	la.setFirstCall()
	la.setActingPlayers()
	la.maskRootFold()

	if err := b.connectNextStreet(la); err != nil {
		return nil, err
	}

	glog.V(1).Infof("Built lookahead of depth %d on street %d (%d nodes) in %v",
		la.Depth, la.Street, len(la.Placements), time.Since(start))
	return la, nil
}

func (la *Lookahead) setFirstCall() {
	call := la.Root.GetChild(callAction)
	la.FirstCallTerminal = call.Terminal()
	la.FirstCallTransition = !call.Terminal() && call.Player() == deepstack.Chance
	la.FirstCallCheck = !la.FirstCallTerminal && !la.FirstCallTransition
}

func (la *Lookahead) setActingPlayers() {
	la.ActingPlayer = make([]deepstack.Player, la.Depth+1)
	for d := range la.ActingPlayer {
		la.ActingPlayer[d] = deepstack.Player(d % 2)
	}
}

// maskRootFold removes folding as an option when nothing is owed.
func (la *Lookahead) maskRootFold() {
	bets := la.Root.Bets()
	if bets[0] != bets[1] || la.Depth < 2 {
		return
	}

	f32.Fill(0, la.Layers[1].EmptyActionMask.Sub(foldAction))
}

// NodeCoordinates returns where node was placed. Nodes are compared by
// identity, so node must be a comparable value such as a pointer.
func (la *Lookahead) NodeCoordinates(node deepstack.PublicNode) (depth int, c Coordinates, ok bool) {
	for _, p := range la.Placements {
		if p.Node == node {
			return p.Depth, p.Coords, true
		}
	}

	return 0, Coordinates{}, false
}

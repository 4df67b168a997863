package lookahead

import (
	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/internal/f32"
	"github.com/timpalpant/go-deepstack/tensor"
)

// Layer holds the tensors for one depth of the lookahead.
//
// Per-node tensors are indexed [action, parent, grandparent, player, card]
// and per-strategy tensors [action, parent, grandparent, card]: the action
// taken to reach a slot, the bet of its parent among the grandparent's
// bets, and the non-all-in line of play leading to the grandparent.
type Layer struct {
	Depth int

	Actions      int
	Parents      int
	Grandparents int

	PotSize     *tensor.Tensor
	Ranges      *tensor.Tensor
	CFVs        *tensor.Tensor
	AverageCFVs *tensor.Tensor

	// Strategy tensors are nil at depth 0, where no action has been taken.
	CurrentStrategy   *tensor.Tensor
	AverageStrategies *tensor.Tensor
	Regrets           *tensor.Tensor
	CurrentRegrets    *tensor.Tensor
	PositiveRegrets   *tensor.Tensor
	// EmptyActionMask is 1 where a real action exists and 0 for padding.
	EmptyActionMask *tensor.Tensor
	RegretsSum      *tensor.Tensor

	// Scratch tensors for propagating ranges to the next layer.
	// Nil at the last depth.
	InnerNodes   *tensor.Tensor
	InnerNodesP1 *tensor.Tensor
	SwapData     *tensor.Tensor
}

// layerSpec lists everything that differs between depths.
type layerSpec struct {
	actions, parents, grandparents int

	rangeFill  float32
	potFill    float32
	regretFill float32

	strategies bool

	scratch                          bool
	innerBets, innerParents, innerGP int
}

// specFor describes depth d. The root sits below virtual ancestors at
// depths -2 and -1, so the same table lookups serve every depth and only
// the initial fills vary.
func specFor(d int, s *Structure, c *NodeCounts, params deepstack.Params) layerSpec {
	spec := layerSpec{
		actions:      atLeastOne(s.ActionsCount.At(d - 1)),
		parents:      atLeastOne(s.BetsCount.At(d - 2)),
		grandparents: atLeastOne(c.NonterminalNonAllin.At(d - 2)),
		strategies:   d > 0,
		scratch:      d < s.Depth-1,
	}

	if d <= 1 {
		// The root and its children are reached with certainty.
		spec.rangeFill = 1 / float32(params.CardCount)
	} else {
		// Padding slots default to a full-stack pot so every pot stays positive.
		spec.potFill = params.Stack
		spec.regretFill = params.RegretEpsilon
	}

	if spec.scratch {
		spec.innerBets = atLeastOne(s.BetsCount.At(d - 1))
		spec.innerParents = atLeastOne(s.NonAllinBetsCount.At(d - 2))
		spec.innerGP = atLeastOne(c.NonterminalNonAllin.At(d - 2))
	}

	return spec
}

func newLayer(d int, spec layerSpec, params deepstack.Params) *Layer {
	players, cards := params.PlayersCount, params.CardCount
	a, p, g := spec.actions, spec.parents, spec.grandparents

	layer := &Layer{
		Depth:        d,
		Actions:      a,
		Parents:      p,
		Grandparents: g,
		PotSize:      tensor.Full(spec.potFill, a, p, g, players, cards),
		Ranges:       tensor.Full(spec.rangeFill, a, p, g, players, cards),
		CFVs:         tensor.New(a, p, g, players, cards),
		AverageCFVs:  tensor.New(a, p, g, players, cards),
		RegretsSum:   tensor.New(1, p, g, cards),
	}

	if spec.strategies {
		layer.CurrentStrategy = tensor.New(a, p, g, cards)
		layer.AverageStrategies = tensor.New(a, p, g, cards)
		layer.Regrets = tensor.Full(spec.regretFill, a, p, g, cards)
		layer.CurrentRegrets = tensor.New(a, p, g, cards)
		layer.PositiveRegrets = tensor.Full(spec.regretFill, a, p, g, cards)
		layer.EmptyActionMask = tensor.Full(1, a, p, g, cards)
	}

	if spec.scratch {
		b, np, ng := spec.innerBets, spec.innerParents, spec.innerGP
		layer.InnerNodes = tensor.New(b, np, ng, players, cards)
		layer.InnerNodesP1 = tensor.New(b, np, ng, 1, cards)
		layer.SwapData = layer.InnerNodes.SwapAxes(1, 2)
	}

	return layer
}

// allocate returns freshly initialized layers for every depth.
func allocate(s *Structure, c *NodeCounts, params deepstack.Params) []*Layer {
	layers := make([]*Layer, s.Depth)
	for d := range layers {
		layers[d] = newLayer(d, specFor(d, s, c, params), params)
	}

	return layers
}

// hasSlot reports whether the leading coordinates fall inside the layer.
func (l *Layer) hasSlot(c Coordinates) bool {
	return c.Action >= 0 && c.Action < l.Actions &&
		c.Parent >= 0 && c.Parent < l.Parents &&
		c.Grandparent >= 0 && c.Grandparent < l.Grandparents
}

// LiveSlots returns the number of [action, parent, grandparent] slots
// holding a real node.
func (l *Layer) LiveSlots() int {
	if l.EmptyActionMask == nil {
		return l.Actions * l.Parents * l.Grandparents
	}

	cards := l.EmptyActionMask.Dim(3)
	return int(f32.Sum(l.EmptyActionMask.Data())) / cards
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

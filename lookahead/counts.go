package lookahead

// NodeCounts holds the number of slots of each kind at every depth of
// the lookahead. A slot is one entry along the leading
// [action, parent, grandparent] axes of a layer's tensors, whether or not
// a real tree node occupies it.
type NodeCounts struct {
	// All slots at each depth. Equal to the product of the leading
	// tensor dimensions.
	All PerDepth
	// Slots reached by a fold, call or transition.
	Terminal PerDepth
	// Slots reached by an all-in bet.
	Allin PerDepth
	// Slots reached by a bet that is not all-in.
	Nonterminal PerDepth
	// Lines of play in which every bet so far was not all-in. These are
	// the grandparent lines of the layer two below.
	NonterminalNonAllin PerDepth
	// Parent slots whose ranges are propagated to the next layer.
	Inner PerDepth
}

func (c *NodeCounts) Equal(other *NodeCounts) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.All.Equal(other.All) &&
		c.Terminal.Equal(other.Terminal) &&
		c.Allin.Equal(other.Allin) &&
		c.Nonterminal.Equal(other.Nonterminal) &&
		c.NonterminalNonAllin.Equal(other.NonterminalNonAllin) &&
		c.Inner.Equal(other.Inner)
}

// ComputeNodeCounts derives the slot counts of every depth from s.
func ComputeNodeCounts(s *Structure) *NodeCounts {
	c := &NodeCounts{
		All:                 newPerDepth(s.Depth),
		Terminal:            newPerDepth(s.Depth),
		Allin:               newPerDepth(s.Depth),
		Nonterminal:         newPerDepth(s.Depth),
		NonterminalNonAllin: newPerDepth(s.Depth),
		Inner:               newPerDepth(s.Depth),
	}

	for d := -2; d <= 0; d++ {
		c.All.set(d, 1)
		c.Nonterminal.set(d, 1)
		c.NonterminalNonAllin.set(d, 1)
	}

	for d := 0; d < s.Depth-1; d++ {
		// Nodes at depth d that have children: every non-all-in bet line
		// of the grandparent times the bets of the parent.
		parents := c.NonterminalNonAllin.At(d-1) * s.BetsCount.At(d-1)

		allin := 0
		if s.BetsCount.At(d) > 0 {
			allin = 1
		}

		c.All.set(d+1, parents*s.ActionsCount.At(d))
		c.Terminal.set(d+1, parents*s.TerminalActionsCount.At(d))
		c.Allin.set(d+1, parents*allin)
		c.Nonterminal.set(d+1, parents*s.NonAllinBetsCount.At(d))
		c.NonterminalNonAllin.set(d+1, c.NonterminalNonAllin.At(d)*s.NonAllinBetsCount.At(d))
	}

	for d := -2; d < s.Depth-1; d++ {
		c.Inner.set(d, innerCount(s, c, d))
	}

	return c
}

func innerCount(s *Structure, c *NodeCounts, d int) int {
	if d < 0 {
		return 1
	}

	return s.BetsCount.At(d-1) * s.NonAllinBetsCount.At(d-2) * c.NonterminalNonAllin.At(d-2)
}

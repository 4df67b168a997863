package lookahead

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/go-deepstack"
)

func TestComputeNodeCounts_CheckedPot(t *testing.T) {
	s, err := ComputeStructure(checkedPotTree(t))
	require.NoError(t, err)
	c := ComputeNodeCounts(s)

	// Depths -2 and -1 first.
	assert.Equal(t, []int{1, 1, 1, 4, 12, 12, 4}, perDepth(c.All))
	assert.Equal(t, []int{0, 0, 0, 1, 6, 8, 4}, perDepth(c.Terminal))
	assert.Equal(t, []int{0, 0, 0, 1, 3, 4, 0}, perDepth(c.Allin))
	assert.Equal(t, []int{1, 1, 1, 2, 3, 0, 0}, perDepth(c.Nonterminal))
	assert.Equal(t, []int{1, 1, 1, 2, 2, 0, 0}, perDepth(c.NonterminalNonAllin))
	assert.Equal(t, []int{1, 1, 1, 3, 4, 2, 0}, perDepth(c.Inner))
}

// randomStructure returns a valid structure with between 2 and 7 layers.
func randomStructure(t *testing.T, rng *rand.Rand) *Structure {
	depth := 2 + rng.Intn(6)
	actions := make([]int, depth)
	terminal := make([]int, depth)
	for d := 0; d < depth-1; d++ {
		terminal[d] = 1 + rng.Intn(2)
		bets := rng.Intn(4)
		if terminal[d] == 1 && bets < 2 {
			bets = 2
		}

		actions[d] = terminal[d] + bets
	}

	s, err := NewStructure(actions, terminal)
	require.NoError(t, err, "actions=%v terminal=%v", actions, terminal)
	return s
}

func TestComputeNodeCounts_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		s := randomStructure(t, rng)
		c := ComputeNodeCounts(s)

		assert.Equal(t, 1, c.All.At(0))
		for d := 1; d < s.Depth; d++ {
			assert.Equal(t, c.All.At(d), c.Nonterminal.At(d)+c.Terminal.At(d)+c.Allin.At(d),
				"depth %d of %+v", d, s)

			leading := s.ActionsCount.At(d-1) * s.BetsCount.At(d-2) * c.NonterminalNonAllin.At(d-2)
			assert.Equal(t, leading, c.All.At(d), "depth %d of %+v", d, s)

			assert.Equal(t, c.NonterminalNonAllin.At(d-1)*s.NonAllinBetsCount.At(d-1),
				c.NonterminalNonAllin.At(d), "depth %d of %+v", d, s)
			assert.True(t, c.NonterminalNonAllin.At(d) <= c.Nonterminal.At(d) ||
				c.Nonterminal.At(d) == 0, "depth %d of %+v", d, s)
		}

		for d := 0; d < s.Depth-1; d++ {
			assert.Equal(t, s.BetsCount.At(d-1)*s.NonAllinBetsCount.At(d-2)*c.NonterminalNonAllin.At(d-2),
				c.Inner.At(d), "depth %d of %+v", d, s)
		}
		assert.Equal(t, 0, c.Inner.At(s.Depth-1))
	}
}

func TestComputeNodeCounts_MatchesAllocatedShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	params := deepstack.DefaultParams()
	for i := 0; i < 50; i++ {
		s := randomStructure(t, rng)
		c := ComputeNodeCounts(s)
		layers := allocate(s, c, params)
		for d, layer := range layers {
			if c.All.At(d) == 0 {
				continue
			}

			assert.Equal(t, c.All.At(d), layer.Actions*layer.Parents*layer.Grandparents,
				"depth %d of %+v", d, s)
		}
	}
}

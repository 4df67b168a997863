package lookahead

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/nn"
	"github.com/timpalpant/go-deepstack/tree"
)

// testNode is a hand-built public tree node.
type testNode struct {
	terminal bool
	player   deepstack.Player
	street   int
	bets     [2]float32
	pot      float32
	children []*testNode
}

func (n *testNode) String() string {
	return fmt.Sprintf("testNode(%v, pot=%v, terminal=%v)", n.player, n.pot, n.terminal)
}

func (n *testNode) Terminal() bool { return n.terminal }
func (n *testNode) Player() deepstack.Player { return n.player }
func (n *testNode) NumChildren() int { return len(n.children) }
func (n *testNode) GetChild(i int) deepstack.PublicNode { return n.children[i] }
func (n *testNode) Pot() float32 { return n.pot }
func (n *testNode) Street() int { return n.street }
func (n *testNode) Bets() [2]float32 { return n.bets }

func (n *testNode) Depth() int {
	depth := 0
	for _, child := range n.children {
		if d := child.Depth(); d > depth {
			depth = d
		}
	}

	return depth + 1
}

func terminalNode(pot float32) *testNode {
	return &testNode{terminal: true, street: 2, pot: pot}
}

func chanceNode(pot float32) *testNode {
	return &testNode{player: deepstack.Chance, street: 2, pot: pot}
}

func playerNode(player deepstack.Player, pot float32, children ...*testNode) *testNode {
	return &testNode{player: player, street: 2, pot: pot, children: children}
}

// paddedTree has five actions at the first two depths. One bet node is
// missing two of its bets, and the all-in node only has fold and call.
//
//	root: F C B1 B2 B3
//	B1:   F C X
//	B2:   F C Y1 Y2 Y3
//	B3:   F C
func paddedTree() *testNode {
	root := playerNode(deepstack.P1, 100,
		terminalNode(100),
		chanceNode(200),
		playerNode(deepstack.P2, 100,
			terminalNode(100),
			chanceNode(300),
			playerNode(deepstack.P1, 300)),
		playerNode(deepstack.P2, 100,
			terminalNode(100),
			chanceNode(400),
			playerNode(deepstack.P1, 400),
			playerNode(deepstack.P1, 400),
			playerNode(deepstack.P1, 400)),
		playerNode(deepstack.P2, 100,
			terminalNode(100),
			terminalNode(1200)))
	root.bets = [2]float32{100, 200}
	return root
}

var testEquity = [][]float32{
	{0, -1, -1, -1, -1, -1},
	{1, 0, -1, -1, -1, -1},
	{1, 1, 0, -1, -1, -1},
	{1, 1, 1, 0, -1, -1},
	{1, 1, 1, 1, 0, -1},
	{1, 1, 1, 1, 1, 0},
}

func testProvider(t *testing.T) nn.Provider {
	net, err := nn.NewMatrixNetwork(testEquity)
	require.NoError(t, err)
	return nn.Static(net)
}

func checkedPotTree(t *testing.T) *tree.Node {
	root, err := tree.NewBuilder(deepstack.DefaultParams()).Build(tree.Root{
		Street: 1,
		Player: deepstack.P1,
		Bets:   [2]float32{300, 300},
	})
	require.NoError(t, err)
	return root
}

func buildCheckedPot(t *testing.T) *Lookahead {
	la, err := NewBuilder(deepstack.DefaultParams(), testProvider(t)).Build(checkedPotTree(t))
	require.NoError(t, err)
	return la
}

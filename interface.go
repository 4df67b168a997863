package deepstack

// Player identifies the actor at a public tree node.
type Player int

const (
	Chance Player = -1
	P1     Player = 0
	P2     Player = 1
)

// Opponent returns the other player. It must not be called for Chance.
func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Chance:
		return "chance"
	case P1:
		return "P1"
	case P2:
		return "P2"
	}

	return "unknown"
}

// NodeType is the type of node in a public game tree.
type NodeType int

const (
	ChanceNode NodeType = iota
	TerminalNode
	PlayerNode
)

// PublicNode is the interface for a node in a public game tree: the tree
// over publicly observable actions, excluding private hand information.
//
// Implementations must be immutable once handed to a lookahead builder.
type PublicNode interface {
	// Terminal returns true if the hand ends at this node (fold or final call).
	Terminal() bool
	// Player returns the acting player, or Chance for a street transition.
	Player() Player

	// The number of direct children of this node.
	NumChildren() int
	// Get the ith child of this node. Children are ordered fold,
	// check/call, then bets in increasing size with all-in last.
	GetChild(i int) PublicNode

	// Pot returns the pot committed by each player at this node.
	// Zero means the pot has not been set.
	Pot() float32
	// Street returns the betting round, starting at 1.
	Street() int
	// Bets returns the chips committed by each player.
	Bets() [2]float32
	// Depth returns the height of the subtree rooted here:
	// 1 for a leaf, 1 + the maximum child depth otherwise.
	Depth() int
}

// Type returns the NodeType of the given node.
func Type(node PublicNode) NodeType {
	if node.Terminal() {
		return TerminalNode
	} else if node.Player() == Chance {
		return ChanceNode
	}

	return PlayerNode
}

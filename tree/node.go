// Package tree builds street-limited public trees for two-player
// pot-limit poker variants such as Leduc Hold'em.
package tree

import (
	"fmt"

	"github.com/timpalpant/go-deepstack"
)

// Node implements deepstack.PublicNode.
type Node struct {
	terminal bool
	player   deepstack.Player
	street   int
	bets     [2]float32
	pot      float32
	depth    int
	children []*Node
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%v to act on street %d. Bets: %v, terminal: %v",
		n.player, n.street, n.bets, n.terminal)
}

// Terminal implements deepstack.PublicNode.
func (n *Node) Terminal() bool {
	return n.terminal
}

// Player implements deepstack.PublicNode.
func (n *Node) Player() deepstack.Player {
	return n.player
}

// NumChildren implements deepstack.PublicNode.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// GetChild implements deepstack.PublicNode.
func (n *Node) GetChild(i int) deepstack.PublicNode {
	return n.children[i]
}

// Child returns the ith child as a *Node.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Pot implements deepstack.PublicNode.
func (n *Node) Pot() float32 {
	return n.pot
}

// Street implements deepstack.PublicNode.
func (n *Node) Street() int {
	return n.street
}

// Bets implements deepstack.PublicNode.
func (n *Node) Bets() [2]float32 {
	return n.bets
}

// Depth implements deepstack.PublicNode.
func (n *Node) Depth() int {
	return n.depth
}

func minBet(bets [2]float32) float32 {
	if bets[0] < bets[1] {
		return bets[0]
	}
	return bets[1]
}

func maxBet(bets [2]float32) float32 {
	if bets[0] > bets[1] {
		return bets[0]
	}
	return bets[1]
}

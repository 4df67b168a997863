package tree

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-deepstack"
)

// Root describes the public state at which to start building a tree.
type Root struct {
	Street int
	Player deepstack.Player
	Bets   [2]float32
}

// Builder builds public trees limited to the street of their root.
// Chance nodes that would deal the next street are left as leaves.
type Builder struct {
	params deepstack.Params
	sizing BetSizing
}

func NewBuilder(params deepstack.Params) *Builder {
	fractions := append([]float32(nil), params.BetSizing...)
	sort.Slice(fractions, func(i, j int) bool { return fractions[i] < fractions[j] })

	return &Builder{
		params: params,
		sizing: BetSizing{
			PotFractions: fractions,
			Stack:        params.Stack,
			Ante:         params.Ante,
		},
	}
}

// Build returns the root of the public tree for the given state.
func (b *Builder) Build(root Root) (*Node, error) {
	if err := b.params.Validate(); err != nil {
		return nil, err
	}

	if root.Player != deepstack.P1 && root.Player != deepstack.P2 {
		return nil, errors.Errorf("root must be a player node, got %v", root.Player)
	}

	if root.Street < 1 || root.Street > b.params.StreetsCount {
		return nil, errors.Errorf("street %d out of range [1, %d]", root.Street, b.params.StreetsCount)
	}

	for p, bet := range root.Bets {
		if bet <= 0 || bet > b.params.Stack {
			return nil, errors.Errorf("player %d bet %v out of range (0, %v]", p, bet, b.params.Stack)
		}
	}

	if root.Bets[root.Player] > root.Bets[root.Player.Opponent()] {
		return nil, errors.Errorf("acting player %v has already bet more than the opponent: %v",
			root.Player, root.Bets)
	}

	node := &Node{
		player: root.Player,
		street: root.Street,
		bets:   root.Bets,
	}

	b.buildDFS(node)
	return node, nil
}

func (b *Builder) buildDFS(node *Node) {
	node.pot = minBet(node.bets)
	node.children = b.getChildren(node)

	depth := 0
	for _, child := range node.children {
		b.buildDFS(child)
		if child.depth > depth {
			depth = child.depth
		}
	}

	node.depth = depth + 1
}

func (b *Builder) getChildren(node *Node) []*Node {
	if node.terminal || node.player == deepstack.Chance {
		return nil
	}

	return b.getPlayerChildren(node)
}

func (b *Builder) getPlayerChildren(parent *Node) []*Node {
	player := parent.player
	next := player.Opponent()
	equal := parent.bets[0] == parent.bets[1]

	children := []*Node{{
		terminal: true,
		player:   next,
		street:   parent.street,
		bets:     parent.bets,
	}}

	called := [2]float32{maxBet(parent.bets), maxBet(parent.bets)}
	lastStreet := parent.street >= b.params.StreetsCount
	switch {
	case player == deepstack.P1 && equal:
		children = append(children, &Node{
			player: next,
			street: parent.street,
			bets:   parent.bets,
		})
	case !lastStreet && ((player == deepstack.P2 && equal) ||
		(!equal && maxBet(parent.bets) < b.params.Stack)):
		children = append(children, &Node{
			player: deepstack.Chance,
			street: parent.street,
			bets:   called,
		})
	default:
		children = append(children, &Node{
			terminal: true,
			player:   next,
			street:   parent.street,
			bets:     called,
		})
	}

	for _, bets := range b.sizing.PossibleBets(player, parent.bets) {
		children = append(children, &Node{
			player: next,
			street: parent.street,
			bets:   bets,
		})
	}

	return children
}

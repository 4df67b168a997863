package tree

import (
	"github.com/timpalpant/go-deepstack"
)

// BetSizing gives the allowed bets at a node as fractions of the pot.
type BetSizing struct {
	PotFractions []float32
	Stack        float32
	Ante         float32
}

// PossibleBets returns the committed chips after each legal bet of the
// given player, smallest first. All-in is always last when any bet is legal.
func (s BetSizing) PossibleBets(player deepstack.Player, bets [2]float32) [][2]float32 {
	opponentBet := bets[player.Opponent()]
	maxRaise := s.Stack - opponentBet
	minRaise := opponentBet - bets[player]
	if minRaise < s.Ante {
		minRaise = s.Ante
	}
	if minRaise > maxRaise {
		minRaise = maxRaise
	}

	if minRaise <= 0 {
		return nil
	}

	raiseTo := func(raise float32) [2]float32 {
		var result [2]float32
		result[player] = opponentBet + raise
		result[player.Opponent()] = opponentBet
		return result
	}

	if minRaise == maxRaise {
		return [][2]float32{raiseTo(maxRaise)}
	}

	// Pot size after the opponent's bet is called.
	pot := 2 * opponentBet
	result := make([][2]float32, 0, len(s.PotFractions)+1)
	for _, f := range s.PotFractions {
		raise := pot * f
		if raise >= minRaise && raise < maxRaise {
			result = append(result, raiseTo(raise))
		}
	}

	return append(result, raiseTo(maxRaise))
}

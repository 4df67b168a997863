// Package nn implements value networks that estimate counterfactual values
// at the start of the next street, and the batching used to query them
// from a depth-limited lookahead.
//
// Network inputs are the ranges of both players over private cards
// followed by the pot as a fraction of the stack. Outputs are the
// counterfactual values of both players, normalized by the pot.
package nn

import (
	"context"

	"github.com/pkg/errors"
)

// Network is a batched function from ranges to values.
type Network interface {
	InputSize() int
	OutputSize() int
	Evaluate(ctx context.Context, inputs [][]float32) ([][]float32, error)
}

// InputSize returns the input size of a network for the given number of
// private cards.
func InputSize(cardCount int) int {
	return 2*cardCount + 1
}

// OutputSize returns the output size of a network for the given number of
// private cards.
func OutputSize(cardCount int) int {
	return 2 * cardCount
}

// CheckShape returns an error if net cannot evaluate ranges over cardCount cards.
func CheckShape(net Network, cardCount int) error {
	if net.InputSize() != InputSize(cardCount) {
		return errors.Errorf("network input size %d, expected %d for %d cards",
			net.InputSize(), InputSize(cardCount), cardCount)
	}

	if net.OutputSize() != OutputSize(cardCount) {
		return errors.Errorf("network output size %d, expected %d for %d cards",
			net.OutputSize(), OutputSize(cardCount), cardCount)
	}

	return nil
}

func checkInputs(net Network, inputs [][]float32) error {
	for i, x := range inputs {
		if len(x) != net.InputSize() {
			return errors.Errorf("input %d has length %d, expected %d", i, len(x), net.InputSize())
		}
	}

	return nil
}

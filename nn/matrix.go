package nn

import (
	"context"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-deepstack/internal/f32"
)

// MatrixNetwork values each private card by its equity against the
// opponent's range. Equity[i][j] is the value of holding card i against
// card j, per unit of pot. The pot input is ignored.
//
// It stands in for a trained network in tests and small games.
type MatrixNetwork struct {
	Equity [][]float32
}

// NewMatrixNetwork returns a MatrixNetwork over a square equity matrix.
func NewMatrixNetwork(equity [][]float32) (*MatrixNetwork, error) {
	if len(equity) == 0 {
		return nil, errors.New("empty equity matrix")
	}

	for i, row := range equity {
		if len(row) != len(equity) {
			return nil, errors.Errorf("equity row %d has %d entries, expected %d",
				i, len(row), len(equity))
		}
	}

	return &MatrixNetwork{Equity: equity}, nil
}

func (m *MatrixNetwork) cardCount() int {
	return len(m.Equity)
}

// InputSize implements Network.
func (m *MatrixNetwork) InputSize() int {
	return InputSize(m.cardCount())
}

// OutputSize implements Network.
func (m *MatrixNetwork) OutputSize() int {
	return OutputSize(m.cardCount())
}

// Evaluate implements Network.
func (m *MatrixNetwork) Evaluate(ctx context.Context, inputs [][]float32) ([][]float32, error) {
	if err := checkInputs(m, inputs); err != nil {
		return nil, err
	}

	n := m.cardCount()
	outputs := make([][]float32, len(inputs))
	for i, x := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out := make([]float32, 2*n)
		for p := 0; p < 2; p++ {
			opponent := x[(1-p)*n : (2-p)*n]
			for card, row := range m.Equity {
				out[p*n+card] = f32.DotUnitary(row, opponent)
			}
		}

		outputs[i] = out
	}

	return outputs, nil
}

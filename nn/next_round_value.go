package nn

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/internal/f32"
)

// NextRoundValue evaluates the value network for a batch of street
// transitions that share a depth of the lookahead.
//
// Start is called once with the pot of every transition in the batch.
// Value may then be called any number of times with the ranges reaching
// those transitions.
type NextRoundValue struct {
	net       Network
	cardCount int
	stack     float32

	started bool
	ready   chan struct{}
	pots    []float32
	inputs  [][]float32
	err     error
}

func NewNextRoundValue(net Network, params deepstack.Params) (*NextRoundValue, error) {
	if err := CheckShape(net, params.CardCount); err != nil {
		return nil, err
	}

	return &NextRoundValue{
		net:       net,
		cardCount: params.CardCount,
		stack:     params.Stack,
		ready:     make(chan struct{}),
	}, nil
}

// Start prepares the batch for the given pots in the background
// and returns immediately.
func (v *NextRoundValue) Start(pots []float32) {
	if v.started {
		panic("nn: NextRoundValue started twice")
	}
	v.started = true

	pots = append([]float32(nil), pots...)
	go func() {
		defer close(v.ready)
		v.pots = pots
		v.inputs = make([][]float32, len(pots))
		for i, pot := range pots {
			if pot <= 0 {
				v.err = errors.Errorf("transition %d has pot %v", i, pot)
				return
			}

			input := make([]float32, InputSize(v.cardCount))
			input[len(input)-1] = pot / v.stack
			v.inputs[i] = input
		}

		glog.V(2).Infof("Prepared %d next street transitions", len(pots))
	}()
}

// BatchSize returns the number of transitions passed to Start, or 0
// before Start. It blocks until the batch is ready.
func (v *NextRoundValue) BatchSize() int {
	if !v.started {
		return 0
	}

	<-v.ready
	return len(v.pots)
}

// Value computes the values of both players at every transition.
//
// ranges and values are laid out [transition][player][card].
// Values are scaled back up from pot fractions to chips.
func (v *NextRoundValue) Value(ctx context.Context, ranges, values []float32) error {
	if !v.started {
		return errors.New("nn: Value called before Start")
	}

	select {
	case <-v.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	if v.err != nil {
		return v.err
	}

	stride := 2 * v.cardCount
	if n := len(v.pots) * stride; len(ranges) != n || len(values) != n {
		return errors.Errorf("expected ranges and values of length %d, got %d and %d",
			n, len(ranges), len(values))
	}

	inputs := make([][]float32, len(v.inputs))
	for i, proto := range v.inputs {
		input := append([]float32(nil), proto...)
		copy(input, ranges[i*stride:(i+1)*stride])
		inputs[i] = input
	}

	outputs, err := v.net.Evaluate(ctx, inputs)
	if err != nil {
		return errors.Wrap(err, "evaluating value network")
	}

	if len(outputs) != len(inputs) {
		return errors.Errorf("network returned %d outputs for %d inputs", len(outputs), len(inputs))
	}

	for i, out := range outputs {
		dst := values[i*stride : (i+1)*stride]
		copy(dst, out)
		f32.ScalUnitary(v.pots[i], dst)
	}

	return nil
}

// ValueAll evaluates every non-nil box concurrently. ranges[i] and
// values[i] are passed to boxes[i].
func ValueAll(ctx context.Context, boxes []*NextRoundValue, ranges, values [][]float32) error {
	if len(ranges) != len(boxes) || len(values) != len(boxes) {
		return errors.Errorf("%d boxes but %d ranges and %d values", len(boxes), len(ranges), len(values))
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, box := range boxes {
		if box == nil {
			continue
		}

		i, box := i, box
		g.Go(func() error {
			return errors.Wrapf(box.Value(ctx, ranges[i], values[i]), "depth %d", i)
		})
	}

	return g.Wait()
}

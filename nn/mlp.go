package nn

import (
	"context"
	"encoding/gob"
	"io"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/timpalpant/go-deepstack/internal/f32"
)

// Dense is a fully connected layer.
type Dense struct {
	In, Out int
	// Weights has Out rows of In entries.
	Weights []float32
	Bias    []float32
}

func (l *Dense) validate() error {
	if l.In <= 0 || l.Out <= 0 {
		return errors.Errorf("invalid layer shape %dx%d", l.Out, l.In)
	}

	if len(l.Weights) != l.In*l.Out {
		return errors.Errorf("layer %dx%d has %d weights", l.Out, l.In, len(l.Weights))
	}

	if len(l.Bias) != l.Out {
		return errors.Errorf("layer %dx%d has %d biases", l.Out, l.In, len(l.Bias))
	}

	return nil
}

func (l *Dense) forward(x, out []float32) {
	for j := range out {
		row := l.Weights[j*l.In : (j+1)*l.In]
		out[j] = l.Bias[j] + f32.DotUnitary(row, x)
	}
}

// MLP is a feed-forward network with ReLU activations between layers.
// Evaluate splits large batches across goroutines.
type MLP struct {
	Layers []Dense
	// Rows evaluated per goroutine. Zero uses a default.
	ChunkSize int
}

const defaultChunkSize = 256

// NewMLP returns an MLP with the given layers after checking that
// consecutive layers fit together.
func NewMLP(layers ...Dense) (*MLP, error) {
	m := &MLP{Layers: layers}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the shape of every layer.
func (m *MLP) Validate() error {
	if len(m.Layers) == 0 {
		return errors.New("network has no layers")
	}

	for i := range m.Layers {
		if err := m.Layers[i].validate(); err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}

		if i > 0 && m.Layers[i].In != m.Layers[i-1].Out {
			return errors.Errorf("layer %d takes %d inputs but layer %d has %d outputs",
				i, m.Layers[i].In, i-1, m.Layers[i-1].Out)
		}
	}

	return nil
}

// InputSize implements Network.
func (m *MLP) InputSize() int {
	return m.Layers[0].In
}

// OutputSize implements Network.
func (m *MLP) OutputSize() int {
	return m.Layers[len(m.Layers)-1].Out
}

// Evaluate implements Network.
func (m *MLP) Evaluate(ctx context.Context, inputs [][]float32) ([][]float32, error) {
	if err := checkInputs(m, inputs); err != nil {
		return nil, err
	}

	chunkSize := m.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	outputs := make([][]float32, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for start := 0; start < len(inputs); start += chunkSize {
		end := start + chunkSize
		if end > len(inputs) {
			end = len(inputs)
		}

		start := start
		g.Go(func() error {
			pool := &floatSlicePool{}
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				outputs[i] = m.forward(inputs[i], pool)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	glog.V(2).Infof("Evaluated %d inputs", len(inputs))
	return outputs, nil
}

// forward returns the output for x. Hidden activations are returned
// to pool; the output is not.
func (m *MLP) forward(x []float32, pool *floatSlicePool) []float32 {
	var hidden []float32
	for i := range m.Layers {
		layer := &m.Layers[i]
		out := pool.alloc(layer.Out)
		layer.forward(x, out)
		if i < len(m.Layers)-1 {
			f32.Relu(out)
		}

		pool.free(hidden)
		hidden, x = out, out
	}

	return x
}

// MarshalTo writes the network weights to w.
func (m *MLP) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	return enc.Encode(m)
}

// LoadMLP reads network weights written by MarshalTo.
func LoadMLP(r io.Reader) (*MLP, error) {
	dec := gob.NewDecoder(r)
	var m MLP
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decoding network")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadMLPFile reads network weights from the file at path.
func LoadMLPFile(path string) (*MLP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening network")
	}
	defer f.Close()

	glog.Infof("Loading value network from %v", path)
	return LoadMLP(f)
}

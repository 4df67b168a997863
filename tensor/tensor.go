// Package tensor wraps gorgonia's dense float32 tensor with the small set
// of operations needed to lay out lookahead data: contiguous blocks along
// the leading axes, axis swaps and a compact binary encoding.
package tensor

import (
	"fmt"

	"github.com/pkg/errors"
	gt "gorgonia.org/tensor"

	"github.com/timpalpant/go-deepstack/internal/f32"
)

// Tensor is a dense N-dimensional array of float32 stored in row-major order.
type Tensor struct {
	dense   *gt.Dense
	shape   []int
	strides []int
	// Backing array of dense.
	data []float32
}

func fromBacking(data []float32, shape []int) *Tensor {
	return &Tensor{
		dense:   gt.New(gt.WithBacking(data), gt.WithShape(shape...)),
		shape:   append([]int(nil), shape...),
		strides: stridesOf(shape),
		data:    data,
	}
}

// New returns a zero-filled tensor with the given shape.
// Every dimension must be positive.
func New(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			panic(fmt.Errorf("tensor: invalid shape %v", shape))
		}
		n *= d
	}

	return fromBacking(make([]float32, n), shape)
}

// Full returns a tensor with the given shape with every entry set to v.
func Full(v float32, shape ...int) *Tensor {
	t := New(shape...)
	t.Fill(v)
	return t
}

func stridesOf(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	return strides
}

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Dim returns the size of axis i.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

// NumDims returns the number of axes.
func (t *Tensor) NumDims() int {
	return len(t.shape)
}

// Len returns the total number of entries.
func (t *Tensor) Len() int {
	return len(t.data)
}

// Data returns the underlying storage. Writes are visible in the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Dense returns the tensor as a gorgonia Dense sharing its storage.
func (t *Tensor) Dense() *gt.Dense {
	return t.dense
}

// Fill sets every entry to v.
func (t *Tensor) Fill(v float32) {
	if err := t.dense.Memset(v); err != nil {
		panic(errors.Wrapf(err, "tensor: filling %v", t))
	}
}

// Offset returns the flat index of the block addressed by a prefix of
// indices along the leading axes.
func (t *Tensor) Offset(idx ...int) int {
	if len(idx) > len(t.shape) {
		panic(fmt.Errorf("tensor: %d indices for shape %v", len(idx), t.shape))
	}

	off := 0
	for i, k := range idx {
		if k < 0 || k >= t.shape[i] {
			panic(fmt.Errorf("tensor: index %v out of range for shape %v", idx, t.shape))
		}
		off += k * t.strides[i]
	}

	return off
}

// At returns the entry at the given full index.
func (t *Tensor) At(idx ...int) float32 {
	if len(idx) != len(t.shape) {
		panic(fmt.Errorf("tensor: %d indices for shape %v", len(idx), t.shape))
	}

	return t.data[t.Offset(idx...)]
}

// Set sets the entry at the given full index.
func (t *Tensor) Set(v float32, idx ...int) {
	if len(idx) != len(t.shape) {
		panic(fmt.Errorf("tensor: %d indices for shape %v", len(idx), t.shape))
	}

	t.data[t.Offset(idx...)] = v
}

// Sub returns the contiguous block of entries addressed by a prefix of
// indices along the leading axes. The returned slice aliases the tensor.
func (t *Tensor) Sub(idx ...int) []float32 {
	off := t.Offset(idx...)
	n := len(t.data)
	if len(idx) > 0 {
		n = t.strides[len(idx)-1]
	}

	return t.data[off : off+n]
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	return fromBacking(append([]float32(nil), t.data...), t.shape)
}

// SwapAxes returns a new tensor equal to t with axes i and j exchanged.
func (t *Tensor) SwapAxes(i, j int) *Tensor {
	if i < 0 || i >= len(t.shape) || j < 0 || j >= len(t.shape) {
		panic(fmt.Errorf("tensor: cannot swap axes %d and %d of shape %v", i, j, t.shape))
	}

	shape := t.Shape()
	shape[i], shape[j] = shape[j], shape[i]
	if i == j || t.shape[i] == 1 || t.shape[j] == 1 {
		// Moving a unit axis leaves the row-major order unchanged.
		return fromBacking(append([]float32(nil), t.data...), shape)
	}

	axes := make([]int, len(t.shape))
	for k := range axes {
		axes[k] = k
	}
	axes[i], axes[j] = axes[j], axes[i]

	transposed, err := gt.Transpose(t.dense, axes...)
	if err != nil {
		panic(errors.Wrapf(err, "tensor: swapping axes %d and %d of %v", i, j, t))
	}

	result := New(shape...)
	copy(result.data, float32s(transposed))
	return result
}

// float32s returns the entries of a materialized gorgonia tensor.
// Single-entry tensors report their data as a scalar.
func float32s(t gt.Tensor) []float32 {
	switch data := t.Data().(type) {
	case []float32:
		return data
	case float32:
		return []float32{data}
	}

	panic(fmt.Errorf("tensor: unexpected %v data of type %T", t.Dtype(), t.Data()))
}

// Equal reports whether both tensors have the same shape and
// bit-identical entries.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == nil || other == nil {
		return t == other
	}

	if len(t.shape) != len(other.shape) {
		return false
	}

	for i, d := range t.shape {
		if other.shape[i] != d {
			return false
		}
	}

	return f32.Equal(t.data, other.data)
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", t.shape)
}

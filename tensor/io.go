package tensor

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var order = binary.LittleEndian

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The encoding is the number of axes, each dimension, then every entry,
// all as little-endian 32-bit words.
func (t *Tensor) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 4*(1+len(t.shape)+len(t.data)))
	order.PutUint32(buf, uint32(len(t.shape)))
	pos := 4
	for _, d := range t.shape {
		order.PutUint32(buf[pos:], uint32(d))
		pos += 4
	}

	for _, v := range t.data {
		order.PutUint32(buf[pos:], math.Float32bits(v))
		pos += 4
	}

	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Tensor) UnmarshalBinary(buf []byte) error {
	if len(buf) < 4 || len(buf)%4 != 0 {
		return errors.Errorf("invalid encoded tensor has len %d", len(buf))
	}

	nDims := int(order.Uint32(buf))
	if len(buf) < 4*(1+nDims) {
		return errors.Errorf("invalid encoded tensor: %d axes in %d bytes", nDims, len(buf))
	}

	shape := make([]int, nDims)
	n := 1
	pos := 4
	for i := range shape {
		shape[i] = int(order.Uint32(buf[pos:]))
		if shape[i] <= 0 {
			return errors.Errorf("invalid encoded tensor: shape %v", shape[:i+1])
		}
		n *= shape[i]
		pos += 4
	}

	if len(buf)-pos != 4*n {
		return errors.Errorf("invalid encoded tensor: shape %v needs %d entries, got %d",
			shape, n, (len(buf)-pos)/4)
	}

	data := make([]float32, n)
	for i := range data {
		data[i] = math.Float32frombits(order.Uint32(buf[pos:]))
		pos += 4
	}

	*t = *fromBacking(data, shape)
	return nil
}

package lookahead

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/tensor"
)

// SnapshotStore persists snapshots by key.
type SnapshotStore interface {
	Put(key string, s *Snapshot) error
	// Get returns ErrSnapshotNotFound if key has not been Put.
	Get(key string) (*Snapshot, error)
	Close() error
}

// Key identifies the public state at root. Trees built with the same
// parameters from equal keys have identical layouts.
func Key(root deepstack.PublicNode) string {
	bets := root.Bets()
	return fmt.Sprintf("street=%d/player=%v/bets=%g,%g", root.Street(), root.Player(), bets[0], bets[1])
}

// Snapshot is a copy of the parts of a Lookahead that depend only on
// the public tree, for caching built layouts.
type Snapshot struct {
	Street    int
	Structure *Structure
	Counts    *NodeCounts

	PotSize []*tensor.Tensor
	// EmptyActionMask[0] is nil.
	EmptyActionMask []*tensor.Tensor

	FirstCallTerminal   bool
	FirstCallTransition bool
	FirstCallCheck      bool
}

// Snapshot returns a deep copy of the pots and masks of la.
func (la *Lookahead) Snapshot() *Snapshot {
	s := &Snapshot{
		Street:              la.Street,
		Structure:           la.Structure,
		Counts:              la.Counts,
		PotSize:             make([]*tensor.Tensor, len(la.Layers)),
		EmptyActionMask:     make([]*tensor.Tensor, len(la.Layers)),
		FirstCallTerminal:   la.FirstCallTerminal,
		FirstCallTransition: la.FirstCallTransition,
		FirstCallCheck:      la.FirstCallCheck,
	}

	for d, layer := range la.Layers {
		s.PotSize[d] = layer.PotSize.Clone()
		if layer.EmptyActionMask != nil {
			s.EmptyActionMask[d] = layer.EmptyActionMask.Clone()
		}
	}

	return s
}

// Equal reports whether both snapshots hold identical layouts.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}

	if !s.Structure.Equal(other.Structure) || !s.Counts.Equal(other.Counts) {
		return false
	}

	if s.Street != other.Street ||
		s.FirstCallTerminal != other.FirstCallTerminal ||
		s.FirstCallTransition != other.FirstCallTransition ||
		s.FirstCallCheck != other.FirstCallCheck ||
		len(s.PotSize) != len(other.PotSize) ||
		len(s.EmptyActionMask) != len(other.EmptyActionMask) {
		return false
	}

	for d := range s.PotSize {
		if !s.PotSize[d].Equal(other.PotSize[d]) ||
			!s.EmptyActionMask[d].Equal(other.EmptyActionMask[d]) {
			return false
		}
	}

	return true
}

// Tensors are stored as their binary encoding so that missing
// masks survive the round trip as empty entries.
type snapshotWire struct {
	Street    int
	Structure *Structure
	Counts    *NodeCounts

	PotSize         [][]byte
	EmptyActionMask [][]byte

	FirstCallTerminal   bool
	FirstCallTransition bool
	FirstCallCheck      bool
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	w := snapshotWire{
		Street:              s.Street,
		Structure:           s.Structure,
		Counts:              s.Counts,
		PotSize:             make([][]byte, len(s.PotSize)),
		EmptyActionMask:     make([][]byte, len(s.EmptyActionMask)),
		FirstCallTerminal:   s.FirstCallTerminal,
		FirstCallTransition: s.FirstCallTransition,
		FirstCallCheck:      s.FirstCallCheck,
	}

	var err error
	for d, t := range s.PotSize {
		if w.PotSize[d], err = t.MarshalBinary(); err != nil {
			return nil, err
		}
	}

	for d, t := range s.EmptyActionMask {
		if t == nil {
			continue
		}

		if w.EmptyActionMask[d], err = t.MarshalBinary(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&w); err != nil {
		return nil, errors.Wrap(err, "encoding snapshot")
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Snapshot) UnmarshalBinary(buf []byte) error {
	var w snapshotWire
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&w); err != nil {
		return errors.Wrap(err, "decoding snapshot")
	}

	if len(w.PotSize) != len(w.EmptyActionMask) {
		return errors.Errorf("snapshot has %d pot layers but %d mask layers",
			len(w.PotSize), len(w.EmptyActionMask))
	}

	*s = Snapshot{
		Street:              w.Street,
		Structure:           w.Structure,
		Counts:              w.Counts,
		PotSize:             make([]*tensor.Tensor, len(w.PotSize)),
		EmptyActionMask:     make([]*tensor.Tensor, len(w.EmptyActionMask)),
		FirstCallTerminal:   w.FirstCallTerminal,
		FirstCallTransition: w.FirstCallTransition,
		FirstCallCheck:      w.FirstCallCheck,
	}

	for d, data := range w.PotSize {
		s.PotSize[d] = &tensor.Tensor{}
		if err := s.PotSize[d].UnmarshalBinary(data); err != nil {
			return errors.Wrapf(err, "pot at depth %d", d)
		}
	}

	for d, data := range w.EmptyActionMask {
		if len(data) == 0 {
			continue
		}

		s.EmptyActionMask[d] = &tensor.Tensor{}
		if err := s.EmptyActionMask[d].UnmarshalBinary(data); err != nil {
			return errors.Wrapf(err, "mask at depth %d", d)
		}
	}

	return nil
}

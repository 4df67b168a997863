package lookahead

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/go-deepstack/nn"
)

// CallPots returns the pot at the call slot of every
// (parent, grandparent) pair of the layer, in row-major order.
// These are the pots of the street transitions reached at this depth.
func (l *Layer) CallPots() []float32 {
	pots := make([]float32, 0, l.Parents*l.Grandparents)
	for p := 0; p < l.Parents; p++ {
		for g := 0; g < l.Grandparents; g++ {
			pots = append(pots, l.PotSize.At(callAction, p, g, 0, 0))
		}
	}

	return pots
}

// connectNextStreet starts a value request at every depth below the root
// when the lookahead stops before the end of the hand.
func (b *Builder) connectNextStreet(la *Lookahead) error {
	if la.Street >= b.params.StreetsCount {
		return nil
	}

	if b.values == nil {
		return errors.WithStack(ErrNoValueNetwork)
	}

	net, err := b.values.Network()
	if err != nil {
		return errors.Wrap(err, "loading value network")
	}

	la.NextStreetBoxes = make([]*nn.NextRoundValue, la.Depth)
	for d := 1; d < la.Depth; d++ {
		layer := la.Layers[d]
		if layer.Actions <= callAction {
			return structureErrorf(d, nil, nil, "layer has no call slot")
		}

		box, err := nn.NewNextRoundValue(net, b.params)
		if err != nil {
			return err
		}

		pots := layer.CallPots()
		box.Start(pots)
		la.NextStreetBoxes[d] = box
		glog.V(2).Infof("Depth %d: requested %d next street values", d, len(pots))
	}

	return nil
}

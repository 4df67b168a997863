package nn

import (
	"sync"

	"github.com/golang/glog"
)

// Provider supplies the value network shared by every lookahead built
// in a process.
type Provider interface {
	Network() (Network, error)
}

type static struct {
	net Network
}

// Static returns a Provider that always returns net.
func Static(net Network) Provider {
	return static{net}
}

func (s static) Network() (Network, error) {
	return s.net, nil
}

// Lazy is a Provider that loads its network on first use. It is safe
// for concurrent use and calls the loader at most once.
type Lazy struct {
	load func() (Network, error)

	once sync.Once
	net  Network
	err  error
}

func NewLazy(load func() (Network, error)) *Lazy {
	return &Lazy{load: load}
}

// LazyMLPFile returns a Lazy provider that loads an MLP from path.
func LazyMLPFile(path string) *Lazy {
	return NewLazy(func() (Network, error) {
		return LoadMLPFile(path)
	})
}

// Network implements Provider. A failed load is not retried.
func (l *Lazy) Network() (Network, error) {
	l.once.Do(func() {
		l.net, l.err = l.load()
		if l.err == nil {
			glog.V(1).Infof("Loaded value network: %d inputs, %d outputs",
				l.net.InputSize(), l.net.OutputSize())
		}
	})

	return l.net, l.err
}

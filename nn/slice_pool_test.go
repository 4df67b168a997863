package nn

import (
	"context"
	"testing"
)

func TestFloatSlicePool(t *testing.T) {
	pool := &floatSlicePool{}
	v := pool.alloc(4)
	v[0] = 3
	pool.free(v)

	w := pool.alloc(4)
	if len(w) != 4 {
		t.Errorf("expected len %d, got %d", 4, len(w))
	}

	for i, x := range w {
		if x != 0 {
			t.Errorf("expected reused slice to be zeroed, got %v at %d", x, i)
		}
	}

	var nilPool *floatSlicePool
	if len(nilPool.alloc(2)) != 2 {
		t.Errorf("expected nil pool to allocate")
	}
	nilPool.free(w)
}

func BenchmarkAllocFree(b *testing.B) {
	pool := &floatSlicePool{}
	for i := 0; i < b.N; i++ {
		v := pool.alloc(10)
		pool.free(v)
	}
}

func BenchmarkMLP_Evaluate(b *testing.B) {
	in, hidden, out := InputSize(6), 64, OutputSize(6)
	m := &MLP{Layers: []Dense{
		{In: in, Out: hidden, Weights: make([]float32, in*hidden), Bias: make([]float32, hidden)},
		{In: hidden, Out: out, Weights: make([]float32, hidden*out), Bias: make([]float32, out)},
	}}

	inputs := make([][]float32, 1024)
	for i := range inputs {
		inputs[i] = make([]float32, in)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Evaluate(context.Background(), inputs); err != nil {
			b.Fatal(err)
		}
	}
}

package nn

// floatSlicePool recycles activation buffers. It is not safe for
// concurrent use; each evaluating goroutine keeps its own.
type floatSlicePool struct {
	pool [][]float32
}

// alloc returns a zeroed slice of length n.
func (p *floatSlicePool) alloc(n int) []float32 {
	if p == nil {
		return make([]float32, n)
	}

	if len(p.pool) > 0 {
		m := len(p.pool)
		next := p.pool[m-1]
		p.pool = p.pool[:m-1]
		return append(next, make([]float32, n)...)
	}

	return make([]float32, n)
}

func (p *floatSlicePool) free(s []float32) {
	if p != nil && cap(s) > 0 {
		p.pool = append(p.pool, s[:0])
	}
}

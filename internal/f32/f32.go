// Package f32 implements the float32 vector kernels used by the
// lookahead tensors and value networks.
package f32

// Fill is
//  for i := range x {
//  	x[i] = alpha
//  }
func Fill(alpha float32, x []float32) {
	for i := range x {
		x[i] = alpha
	}
}

// ScalUnitary is
//  for i := range x {
//  	x[i] *= alpha
//  }
func ScalUnitary(alpha float32, x []float32) {
	for i := range x {
		x[i] *= alpha
	}
}

// DotUnitary is
//  for i, v := range x {
//  	sum += y[i] * v
//  }
//  return sum
func DotUnitary(x, y []float32) (sum float32) {
	for i, v := range x {
		sum += y[i] * v
	}
	return sum
}

// Relu is
//  for i, v := range x {
//  	if v < 0 {
//  		x[i] = 0
//  	}
//  }
func Relu(x []float32) {
	for i, v := range x {
		if v < 0 {
			x[i] = 0
		}
	}
}

// Sum is
//  var sum float32
//  for i := range x {
//      sum += x[i]
//  }
func Sum(x []float32) float32 {
	var sum float32
	for _, v := range x {
		sum += v
	}
	return sum
}

// Equal reports whether x and y have the same length and bit-identical values.
func Equal(x, y []float32) bool {
	if len(x) != len(y) {
		return false
	}

	for i, v := range x {
		if y[i] != v {
			return false
		}
	}

	return true
}

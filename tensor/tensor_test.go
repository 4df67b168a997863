package tensor

import (
	"testing"
)

func TestNew_Strides(t *testing.T) {
	x := New(2, 3, 4)
	if x.Len() != 24 {
		t.Errorf("expected %d entries, got %d", 24, x.Len())
	}

	x.Set(7, 1, 2, 3)
	if x.Data()[23] != 7 {
		t.Errorf("expected last entry to be set, got %v", x.Data())
	}

	if off := x.Offset(1, 0); off != 12 {
		t.Errorf("expected offset %d, got %d", 12, off)
	}
}

func TestSub_Aliases(t *testing.T) {
	x := New(3, 2, 5)
	block := x.Sub(2, 1)
	if len(block) != 5 {
		t.Fatalf("expected block of %d, got %d", 5, len(block))
	}

	for i := range block {
		block[i] = 1
	}

	for k := 0; k < 5; k++ {
		if x.At(2, 1, k) != 1 {
			t.Errorf("write through Sub not visible at %d", k)
		}
		if x.At(2, 0, k) != 0 {
			t.Errorf("write through Sub leaked into neighbor at %d", k)
		}
	}

	if n := len(x.Sub()); n != 30 {
		t.Errorf("expected empty prefix to address whole tensor, got %d", n)
	}
}

func TestSwapAxes(t *testing.T) {
	x := New(2, 3, 4)
	for i := range x.Data() {
		x.Data()[i] = float32(i)
	}

	y := x.SwapAxes(0, 2)
	shape := y.Shape()
	if shape[0] != 4 || shape[1] != 3 || shape[2] != 2 {
		t.Fatalf("unexpected shape %v", shape)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				if x.At(i, j, k) != y.At(k, j, i) {
					t.Errorf("mismatch at (%d, %d, %d)", i, j, k)
				}
			}
		}
	}
}

func TestClone_Independent(t *testing.T) {
	x := Full(2, 2, 2)
	y := x.Clone()
	y.Set(0, 0, 0)
	if x.At(0, 0) != 2 {
		t.Errorf("clone shares storage with original")
	}

	if x.Equal(y) {
		t.Errorf("expected tensors to differ")
	}
}

func TestMarshalBinary(t *testing.T) {
	x := New(2, 1, 3)
	for i := range x.Data() {
		x.Data()[i] = float32(i) / 3
	}

	buf, err := x.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var y Tensor
	if err := y.UnmarshalBinary(buf); err != nil {
		t.Fatal(err)
	}

	if !x.Equal(&y) {
		t.Errorf("expected %v, got %v", x.Data(), y.Data())
	}

	if err := y.UnmarshalBinary(buf[:len(buf)-4]); err == nil {
		t.Errorf("expected error decoding truncated tensor")
	}
}

func TestDense_SharesStorage(t *testing.T) {
	x := New(2, 3)
	block := x.Sub(1)
	block[2] = 5

	v, err := x.Dense().At(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if v.(float32) != 5 {
		t.Errorf("expected write through Sub to reach dense storage, got %v", v)
	}

	x.Fill(3)
	for i, v := range x.Data() {
		if v != 3 {
			t.Errorf("expected filled entry at %d, got %v", i, v)
		}
	}
}

func TestSwapAxes_UnitAxes(t *testing.T) {
	// Shaped like the inner node scratch of a lookahead layer.
	x := New(3, 1, 2, 2, 6)
	for i := range x.Data() {
		x.Data()[i] = float32(i)
	}

	y := x.SwapAxes(1, 2)
	shape := y.Shape()
	if shape[1] != 2 || shape[2] != 1 {
		t.Fatalf("unexpected shape %v", shape)
	}

	for a := 0; a < 3; a++ {
		for b := 0; b < 2; b++ {
			for p := 0; p < 2; p++ {
				for c := 0; c < 6; c++ {
					if x.At(a, 0, b, p, c) != y.At(a, b, 0, p, c) {
						t.Errorf("mismatch at (%d, 0, %d, %d, %d)", a, b, p, c)
					}
				}
			}
		}
	}

	if !x.SwapAxes(2, 2).Equal(x) {
		t.Errorf("expected swapping an axis with itself to copy")
	}
}

package gf

import (
	"testing"
)

func identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func matricesEqual(a, b *Matrix) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	for r := 0; r < a.Rows(); r++ {
		for c := 0; c < a.Cols(); c++ {
			if a.At(r, c) != b.At(r, c) {
				return false
			}
		}
	}
	return true
}

// multiply is a small test-only helper; production code only ever needs
// RightMultiply against a vector.
func multiply(a, b *Matrix) (*Matrix, error) {
	if a.Cols() != b.Rows() {
		return nil, ErrDimensionMismatch
	}
	out := NewMatrix(a.Rows(), b.Cols())
	for r := 0; r < a.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			var acc byte
			for k := 0; k < a.Cols(); k++ {
				acc = Add(acc, Mul(a.At(r, k), b.At(k, c)))
			}
			out.Set(r, c, acc)
		}
	}
	return out, nil
}

func TestRightMultiply(t *testing.T) {
	m := NewMatrix(2, 3)
	vals := [][]byte{{1, 2, 3}, {4, 5, 6}}
	for r, row := range vals {
		for c, v := range row {
			m.Set(r, c, v)
		}
	}
	v := []byte{1, 0, 1}
	got, err := m.RightMultiply(v)
	if err != nil {
		t.Fatalf("RightMultiply failed: %v", err)
	}
	want := []byte{Add(Mul(1, 1), Add(Mul(2, 0), Mul(3, 1))), Add(Mul(4, 1), Add(Mul(5, 0), Mul(6, 1)))}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RightMultiply()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if _, err := m.RightMultiply([]byte{1, 2}); err == nil {
		t.Fatal("RightMultiply should fail on mismatched length")
	}
}

// vandermonde builds the k x k Vandermonde-style matrix this package's
// callers use for Lagrange/erasure interpolation: row i is
// [1, x_i, x_i^2, ..., x_i^(k-1)].
func vandermonde(xs []byte) *Matrix {
	k := len(xs)
	m := NewMatrix(k, k)
	for r, x := range xs {
		power := byte(1)
		for c := 0; c < k; c++ {
			m.Set(r, c, power)
			power = Mul(power, x)
		}
	}
	return m
}

func TestInverseRoundTrip(t *testing.T) {
	xs := []byte{1, 2, 3, 4}
	m := vandermonde(xs)
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	prod, err := multiply(m, inv)
	if err != nil {
		t.Fatalf("multiply failed: %v", err)
	}
	if !matricesEqual(prod, identity(len(xs))) {
		t.Fatalf("m * Inverse(m) != I, got %+v", prod)
	}
	prod2, err := multiply(inv, m)
	if err != nil {
		t.Fatalf("multiply failed: %v", err)
	}
	if !matricesEqual(prod2, identity(len(xs))) {
		t.Fatalf("Inverse(m) * m != I, got %+v", prod2)
	}
}

func TestInverseDimensionMismatch(t *testing.T) {
	m := NewMatrix(2, 3)
	if _, err := m.Inverse(); err == nil {
		t.Fatal("Inverse on non-square matrix should fail")
	}
}

func TestInverseSingular(t *testing.T) {
	m := NewMatrix(2, 2)
	// Two identical rows: no pivot possible for column 1 after reducing
	// column 0.
	m.Set(0, 0, 1)
	m.Set(0, 1, 2)
	m.Set(1, 0, 1)
	m.Set(1, 1, 2)
	if _, err := m.Inverse(); err == nil {
		t.Fatal("Inverse on a singular matrix should fail")
	}
}

func TestInverseElimDepRowsExactSquare(t *testing.T) {
	xs := []byte{1, 2, 3}
	m := vandermonde(xs)
	inv, kept, err := m.InverseElimDepRows()
	if err != nil {
		t.Fatalf("InverseElimDepRows failed: %v", err)
	}
	if len(kept) != len(xs) {
		t.Fatalf("kept = %v, want %d rows", kept, len(xs))
	}
	prod, err := multiply(m, inv)
	if err != nil {
		t.Fatalf("multiply failed: %v", err)
	}
	if !matricesEqual(prod, identity(len(xs))) {
		t.Fatalf("m * inv != I, got %+v", prod)
	}
}

// TestInverseElimDepRowsOverDetermined checks that, given more rows than
// columns, the pseudo-inverse correctly recovers the polynomial
// coefficients from the y-values at the kept rows, matching spec invariant
// 5's tolerance for redundant equations (the erasure decoder's m > k case).
func TestInverseElimDepRowsOverDetermined(t *testing.T) {
	coeffs := []byte{9, 200, 3} // degree-2 polynomial
	xs := []byte{1, 2, 3, 4, 5} // 5 rows, 3 unknowns
	m := NewMatrix(len(xs), len(coeffs))
	for r, x := range xs {
		power := byte(1)
		for c := range coeffs {
			m.Set(r, c, power)
			power = Mul(power, x)
		}
	}
	ys := make([]byte, len(xs))
	for i, x := range xs {
		ys[i] = EvaluateAt(coeffs, x)
	}

	inv, kept, err := m.InverseElimDepRows()
	if err != nil {
		t.Fatalf("InverseElimDepRows failed: %v", err)
	}
	if len(kept) != len(coeffs) {
		t.Fatalf("kept has %d rows, want %d", len(kept), len(coeffs))
	}

	sub := make([]byte, len(kept))
	for i, r := range kept {
		sub[i] = ys[r]
	}
	got, err := inv.RightMultiply(sub)
	if err != nil {
		t.Fatalf("RightMultiply failed: %v", err)
	}
	for i := range coeffs {
		if got[i] != coeffs[i] {
			t.Fatalf("recovered coefficient %d = %d, want %d (got %v)", i, got[i], coeffs[i], got)
		}
	}
}

func TestInverseElimDepRowsTooFewRows(t *testing.T) {
	m := NewMatrix(2, 3)
	if _, _, err := m.InverseElimDepRows(); err == nil {
		t.Fatal("InverseElimDepRows with fewer rows than columns should fail")
	}
}

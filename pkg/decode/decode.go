// Package decode turns a set of (x, y) share points over GF(2^8) back into
// the degree-(k-1) polynomial that produced them. Two strategies are
// provided: ErasureDecoder, for when missing shares are simply absent (the
// remaining shares are trusted), and BerlekampWelchDecoder, for when some of
// the present shares may have been tampered with and must be identified and
// corrected rather than merely interpolated.
package decode

import (
	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/pkg/gf"
	"github.com/jcflack/archistar-go/pkg/polynomial"
)

// Set of errors returned by this package.
var (
	// ErrTooFewShares is returned when fewer than k points are given.
	ErrTooFewShares = errors.New("decode: too few shares to reach the threshold")

	// ErrTooManyErrors is returned by BerlekampWelchDecoder when the shares
	// disagree by more errors than the redundancy can correct.
	ErrTooManyErrors = errors.New("decode: too many inconsistent shares to correct")

	// ErrUnsolvable is returned when the interpolation system has no unique
	// solution, usually from duplicate x-coordinates.
	ErrUnsolvable = errors.New("decode: share system has no unique solution")
)

// Decoder reconstructs a degree-(k-1) polynomial from y-values supplied at a
// fixed set of x-coordinates. Implementations are built for one fixed set of
// x-coordinates (X) and threshold (k); Decode is then called once per secret
// byte (the y-values at those same coordinates).
type Decoder interface {
	// Decode reconstructs the polynomial that produced ys at this Decoder's
	// x-coordinates, returning its coefficients.
	Decode(ys []byte) (polynomial.Polynomial, error)
}

// erasureDecoder solves the plain Vandermonde interpolation system. It
// assumes every y-value given to Decode is genuine (no tampering), which is
// the case once pkg/ic's information-checking protocol has already
// discarded invalid shares.
type erasureDecoder struct {
	xs  []byte
	k   int
	inv *gf.Matrix
	rows []int
}

// NewErasureDecoder builds a Decoder for the given x-coordinates and
// threshold k. len(xs) must be at least k; if more than k points are
// supplied the extra equations are treated as redundant via
// gf.Matrix.InverseElimDepRows, and Decode fails with ErrUnsolvable if they
// are not consistent with the rest.
func NewErasureDecoder(xs []byte, k int) (Decoder, error) {
	if len(xs) < k {
		return nil, errors.Wrapf(ErrTooFewShares, "have %d, need %d", len(xs), k)
	}
	m := vandermonde(xs, k)
	inv, rows, err := m.InverseElimDepRows()
	if err != nil {
		return nil, errors.Wrap(ErrUnsolvable, err.Error())
	}
	return &erasureDecoder{xs: xs, k: k, inv: inv, rows: rows}, nil
}

func (d *erasureDecoder) Decode(ys []byte) (polynomial.Polynomial, error) {
	if len(ys) != len(d.xs) {
		return nil, errors.Errorf("decode: have %d y-values, want %d", len(ys), len(d.xs))
	}
	sub := make([]byte, len(d.rows))
	for i, r := range d.rows {
		sub[i] = ys[r]
	}
	coeffs, err := d.inv.RightMultiply(sub)
	if err != nil {
		return nil, errors.Wrap(err, "solve interpolation system")
	}
	// The rows InverseElimDepRows left out are redundant equations; the
	// solved polynomial must satisfy them too.
	for i, x := range d.xs {
		if gf.EvaluateAt(coeffs, x) != ys[i] {
			return nil, errors.Wrapf(ErrUnsolvable, "share at x=%d is inconsistent with the others", x)
		}
	}
	return polynomial.Polynomial(coeffs), nil
}

// vandermonde builds the len(xs) x k matrix whose row i is
// [1, x_i, x_i^2, ..., x_i^(k-1)], the standard interpolation matrix for a
// degree-(k-1) polynomial evaluated at xs.
func vandermonde(xs []byte, k int) *gf.Matrix {
	m := gf.NewMatrix(len(xs), k)
	for r, x := range xs {
		power := byte(1)
		for c := 0; c < k; c++ {
			m.Set(r, c, power)
			power = gf.Mul(power, x)
		}
	}
	return m
}

// berlekampWelchDecoder implements the Berlekamp-Welch algorithm, grounded
// on the vivint/infectious FEC decoder: it treats the y-values as possibly
// containing up to e = floor((m-k)/2) tampered entries and recovers both the
// original polynomial and an implicit error locator without the caller
// needing to say which shares are bad.
type berlekampWelchDecoder struct {
	xs []byte
	k  int
	e  int
}

// NewBerlekampWelchDecoder builds a Decoder that tolerates up to
// floor((len(xs)-k)/2) corrupted y-values among len(xs) shares.
func NewBerlekampWelchDecoder(xs []byte, k int) (Decoder, error) {
	if len(xs) < k {
		return nil, errors.Wrapf(ErrTooFewShares, "have %d, need %d", len(xs), k)
	}
	e := (len(xs) - k) / 2
	if e <= 0 {
		return nil, errors.Wrap(ErrTooFewShares, "not enough redundancy to correct any errors")
	}
	return &berlekampWelchDecoder{xs: xs, k: k, e: e}, nil
}

func (d *berlekampWelchDecoder) Decode(ys []byte) (polynomial.Polynomial, error) {
	if len(ys) != len(d.xs) {
		return nil, errors.Errorf("decode: have %d y-values, want %d", len(ys), len(d.xs))
	}
	k, e := d.k, d.e
	q := k + e  // degree bound of the message polynomial Q, plus one
	dim := q + e

	// Build the constraint system S*u = f: for each share i,
	//   x_i^e * r_i = sum_j<q x_i^j u_j + sum_j<e x_i^j r_i u_{q+j}
	s := gf.NewMatrix(dim, dim)
	f := make([]byte, dim)
	for i := 0; i < dim; i++ {
		xi := d.xs[i]
		ri := ys[i]
		f[i] = gf.Mul(powGF(xi, e), ri)
		for j := 0; j < q; j++ {
			s.Set(i, j, powGF(xi, j))
		}
		for j := 0; j < e; j++ {
			s.Set(i, q+j, gf.Mul(powGF(xi, j), ri))
		}
	}

	inv, err := s.Inverse()
	if err != nil {
		if e > 0 {
			// Fewer than e of these shares are wrong, so (E, Q) is not
			// unique: retry assuming one fewer error.
			return (&berlekampWelchDecoder{xs: d.xs, k: k, e: e - 1}).Decode(ys)
		}
		return nil, errors.Wrap(ErrTooManyErrors, err.Error())
	}
	u, err := inv.RightMultiply(f)
	if err != nil {
		return nil, errors.Wrap(err, "solve error-locator system")
	}

	// u[0:q] are Q's coefficients directly, x^0 first (column j<q of the
	// system multiplies x_i^j with no r_i factor). u[q:dim] are E's
	// non-leading coefficients, x^0 first (column q+j multiplies x_i^j *
	// r_i); E is monic of degree e, so its x^e coefficient is the implicit
	// leading 1 appended at the end, not one of the solved unknowns.
	qPoly := polynomial.Polynomial(u[:q])
	ePoly := append(append(polynomial.Polynomial{}, u[q:]...), 1)

	pPoly, rem, err := polyDivMod(qPoly, ePoly)
	if err != nil {
		return nil, errors.Wrap(err, "divide message polynomial by error locator")
	}
	for _, r := range rem {
		if r != 0 {
			return nil, ErrTooManyErrors
		}
	}
	// pPoly has degree q-e-1 = k-1, as expected.
	for len(pPoly) < k {
		pPoly = append(pPoly, 0)
	}
	return pPoly[:k], nil
}

// powGF returns x^n in GF(2^8).
func powGF(x byte, n int) byte {
	result := byte(1)
	for i := 0; i < n; i++ {
		result = gf.Mul(result, x)
	}
	return result
}

// polyDivMod divides a by b (both in increasing-power form) returning the
// quotient and remainder, both over GF(2^8). b must not be the zero
// polynomial.
func polyDivMod(a, b polynomial.Polynomial) (quotient, remainder polynomial.Polynomial, err error) {
	bDeg := degree(b)
	if bDeg < 0 {
		return nil, nil, errors.New("decode: division by the zero polynomial")
	}
	lead, err := gf.Inverse(b[bDeg])
	if err != nil {
		return nil, nil, errors.Wrap(err, "invert divisor leading coefficient")
	}

	rem := make(polynomial.Polynomial, len(a))
	copy(rem, a)
	aDeg := degree(rem)
	if aDeg < bDeg {
		return polynomial.Polynomial{0}, rem, nil
	}
	quotient = make(polynomial.Polynomial, aDeg-bDeg+1)
	for aDeg >= bDeg && degree(rem) >= 0 {
		coeff := gf.Mul(rem[aDeg], lead)
		quotient[aDeg-bDeg] = coeff
		for i := 0; i <= bDeg; i++ {
			rem[aDeg-bDeg+i] = gf.Sub(rem[aDeg-bDeg+i], gf.Mul(coeff, b[i]))
		}
		aDeg = degree(rem)
	}
	return quotient, rem, nil
}

// degree returns the highest index with a non-zero coefficient, or -1 for
// the zero polynomial.
func degree(p polynomial.Polynomial) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// NewDecoder is a factory that picks ErasureDecoder when the caller
// guarantees every supplied share is genuine (faulty=false), or
// BerlekampWelchDecoder when some shares may have been tampered with and
// must be detected and corrected (faulty=true).
func NewDecoder(xs []byte, k int, faulty bool) (Decoder, error) {
	if faulty {
		return NewBerlekampWelchDecoder(xs, k)
	}
	return NewErasureDecoder(xs, k)
}

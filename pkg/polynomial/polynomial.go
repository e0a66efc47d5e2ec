/*
 * paperback: resilient paper backups for the very paranoid
 * Copyright (C) 2018 Aleksa Sarai <cyphar@cyphar.com>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package polynomial implements polynomials over GF(2^8), one per byte of
// secret data shared by pkg/shamir. Coefficients are plain bytes rather than
// *big.Int -- there is no modulus to carry around, since GF(2^8) is already
// a finite field of exactly 256 elements.
package polynomial

import (
	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/pkg/gf"
	"github.com/jcflack/archistar-go/pkg/random"
)

// Polynomial represents a polynomial of degree len(p)-1 over GF(2^8), with
// coefficients stored in increasing power of x, like
//
//	p_0 + p_1 x^1 + p_2 x^2 + ... + p_n x^n.
type Polynomial []byte

// ErrZeroDegree is returned by Random when asked for a polynomial of degree
// zero or less, which can't carry a secret coefficient.
var ErrZeroDegree = errors.New("polynomial: degree must be at least 1 to carry a secret")

// Random generates a polynomial of the given degree with random non-zero
// coefficients, except for the constant term which the caller sets
// separately via SetConst. Every non-constant coefficient is drawn non-zero,
// mirroring the teacher's RandomPolynomial: a zero leading term would
// silently lower the effective degree and weaken the threshold guarantee.
func Random(src random.Source, degree uint) (Polynomial, error) {
	if degree == 0 {
		return nil, ErrZeroDegree
	}
	poly := make(Polynomial, degree+1)
	if err := src.FillNonZero(poly[1:]); err != nil {
		return nil, errors.Wrap(err, "generate random coefficients")
	}
	return poly, nil
}

// SetConst sets the constant term (coefficient of x^0) of the polynomial.
func (p Polynomial) SetConst(a0 byte) {
	if len(p) < 1 {
		panic("tried to SetConst on empty Polynomial")
	}
	p[0] = a0
}

// Const returns the constant term of the polynomial.
func (p Polynomial) Const() byte {
	if len(p) < 1 {
		panic("tried to Const on empty Polynomial")
	}
	return p[0]
}

// Degree returns the degree of the polynomial, i.e. len(p)-1.
func (p Polynomial) Degree() uint {
	if len(p) == 0 {
		return 0
	}
	return uint(len(p) - 1)
}

// EvaluateAt evaluates p(x) using Horner's rule over GF(2^8).
func (p Polynomial) EvaluateAt(x byte) byte {
	return gf.EvaluateAt(p, x)
}

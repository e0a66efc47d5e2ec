// Package gf implements arithmetic over GF(2^8), the finite field of 256
// elements used as the algebraic substrate for every share byte produced by
// this module. Elements are represented as plain bytes; addition is XOR and
// multiplication/inversion are implemented via log/antilog tables seeded from
// generator 0x03 over the AES reducing polynomial x^8+x^4+x^3+x+1 (0x11B).
package gf

import (
	"sync"

	"github.com/pkg/errors"
)

const (
	// reducingPolynomial is the AES (Rijndael) polynomial used to reduce
	// products back into the field.
	reducingPolynomial = 0x11B

	// fieldSize is the number of elements in GF(2^8).
	fieldSize = 256

	// generator is the element whose powers enumerate the whole
	// multiplicative group.
	generator = 0x03
)

var (
	// ErrZeroInverse is returned by Inverse when asked to invert zero, which
	// has no multiplicative inverse in any field.
	ErrZeroInverse = errors.New("gf: zero has no multiplicative inverse")

	expTable [fieldSize]byte
	logTable [fieldSize]byte
	initOnce sync.Once
)

// initTables builds the log/antilog tables once, lazily. This mirrors the
// teacher's precomputed-table approach: the tables are process-wide
// read-only state safe to share across goroutines once built.
func initTables() {
	initOnce.Do(func() {
		var x uint16 = 1
		for i := 0; i < fieldSize-1; i++ {
			expTable[i] = byte(x)
			logTable[byte(x)] = byte(i)

			// Multiply by the generator (x+1 in GF(2) polynomial terms):
			// x*3 = x*(x+1) = (x<<1) ^ x.
			x = (x << 1) ^ x
			if x >= fieldSize {
				x ^= reducingPolynomial
			}
		}
	})
}

// Add returns a+b in GF(2^8), which is simply XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a-b in GF(2^8). Subtraction is identical to addition because
// every element is its own additive inverse under XOR.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a*b in GF(2^8) using the log/antilog tables.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	initTables()
	sum := int(logTable[a]) + int(logTable[b])
	if sum >= fieldSize-1 {
		sum -= fieldSize - 1
	}
	return expTable[sum]
}

// Inverse returns the multiplicative inverse of a in GF(2^8). It fails for
// a=0, which has no inverse.
func Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrZeroInverse
	}
	initTables()
	diff := ((fieldSize - 1) - int(logTable[a])) % (fieldSize - 1)
	return expTable[diff], nil
}

// Div returns a/b in GF(2^8), i.e. a*Inverse(b). It fails if b=0.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrZeroInverse
	}
	if a == 0 {
		return 0, nil
	}
	initTables()
	diff := int(logTable[a]) - int(logTable[b])
	if diff < 0 {
		diff += fieldSize - 1
	}
	return expTable[diff], nil
}

// EvaluateAt evaluates the polynomial given by coefficients (in increasing
// power of x, coefficients[0] is the constant term) at the point x, using
// Horner's rule over GF(2^8).
func EvaluateAt(coefficients []byte, x byte) byte {
	var result byte
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = Add(Mul(result, x), coefficients[i])
	}
	return result
}

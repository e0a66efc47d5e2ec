// Package random provides the RandomSource contract used everywhere this
// module needs unpredictable GF(2^8) coefficients or keys: polynomial
// generation and IC MAC key generation. There is deliberately
// only one production implementation, backed by crypto/rand -- this module
// never falls back to math/rand for anything that touches secret material.
package random

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// ErrSourceExhausted is returned when the underlying entropy source fails to
// produce bytes.
var ErrSourceExhausted = errors.New("random: source failed to produce bytes")

// Source generates random bytes for use as GF(2^8) polynomial coefficients
// and MAC keys. FillNonZero fills buf with bytes that are
// guaranteed never to be zero -- required for polynomial coefficients, since
// a zero leading coefficient silently lowers the degree of the sharing
// polynomial and weakens the threshold guarantee.
type Source interface {
	// Fill fills buf with random bytes.
	Fill(buf []byte) error
	// FillNonZero fills buf with random bytes, none of which are zero.
	FillNonZero(buf []byte) error
}

// cryptoSource is the crypto/rand-backed Source implementation. It is the
// only Source this package ships.
type cryptoSource struct {
	reader io.Reader
}

// NewCryptoSource returns a Source backed by crypto/rand.Reader.
func NewCryptoSource() Source {
	return &cryptoSource{reader: rand.Reader}
}

func (s *cryptoSource) Fill(buf []byte) error {
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return errors.Wrap(ErrSourceExhausted, err.Error())
	}
	return nil
}

// FillNonZero fills buf one byte at a time, redrawing any byte that comes up
// zero. This mirrors the teacher's RandomPolynomial, which redraws
// coefficients of zero "purely for our own safety, to avoid having a
// polynomial that has a small enough number of zeros in bad places".
func (s *cryptoSource) FillNonZero(buf []byte) error {
	one := make([]byte, 1)
	for i := range buf {
		for {
			if err := s.Fill(one); err != nil {
				return err
			}
			if one[0] != 0 {
				buf[i] = one[0]
				break
			}
		}
	}
	return nil
}

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

// Package shamir implements Shamir's Perfect Secret Sharing[1] over
// GF(2^8). Each byte of the secret gets its own random degree-(k-1)
// polynomial; a share is the set of evaluations of every one of those
// polynomials at a single x-coordinate (the share's ID, 1..n). Any k shares
// are sufficient (and no fewer are) to reconstruct every polynomial's
// constant term, and hence the secret.
//
// Unlike the modular, big.Int-based scheme this package's author has
// written before, there is no prime to generate or publish: GF(2^8) is
// already a finite field of exactly 256 elements, so every byte of secret
// data and every share ID fits in a single byte with no padding or
// rejection sampling required.
//
// [1]: Shamir, Adi (1979), "How to share a secret",
//
//	Communications of the ACM, 22 (11): 612-613,
//	doi:10.1145/359168.359176
package shamir

import (
	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/pkg/decode"
	"github.com/jcflack/archistar-go/pkg/polynomial"
	"github.com/jcflack/archistar-go/pkg/random"
)

// ShamirPSS implements Split and Reconstruct for a fixed random source.
type ShamirPSS struct {
	random random.Source
}

// NewShamirPSS returns a ShamirPSS backed by the given RandomSource.
func NewShamirPSS(src random.Source) *ShamirPSS {
	return &ShamirPSS{random: src}
}

// checkParams validates that (k, n) describe a safely reconstructible
// scheme: 1 < k <= n <= 255 (ids are single non-zero bytes).
func checkParams(k, n int) error {
	if k < 1 || n < 1 {
		return errors.Wrap(ErrInvalidParameters, "k and n must be positive")
	}
	if n > 255 {
		return errors.Wrap(ErrInvalidParameters, "n cannot exceed 255 (share IDs are single non-zero bytes)")
	}
	if k > n {
		return errors.Wrap(ErrWeakSecurity, "k cannot exceed n: the secret would never be reconstructible")
	}
	if k == 1 {
		return errors.Wrap(ErrWeakSecurity, "k=1 gives every single shareholder the secret outright")
	}
	return nil
}

// Split constructs a (k, n) threshold scheme for secret, producing n shares
// of which any k suffice to reconstruct secret exactly, while any k-1 reveal
// nothing about it (perfect secrecy).
func (s *ShamirPSS) Split(k, n int, secret []byte) ([]ShamirShare, error) {
	if err := checkParams(k, n); err != nil {
		return nil, err
	}

	// One polynomial per secret byte, each independently random above its
	// secret-carrying constant term.
	polys := make([]polynomial.Polynomial, len(secret))
	for i, b := range secret {
		poly, err := polynomial.Random(s.random, uint(k-1))
		if err != nil {
			return nil, errors.Wrapf(err, "generate polynomial for byte %d", i)
		}
		poly.SetConst(b)
		polys[i] = poly
	}

	shares := make([]ShamirShare, n)
	for i := 0; i < n; i++ {
		id := byte(i + 1)
		y := make([]byte, len(secret))
		for j, poly := range polys {
			y[j] = poly.EvaluateAt(id)
		}
		share, err := NewShamirShare(id, y)
		if err != nil {
			return nil, errors.Wrapf(err, "construct share %d", id)
		}
		shares[i] = share
	}
	return shares, nil
}

// Reconstruct recovers the secret from k or more ShamirShares. Shares must
// agree on Y length and must not carry duplicate IDs with conflicting
// payloads; beyond k shares, the extra shares are treated as a redundancy
// check (they must be consistent with the rest, or the erasure decoder
// fails with decode.ErrUnsolvable) rather than extending k.
func (s *ShamirPSS) Reconstruct(k int, shares []ShamirShare) ([]byte, error) {
	if len(shares) < k {
		return nil, errors.Wrapf(ErrTooFewShares, "have %d, need %d", len(shares), k)
	}
	if err := checkShareConsistency(shares); err != nil {
		return nil, err
	}

	secretLen := len(shares[0].Y)
	xs := make([]byte, len(shares))
	for i, sh := range shares {
		xs[i] = sh.ID
	}
	dec, err := decode.NewErasureDecoder(xs, k)
	if err != nil {
		return nil, errors.Wrap(err, "build interpolation decoder")
	}

	secret := make([]byte, secretLen)
	ys := make([]byte, len(shares))
	for byteIdx := 0; byteIdx < secretLen; byteIdx++ {
		for i, sh := range shares {
			ys[i] = sh.Y[byteIdx]
		}
		coeffs, err := dec.Decode(ys)
		if err != nil {
			return nil, errors.Wrapf(err, "reconstruct byte %d", byteIdx)
		}
		secret[byteIdx] = coeffs.Const()
	}
	return secret, nil
}

// checkShareConsistency ensures every share has the same Y length and that
// duplicate IDs agree on their payload.
func checkShareConsistency(shares []ShamirShare) error {
	seen := map[byte][]byte{}
	length := len(shares[0].Y)
	for _, sh := range shares {
		if len(sh.Y) != length {
			return errors.Wrap(ErrMismatchedShares, "Y lengths differ")
		}
		if prev, ok := seen[sh.ID]; ok {
			if !bytesEqual(prev, sh.Y) {
				return errors.Wrap(ErrDuplicateShare, "")
			}
			continue
		}
		seen[sh.ID] = sh.Y
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

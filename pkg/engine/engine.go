// Package engine provides CryptoEngine, the single façade most callers of
// this module should use: it composes pkg/shamir (threshold splitting and
// interpolation) with pkg/ic (Cevallos information checking) so that
// Share/Reconstruct alone are enough to get an unconditionally-secure
// robust secret sharing scheme, without the caller needing to wire the
// lower-level packages together by hand.
package engine

import (
	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/pkg/ic"
	"github.com/jcflack/archistar-go/pkg/mac"
	"github.com/jcflack/archistar-go/pkg/random"
	"github.com/jcflack/archistar-go/pkg/shamir"
)

// DefaultMaxDataLen is used by NewCryptoEngine when the caller passes 0. 4
// MiB is generous for the paper-backup and small-secret use cases this
// module targets; callers sharing larger blobs should pass an explicit
// limit rather than rely on this default.
const DefaultMaxDataLen = 4 * 1024 * 1024

// Set of errors returned by this package.
var (
	// ErrDataTooLarge is returned by Share when the input exceeds the
	// engine's configured maxDataLen.
	ErrDataTooLarge = errors.New("engine: data exceeds the configured maximum length")

	// ErrReconstruction wraps any failure encountered while recovering a
	// secret from shares -- information-checking rejection, an unsolvable
	// interpolation system, or too few surviving shares. Every
	// ErrReconstruction seen by a caller carries a wrapped cause (see
	// DESIGN.md's Open Question decisions).
	ErrReconstruction = errors.New("engine: failed to reconstruct secret from shares")
)

// CryptoEngine is a configured (k, n) threshold scheme with information
// checking, ready to Share and Reconstruct secrets.
type CryptoEngine struct {
	k, n       int
	maxDataLen int
	pss        *shamir.ShamirPSS
	ic         *ic.InformationChecking
}

// NewCryptoEngine returns a CryptoEngine for a (k, n) threshold scheme,
// using helper for pairwise MACs, src for all randomness, and securityBits
// as the Cevallos security parameter. maxDataLen bounds Share's input size;
// passing 0 selects DefaultMaxDataLen.
func NewCryptoEngine(k, n int, helper mac.MacHelper, src random.Source, securityBits, maxDataLen int) (*CryptoEngine, error) {
	if maxDataLen == 0 {
		maxDataLen = DefaultMaxDataLen
	}
	return &CryptoEngine{
		k:          k,
		n:          n,
		maxDataLen: maxDataLen,
		pss:        shamir.NewShamirPSS(src),
		ic:         ic.NewInformationChecking(helper, src, securityBits, maxDataLen),
	}, nil
}

// Share splits data into n VSSShares, any k of which (once validated by
// Reconstruct's information checking) are sufficient to recover it.
func (e *CryptoEngine) Share(data []byte) ([]ic.VSSShare, error) {
	if len(data) > e.maxDataLen {
		return nil, errors.Wrapf(ErrDataTooLarge, "%d bytes exceeds limit of %d", len(data), e.maxDataLen)
	}
	shares, err := e.pss.Split(e.k, e.n, data)
	if err != nil {
		return nil, errors.Wrap(err, "split secret")
	}
	vss, err := e.ic.CreateTags(e.k, shares)
	if err != nil {
		return nil, errors.Wrap(err, "tag shares")
	}
	return vss, nil
}

// Reconstruct recovers the original secret from a set of VSSShares,
// discarding any that fail information checking and then interpolating the
// rest. It fails with ErrReconstruction, wrapping the underlying cause, if
// too few shares survive validation or the remaining shares don't form a
// solvable system.
func (e *CryptoEngine) Reconstruct(shares []ic.VSSShare) ([]byte, error) {
	accepted, err := e.ic.CheckShares(e.k, shares)
	if err != nil {
		return nil, errors.Wrap(ErrReconstruction, err.Error())
	}
	secret, err := e.pss.Reconstruct(e.k, accepted)
	if err != nil {
		return nil, errors.Wrap(ErrReconstruction, err.Error())
	}
	return secret, nil
}

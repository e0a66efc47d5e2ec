// Package mac provides the MacHelper contract used by pkg/ic to tag and
// verify shares during information checking. Two underlying primitives
// ship: HMAC-SHA256 and Poly1305, plus a ShortenedMacHelper wrapper that
// truncates either one down to the tag length the security parameter
// actually calls for (full-length tags would be needlessly large for every
// pairwise cross-check a dealer has to generate).
package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/poly1305"
)

// ErrVerificationFailed is returned by VerifyMAC when the tag doesn't match.
var ErrVerificationFailed = errors.New("mac: verification failed")

// ErrInvalidKey is returned when a key of the wrong length is supplied.
var ErrInvalidKey = errors.New("mac: invalid key length")

// MacHelper computes and verifies message authentication codes. pkg/ic uses
// one MacHelper per pairwise tag between a dealer and a share-holding peer.
type MacHelper interface {
	// KeyLength is the number of key bytes ComputeMAC expects.
	KeyLength() int
	// TagLength is the number of bytes ComputeMAC returns.
	TagLength() int
	// ComputeMAC computes the tag for msg under key.
	ComputeMAC(key, msg []byte) ([]byte, error)
	// VerifyMAC recomputes the tag for msg under key and compares it in
	// constant time against tag.
	VerifyMAC(key, msg, tag []byte) error
}

// HMACSHA256Helper computes MACs with HMAC-SHA256: a 32-byte key, a 32-byte
// tag.
type HMACSHA256Helper struct{}

func (HMACSHA256Helper) KeyLength() int { return sha256.Size }
func (HMACSHA256Helper) TagLength() int { return sha256.Size }

func (HMACSHA256Helper) ComputeMAC(key, msg []byte) ([]byte, error) {
	if len(key) != sha256.Size {
		return nil, errors.Wrapf(ErrInvalidKey, "want %d bytes, got %d", sha256.Size, len(key))
	}
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil), nil
}

func (h HMACSHA256Helper) VerifyMAC(key, msg, tag []byte) error {
	want, err := h.ComputeMAC(key, msg)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(want, tag) != 1 {
		return ErrVerificationFailed
	}
	return nil
}

// Poly1305Helper computes MACs with Poly1305: a 32-byte one-time key, a
// 16-byte tag. Poly1305 keys must never be reused across messages; pkg/ic
// draws a fresh key per tag via its RandomSource, so this constraint holds
// automatically.
type Poly1305Helper struct{}

func (Poly1305Helper) KeyLength() int { return 32 }
func (Poly1305Helper) TagLength() int { return poly1305.TagSize }

func (Poly1305Helper) ComputeMAC(key, msg []byte) ([]byte, error) {
	if len(key) != 32 {
		return nil, errors.Wrapf(ErrInvalidKey, "want 32 bytes, got %d", len(key))
	}
	var k [32]byte
	copy(k[:], key)
	var tag [poly1305.TagSize]byte
	poly1305.Sum(&tag, msg, &k)
	return tag[:], nil
}

func (p Poly1305Helper) VerifyMAC(key, msg, tag []byte) error {
	want, err := p.ComputeMAC(key, msg)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(want, tag) != 1 {
		return ErrVerificationFailed
	}
	return nil
}

// ShortenedMacHelper wraps another MacHelper and truncates its tags to
// TagLen bytes. The Cevallos information-checking tag-length formula
// (pkg/ic) derives a soundness-adequate TagLen much shorter than a full
// HMAC-SHA256 or Poly1305 tag; shipping full tags for every pairwise
// cross-check between n shareholders would waste space for no additional
// security.
type ShortenedMacHelper struct {
	Inner  MacHelper
	TagLen int
}

func (s ShortenedMacHelper) KeyLength() int { return s.Inner.KeyLength() }
func (s ShortenedMacHelper) TagLength() int { return s.TagLen }

func (s ShortenedMacHelper) ComputeMAC(key, msg []byte) ([]byte, error) {
	full, err := s.Inner.ComputeMAC(key, msg)
	if err != nil {
		return nil, err
	}
	if s.TagLen > len(full) {
		return nil, errors.Errorf("mac: requested TagLen %d exceeds inner tag length %d", s.TagLen, len(full))
	}
	return full[:s.TagLen], nil
}

func (s ShortenedMacHelper) VerifyMAC(key, msg, tag []byte) error {
	want, err := s.ComputeMAC(key, msg)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(want, tag) != 1 {
		return ErrVerificationFailed
	}
	return nil
}

// TagLength computes the Cevallos soundness-adequate tag length in bytes:
// t = ceil((E + log2(D) + log2(k)) / 8), where E is the security parameter
// (bits of forgery resistance desired), D is the maximum length in bytes of
// the data being shared (bounding the number of distinct messages an
// adversary could try to forge a tag over), and k is the reconstruction
// threshold. Tag length must grow with D: a fixed logD silently lets the
// forgery bound degrade for any D larger than whatever constant was
// assumed.
func TagLength(securityBits, maxDataLen, k int) int {
	bits := securityBits + log2Ceil(maxDataLen) + log2Ceil(k)
	return (bits + 7) / 8
}

// log2Ceil returns ceil(log2(n)) for n >= 1.
func log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	v := n - 1
	for v > 0 {
		bits++
		v >>= 1
	}
	return bits
}

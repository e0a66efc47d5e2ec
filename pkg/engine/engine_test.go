package engine

import (
	"bytes"
	"testing"

	"github.com/jcflack/archistar-go/pkg/mac"
	"github.com/jcflack/archistar-go/pkg/random"
)

func newTestEngine(t *testing.T, k, n int) *CryptoEngine {
	t.Helper()
	e, err := NewCryptoEngine(k, n, mac.HMACSHA256Helper{}, random.NewCryptoSource(), 80, 0)
	if err != nil {
		t.Fatalf("NewCryptoEngine failed: %v", err)
	}
	return e
}

func TestShareReconstructRoundTrip(t *testing.T) {
	e := newTestEngine(t, 3, 5)
	secret := []byte("the whole point of this library")

	shares, err := e.Share(secret)
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("got %d shares, want 5", len(shares))
	}

	got, err := e.Reconstruct(shares)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("Reconstruct() = %q, want %q", got, secret)
	}
}

func TestReconstructSurvivesOneForgedShare(t *testing.T) {
	e := newTestEngine(t, 3, 5)
	secret := []byte("robust against one liar")

	shares, err := e.Share(secret)
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	forged := shares[0].Share
	forged.Y = append([]byte{}, forged.Y...)
	forged.Y[0] ^= 0xFF
	shares[0].Share = forged

	got, err := e.Reconstruct(shares)
	if err != nil {
		t.Fatalf("Reconstruct failed despite having enough honest shares: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("Reconstruct() = %q, want %q", got, secret)
	}
}

func TestReconstructFailsWithTooManyForgedShares(t *testing.T) {
	e := newTestEngine(t, 3, 4)
	secret := []byte("can't outvote the liars this time")

	shares, err := e.Share(secret)
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		s := shares[i].Share
		s.Y = append([]byte{}, s.Y...)
		s.Y[0] ^= 0xFF
		shares[i].Share = s
	}

	if _, err := e.Reconstruct(shares); err == nil {
		t.Fatal("Reconstruct should fail when too many shares are forged")
	}
}

func TestShareRejectsOversizedData(t *testing.T) {
	e, err := NewCryptoEngine(3, 5, mac.HMACSHA256Helper{}, random.NewCryptoSource(), 80, 16)
	if err != nil {
		t.Fatalf("NewCryptoEngine failed: %v", err)
	}
	if _, err := e.Share(make([]byte, 17)); err == nil {
		t.Fatal("Share should reject data larger than maxDataLen")
	}
}

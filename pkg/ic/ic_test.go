package ic

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/jcflack/archistar-go/pkg/mac"
	"github.com/jcflack/archistar-go/pkg/random"
	"github.com/jcflack/archistar-go/pkg/shamir"
)

func testShares(t *testing.T, k, n int) []shamir.ShamirShare {
	t.Helper()
	pss := shamir.NewShamirPSS(random.NewCryptoSource())
	shares, err := pss.Split(k, n, []byte("a very secret message"))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	return shares
}

func newIC() *InformationChecking {
	return NewInformationChecking(mac.HMACSHA256Helper{}, random.NewCryptoSource(), 80, 4*1024*1024)
}

func TestCreateTagsAndCheckSharesAllHonest(t *testing.T) {
	k, n := 3, 5
	shares := testShares(t, k, n)
	ic := newIC()

	vss, err := ic.CreateTags(k, shares)
	if err != nil {
		t.Fatalf("CreateTags failed: %v", err)
	}
	accepted, err := ic.CheckShares(k, vss)
	if err != nil {
		t.Fatalf("CheckShares failed: %v", err)
	}
	if len(accepted) != n {
		t.Fatalf("accepted %d shares, want %d", len(accepted), n)
	}
}

func TestCheckSharesRejectsTamperedShare(t *testing.T) {
	k, n := 3, 5
	shares := testShares(t, k, n)
	ic := newIC()

	vss, err := ic.CreateTags(k, shares)
	if err != nil {
		t.Fatalf("CreateTags failed: %v", err)
	}

	// Tamper with one holder's revealed share payload without updating its
	// tags: every honest peer should now reject it.
	tampered := vss[0].Share
	tampered.Y = append([]byte{}, tampered.Y...)
	tampered.Y[0] ^= 0xFF
	vss[0].Share = tampered

	accepted, err := ic.CheckShares(k, vss)
	if err != nil {
		t.Fatalf("CheckShares failed: %v", err)
	}
	for _, s := range accepted {
		if s.ID == tampered.ID {
			t.Fatalf("tampered share %d was accepted", tampered.ID)
		}
	}
	if len(accepted) != n-1 {
		t.Fatalf("accepted %d shares, want %d (all but the tampered one)", len(accepted), n-1)
	}
}

func TestCheckSharesFailsWithTooFewHonestVotes(t *testing.T) {
	k, n := 3, 4
	shares := testShares(t, k, n)
	ic := newIC()

	vss, err := ic.CreateTags(k, shares)
	if err != nil {
		t.Fatalf("CreateTags failed: %v", err)
	}

	// Corrupt enough shares that too few remain to satisfy k.
	for i := 0; i < 2; i++ {
		s := vss[i].Share
		s.Y = append([]byte{}, s.Y...)
		s.Y[0] ^= 0xFF
		vss[i].Share = s
	}

	if _, err := ic.CheckShares(k, vss); err == nil {
		t.Fatal("CheckShares should fail when too few shares pass validation")
	}
}

func TestCreateTagsTooFewHolders(t *testing.T) {
	ic := newIC()
	if _, err := ic.CreateTags(1, []shamir.ShamirShare{{ID: 1, Y: []byte{1}}}); err == nil {
		t.Fatal("CreateTags with a single holder should fail")
	}
}

// TestTagLengthScalesWithMaxDataLen checks that an InformationChecking
// instance configured for a larger maximum data length produces longer
// tags, so the 2^-E forgery bound keeps holding as D grows (spec.md
// §4.H/§9).
func TestTagLengthScalesWithMaxDataLen(t *testing.T) {
	k, n := 3, 5
	shares := testShares(t, k, n)

	small := NewInformationChecking(mac.HMACSHA256Helper{}, random.NewCryptoSource(), 80, 256)
	large := NewInformationChecking(mac.HMACSHA256Helper{}, random.NewCryptoSource(), 80, 4*1024*1024)

	smallVSS, err := small.CreateTags(k, shares)
	if err != nil {
		t.Fatalf("CreateTags (small D) failed: %v", err)
	}
	largeVSS, err := large.CreateTags(k, shares)
	if err != nil {
		t.Fatalf("CreateTags (large D) failed: %v", err)
	}

	smallTagLen := len(smallVSS[0].Macs[shares[1].ID])
	largeTagLen := len(largeVSS[0].Macs[shares[1].ID])
	if largeTagLen <= smallTagLen {
		t.Fatalf("tag length with maxDataLen=4MiB (%d) should exceed tag length with maxDataLen=256 (%d)", largeTagLen, smallTagLen)
	}

	if _, err := small.CheckShares(k, smallVSS); err != nil {
		t.Fatalf("CheckShares (small D) failed: %v", err)
	}
	if _, err := large.CheckShares(k, largeVSS); err != nil {
		t.Fatalf("CheckShares (large D) failed: %v", err)
	}
}

// TestVSSShareWireRoundTrip checks spec.md's testable property #8
// (parse(serialize(share)) == share) for VSSShare's binary wire format,
// not just the inner ShamirShare.
func TestVSSShareWireRoundTrip(t *testing.T) {
	k, n := 3, 5
	shares := testShares(t, k, n)
	icInst := newIC()

	vss, err := icInst.CreateTags(k, shares)
	if err != nil {
		t.Fatalf("CreateTags failed: %v", err)
	}

	for _, share := range vss {
		wire, err := share.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary failed for share %d: %v", share.Share.ID, err)
		}

		var got VSSShare
		if err := got.UnmarshalBinary(wire); err != nil {
			t.Fatalf("UnmarshalBinary failed for share %d: %v", share.Share.ID, err)
		}

		if got.Share.ID != share.Share.ID || !bytes.Equal(got.Share.Y, share.Share.Y) {
			t.Fatalf("share %d: inner share mismatch: got %+v, want %+v", share.Share.ID, got.Share, share.Share)
		}
		if got.N != share.N {
			t.Fatalf("share %d: N = %d, want %d", share.Share.ID, got.N, share.N)
		}
		if !reflect.DeepEqual(got.Macs, share.Macs) {
			t.Fatalf("share %d: Macs mismatch after round-trip", share.Share.ID)
		}
		if !reflect.DeepEqual(got.Keys, share.Keys) {
			t.Fatalf("share %d: Keys mismatch after round-trip", share.Share.ID)
		}

		// Re-encoding the decoded share must reproduce the identical wire
		// bytes, not merely an equivalent structure.
		wire2, err := got.MarshalBinary()
		if err != nil {
			t.Fatalf("re-MarshalBinary failed for share %d: %v", share.Share.ID, err)
		}
		if !bytes.Equal(wire, wire2) {
			t.Fatalf("share %d: re-encoded wire bytes differ from the original", share.Share.ID)
		}
	}
}

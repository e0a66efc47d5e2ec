package mac

import (
	"bytes"
	"testing"
)

func testHelpers() []MacHelper {
	return []MacHelper{HMACSHA256Helper{}, Poly1305Helper{}}
}

func TestComputeVerifyRoundTrip(t *testing.T) {
	for _, h := range testHelpers() {
		key := bytes.Repeat([]byte{0x42}, h.KeyLength())
		msg := []byte("tag this message")
		tag, err := h.ComputeMAC(key, msg)
		if err != nil {
			t.Fatalf("%T: ComputeMAC failed: %v", h, err)
		}
		if len(tag) != h.TagLength() {
			t.Fatalf("%T: tag length = %d, want %d", h, len(tag), h.TagLength())
		}
		if err := h.VerifyMAC(key, msg, tag); err != nil {
			t.Fatalf("%T: VerifyMAC failed on a valid tag: %v", h, err)
		}
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	for _, h := range testHelpers() {
		key := bytes.Repeat([]byte{0x7}, h.KeyLength())
		tag, _ := h.ComputeMAC(key, []byte("original"))
		if err := h.VerifyMAC(key, []byte("tampered"), tag); err == nil {
			t.Fatalf("%T: VerifyMAC should fail on a tampered message", h)
		}
	}
}

func TestComputeMACRejectsBadKeyLength(t *testing.T) {
	for _, h := range testHelpers() {
		if _, err := h.ComputeMAC([]byte{1, 2, 3}, []byte("msg")); err == nil {
			t.Fatalf("%T: ComputeMAC should reject a short key", h)
		}
	}
}

func TestShortenedMacHelper(t *testing.T) {
	inner := HMACSHA256Helper{}
	short := ShortenedMacHelper{Inner: inner, TagLen: 5}
	key := bytes.Repeat([]byte{0x1}, inner.KeyLength())
	msg := []byte("shorten me")

	tag, err := short.ComputeMAC(key, msg)
	if err != nil {
		t.Fatalf("ComputeMAC failed: %v", err)
	}
	if len(tag) != 5 {
		t.Fatalf("tag length = %d, want 5", len(tag))
	}
	if err := short.VerifyMAC(key, msg, tag); err != nil {
		t.Fatalf("VerifyMAC failed: %v", err)
	}
	bad := append([]byte{}, tag...)
	bad[0] ^= 0xFF
	if err := short.VerifyMAC(key, msg, bad); err == nil {
		t.Fatal("VerifyMAC should reject a corrupted truncated tag")
	}
}

func TestTagLength(t *testing.T) {
	// t = ceil((E + log2(D) + log2(k)) / 8). For E=80, D=256 (logD=8), k=4
	// (log2Ceil=2): ceil(90/8) = 12.
	if got := TagLength(80, 256, 4); got != 12 {
		t.Fatalf("TagLength(80, 256, 4) = %d, want 12", got)
	}
	// k=1 contributes nothing: ceil(88/8) = 11.
	if got := TagLength(80, 256, 1); got != 11 {
		t.Fatalf("TagLength(80, 256, 1) = %d, want 11", got)
	}
	// Tag length must grow with D: a 4 MiB maximum needs substantially more
	// bits than a 256-byte one at the same E and k.
	small := TagLength(80, 256, 4)
	large := TagLength(80, 4*1024*1024, 4)
	if large <= small {
		t.Fatalf("TagLength(80, 4MiB, 4) = %d, want > TagLength(80, 256, 4) = %d", large, small)
	}
	// D=1 contributes nothing (log2Ceil(1) = 0).
	if got := TagLength(80, 1, 1); got != 10 {
		t.Fatalf("TagLength(80, 1, 1) = %d, want 10", got)
	}
}

// Package ic implements Cevallos-style information checking: an
// unconditionally-secure layer on top of plain Shamir shares that lets
// honest shareholders detect (and outvote) forged or corrupted shares
// during reconstruction, without relying on any computational hardness
// assumption. It assumes fewer than k/3 of the shareholders are dishonest.
//
// The protocol works by having the dealer hand every pair of shareholders
// (i, j) a one-time MAC key/tag pair at split time: i gets a tag it can
// present alongside its share, j gets the key needed to check that tag.
// During reconstruction, whoever is collecting shares asks every holder to
// vote on whether each revealed share's tag checks out against the key they
// were given; a share is accepted only if a majority of the other holders
// vote to accept it.
package ic

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/pkg/mac"
	"github.com/jcflack/archistar-go/pkg/random"
	"github.com/jcflack/archistar-go/pkg/shamir"
)

// Set of errors returned by this package.
var (
	// ErrTooFewHolders is returned when CreateTags is given fewer than two
	// shares, since there is no peer to cross-check against.
	ErrTooFewHolders = errors.New("ic: need at least two shareholders to cross-check")

	// ErrValidationFailed is returned by CheckShares when too few shares
	// pass majority validation to reconstruct.
	ErrValidationFailed = errors.New("ic: too few shares passed information checking")

	// ErrInvalidVSSShare is returned by VSSShare's wire (de)serialisation
	// routines when the encoded bytes are malformed.
	ErrInvalidVSSShare = errors.New("ic: malformed vss share encoding")
)

// VSSShare wraps a plain ShamirShare with the pairwise MAC material this
// holder needs to participate in information checking: Macs holds the tag
// this holder presents to each peer (keyed by peer share ID), and Keys holds
// the key this holder uses to verify each peer's revealed share (keyed by
// that peer's share ID). N is the total number of holders in the split this
// share came from; it sizes the flattened macs/keys arrays in the wire
// format (spec.md §6) and is needed to decode them again, since a holder's
// own (diagonal) entry is never present in Macs/Keys.
type VSSShare struct {
	Share shamir.ShamirShare
	Macs  map[byte][]byte
	Keys  map[byte][]byte
	N     int
}

// MarshalBinary encodes v as the inner ShamirShare's wire format (pkg/shamir's
// [u8 id][u32 length][y bytes]) followed by [u8 n][u16 tagLen][u16 keyLen]
// and then the macs and keys flattened in holder-id order 1..n, each entry
// padded to tagLen/keyLen bytes -- the spec.md §6 VSSShare wire format. The
// diagonal entry for v's own id is always encoded as zero bytes, mirroring
// CreateTags never populating it.
func (v VSSShare) MarshalBinary() ([]byte, error) {
	shareBytes, err := v.Share.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "encode inner share")
	}
	if v.N <= 0 || v.N > 255 {
		return nil, errors.Wrapf(ErrInvalidVSSShare, "invalid holder count %d", v.N)
	}
	tagLen := maxEntryLen(v.Macs)
	keyLen := maxEntryLen(v.Keys)

	out := make([]byte, 0, len(shareBytes)+5+v.N*tagLen+v.N*keyLen)
	out = append(out, shareBytes...)
	out = append(out, byte(v.N))
	out = append(out, byte(tagLen>>8), byte(tagLen))
	out = append(out, byte(keyLen>>8), byte(keyLen))
	for id := 1; id <= v.N; id++ {
		entry := make([]byte, tagLen)
		copy(entry, v.Macs[byte(id)])
		out = append(out, entry...)
	}
	for id := 1; id <= v.N; id++ {
		entry := make([]byte, keyLen)
		copy(entry, v.Keys[byte(id)])
		out = append(out, entry...)
	}
	return out, nil
}

// UnmarshalBinary decodes a VSSShare from the wire format produced by
// MarshalBinary. The diagonal entry (holder id == the decoded share's own
// id) is never stored in Macs/Keys, matching CreateTags.
func (v *VSSShare) UnmarshalBinary(data []byte) error {
	if len(data) < 5 {
		return errors.Wrap(ErrInvalidVSSShare, "truncated share header")
	}
	yLen := binary.BigEndian.Uint32(data[1:5])
	shareLen := 5 + int(yLen)
	if len(data) < shareLen {
		return errors.Wrap(ErrInvalidVSSShare, "truncated share payload")
	}
	var share shamir.ShamirShare
	if err := share.UnmarshalBinary(data[:shareLen]); err != nil {
		return errors.Wrap(err, "decode inner share")
	}

	rest := data[shareLen:]
	if len(rest) < 5 {
		return errors.Wrap(ErrInvalidVSSShare, "truncated vss header")
	}
	n := int(rest[0])
	tagLen := int(rest[1])<<8 | int(rest[2])
	keyLen := int(rest[3])<<8 | int(rest[4])
	rest = rest[5:]
	if want := n*tagLen + n*keyLen; len(rest) != want {
		return errors.Wrapf(ErrInvalidVSSShare, "payload length mismatch: have %d, want %d", len(rest), want)
	}

	macs := make(map[byte][]byte, n)
	for id := 1; id <= n; id++ {
		entry := append([]byte{}, rest[:tagLen]...)
		rest = rest[tagLen:]
		if byte(id) != share.ID {
			macs[byte(id)] = entry
		}
	}
	keys := make(map[byte][]byte, n)
	for id := 1; id <= n; id++ {
		entry := append([]byte{}, rest[:keyLen]...)
		rest = rest[keyLen:]
		if byte(id) != share.ID {
			keys[byte(id)] = entry
		}
	}

	v.Share = share
	v.Macs = macs
	v.Keys = keys
	v.N = n
	return nil
}

// maxEntryLen returns the length of the longest value in m, used to size
// the flattened macs/keys arrays in MarshalBinary. Every entry produced by
// CreateTags for a given split is the same length, so this is just a way to
// read that common length back out of the map.
func maxEntryLen(m map[byte][]byte) int {
	max := 0
	for _, v := range m {
		if len(v) > max {
			max = len(v)
		}
	}
	return max
}

// InformationChecking implements the Cevallos tagging and validation
// protocol on top of an underlying MacHelper and RandomSource.
type InformationChecking struct {
	Mac    mac.MacHelper
	Random random.Source
	// E is the security parameter (bits of forgery resistance) fed into
	// the tag-length formula.
	E int
	// MaxDataLen is the largest secret length (in bytes) this instance
	// promises to protect; it is the D term in the Cevallos tag-length
	// formula, so the forgery bound 2^-E only holds for secrets no longer
	// than this.
	MaxDataLen int
}

// NewInformationChecking returns an InformationChecking using helper for
// pairwise tags, src for key generation, security parameter e, and
// maxDataLen as the D term of the tag-length formula -- the largest secret
// length this instance is sized to protect.
func NewInformationChecking(helper mac.MacHelper, src random.Source, e, maxDataLen int) *InformationChecking {
	return &InformationChecking{Mac: helper, Random: src, E: e, MaxDataLen: maxDataLen}
}

// tagHelper returns the ShortenedMacHelper sized for threshold k, per the
// Cevallos tag-length formula t = ceil((E + log2(D) + log2(k)) / 8).
func (ic *InformationChecking) tagHelper(k int) mac.MacHelper {
	return mac.ShortenedMacHelper{Inner: ic.Mac, TagLen: mac.TagLength(ic.E, ic.MaxDataLen, k)}
}

// CreateTags takes the n plain shares produced by a (k, n) Shamir split and
// returns n VSSShares carrying the pairwise cross-check material: every
// ordered pair of distinct holders (i, j) gets a fresh one-time key, with
// the tag computed over i's share going to i and the key going to j.
func (ic *InformationChecking) CreateTags(k int, shares []shamir.ShamirShare) ([]VSSShare, error) {
	if len(shares) < 2 {
		return nil, ErrTooFewHolders
	}
	helper := ic.tagHelper(k)
	n := len(shares)
	vss := make([]VSSShare, n)
	for i, s := range shares {
		vss[i] = VSSShare{Share: s, Macs: map[byte][]byte{}, Keys: map[byte][]byte{}, N: n}
	}
	for i := 0; i < n; i++ {
		wire, err := shares[i].MarshalBinary()
		if err != nil {
			return nil, errors.Wrapf(err, "encode share %d for tagging", shares[i].ID)
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			key := make([]byte, helper.KeyLength())
			if err := ic.Random.Fill(key); err != nil {
				return nil, errors.Wrapf(err, "generate key for pair (%d,%d)", shares[i].ID, shares[j].ID)
			}
			tag, err := helper.ComputeMAC(key, wire)
			if err != nil {
				return nil, errors.Wrapf(err, "tag share %d for peer %d", shares[i].ID, shares[j].ID)
			}
			vss[i].Macs[shares[j].ID] = tag
			vss[j].Keys[shares[i].ID] = key
		}
	}
	return vss, nil
}

// CheckShares validates every candidate's revealed share against the
// cross-checks held by its peers (also supplied in candidates, since in this
// module every shareholder carries both roles), accepting a share only when
// a strict majority of the other present holders vote to accept it. It
// returns the plain ShamirShares that passed validation, discarding any
// that did not.
func (ic *InformationChecking) CheckShares(k int, candidates []VSSShare) ([]shamir.ShamirShare, error) {
	if len(candidates) < 2 {
		return nil, ErrTooFewHolders
	}
	helper := ic.tagHelper(k)

	byID := make(map[byte]VSSShare, len(candidates))
	for _, c := range candidates {
		byID[c.Share.ID] = c
	}

	var accepted []shamir.ShamirShare
	for _, candidate := range candidates {
		wire, err := candidate.Share.MarshalBinary()
		if err != nil {
			return nil, errors.Wrapf(err, "encode share %d for verification", candidate.Share.ID)
		}

		var votes, accepts int
		for peerID, peer := range byID {
			if peerID == candidate.Share.ID {
				continue
			}
			key, ok := peer.Keys[candidate.Share.ID]
			if !ok {
				continue
			}
			tag, ok := candidate.Macs[peerID]
			if !ok {
				continue
			}
			votes++
			if helper.VerifyMAC(key, wire, tag) == nil {
				accepts++
			}
		}
		// Majority accept: strictly more than half of the votes cast.
		if votes > 0 && accepts*2 > votes {
			accepted = append(accepted, candidate.Share)
		}
	}

	if len(accepted) < k {
		return nil, errors.Wrapf(ErrValidationFailed, "only %d of %d shares passed, need %d", len(accepted), len(candidates), k)
	}
	return accepted, nil
}

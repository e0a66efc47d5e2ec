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

package shamir

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
)

// ShamirShare is a single share of a secret: one point (ID, Y) per shared
// byte, where ID is the shared x-coordinate (1..n, never 0) and Y holds the
// polynomial value at ID for every byte of the original secret.
type ShamirShare struct {
	// ID is this share's x-coordinate. IDs are assigned 1..n by Split and
	// must never be zero, since x=0 is where the secret itself lives.
	ID byte
	// Y holds one evaluated byte per byte of shared secret.
	Y []byte
}

// NewShamirShare constructs a ShamirShare, validating that id is non-zero.
func NewShamirShare(id byte, y []byte) (ShamirShare, error) {
	if id == 0 {
		return ShamirShare{}, errors.Wrap(ErrInvalidShare, "share ID must not be zero")
	}
	return ShamirShare{ID: id, Y: y}, nil
}

// MarshalBinary encodes the share as [u8 id][u32 big-endian length][y
// bytes], the wire format shared by every share-like type in this module.
func (s ShamirShare) MarshalBinary() ([]byte, error) {
	out := make([]byte, 1+4+len(s.Y))
	out[0] = s.ID
	binary.BigEndian.PutUint32(out[1:5], uint32(len(s.Y)))
	copy(out[5:], s.Y)
	return out, nil
}

// UnmarshalBinary decodes a share from the wire format produced by
// MarshalBinary.
func (s *ShamirShare) UnmarshalBinary(data []byte) error {
	if len(data) < 5 {
		return errors.Wrap(ErrInvalidShare, "truncated header")
	}
	id := data[0]
	length := binary.BigEndian.Uint32(data[1:5])
	if uint32(len(data)-5) != length {
		return errors.Wrap(ErrInvalidShare, "length field doesn't match payload size")
	}
	y := make([]byte, length)
	copy(y, data[5:])
	s.ID = id
	s.Y = y
	return nil
}

// wireShamirShare is the JSON wire representation: base64-encoded Y bytes,
// following the teacher's share.go pattern of a dedicated wire struct rather
// than relying on encoding/json's default []byte handling directly on the
// exported type (which would be indistinguishable from this, but keeping
// the indirection makes future wire-format changes a one-place edit).
type wireShamirShare struct {
	ID byte   `json:"id"`
	Y  string `json:"y"`
}

// MarshalJSON returns the JSON encoding of the share.
func (s ShamirShare) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireShamirShare{
		ID: s.ID,
		Y:  base64.StdEncoding.EncodeToString(s.Y),
	})
}

// UnmarshalJSON fills the share with the given data.
func (s *ShamirShare) UnmarshalJSON(data []byte) error {
	var ws wireShamirShare
	if err := json.Unmarshal(data, &ws); err != nil {
		return errors.Wrap(err, "unmarshal share")
	}
	y, err := base64.StdEncoding.DecodeString(ws.Y)
	if err != nil {
		return errors.Wrap(err, "decode Y")
	}
	s.ID = ws.ID
	s.Y = y
	return nil
}

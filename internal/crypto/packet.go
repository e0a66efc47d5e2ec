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

// Package crypto provides optional at-rest AEAD protection for serialized
// shares and secrets: ChaCha20-Poly1305 sealing with an Argon2id-derived
// key. This sits outside the sharing/reconstruction protocol itself --
// pkg/engine never calls into this package -- it's for callers who want to
// encrypt a VSSShare or a recovered secret before writing it to disk.
package crypto

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

// ExtraData is the unencrypted additional data bound into the AEAD tag
// alongside the ciphertext: the caller-supplied headers.
type ExtraData struct {
	Headers map[string]string `json:"hdr"`
}

// Packet is the wire format for ciphertext: the {nonce, ciphertext,
// additional data} tuple that makes up an AEAD message.
type Packet struct {
	Nonce      []byte
	Ciphertext []byte
	Extra      ExtraData
}

// wirePacket is the actual JSON wire format: identical contents, but with
// the byte slices base64-encoded rather than serialised as JSON arrays.
type wirePacket struct {
	Nonce      string    `json:"n"`
	Ciphertext string    `json:"d"`
	Extra      ExtraData `json:"ad"`
}

func (p Packet) wirePacket() wirePacket {
	return wirePacket{
		Nonce:      base64.StdEncoding.EncodeToString(p.Nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(p.Ciphertext),
		Extra:      p.Extra,
	}
}

func (wp wirePacket) packet() (Packet, error) {
	nonce, err := base64.StdEncoding.DecodeString(wp.Nonce)
	if err != nil {
		return Packet{}, errors.Wrap(err, "decode nonce")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(wp.Ciphertext)
	if err != nil {
		return Packet{}, errors.Wrap(err, "decode ciphertext")
	}
	return Packet{
		Nonce:      nonce,
		Ciphertext: ciphertext,
		Extra:      wp.Extra,
	}, nil
}

// MarshalJSON implements the JSON Marshaler interface for the wire format.
func (p Packet) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wirePacket())
}

// UnmarshalJSON implements the JSON Unmarshaler interface for the wire
// format.
func (p *Packet) UnmarshalJSON(data []byte) error {
	var wp wirePacket
	if err := json.Unmarshal(data, &wp); err != nil {
		return errors.Wrap(err, "unmarshal wire packet")
	}
	newP, err := wp.packet()
	if err != nil {
		return errors.Wrap(err, "convert from wire packet")
	}
	*p = newP
	return nil
}

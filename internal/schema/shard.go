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

// Package schema wraps the at-rest encryption helpers in internal/crypto
// around this module's own wire types (ic.VSSShare and raw reconstructed
// secrets), tagging every encrypted blob with a schema version so a future
// wire-format change can be detected on read rather than silently
// misparsed. Nothing in pkg/engine's Share/Reconstruct path depends on this
// package; it exists for callers who want to write a VSSShare or a
// recovered secret to disk under key protection.
package schema

import (
	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/internal/crypto"
	"github.com/jcflack/archistar-go/pkg/ic"
)

// Version identifies the shape of EncryptedShard/EncryptedSecret. Bump this
// whenever the wrapped plaintext's wire shape changes incompatibly.
const Version = "1"

// ErrUnsupportedVersion is returned by Decrypt when a blob's Version field
// doesn't match the Version this build understands.
var ErrUnsupportedVersion = errors.New("schema: unsupported version")

// EncryptedShard is the versioned, encrypted-at-rest form of an ic.VSSShare.
// Construct it with NewEncryptedShard and recover the share with Decrypt.
type EncryptedShard struct {
	Version string        `json:"version"`
	Packet  crypto.Packet `json:"packet"`
}

// NewEncryptedShard encrypts share under key, tagging the result with the
// current schema Version. This is the recommended way of protecting a
// VSSShare at rest, so that every caller's encrypted shards stay consistent
// with one another.
func NewEncryptedShard(share ic.VSSShare, key []byte) (EncryptedShard, error) {
	plaintext, err := share.MarshalBinary()
	if err != nil {
		return EncryptedShard{}, errors.Wrap(err, "marshal share")
	}
	packet, err := crypto.Encrypt(plaintext, key, map[string]string{"schema": Version})
	if err != nil {
		return EncryptedShard{}, errors.Wrap(err, "encrypt share")
	}
	return EncryptedShard{Version: Version, Packet: packet}, nil
}

// Decrypt recovers the VSSShare sealed by NewEncryptedShard, verifying both
// the schema version and the AEAD tag before returning it.
func (es EncryptedShard) Decrypt(key []byte) (ic.VSSShare, error) {
	if es.Version != Version {
		return ic.VSSShare{}, errors.Wrapf(ErrUnsupportedVersion, "shard has version %q, want %q", es.Version, Version)
	}
	plaintext, _, err := crypto.Decrypt(es.Packet, key)
	if err != nil {
		return ic.VSSShare{}, errors.Wrap(err, "decrypt share")
	}
	var share ic.VSSShare
	if err := share.UnmarshalBinary(plaintext); err != nil {
		return ic.VSSShare{}, errors.Wrap(err, "unmarshal share")
	}
	return share, nil
}

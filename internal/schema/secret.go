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

package schema

import (
	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/internal/crypto"
)

// EncryptedSecret is the versioned, encrypted-at-rest form of a secret
// recovered by pkg/engine's Reconstruct -- for a holder who wants to write
// the plaintext back out under key protection rather than leave it sitting
// unencrypted on disk.
type EncryptedSecret struct {
	Version string        `json:"version"`
	Packet  crypto.Packet `json:"packet"`
}

// NewEncryptedSecret encrypts secret under key, tagging the result with the
// current schema Version.
func NewEncryptedSecret(secret []byte, key []byte) (EncryptedSecret, error) {
	packet, err := crypto.Encrypt(secret, key, map[string]string{"schema": Version})
	if err != nil {
		return EncryptedSecret{}, errors.Wrap(err, "encrypt secret")
	}
	return EncryptedSecret{Version: Version, Packet: packet}, nil
}

// Decrypt recovers the secret sealed by NewEncryptedSecret, verifying both
// the schema version and the AEAD tag before returning it.
func (es EncryptedSecret) Decrypt(key []byte) ([]byte, error) {
	if es.Version != Version {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "secret has version %q, want %q", es.Version, Version)
	}
	plaintext, _, err := crypto.Decrypt(es.Packet, key)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt secret")
	}
	return plaintext, nil
}

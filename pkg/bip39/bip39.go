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

package bip39

import (
	"github.com/pkg/errors"

	"github.com/jcflack/archistar-go/pkg/shamir"
)

// ErrUnknownWord is returned by DecodeShare when a word isn't in the
// wordlist.
var ErrUnknownWord = errors.New("bip39: word not found in wordlist")

// ErrChecksumMismatch is returned by DecodeShare when the trailing checksum
// word doesn't match the rest of the payload, indicating a mistranscribed
// or corrupted word.
var ErrChecksumMismatch = errors.New("bip39: checksum word doesn't match the rest")

// checksum returns the XOR of every byte in data, the single-byte checksum
// appended before encoding.
func checksum(data []byte) byte {
	var c byte
	for _, b := range data {
		c ^= b
	}
	return c
}

// EncodeShare renders share's binary wire encoding (pkg/shamir's [u8 id][u32
// length][y bytes]) as a sequence of mnemonic words, one per byte, with a final
// checksum word appended so a mistyped word can be caught at decode time.
func EncodeShare(share shamir.ShamirShare) ([]string, error) {
	wire, err := share.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "encode share to wire format")
	}
	payload := append(append([]byte{}, wire...), checksum(wire))
	words := make([]string, len(payload))
	for i, b := range payload {
		words[i] = wordlist[b]
	}
	return words, nil
}

// DecodeShare parses words produced by EncodeShare back into the original
// ShamirShare, failing if any word is unrecognised or the trailing checksum
// doesn't match.
func DecodeShare(words []string) (shamir.ShamirShare, error) {
	if len(words) < 2 {
		return shamir.ShamirShare{}, errors.Wrap(ErrUnknownWord, "too few words to contain a share and checksum")
	}
	payload := make([]byte, len(words))
	for i, w := range words {
		b, ok := reverseWordlist[w]
		if !ok {
			return shamir.ShamirShare{}, errors.Wrapf(ErrUnknownWord, "word %d (%q)", i, w)
		}
		payload[i] = b
	}
	wire, want := payload[:len(payload)-1], payload[len(payload)-1]
	if checksum(wire) != want {
		return shamir.ShamirShare{}, ErrChecksumMismatch
	}
	var share shamir.ShamirShare
	if err := share.UnmarshalBinary(wire); err != nil {
		return shamir.ShamirShare{}, errors.Wrap(err, "decode wire payload")
	}
	return share, nil
}

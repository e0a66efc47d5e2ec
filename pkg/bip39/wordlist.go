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

// Package bip39 renders a share's raw bytes as a sequence of mnemonic
// words, so a shareholder can transcribe it by hand onto paper instead of
// copying out base64 or hex. It is purely a display/transcription
// convenience layered on top of pkg/shamir's binary wire format -- it does
// not change share semantics, and decoding the words of an encoded share
// always recovers the identical ShamirShare.
package bip39

// bitsPerWord is the number of bits represented by each word. With a
// 256-word list this is exactly one byte per word, so encoding never needs
// to pack bits across word boundaries.
const bitsPerWord = 8

// reverseWordlist is a reverse-lookup table for the indices of words inside
// the wordlist. A map is simpler than a binary search here and the list is
// tiny, so the lookup cost doesn't matter.
var reverseWordlist map[string]byte

func init() {
	reverseWordlist = make(map[string]byte, wordlistSize)
	for idx, word := range wordlist {
		reverseWordlist[word] = byte(idx)
	}
	if len(reverseWordlist) != wordlistSize {
		panic("bip39 wordlist lookup table is wrong size!")
	}
}

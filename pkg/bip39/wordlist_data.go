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

// wordlistSize is the number of words in the wordlist: exactly 256, so that
// every byte of a share maps to exactly one word (bitsPerWord=8) with no
// cross-byte bit-packing required.
const wordlistSize = 256

// wordlistAdjectives and wordlistNouns are combined pairwise at init time to
// build the full 256-word list. This is not the standard BIP39 English
// wordlist (that one is sized for 11 bits/word, not a byte); it borrows the
// same idea -- common, unambiguous, easy-to-transcribe-by-hand words -- for
// a byte-oriented encoding.
var wordlistAdjectives = [16]string{
	"amber", "brave", "calm", "deep",
	"eager", "faint", "gentle", "harsh",
	"ivory", "jolly", "keen", "lively",
	"misty", "noble", "odd", "plain",
}

var wordlistNouns = [16]string{
	"anchor", "badge", "cedar", "delta",
	"ember", "falcon", "galaxy", "harbor",
	"island", "jungle", "kernel", "lumen",
	"meadow", "nectar", "orbit", "pebble",
}

// wordlist maps each byte value 0..255 to its word, in order.
var wordlist [wordlistSize]string

func init() {
	idx := 0
	for _, a := range wordlistAdjectives {
		for _, n := range wordlistNouns {
			wordlist[idx] = a + n
			idx++
		}
	}
}

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

import "github.com/pkg/errors"

// Set of errors returned by this package.
var (
	// ErrWeakSecurity is returned when the requested (k, n) threshold would
	// produce a scheme weaker than the caller likely intended: k=1 gives
	// every shareholder the secret outright, and k>n can never be
	// reconstructed.
	ErrWeakSecurity = errors.New("shamir: threshold parameters are not safely reconstructible")

	// ErrInvalidParameters is returned for threshold values outside the
	// representable range (ids are single bytes, 1..255).
	ErrInvalidParameters = errors.New("shamir: invalid (k, n) parameters")

	// ErrTooFewShares is returned by Reconstruct when fewer than k shares
	// are supplied.
	ErrTooFewShares = errors.New("shamir: too few shares to reconstruct the secret")

	// ErrMismatchedShares is returned when supplied shares don't all carry
	// the same Y length, and therefore cannot come from the same Split.
	ErrMismatchedShares = errors.New("shamir: shares have mismatched lengths")

	// ErrDuplicateShare is returned when two supplied shares carry the same
	// ID but disagree on Y -- an indication of a corrupted or forged share.
	ErrDuplicateShare = errors.New("shamir: duplicate share IDs with different payloads")

	// ErrInvalidShare is returned by the wire (de)serialisation routines
	// when the encoded bytes are malformed.
	ErrInvalidShare = errors.New("shamir: malformed share encoding")
)

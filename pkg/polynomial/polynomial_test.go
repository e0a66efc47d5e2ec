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

package polynomial

import (
	"testing"

	"github.com/jcflack/archistar-go/pkg/random"
)

func TestRandomDegreeAndNonZero(t *testing.T) {
	src := random.NewCryptoSource()
	poly, err := Random(src, 4)
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if poly.Degree() != 4 {
		t.Fatalf("Degree() = %d, want 4", poly.Degree())
	}
	for i, c := range poly[1:] {
		if c == 0 {
			t.Fatalf("coefficient %d is zero", i+1)
		}
	}
}

func TestSetConstAndConst(t *testing.T) {
	poly := Polynomial{0, 1, 2}
	poly.SetConst(42)
	if poly.Const() != 42 {
		t.Fatalf("Const() = %d, want 42", poly.Const())
	}
	if poly[0] != 42 {
		t.Fatalf("poly[0] = %d, want 42", poly[0])
	}
}

func TestEvaluateAtZeroIsConst(t *testing.T) {
	poly := Polynomial{7, 200, 3}
	if got := poly.EvaluateAt(0); got != 7 {
		t.Fatalf("EvaluateAt(0) = %d, want 7", got)
	}
}

/*
 * pbc.go, part of gordf.
 *
 * Copyright 2026 The gordf Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rdf

import (
	"math"
)

// Box contains the length of an orthorhombic simulation box along each dimension.
type Box []float64

// Dim returns the number of dimensions of the box.
func (B Box) Dim() int {
	return len(B)
}

// Volume returns the product of the box lengths (an area for 2D boxes).
// It returns 0 for an empty box.
func (B Box) Volume() float64 {
	if len(B) == 0 {
		return 0
	}
	v := 1.0
	for _, l := range B {
		v *= l
	}
	return v
}

// Check returns an error if the box has no dimensions, or if any length is
// not a finite, positive number.
func (B Box) Check() error {
	if len(B) == 0 {
		return newError(ErrDegenerateBox, "Box.Check", "box has no dimensions")
	}
	for k, l := range B {
		if !(l > 0) || math.IsInf(l, 0) {
			return newError(ErrDegenerateBox, "Box.Check", "box length %g along dimension %d", l, k)
		}
	}
	return nil
}

// Copy copies the box into dst, if dst has enough capacity, or into a new
// Box otherwise, and returns the copy.
func (B Box) Copy(dst Box) Box {
	if cap(dst) < len(B) {
		dst = make(Box, len(B))
	}
	dst = dst[:len(B)]
	copy(dst, B)
	return dst
}

// PeriodicDistance returns the distance between a and b, or rather, between a and
// the closest periodic image of b. The box lengths must be positive and at least twice
// any distance of interest for the result to be meaningful, which is not checked.
// a and b must have at least box.Dim() elements.
func PeriodicDistance(a, b []float64, box Box) float64 {
	return math.Sqrt(periodicDist2(a, b, box))
}

// periodicDist2 is the squared minimum image distance.
func periodicDist2(a, b []float64, box Box) float64 {
	var r2 float64
	for k, l := range box {
		d := a[k] - b[k]
		d -= l * math.Round(d/l)
		r2 += d * d
	}
	return r2
}

// MinImage puts in dst the minimum image displacement a-b, and returns it.
// If dst is nil or too short, a new slice is allocated.
func MinImage(dst, a, b []float64, box Box) []float64 {
	if len(dst) < len(box) {
		dst = make([]float64, len(box))
	}
	dst = dst[:len(box)]
	for k, l := range box {
		d := a[k] - b[k]
		dst[k] = d - l*math.Round(d/l)
	}
	return dst
}

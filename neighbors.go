/*
 * neighbors.go, part of gordf.
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

	"github.com/rmera/gordf/coords"
)

// NearestNeighbors returns the distance from each particle in c to its closest
// neighbor, using the minimum image convention. The distances are put in dst if it
// is large enough, otherwise a new slice is allocated.
func NearestNeighbors(dst []float64, c *coords.Matrix, box Box) ([]float64, error) {
	if c == nil {
		return nil, newError(ErrDimension, "NearestNeighbors", "nil coordinates")
	}
	if c.Dim() != box.Dim() {
		return nil, newError(ErrDimension, "NearestNeighbors", "%d-dimensional coordinates with a %d-dimensional box", c.Dim(), box.Dim())
	}
	if err := box.Check(); err != nil {
		return nil, errDecorate(err, "NearestNeighbors")
	}
	n := c.NVecs()
	if n < 2 {
		return nil, newError(ErrDimension, "NearestNeighbors", "at least 2 particles are needed, got %d", n)
	}
	if cap(dst) >= n {
		dst = dst[:n]
	} else {
		dst = make([]float64, n)
	}
	for i := range dst {
		dst[i] = math.Inf(1)
	}
	dim := box.Dim()
	data := c.RawRows()
	for i := 0; i < n-1; i++ {
		a := data[i*dim : i*dim+dim]
		for j := i + 1; j < n; j++ {
			r2 := periodicDist2(a, data[j*dim:j*dim+dim], box)
			if r2 < dst[i] {
				dst[i] = r2
			}
			if r2 < dst[j] {
				dst[j] = r2
			}
		}
	}
	for i, v := range dst {
		dst[i] = math.Sqrt(v)
	}
	return dst, nil
}

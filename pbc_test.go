/*
 * pbc_test.go, part of gordf.
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
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestMinimumImage1D(Te *testing.T) {
	d := PeriodicDistance([]float64{1.0}, []float64{9.0}, Box{10})
	if math.Abs(d-2.0) > 1e-12 {
		Te.Errorf("expected 2.0, got %g", d)
	}
	//no wrapping needed
	d = PeriodicDistance([]float64{1.0}, []float64{4.0}, Box{10})
	if math.Abs(d-3.0) > 1e-12 {
		Te.Errorf("expected 3.0, got %g", d)
	}
	//points several boxes apart
	d = PeriodicDistance([]float64{1.0}, []float64{31.5}, Box{10})
	if math.Abs(d-0.5) > 1e-12 {
		Te.Errorf("expected 0.5, got %g", d)
	}
}

func TestMinimumImage3D(Te *testing.T) {
	box := Box{10, 20, 30}
	a := []float64{0.5, 1, 29}
	b := []float64{9.5, 19, 1}
	want := math.Sqrt(1*1 + 2*2 + 2*2)
	if d := PeriodicDistance(a, b, box); math.Abs(d-want) > 1e-12 {
		Te.Errorf("expected %g, got %g", want, d)
	}
	v := MinImage(nil, a, b, box)
	if !floats.EqualApprox(v, []float64{1, 2, -2}, 1e-12) {
		Te.Errorf("wrong minimum image vector %v", v)
	}
	if math.Abs(floats.Norm(v, 2)-want) > 1e-12 {
		Te.Error("MinImage and PeriodicDistance disagree")
	}
}

func TestPeriodicDistanceSymmetry(Te *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 1000; n++ {
		dim := 2 + n%2
		box := make(Box, dim)
		a := make([]float64, dim)
		b := make([]float64, dim)
		for k := range box {
			box[k] = 1 + 20*rng.Float64()
			a[k] = (rng.Float64() - 0.5) * 3 * box[k]
			b[k] = (rng.Float64() - 0.5) * 3 * box[k]
		}
		ab := PeriodicDistance(a, b, box)
		ba := PeriodicDistance(b, a, box)
		if ab != ba {
			Te.Fatalf("asymmetric distance %g != %g for %v %v %v", ab, ba, a, b, box)
		}
		//the minimum image can never be further than half the box diagonal.
		half := 0.0
		for _, l := range box {
			half += l * l / 4
		}
		if ab > math.Sqrt(half)+1e-9 {
			Te.Fatalf("distance %g larger than half the box diagonal", ab)
		}
	}
}

func TestBox(Te *testing.T) {
	b := Box{2, 3, 4}
	if b.Volume() != 24 || b.Dim() != 3 {
		Te.Errorf("wrong volume %g or dimension %d", b.Volume(), b.Dim())
	}
	if err := b.Check(); err != nil {
		Te.Error(err)
	}
	for _, bad := range []Box{{}, {1, 0, 1}, {1, -2}, {math.NaN(), 1}, {math.Inf(1), 1}} {
		err := bad.Check()
		if !errors.Is(err, ErrDegenerateBox) {
			Te.Errorf("box %v: expected a degenerate box error, got %v", bad, err)
		}
	}
	c := b.Copy(nil)
	c[0] = 100
	if b[0] != 2 {
		Te.Error("Copy shares memory with the original")
	}
}

/*
 * rdf_test.go, part of gordf.
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
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/rmera/gordf/coords"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func mustCoords(Te *testing.T, data []float64, dim int) *coords.Matrix {
	c, err := coords.NewMatrix(data, dim)
	if err != nil {
		Te.Fatal(err)
	}
	return c
}

func randomGas(rng *rand.Rand, nop int, box Box) *coords.Matrix {
	c := coords.Zeros(nop, box.Dim())
	for i := 0; i < nop; i++ {
		v := c.Vec(i)
		for k, l := range box {
			v[k] = rng.Float64() * l
		}
	}
	return c
}

func TestNBins(Te *testing.T) {
	n, err := NBins(12, 0.01)
	if err != nil {
		Te.Fatal(err)
	}
	if n != 1200 && n != 1201 {
		//12/0.01 is not exact in floating point.
		Te.Errorf("unexpected number of bins %d", n)
	}
	if n, _ = NBins(3, 0.5); n != 7 {
		Te.Errorf("expected 7 bins, got %d", n)
	}
	for _, bad := range [][2]float64{{0, 1}, {1, 0}, {-1, 1}, {math.NaN(), 1}, {math.Inf(1), 1}} {
		if _, err := NBins(bad[0], bad[1]); !errors.Is(err, ErrConfig) {
			Te.Errorf("NBins(%v): expected a configuration error, got %v", bad, err)
		}
	}
}

func TestHistogramConservation(Te *testing.T) {
	box := Box{100, 100, 100}
	c := mustCoords(Te, []float64{
		1, 1, 1,
		2, 1, 1,
		1, 3, 1,
		2, 2, 4,
	}, 3)
	acc := NewAccumulator()
	if err := acc.Init(21); err != nil {
		Te.Fatal(err)
	}
	if err := acc.Accumulate(c, box, 10, 0.5); err != nil {
		Te.Fatal(err)
	}
	//4 particles, 6 pairs, all within the cutoff.
	if s := floats.Sum(acc.Histogram()); s != 12 {
		Te.Errorf("expected 12 counts, got %g", s)
	}
	if acc.Frames() != 1 {
		Te.Errorf("expected 1 frame, got %d", acc.Frames())
	}
	//Now one particle is far from the rest: only 3 pairs remain.
	c.SetVec(3, []float64{50, 50, 50})
	acc.Init(21)
	if err := acc.Accumulate(c, box, 10, 0.5); err != nil {
		Te.Fatal(err)
	}
	if s := floats.Sum(acc.Histogram()); s != 6 {
		Te.Errorf("expected 6 counts, got %g", s)
	}
	//distances 1, 2 and sqrt(5)
	h := acc.Histogram()
	if h[2] != 2 || h[4] != 4 {
		Te.Errorf("wrong bins: %v", h[:6])
	}
}

func TestCutoffExcluded(Te *testing.T) {
	c := mustCoords(Te, []float64{0, 0, 0, 3, 0, 0}, 3)
	acc := NewAccumulator()
	nbin, _ := NBins(3, 1)
	acc.Init(nbin)
	if err := acc.Accumulate(c, Box{10, 10, 10}, 3, 1); err != nil {
		Te.Fatal(err)
	}
	if s := floats.Sum(acc.Histogram()); s != 0 {
		Te.Errorf("a pair at exactly the cutoff was counted: %v", acc.Histogram())
	}
	//The same pair, through the periodic boundary.
	c = mustCoords(Te, []float64{0.5, 0, 0, 7.5, 0, 0}, 3)
	acc.Init(nbin)
	if err := acc.Accumulate(c, Box{10, 10, 10}, 3, 1); err != nil {
		Te.Fatal(err)
	}
	if s := floats.Sum(acc.Histogram()); s != 0 {
		Te.Errorf("a periodic pair at exactly the cutoff was counted: %v", acc.Histogram())
	}
	//just inside goes to the last bin.
	c = mustCoords(Te, []float64{0, 0, 0, 2.999, 0, 0}, 3)
	acc.Init(nbin)
	acc.Accumulate(c, Box{10, 10, 10}, 3, 1)
	if h := acc.Histogram(); h[2] != 2 {
		Te.Errorf("expected the pair in bin 2: %v", h)
	}
}

func TestInitResets(Te *testing.T) {
	rng := rand.New(rand.NewSource(3))
	box := Box{10, 10, 10}
	acc := NewAccumulator()
	acc.Init(10)
	for i := 0; i < 3; i++ {
		if err := acc.Accumulate(randomGas(rng, 50, box), box, 4.5, 0.5); err != nil {
			Te.Fatal(err)
		}
	}
	if floats.Sum(acc.Histogram()) == 0 || acc.Frames() != 3 {
		Te.Fatal("nothing accumulated")
	}
	acc.Init(10)
	if floats.Sum(acc.Histogram()) != 0 || acc.Frames() != 0 || acc.Normalized() {
		Te.Error("Init did not reset the accumulator")
	}
	acc.Accumulate(randomGas(rng, 50, box), box, 4.5, 0.5)
	if err := acc.Normalize(50, 0.5); err != nil {
		Te.Fatal(err)
	}
	//Init also works after a normalization, with a different size.
	acc.Init(4)
	if len(acc.Histogram()) != 4 || floats.Sum(acc.Histogram()) != 0 || acc.Normalized() {
		Te.Error("Init did not reset a normalized accumulator")
	}
	if err := acc.Init(0); !errors.Is(err, ErrConfig) {
		Te.Errorf("expected a configuration error for 0 bins, got %v", err)
	}
}

func TestAccumulatorErrors(Te *testing.T) {
	c := mustCoords(Te, []float64{0, 0, 0, 1, 1, 1}, 3)
	box := Box{10, 10, 10}
	var acc Accumulator
	if err := acc.Accumulate(c, box, 3, 0.5); !errors.Is(err, ErrState) {
		Te.Errorf("Accumulate before Init: expected a state error, got %v", err)
	}
	if err := acc.Normalize(2, 0.5); !errors.Is(err, ErrState) {
		Te.Errorf("Normalize before Init: expected a state error, got %v", err)
	}
	acc.Init(7)
	if err := acc.Normalize(2, 0.5); !errors.Is(err, ErrState) {
		Te.Errorf("Normalize without frames: expected a state error, got %v", err)
	}
	if err := acc.Accumulate(c, Box{10, 10}, 3, 0.5); !errors.Is(err, ErrDimension) {
		Te.Errorf("2D box for 3D coordinates: expected a dimension error, got %v", err)
	}
	if err := acc.Accumulate(nil, box, 3, 0.5); !errors.Is(err, ErrDimension) {
		Te.Errorf("nil coordinates: expected a dimension error, got %v", err)
	}
	if err := acc.Accumulate(c, Box{10, 0, 10}, 3, 0.5); !errors.Is(err, ErrDegenerateBox) {
		Te.Errorf("zero-length box: expected a degenerate box error, got %v", err)
	}
	if err := acc.Accumulate(c, box, 4, 0.5); !errors.Is(err, ErrConfig) {
		Te.Errorf("cutoff beyond the histogram: expected a configuration error, got %v", err)
	}
	if err := acc.Accumulate(c, box, 3, 0); !errors.Is(err, ErrConfig) {
		Te.Errorf("zero bin size: expected a configuration error, got %v", err)
	}
	if acc.Frames() != 0 {
		Te.Errorf("failed calls changed the frame counter: %d", acc.Frames())
	}
	if err := acc.Accumulate(c, box, 3, 0.5); err != nil {
		Te.Fatal(err)
	}
	if err := acc.Accumulate(mustCoords(Te, []float64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3}, 3), box, 3, 0.5); !errors.Is(err, ErrDimension) {
		Te.Errorf("4 particles after a 2-particle frame: expected a dimension error, got %v", err)
	}
	if acc.Frames() != 1 {
		Te.Errorf("a frame with the wrong size was counted: %d frames", acc.Frames())
	}
	if err := acc.Normalize(0, 0.5); !errors.Is(err, ErrConfig) {
		Te.Errorf("Normalize with 0 particles: expected a configuration error, got %v", err)
	}
	if err := acc.Normalize(17, 0.5); !errors.Is(err, ErrDimension) {
		Te.Errorf("Normalize with 17 particles after 2-particle frames: expected a dimension error, got %v", err)
	}
	if acc.Normalized() {
		Te.Error("a failed Normalize changed the state")
	}
	if err := acc.Normalize(2, 0.5); err != nil {
		Te.Fatal(err)
	}
	if err := acc.Normalize(2, 0.5); !errors.Is(err, ErrState) {
		Te.Errorf("second Normalize: expected a state error, got %v", err)
	}
	if err := acc.Accumulate(c, box, 3, 0.5); !errors.Is(err, ErrState) {
		Te.Errorf("Accumulate after Normalize: expected a state error, got %v", err)
	}
	fmt.Println(acc.Accumulate(c, box, 3, 0.5))
}

func TestNormalizeTwoParticles(Te *testing.T) {
	c := mustCoords(Te, []float64{1, 1, 1, 2.2, 1, 1}, 3)
	acc := NewAccumulator()
	acc.Init(7)
	if err := acc.Accumulate(c, Box{10, 10, 10}, 3, 0.5); err != nil {
		Te.Fatal(err)
	}
	if err := acc.Normalize(2, 0.5); err != nil {
		Te.Fatal(err)
	}
	rho := 2.0 / 1000.0
	nIdeal := (4.0 / 3.0) * math.Pi * rho * (27 - 8) * 0.125
	want := 2 / (1 * 2 * nIdeal)
	h := acc.Histogram()
	if math.Abs(h[2]-want) > 1e-9*want {
		Te.Errorf("expected g=%g in bin 2, got %g", want, h[2])
	}
	if floats.Sum(h) != h[2] {
		Te.Errorf("other bins should be empty: %v", h)
	}
	if !acc.Normalized() {
		Te.Error("accumulator does not report being normalized")
	}
}

func testIdealGas(Te *testing.T, box Box, nop, frames int, cutoff, binsize float64) {
	rng := rand.New(rand.NewSource(42))
	nbin, err := NBins(cutoff, binsize)
	if err != nil {
		Te.Fatal(err)
	}
	acc := NewAccumulator()
	acc.Init(nbin)
	for i := 0; i < frames; i++ {
		if err := acc.Accumulate(randomGas(rng, nop, box), box, cutoff, binsize); err != nil {
			Te.Fatal(err)
		}
	}
	if err := acc.Normalize(nop, binsize); err != nil {
		Te.Fatal(err)
	}
	g := acc.Histogram()
	//The last bin is only partially filled when cutoff/binsize is an integer, and the
	//first ones have too few counts to be meaningful.
	tail := g[2 : nbin-1]
	mean := stat.Mean(tail, nil)
	if math.Abs(mean-1) > 0.05 {
		Te.Errorf("%dD ideal gas: mean g(r) %g, expected ~1", box.Dim(), mean)
	}
	for i, v := range tail {
		if math.Abs(v-1) > 0.3 {
			Te.Errorf("%dD ideal gas: g(r) in bin %d is %g, expected ~1", box.Dim(), i+2, v)
		}
	}
}

func TestIdealGas3D(Te *testing.T) {
	testIdealGas(Te, Box{20, 20, 20}, 400, 4, 6, 0.5)
}

func TestIdealGas2D(Te *testing.T) {
	testIdealGas(Te, Box{40, 40}, 400, 4, 10, 0.5)
}

func TestConcurrentMatchesSerial(Te *testing.T) {
	rng := rand.New(rand.NewSource(11))
	box := Box{15, 15, 15}
	serialopts := DefaultOptions()
	serialopts.Cpus(1)
	concopts := DefaultOptions()
	concopts.Cpus(4)
	concopts.MinParallel(0)
	serial := NewAccumulator(serialopts)
	conc := NewAccumulator(concopts)
	nbin, _ := NBins(7, 0.1)
	serial.Init(nbin)
	conc.Init(nbin)
	for i := 0; i < 3; i++ {
		c := randomGas(rng, 300, box)
		if err := serial.Accumulate(c, box, 7, 0.1); err != nil {
			Te.Fatal(err)
		}
		if err := conc.Accumulate(c, box, 7, 0.1); err != nil {
			Te.Fatal(err)
		}
	}
	if !floats.Equal(serial.Histogram(), conc.Histogram()) {
		Te.Error("concurrent and serial histograms differ")
	}
	serial.Normalize(300, 0.1)
	conc.Normalize(300, 0.1)
	if !floats.Equal(serial.Histogram(), conc.Histogram()) {
		Te.Error("concurrent and serial g(r) differ")
	}
}

func TestVolumeRange(Te *testing.T) {
	rng := rand.New(rand.NewSource(5))
	acc := NewAccumulator()
	acc.Init(10)
	for _, l := range []float64{10, 10.5, 9.8} {
		box := Box{l, l, l}
		acc.Accumulate(randomGas(rng, 20, box), box, 4.5, 0.5)
	}
	minv, maxv := acc.VolumeRange()
	if math.Abs(minv-9.8*9.8*9.8) > 1e-9 || math.Abs(maxv-10.5*10.5*10.5) > 1e-9 {
		Te.Errorf("wrong volume range %g %g", minv, maxv)
	}
	if b := acc.Box(); b[0] != 9.8 {
		Te.Errorf("the last box should be kept, got %v", b)
	}
}

func BenchmarkAccumulate(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	box := Box{30, 30, 30}
	c := randomGas(rng, 2000, box)
	acc := NewAccumulator()
	nbin, _ := NBins(12, 0.05)
	acc.Init(nbin)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		acc.Accumulate(c, box, 12, 0.05)
	}
}

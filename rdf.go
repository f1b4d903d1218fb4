/*
 * rdf.go, part of gordf.
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
	"sync"

	"github.com/rmera/gordf/coords"
	"gonum.org/v1/gonum/floats"
)

type accState int

const (
	uninitialized accState = iota
	accumulating
	normalized
)

func (s accState) String() string {
	switch s {
	case uninitialized:
		return "uninitialized"
	case accumulating:
		return "accumulating"
	case normalized:
		return "normalized"
	}
	return "unknown"
}

// NBins returns the number of bins needed for an RDF up to cutoff with the given bin size,
// floor(cutoff/binsize)+1.
func NBins(cutoff, binsize float64) (int, error) {
	if !(cutoff > 0) || !(binsize > 0) || math.IsInf(cutoff, 0) || math.IsInf(binsize, 0) {
		return 0, newError(ErrConfig, "NBins", "cutoff (%g) and bin size (%g) must be positive", cutoff, binsize)
	}
	n := math.Floor(cutoff/binsize) + 1
	if n > math.MaxInt32 {
		return 0, newError(ErrConfig, "NBins", "too many bins for cutoff %g and bin size %g", cutoff, binsize)
	}
	return int(n), nil
}

// Accumulator builds the RDF histogram. The zero value is not ready for use, Init must be called
// first. Then Accumulate is called once per frame, and finally Normalize, once. An Accumulator
// must not be used from several goroutines at the same time.
type Accumulator struct {
	histo    []float64
	frames   int
	nop      int //particles per frame, set by the first Accumulate after Init
	box      Box
	minvol   float64
	maxvol   float64
	state    accState
	o        *Options
	partials [][]float64 //scratch histograms for the goroutines.
}

// NewAccumulator returns an Accumulator that uses the options given, or the default options.
// Init must still be called before using it.
func NewAccumulator(options ...*Options) *Accumulator {
	A := new(Accumulator)
	if len(options) > 0 && options[0] != nil {
		A.o = options[0]
	} else {
		A.o = DefaultOptions()
	}
	return A
}

// Init sets up a zeroed histogram with nbin bins and resets the frame counter,
// regardless of the previous state of the accumulator.
func (A *Accumulator) Init(nbin int) error {
	if nbin <= 0 {
		return newError(ErrConfig, "Init", "the number of bins must be positive, got %d", nbin)
	}
	if A.o == nil {
		A.o = DefaultOptions()
	}
	if cap(A.histo) >= nbin {
		A.histo = A.histo[:nbin]
		for i := range A.histo {
			A.histo[i] = 0
		}
	} else {
		A.histo = make([]float64, nbin)
	}
	A.frames = 0
	A.nop = 0
	A.box = A.box[:0]
	A.minvol = 0
	A.maxvol = 0
	A.state = accumulating
	return nil
}

// Accumulate adds the pairs of particles in c that are closer than cutoff to the histogram.
// Each pair adds 2 to the bin floor(r/binsize). A pair exactly at cutoff is not counted.
// box must have one positive length per column of c, and every frame accumulated
// since Init must have the same number of particles. The box is kept and its volume is used later
// by Normalize.
func (A *Accumulator) Accumulate(c *coords.Matrix, box Box, cutoff, binsize float64) error {
	switch A.state {
	case uninitialized:
		return newError(ErrState, "Accumulate", "Accumulate called before Init")
	case normalized:
		return newError(ErrState, "Accumulate", "Accumulate called after Normalize")
	}
	if c == nil {
		return newError(ErrDimension, "Accumulate", "nil coordinates")
	}
	if c.Dim() != box.Dim() {
		return newError(ErrDimension, "Accumulate", "%d-dimensional coordinates with a %d-dimensional box", c.Dim(), box.Dim())
	}
	if err := box.Check(); err != nil {
		return errDecorate(err, "Accumulate")
	}
	if !(cutoff > 0) || !(binsize > 0) {
		return newError(ErrConfig, "Accumulate", "cutoff (%g) and bin size (%g) must be positive", cutoff, binsize)
	}
	if math.Floor(cutoff/binsize) >= float64(len(A.histo)) {
		return newError(ErrConfig, "Accumulate", "cutoff %g and bin size %g need %g bins, the histogram has %d",
			cutoff, binsize, math.Floor(cutoff/binsize)+1, len(A.histo))
	}
	nop := c.NVecs()
	if A.frames > 0 && nop != A.nop {
		return newError(ErrDimension, "Accumulate", "frame with %d particles, previous frames had %d", nop, A.nop)
	}
	data := c.RawRows()
	cpus := A.o.Cpus()
	if cpus > nop/2 {
		cpus = nop / 2
	}
	if cpus <= 1 || nop < A.o.MinParallel() {
		pairHisto(A.histo, data, box, cutoff, binsize, 0, 1)
	} else {
		A.concPairHisto(cpus, data, box, cutoff, binsize)
	}
	A.frames++
	A.nop = nop
	A.box = box.Copy(A.box)
	vol := box.Volume()
	if A.frames == 1 || vol < A.minvol {
		A.minvol = vol
	}
	if vol > A.maxvol {
		A.maxvol = vol
	}
	return nil
}

// concPairHisto splits the outer pair loop among cpus goroutines, each filling its
// own histogram, which are added to the accumulator's once all are done.
func (A *Accumulator) concPairHisto(cpus int, data []float64, box Box, cutoff, binsize float64) {
	for len(A.partials) < cpus {
		A.partials = append(A.partials, nil)
	}
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		p := A.partials[w]
		if cap(p) < len(A.histo) {
			p = make([]float64, len(A.histo))
		}
		p = p[:len(A.histo)]
		for i := range p {
			p[i] = 0
		}
		A.partials[w] = p
		wg.Add(1)
		//Rows are dealt out in turns so every goroutine gets a similar number of pairs.
		go func(p []float64, start int) {
			defer wg.Done()
			pairHisto(p, data, box, cutoff, binsize, start, cpus)
		}(p, w)
	}
	wg.Wait()
	for _, p := range A.partials[:cpus] {
		floats.Add(A.histo, p)
	}
}

// pairHisto adds 2 to hist[floor(r/binsize)] for each pair i<j closer than cutoff, where i takes
// the values start, start+stride, start+2*stride...
func pairHisto(hist, data []float64, box Box, cutoff, binsize float64, start, stride int) {
	dim := len(box)
	n := len(data) / dim
	cut2 := cutoff * cutoff
	for i := start; i < n-1; i += stride {
		a := data[i*dim : i*dim+dim]
		for j := i + 1; j < n; j++ {
			r2 := periodicDist2(a, data[j*dim:j*dim+dim], box)
			if r2 > cut2 {
				continue
			}
			//the comparison on r2 is only a filter, the cutoff itself
			//applies to the distance.
			r := math.Sqrt(r2)
			if r < cutoff {
				hist[int(r/binsize)] += 2
			}
		}
	}
}

// Normalize turns the accumulated histogram into g(r), by dividing each bin by the number of
// frames, the number of particles nop, and the number of particles an ideal gas with the same density
// would have in the bin's spherical shell. The density is nop divided by the volume of the last box
// given to Accumulate. Normalize can only be called once, after at least one call to Accumulate,
// and nop must be the number of particles in the accumulated frames.
func (A *Accumulator) Normalize(nop int, binsize float64) error {
	switch {
	case A.state == uninitialized:
		return newError(ErrState, "Normalize", "Normalize called before Init")
	case A.state == normalized:
		return newError(ErrState, "Normalize", "the histogram is already normalized")
	case A.frames == 0:
		return newError(ErrState, "Normalize", "no frames accumulated")
	case nop <= 0:
		return newError(ErrConfig, "Normalize", "the number of particles must be positive, got %d", nop)
	case !(binsize > 0):
		return newError(ErrConfig, "Normalize", "the bin size must be positive, got %g", binsize)
	case nop != A.nop:
		return newError(ErrDimension, "Normalize", "%d particles given, the accumulated frames had %d", nop, A.nop)
	}
	vol := A.box.Volume()
	if !(vol > 0) || math.IsInf(vol, 0) {
		return newError(ErrDegenerateBox, "Normalize", "box volume %g", vol)
	}
	rho := float64(nop) / vol
	norm := float64(A.frames) * float64(nop)
	dim := A.box.Dim()
	for i := range A.histo {
		A.histo[i] /= norm * idealCount(i, rho, binsize, dim)
	}
	A.state = normalized
	return nil
}

// idealCount returns the number of particles of an ideal gas with density rho in the shell
// between i*binsize and (i+1)*binsize.
func idealCount(i int, rho, binsize float64, dim int) float64 {
	fi := float64(i)
	switch dim {
	case 1:
		return 2 * binsize * rho
	case 2:
		return math.Pi * ((fi+1)*(fi+1) - fi*fi) * binsize * binsize * rho
	default:
		return (4.0 / 3.0) * math.Pi * rho * (math.Pow(fi+1, 3) - math.Pow(fi, 3)) * math.Pow(binsize, 3)
	}
}

// Histogram returns a copy of the histogram, normalized or not.
func (A *Accumulator) Histogram() []float64 {
	ret := make([]float64, len(A.histo))
	copy(ret, A.histo)
	return ret
}

// Frames returns the number of frames accumulated since the last Init.
func (A *Accumulator) Frames() int {
	return A.frames
}

// Normalized returns true if Normalize has been called since the last Init.
func (A *Accumulator) Normalized() bool {
	return A.state == normalized
}

// Box returns a copy of the last box given to Accumulate.
func (A *Accumulator) Box() Box {
	return A.box.Copy(nil)
}

// VolumeRange returns the smallest and largest box volume seen by Accumulate.
func (A *Accumulator) VolumeRange() (float64, float64) {
	return A.minvol, A.maxvol
}

/*
 * run.go, part of gordf.
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
	"fmt"

	"github.com/rmera/gordf/coords"
)

// Result is a normalized RDF.
type Result struct {
	GR        []float64 //g(r), one value per bin
	Binsize   float64
	Cutoff    float64
	Frames    int //frames sampled
	Atoms     int //particles per frame
	MinVolume float64
	MaxVolume float64
	Neighbors []float64 //nearest neighbor distances, only if requested in the options
}

// R returns the distance at the center of the i-th bin.
func (R *Result) R(i int) float64 {
	return R.Binsize * (float64(i) + 0.5)
}

// VolumeDrift returns the relative difference between the largest and smallest
// box volume among the sampled frames. g(r) is only reliable when this is small.
func (R *Result) VolumeDrift() float64 {
	if R.MinVolume <= 0 {
		return 0
	}
	return (R.MaxVolume - R.MinVolume) / R.MinVolume
}

// Run obtains the RDF from the frames of traj selected by plan, counting pairs closer than cutoff
// in bins of width binsize. The trajectory is read in order, from its current position, which is
// taken to be frame 1. Frames not in the plan are discarded without keeping their coordinates, and
// nothing after the last planned frame is read. traj is not closed.
func Run(traj Traj, plan *FramePlan, cutoff, binsize float64, options ...*Options) (*Result, error) {
	if traj == nil || !traj.Readable() {
		return nil, newError(ErrConfig, "Run", "trajectory not ready to be read")
	}
	if plan == nil {
		return nil, newError(ErrConfig, "Run", "nil frame plan")
	}
	nop := traj.Len()
	dim := traj.Dim()
	if nop <= 0 || dim <= 0 {
		return nil, newError(ErrDimension, "Run", "trajectory has %d particles in %d dimensions", nop, dim)
	}
	nbin, err := NBins(cutoff, binsize)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	acc := NewAccumulator(options...)
	if err = acc.Init(nbin); err != nil {
		return nil, errDecorate(err, "Run")
	}
	neighbors := len(options) > 0 && options[0] != nil && options[0].Neighbors()
	var nn, frameNN []float64
	c := coords.Zeros(nop, dim)
	box := make(Box, dim)
	for frame := 1; frame <= plan.Last(); frame++ {
		want := plan.Wants(frame)
		if want {
			err = traj.Next(c, box)
		} else {
			err = traj.Next(nil)
		}
		if err != nil {
			switch err := err.(type) {
			case LastFrameError:
				return nil, newError(ErrConfig, "Run", "trajectory ended after %d frames, before frame %d", frame-1, plan.Last())
			default:
				return nil, errDecorate(err, fmt.Sprintf("Run: failed while reading frame %d", frame))
			}
		}
		if !want {
			continue
		}
		if err = acc.Accumulate(c, box, cutoff, binsize); err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Run: frame %d", frame))
		}
		if neighbors {
			if frameNN, err = NearestNeighbors(frameNN, c, box); err != nil {
				return nil, errDecorate(err, fmt.Sprintf("Run: frame %d", frame))
			}
			nn = append(nn, frameNN...)
		}
	}
	if err = acc.Normalize(nop, binsize); err != nil {
		return nil, errDecorate(err, "Run")
	}
	minv, maxv := acc.VolumeRange()
	return &Result{
		GR:        acc.Histogram(),
		Binsize:   binsize,
		Cutoff:    cutoff,
		Frames:    acc.Frames(),
		Atoms:     nop,
		MinVolume: minv,
		MaxVolume: maxv,
		Neighbors: nn,
	}, nil
}

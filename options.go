/*
 * options.go, part of gordf.
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

import "runtime"

// Options for the RDF calculation.
type Options struct {
	cpus      int
	minpairs  int
	neighbors bool
}

// DefaultOptions returns an Options with the default options:
// as many goroutines as logical CPUs, and frames with fewer than
// 256 particles processed serially.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.minpairs = 256
	return ret
}

// Cpus returns the current number of goroutines used to process
// the pairs of one frame, and sets it, if a valid value is given.
func (O *Options) Cpus(cpus ...int) int {
	ret := O.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		O.cpus = cpus[0]
	}
	return ret
}

// MinParallel returns the number of particles below which a frame is
// always processed serially, and sets it, if a valid value is given.
func (O *Options) MinParallel(n ...int) int {
	ret := O.minpairs
	if len(n) > 0 && n[0] >= 0 {
		O.minpairs = n[0]
	}
	return ret
}

// Neighbors returns whether Run also collects the nearest neighbor distance of
// every particle in the sampled frames, and sets it, if a value is given.
func (O *Options) Neighbors(neighbors ...bool) bool {
	ret := O.neighbors
	if len(neighbors) > 0 {
		O.neighbors = neighbors[0]
	}
	return ret
}

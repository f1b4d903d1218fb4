/*
 * doc.go, part of gordf.
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

/*
Package rdf computes the radial distribution function, g(r), of a bulk
system of particles from the frames of a molecular dynamics trajectory,
under orthorhombic periodic boundary conditions.

The main pieces are these.

PeriodicDistance obtains the distance between two points using the
minimum image convention. It is only valid when every box length is at
least twice the cutoff used for the RDF. This is not checked.

FramePlan decides which frames of a trajectory are sampled, given the
number of equilibration frames to skip, the gap between sampled frames
and the number of frames to sample. Frames are numbered from 1.

Accumulator holds the g(r) histogram. It must be initialized with Init,
then fed one frame at a time with Accumulate, and finally normalized, once,
with Normalize.

Run ties the three together for any Traj, such as the LAMMPS reader in
github.com/rmera/gordf/traj/lammps. The result can be written with
github.com/rmera/gordf/histo and plotted with github.com/rmera/gordf/rdfplot.

All particles are treated as one species. The normalization uses the volume
of the last box seen, so the box volume should be constant across the
sampled frames. Accumulator.VolumeRange and Result.VolumeDrift report how
much it actually changed.
*/
package rdf

/*
 * interfaces.go, part of gordf.
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

import "github.com/rmera/gordf/coords"

// Traj is an interface for any trajectory object the RDF can be obtained from.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame and puts it in output. If output is nil the frame
	//is read and discarded. If a box slice is given, and output is not nil,
	//it is filled with the box length along each dimension.
	Next(output *coords.Matrix, box ...[]float64) error

	//Returns the number of particles per frame
	Len() int

	//Returns the number of spatial dimensions in each frame
	Dim() int
}

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so  they can be
// filtered in a typeswitch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination()
}

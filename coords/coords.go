/*
 * coords.go, part of gordf.
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

//Package coords implements a Matrix type holding the cartesian coordinates of
//the particles in one trajectory frame, one row ("vector") per particle and one
//column per spatial dimension. It is a thin layer over gonum's Dense type.
//Unlike a fixed Nx3 matrix, the number of columns is set when the matrix is
//created, so 2D and 3D systems share the same container.
package coords

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of points, one per row, in a space of Dim() dimensions.
//The data is always row-major and contiguous (stride == Dim()), which
//the pair loops in the rdf package rely on.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors of dim elements each.
func Zeros(vecs, dim int) *Matrix {
	if vecs <= 0 || dim <= 0 {
		panic(ErrShape)
	}
	f := make([]float64, vecs*dim)
	return &Matrix{mat.NewDense(vecs, dim, f)}
}

//NewMatrix returns a Matrix with dim columns using data as backing storage.
func NewMatrix(data []float64, dim int) (*Matrix, error) {
	l := len(data)
	if dim <= 0 {
		return nil, Error{fmt.Sprintf("invalid dimension %d", dim), []string{"NewMatrix"}, true}
	}
	if l == 0 || l%dim != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, dim), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(l/dim, dim, data)}, nil
}

//NVecs returns the number of vectors (particles) in F.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//Dim returns the number of spatial dimensions of the vectors in F.
func (F *Matrix) Dim() int {
	_, c := F.Dims()
	return c
}

//Vec returns the i-th vector as a slice sharing memory with F.
func (F *Matrix) Vec(i int) []float64 {
	raw := F.RawMatrix()
	if i < 0 || i >= raw.Rows {
		panic(ErrIndexOutOfRange)
	}
	return raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
}

//RawRows returns the backing slice of F, row after row.
func (F *Matrix) RawRows() []float64 {
	raw := F.RawMatrix()
	return raw.Data[:raw.Rows*raw.Stride]
}

//SetVec copies v into the i-th vector of F.
func (F *Matrix) SetVec(i int, v []float64) {
	if len(v) != F.Dim() {
		panic(ErrShape)
	}
	copy(F.Vec(i), v)
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, 0, r)
	for i := 0; i < r; i++ {
		row := F.Vec(i)
		fields := make([]string, c)
		for j, w := range row {
			fields[j] = fmt.Sprintf("%8.3f", w)
		}
		v = append(v, strings.Join(fields, " "))
	}
	return "[" + strings.Join(v, "\n ") + "]"
}

//Errors

//Error is the error type for the coords package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return "gordf/coords: " + err.message
}

//Decorate adds dec to the decoration slice of the error, and returns the result.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape           = PanicMsg("gordf/coords: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("gordf/coords: index out of range")
)

/*
 * lammps.go, part of gordf.
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

package lammps

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gordf/coords"
)

// Reader is a LAMMPS text dump file open for reading.
type Reader struct {
	filename string
	f        *os.File
	dec      io.ReadCloser
	r        *bufio.Reader
	natoms   int
	dim      int
	cols     []int //column of each coordinate in the atom lines
	ncols    int
	frames   int //frames read so far
	readable bool
}

// header is what a frame says about itself before the atom lines.
type header struct {
	timestep int64
	natoms   int
	box      []float64
	names    []string //names of the atom columns
}

// zstd.Decoder's Close doesn't return an error, so it
// doesn't satisfy io.ReadCloser by itself.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// openDump opens filename and returns the decompressed stream, and the file, so both
// can be closed. The compression is chosen from the extension: .gz for gzip, .zst
// for zstandard, anything else is read as plain text.
func openDump(filename string) (*os.File, io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, &Error{UnableToOpen + ": " + err.Error(), filename, []string{"openDump"}, true}
	}
	var dec io.ReadCloser
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		dec, err = gzip.NewReader(bufio.NewReader(f))
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		var z *zstd.Decoder
		z, err = zstd.NewReader(bufio.NewReader(f))
		if err == nil {
			dec = zstdCloser{z}
		}
	}
	if err != nil {
		f.Close()
		return nil, nil, &Error{"Can't start decompression: " + err.Error(), filename, []string{"openDump"}, true}
	}
	return f, dec, nil
}

// New opens a LAMMPS dump for reading. The first frame header is read to find the number
// of atoms, the number of dimensions and the columns with the coordinates, and the file
// is then rewound, so the first call to Next returns the first frame. If dim is given, only
// the first dim dimensions are used, which allows reading 2D simulations, which LAMMPS
// writes with a dummy z dimension.
func New(filename string, dim ...int) (*Reader, error) {
	R := new(Reader)
	R.filename = filename
	if err := R.open(); err != nil {
		return nil, errDecorate(err, "New")
	}
	h, err := R.readHeader(true)
	if err != nil {
		R.Close()
		if _, ok := err.(*lastFrameError); ok {
			return nil, &Error{"No frames in file", filename, []string{"New"}, true}
		}
		return nil, errDecorate(err, "New")
	}
	R.Close()
	R.natoms = h.natoms
	R.dim = len(h.box)
	if len(dim) > 0 && dim[0] > 0 {
		if dim[0] > R.dim {
			return nil, &Error{fmt.Sprintf("%d dimensions requested but the file has %d", dim[0], R.dim), filename, []string{"New"}, true}
		}
		R.dim = dim[0]
	}
	R.cols, err = findColumns(h.names, R.dim)
	if err != nil {
		return nil, &Error{err.Error(), filename, []string{"New"}, true}
	}
	R.ncols = len(h.names)
	if err := R.open(); err != nil {
		return nil, errDecorate(err, "New")
	}
	return R, nil
}

func (R *Reader) open() error {
	f, dec, err := openDump(R.filename)
	if err != nil {
		return err
	}
	R.f = f
	R.dec = dec
	if dec != nil {
		R.r = bufio.NewReader(dec)
	} else {
		R.r = bufio.NewReader(f)
	}
	R.frames = 0
	R.readable = true
	return nil
}

// Close closes the file. The Reader can not be used after this call.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	if R.dec != nil {
		R.dec.Close()
	}
	R.f.Close()
	R.readable = false
}

// Readable returns true if the object is ready to be read from
// false otherwise. It doesn't guarantee that there is something
// to read.
func (R *Reader) Readable() bool {
	return R.readable
}

// Len returns the number of atoms per frame.
func (R *Reader) Len() int {
	return R.natoms
}

// Dim returns the number of dimensions used from each frame.
func (R *Reader) Dim() int {
	return R.dim
}

// Frames returns the number of frames read (or skipped) so far.
func (R *Reader) Frames() int {
	return R.frames
}

// readLine returns the next line, without the line termination. The returned slice is only
// valid until the next read.
func (R *Reader) readLine() ([]byte, error) {
	line, err := R.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		//very long line, rare enough that the allocation doesn't matter.
		full := append([]byte(nil), line...)
		for err == bufio.ErrBufferFull {
			line, err = R.r.ReadSlice('\n')
			full = append(full, line...)
		}
		line = full
	}
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	return bytes.TrimRight(line, "\r\n"), err
}

// skipLine discards the next line without looking at it.
func (R *Reader) skipLine() error {
	read := 0
	for {
		line, err := R.r.ReadSlice('\n')
		read += len(line)
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && read > 0 {
			return nil
		}
		return err
	}
}

// expect reads a line and checks that it starts with prefix.
func (R *Reader) expect(prefix string) ([]byte, error) {
	line, err := R.readLine()
	if err != nil {
		return nil, &Error{fmt.Sprintf("Truncated frame header, expected '%s': %s", prefix, err), R.filename, []string{"expect"}, true}
	}
	if !bytes.HasPrefix(line, []byte(prefix)) {
		return nil, &Error{fmt.Sprintf("%s: expected '%s', got '%s'", WrongFormat, prefix, line), R.filename, []string{"expect"}, true}
	}
	return line, nil
}

// readHeader reads the frame header, up to and including the "ITEM: ATOMS" line.
// The column names are only kept if names is true.
func (R *Reader) readHeader(names bool) (*header, error) {
	h := new(header)
	line, err := R.readLine()
	for err == nil && len(bytes.TrimSpace(line)) == 0 {
		line, err = R.readLine()
	}
	if err == io.EOF && len(line) == 0 {
		return nil, newlastFrameError(R.filename, "readHeader")
	}
	if err != nil {
		return nil, &Error{ReadError + ": " + err.Error(), R.filename, []string{"readHeader"}, true}
	}
	if !bytes.HasPrefix(line, []byte("ITEM: TIMESTEP")) {
		return nil, &Error{fmt.Sprintf("%s: expected 'ITEM: TIMESTEP', got '%s'", WrongFormat, line), R.filename, []string{"readHeader"}, true}
	}
	line, err = R.readLine()
	if err != nil {
		return nil, &Error{ReadError + ": " + err.Error(), R.filename, []string{"readHeader"}, true}
	}
	h.timestep, err = strconv.ParseInt(string(bytes.TrimSpace(line)), 10, 64)
	if err != nil {
		return nil, &Error{"Can't read timestep: " + err.Error(), R.filename, []string{"readHeader"}, true}
	}
	if _, err = R.expect("ITEM: NUMBER OF ATOMS"); err != nil {
		return nil, errDecorate(err, "readHeader")
	}
	line, err = R.readLine()
	if err != nil {
		return nil, &Error{ReadError + ": " + err.Error(), R.filename, []string{"readHeader"}, true}
	}
	h.natoms, err = strconv.Atoi(string(bytes.TrimSpace(line)))
	if err != nil || h.natoms <= 0 {
		return nil, &Error{fmt.Sprintf("Can't read the number of atoms from '%s'", line), R.filename, []string{"readHeader"}, true}
	}
	line, err = R.expect("ITEM: BOX BOUNDS")
	if err != nil {
		return nil, errDecorate(err, "readHeader")
	}
	if bytes.Contains(line, []byte("xy")) {
		return nil, &Error{Triclinic, R.filename, []string{"readHeader"}, true}
	}
	h.box = make([]float64, 0, 3)
	for {
		line, err = R.readLine()
		if err != nil {
			return nil, &Error{ReadError + ": " + err.Error(), R.filename, []string{"readHeader"}, true}
		}
		if bytes.HasPrefix(line, []byte("ITEM:")) {
			break
		}
		fields := strings.Fields(string(line))
		if len(fields) == 3 {
			return nil, &Error{Triclinic, R.filename, []string{"readHeader"}, true}
		}
		if len(fields) != 2 {
			return nil, &Error{fmt.Sprintf("%s: bad box bounds '%s'", WrongFormat, line), R.filename, []string{"readHeader"}, true}
		}
		lo, err1 := strconv.ParseFloat(fields[0], 64)
		hi, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, &Error{fmt.Sprintf("%s: bad box bounds '%s'", WrongFormat, line), R.filename, []string{"readHeader"}, true}
		}
		h.box = append(h.box, hi-lo)
	}
	if !bytes.HasPrefix(line, []byte("ITEM: ATOMS")) {
		return nil, &Error{fmt.Sprintf("%s: expected 'ITEM: ATOMS', got '%s'", WrongFormat, line), R.filename, []string{"readHeader"}, true}
	}
	if len(h.box) == 0 {
		return nil, &Error{WrongFormat + ": no box bounds", R.filename, []string{"readHeader"}, true}
	}
	if names {
		h.names = strings.Fields(string(line))[2:]
	}
	return h, nil
}

// findColumns returns the position of the x, y and z (or xu, yu, zu) columns, as many
// as dimensions are needed.
func findColumns(names []string, dim int) ([]int, error) {
	wrapped := []string{"x", "y", "z"}
	unwrapped := []string{"xu", "yu", "zu"}
	cols := make([]int, 0, dim)
	for k := 0; k < dim && k < 3; k++ {
		found := -1
		for i, n := range names {
			if n == wrapped[k] || n == unwrapped[k] {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("can't find the column for coordinate %s in %v", wrapped[k], names)
		}
		cols = append(cols, found)
	}
	if len(cols) < dim {
		return nil, fmt.Errorf("%d dimensions, but only x, y and z are supported", dim)
	}
	return cols, nil
}

// Next reads the next frame and puts the coordinates in output, which must have Len()
// vectors of Dim() elements. If output is nil, the frame is skipped without parsing the atom
// lines. If a box slice with at least Dim() elements is given, the box lengths are put there.
// At the end of the file, Next closes the Reader and returns an error that implements
// rdf.LastFrameError.
func (R *Reader) Next(output *coords.Matrix, box ...[]float64) error {
	if !R.readable {
		return &Error{TrajUnIni, R.filename, []string{"Next"}, true}
	}
	h, err := R.readHeader(false)
	if err != nil {
		if _, ok := err.(*lastFrameError); ok {
			R.Close()
		}
		return errDecorate(err, "Next")
	}
	if h.natoms != R.natoms {
		return &Error{fmt.Sprintf("Frame %d has %d atoms, expected %d", R.frames+1, h.natoms, R.natoms), R.filename, []string{"Next"}, true}
	}
	if len(h.box) < R.dim {
		return &Error{fmt.Sprintf("Frame %d has a %d-dimensional box, expected %d", R.frames+1, len(h.box), R.dim), R.filename, []string{"Next"}, true}
	}
	if len(box) > 0 && len(box[0]) >= R.dim {
		copy(box[0], h.box[:R.dim])
	}
	if output == nil {
		for i := 0; i < R.natoms; i++ {
			if err := R.skipLine(); err != nil {
				return &Error{fmt.Sprintf("Truncated frame %d: %s", R.frames+1, err), R.filename, []string{"Next"}, true}
			}
		}
		R.frames++
		return nil
	}
	if output.NVecs() != R.natoms || output.Dim() != R.dim {
		return &Error{fmt.Sprintf("%s: %dx%d matrix given for %d atoms in %d dimensions", NotEnoughSpace, output.NVecs(), output.Dim(), R.natoms, R.dim), R.filename, []string{"Next"}, true}
	}
	for i := 0; i < R.natoms; i++ {
		line, err := R.readLine()
		if err != nil {
			return &Error{fmt.Sprintf("Truncated frame %d: %s", R.frames+1, err), R.filename, []string{"Next"}, true}
		}
		fields := strings.Fields(string(line))
		if len(fields) != R.ncols {
			return &Error{fmt.Sprintf("%s: atom line %d of frame %d has %d columns, expected %d", WrongFormat, i+1, R.frames+1, len(fields), R.ncols), R.filename, []string{"Next"}, true}
		}
		v := output.Vec(i)
		for k, c := range R.cols {
			v[k], err = strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return &Error{fmt.Sprintf("Can't read coordinates of atom %d in frame %d: %s", i+1, R.frames+1, err), R.filename, []string{"strconv.ParseFloat", "Next"}, true}
			}
		}
	}
	R.frames++
	return nil
}

// CountFrames returns the number of frames in a LAMMPS dump file, by counting the
// "ITEM: TIMESTEP" lines.
func CountFrames(filename string) (int, error) {
	f, dec, err := openDump(filename)
	if err != nil {
		return 0, errDecorate(err, "CountFrames")
	}
	defer f.Close()
	var in io.Reader = f
	if dec != nil {
		defer dec.Close()
		in = dec
	}
	mark := []byte("ITEM: TIMESTEP")
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	frames := 0
	for s.Scan() {
		if bytes.HasPrefix(s.Bytes(), mark) {
			frames++
		}
	}
	if err := s.Err(); err != nil {
		return frames, &Error{ReadError + ": " + err.Error(), filename, []string{"CountFrames"}, true}
	}
	return frames, nil
}

// WriteFrame writes one frame in the LAMMPS dump format, with columns "id type x y z"
// (or "id type x y" for 2D coordinates). All atoms get type 1 and the box goes from 0
// to the box length in each dimension.
func WriteFrame(w io.Writer, timestep int64, c *coords.Matrix, box []float64) error {
	dim := c.Dim()
	if dim > 3 || len(box) != dim {
		return &Error{fmt.Sprintf("Can't write %d-dimensional coordinates with a %d-dimensional box", dim, len(box)), "", []string{"WriteFrame"}, true}
	}
	bw := bufio.NewWriter(w)
	names := []string{"x", "y", "z"}[:dim]
	fmt.Fprintf(bw, "ITEM: TIMESTEP\n%d\nITEM: NUMBER OF ATOMS\n%d\n", timestep, c.NVecs())
	fmt.Fprintf(bw, "ITEM: BOX BOUNDS%s\n", strings.Repeat(" pp", dim))
	for _, l := range box {
		fmt.Fprintf(bw, "%.10e %.10e\n", 0.0, l)
	}
	fmt.Fprintf(bw, "ITEM: ATOMS id type %s\n", strings.Join(names, " "))
	for i := 0; i < c.NVecs(); i++ {
		fmt.Fprintf(bw, "%d 1", i+1)
		for _, v := range c.Vec(i) {
			fmt.Fprintf(bw, " %.10g", v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

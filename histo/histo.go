/*
 * histo.go, part of gordf.
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

// Package histo contains a simple histogram type, used to store, print and
// write g(r) functions and other distributions.
package histo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. Bin i goes from dividers[i] to dividers[i+1].
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

func (D *Data) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Centers    []float64 `json:"centers"`
		Histo      []float64 `json:"histo"`
	}{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Centers:    D.Centers(),
		Histo:      D.histo,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("gordf/histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

// String prints a -hopefully- pretty string representation of
// the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalData: %d\n", D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("gordf/histo.NewData: At least 2 dividers are needed")
	}
	d := new(Data)
	//the slice is copied so nobody changes it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	return d
}

// Uniform returns a histogram with len(values) bins of width binsize, starting from 0,
// holding a copy of values. It is the way to store a g(r) that has already been
// calculated.
func Uniform(binsize float64, values []float64) *Data {
	if binsize <= 0 || len(values) == 0 {
		panic("gordf/histo.Uniform: Need a positive bin size and at least one bin")
	}
	d := new(Data)
	d.dividers = make([]float64, len(values)+1)
	for i := range d.dividers {
		d.dividers[i] = float64(i) * binsize
	}
	d.histo = make([]float64, len(values))
	copy(d.histo, values)
	return d
}

// Len returns the number of bins.
func (D *Data) Len() int {
	return len(D.histo)
}

// Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides the histogram by the number of data points binned in it,
// so each bin holds the fraction of the data that fell in it. It does nothing
// if the histogram is already normalized or empty.
func (D *Data) Normalize() {
	if D.total <= 0 || D.normalized {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

// CopyDividers copies the dividers of the histogram
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 1, D.dividers)
}

// Copy returns a copy of the bin values, in dest[0] if given and large enough.
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	return floats.ScaleTo(d, 1, D.histo)
}

// View returns the bin values themselves, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Centers returns the center of each bin.
func (D *Data) Centers() []float64 {
	c := make([]float64, len(D.histo))
	for i := range c {
		c[i] = (D.dividers[i] + D.dividers[i+1]) / 2
	}
	return c
}

func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// ReHisto replaces the contents of the histogram with a histogram of rawdata, which is sorted in place.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	if rawdata != nil {
		sort.Float64s(rawdata)
		//stat.Histogram just panics instead of omitting the values that are off limits
		//so we remove them here before the call.
		maxi := sort.SearchFloat64s(rawdata, dividers[len(dividers)-1])
		mini := sort.SearchFloat64s(rawdata, dividers[0])
		rawdata = rawdata[mini:maxi]
	}
	D.dividers = dividers
	D.normalized = false
	D.total = len(rawdata) //as this could have been modified
	D.histo = stat.Histogram(nil, dividers, rawdata, nil)
}

// WriteTable writes the histogram to w as two columns: the center of each bin and its value.
// header, if given, is written first as a comment line.
func (D *Data) WriteTable(w io.Writer, header ...string) error {
	bw := bufio.NewWriter(w)
	if len(header) > 0 && header[0] != "" {
		fmt.Fprintf(bw, "# %s\n", header[0])
	}
	for i, c := range D.Centers() {
		fmt.Fprintf(bw, "%.6f %.6f\n", c, D.histo[i])
	}
	return bw.Flush()
}

// WriteFiles writes the histogram as a table, in dir/base.dat, and as JSON, in dir/base.json.
// The directory is created if needed. The table header is "r g(r)" unless another one is given.
// It returns the names of the written files.
func WriteFiles(dir, base string, D *Data, header ...string) ([]string, error) {
	head := "r g(r)"
	if len(header) > 0 && header[0] != "" {
		head = header[0]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("gordf/histo.WriteFiles: Can't create output directory: %w", err)
	}
	table := filepath.Join(dir, base+".dat")
	f, err := os.Create(table)
	if err != nil {
		return nil, fmt.Errorf("gordf/histo.WriteFiles: %w", err)
	}
	err = D.WriteTable(f, head)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("gordf/histo.WriteFiles: Can't write %s: %w", table, err)
	}
	js := filepath.Join(dir, base+".json")
	j, err := json.MarshalIndent(D, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("gordf/histo.WriteFiles: %w", err)
	}
	if err := os.WriteFile(js, j, 0o644); err != nil {
		return nil, fmt.Errorf("gordf/histo.WriteFiles: Can't write %s: %w", js, err)
	}
	return []string{table, js}, nil
}

// ReadFile reads a histogram from a JSON file, as written by WriteFiles.
func ReadFile(filename string) (*Data, error) {
	j, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("gordf/histo.ReadFile: %w", err)
	}
	D := new(Data)
	if err := json.Unmarshal(j, D); err != nil {
		return nil, fmt.Errorf("gordf/histo.ReadFile: Can't read %s: %w", filename, err)
	}
	return D, nil
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0]
		if len(dest[0]) > N {
			d = dest[0][:N] //floats.ScaleTo wants both slices to _match_
		}
	} else {
		d = make([]float64, N)
	}
	return d
}

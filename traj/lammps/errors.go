/*
 * errors.go, part of gordf.
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
	"fmt"
	"strings"
)

type decorator interface {
	Decorate(string) []string
}

// errDecorate decorates err with the caller's name if err is one of
// the errors of this package. Other errors are wrapped.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(decorator); ok {
		e.Decorate(caller)
		return err
	}
	return fmt.Errorf("%s: %w", caller, err)
}

// Error is the general structure for LAMMPS trajectory errors. It fulfills rdf.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return fmt.Sprintf("lammps file %s error: %s", err.filename, err.message)
	}
	return fmt.Sprintf("lammps file %s error: %s (%s)", err.filename, err.message, strings.Join(err.deco, " <- "))
}

// Decorate adds the caller's name to the error and returns the whole chain.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated
func (err *Error) FileName() string { return err.filename }

// Format returns the format of the file (always "lammps") associated to the error
func (err *Error) Format() string { return "lammps" }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIni      = "Traj object uninitialized to read"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the LAMMPS dump file or frame"
	NotEnoughSpace = "Not enough space in passed blocks"
	Triclinic      = "Triclinic boxes are not supported"
)

// lastFrameError implements rdf.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "lammps" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}

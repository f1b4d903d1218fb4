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

package rdf

import (
	"errors"
	"fmt"
	"strings"
)

// The kinds of errors returned by this package. Every error created
// by the package matches one of them with errors.Is. Errors from a Traj
// are passed on, decorated.
var (
	ErrConfig        = errors.New("configuration error")
	ErrDimension     = errors.New("dimensional mismatch")
	ErrDegenerateBox = errors.New("degenerate box")
	ErrState         = errors.New("invalid accumulator state")
)

// rdfError implements Error. It unwraps to its kind.
type rdfError struct {
	message  string
	kind     error
	deco     []string
	critical bool
}

func newError(kind error, caller, format string, a ...interface{}) *rdfError {
	return &rdfError{message: fmt.Sprintf(format, a...), kind: kind, deco: []string{caller}, critical: true}
}

func (err *rdfError) Error() string {
	return fmt.Sprintf("gordf: %s: %s (%s)", err.kind, err.message, strings.Join(err.deco, " <- "))
}

func (err *rdfError) Unwrap() error { return err.kind }

// Decorate adds dec to the list of callers the error went through and returns the list.
func (err *rdfError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *rdfError) Critical() bool { return err.critical }

// errDecorate decorates err with the caller if err implements Error,
// and wraps it otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return fmt.Errorf("%s: %w", caller, err)
}

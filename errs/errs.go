// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs implements the structured error taxonomy of the hydraulic
// and water-quality core. Every fallible call in the core returns one of
// these instead of a bare integer; the legacy C-ABI boundary is the only
// place that calls Code to translate back to a stable integer.
package errs

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind enumerates the error taxonomy of the hydraulic and water-quality
// core.
type Kind int

const (
	NotOpen Kind = iota
	InvalidArgument
	LookupFailure
	UniquenessViolation
	HydraulicUnbalanced
	SingularMatrix
	TankDisconnected
	NegativeTime
	InvalidTankLevel
	StructuralMutationConflict
	IO
)

var kindNames = map[Kind]string{
	NotOpen:                    "not-open",
	InvalidArgument:            "invalid-argument",
	LookupFailure:              "lookup-failure",
	UniquenessViolation:        "uniqueness-violation",
	HydraulicUnbalanced:        "hydraulic-unbalanced",
	SingularMatrix:             "singular-matrix",
	TankDisconnected:           "tank-disconnected",
	NegativeTime:               "negative-time",
	InvalidTankLevel:           "invalid-tank-level",
	StructuralMutationConflict: "structural-mutation-conflict",
	IO:                         "io",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error is the structured error carried internally. Index and Value are
// optional payload slots (e.g. the offending junction's original index for
// SingularMatrix, or the offending option code for InvalidArgument).
type Error struct {
	Kind  Kind
	Index int
	Value float64
	inner error
}

func (e *Error) Error() string {
	return e.inner.Error()
}

func (e *Error) Unwrap() error { return e.inner }

// New builds a structured error of the given kind, formatting msg with args
// the same way chk.Err does.
func New(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, inner: chk.Err(msg, args...)}
}

// WithIndex attaches an offending 1-based index (e.g. a junction or link
// index in original, user-facing numbering) to the error.
func (e *Error) WithIndex(idx int) *Error {
	e.Index = idx
	return e
}

// WithValue attaches an offending numeric value to the error.
func (e *Error) WithValue(v float64) *Error {
	e.Value = v
	return e
}

// Singular builds the SingularMatrix error naming the offending junction
// by its original node index.
func Singular(origIndex int) *Error {
	return New(SingularMatrix, "sparse factorization failed: non-positive pivot at junction %d", origIndex).WithIndex(origIndex)
}

// As reports whether err (or anything it wraps) is an *Error, assigning it
// to target the way errors.As would.
func As(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Code is the single point at which a structured error is translated to a
// stable legacy integer code. The core itself never returns bare ints.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if !As(err, &e) {
		return 1 // unclassified internal error
	}
	switch e.Kind {
	case NotOpen:
		return 102
	case InvalidArgument:
		return 251
	case LookupFailure:
		return 204
	case UniquenessViolation:
		return 215
	case HydraulicUnbalanced:
		return 110
	case SingularMatrix:
		return 208
	case TankDisconnected:
		return 233
	case NegativeTime:
		return 253
	case InvalidTankLevel:
		return 225
	case StructuralMutationConflict:
		return 261
	case IO:
		return 305
	default:
		return 1
	}
}

// Warning is a non-fatal condition raised by the solver (e.g. a
// hydraulically-unbalanced step with unbalanced=continue); it satisfies
// error but callers may type-assert it to decide whether to keep running.
type Warning struct {
	Msg string
}

func (w *Warning) Error() string { return w.Msg }

func Warnf(format string, args ...interface{}) *Warning {
	return &Warning{Msg: fmt.Sprintf(format, args...)}
}

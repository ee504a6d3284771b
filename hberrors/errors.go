// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package hberrors implements a small, chainable error type for the
// handful of unrecoverable conditions the bitset package can raise:
// an index above the declared ceiling, or a request for a layer
// outside {0,1,2,3}. It is a trimmed-down sibling of
// github.com/grailbio/base/errors, carrying only the Kinds this
// module actually produces.
package hberrors

import (
	"fmt"
)

// Kind classifies an Error. Unlike github.com/grailbio/base/errors,
// which enumerates a couple dozen kinds meant for networked services,
// hbitset only ever raises two: a caller supplied an out-of-range
// argument, or an internal precondition was violated.
type Kind int

const (
	// Other is an unclassified error.
	Other Kind = iota
	// Invalid indicates the caller supplied an invalid argument, such
	// as an index beyond the ceiling or a layer outside {0,1,2,3}.
	Invalid
	// Precondition indicates an internal invariant was violated. This
	// should never happen in correct code; it exists so that invariant
	// checks have a typed error to attach to a panic.
	Precondition
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid argument"
	case Precondition:
		return "precondition failed"
	default:
		return "unknown error"
	}
}

// Error is the standard error type raised (via panic) by package
// bitset. It chains an optional underlying error the way
// grailbio-base/errors.Error does, though hbitset never needs more
// than one link in practice.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// E constructs an *Error from a kind and a message formatted in the
// manner of fmt.Sprintf, optionally wrapping a cause.
func E(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Ceiling builds the error panicked when a caller attempts to add an
// index beyond the declared ceiling.
func Ceiling(index, max uint32) error {
	return E(Invalid, nil, "index %d exceeds ceiling %d", index, max)
}

// Layer builds the error panicked when a caller requests a layer
// outside {0,1,2,3}.
func Layer(level int) error {
	return E(Invalid, nil, "layer %d is outside {0,1,2,3}", level)
}

// Assert panics with err if cond is false. It is the package's
// stand-in for github.com/grailbio/base/must.True. No code in this
// module calls it at present.
func Assert(cond bool, err error) {
	if !cond {
		panic(err)
	}
}

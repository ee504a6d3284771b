// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package hblog provides the minimal leveled-logging shim that
// package bitset uses for its off-by-default structural diagnostics
// (layer growth, ceiling violations). It is a narrowed adaptation of
// github.com/grailbio/base/log: same Level type, writing through a
// standard log.Logger, but without the Outputter interface,
// flag-registration and vlog-bridging
// machinery a standalone library has no business pulling in.
package hblog

import (
	"fmt"
	golog "log"
	"os"
)

// Level is a log verbosity level. As in github.com/grailbio/base/log,
// lower values are higher priority: a logger configured at level L
// emits every message at level M <= L.
type Level int

const (
	// Off never outputs messages. This is the package default, so
	// linking hbitset introduces no logging overhead or output unless
	// a caller opts in with SetLevel.
	Off Level = -1
	// Info is the standard level.
	Info Level = 0
	// Debug is used for structural diagnostics: layer growth and
	// ceiling violations.
	Debug Level = 1
)

var level = Off
var out = golog.New(os.Stderr, "hbitset: ", golog.LstdFlags)

// SetLevel sets the package-wide logging level. It is not safe to
// call concurrently with logging calls, so it should be set once at
// program startup, exactly as grailbio-base/log.AddFlags documents
// for its own level flag.
func SetLevel(l Level) { level = l }

// At reports whether the package is currently logging at level l.
func At(l Level) bool { return l <= level }

// Debugf logs a Debug-level message if the package is configured to
// show it.
func Debugf(format string, args ...interface{}) {
	if At(Debug) {
		out.Output(2, fmt.Sprintf(format, args...))
	}
}

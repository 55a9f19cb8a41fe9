// Copyright (C) 2017-2025 Steve Merrony
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
//

// Package trace provides the opt-in debug-trace logging shared across
// packages, grounded on the teacher's traceExpect/traceXXX boolean
// flags (dasherg.go) gating fmt.Printf debug lines: a Logger here is
// the same idea generalized into a reusable type instead of package
// globals, writing through the standard library's log.Logger.
package trace

import (
	"log"
	"os"
)

// Logger is a named, independently toggleable trace sink.
type Logger struct {
	name    string
	enabled bool
	out     *log.Logger
}

// New builds a Logger tagged with name, writing to stderr, disabled by
// default (matching the teacher's traceXXX vars defaulting to false).
func New(name string) *Logger {
	return &Logger{
		name: name,
		out:  log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// SetEnabled toggles tracing at runtime, mirroring the teacher's
// command-line -trace flags flipping package-level booleans.
func (l *Logger) SetEnabled(on bool) { l.enabled = on }

func (l *Logger) Enabled() bool { return l.enabled }

// Printf logs format/args if tracing is enabled; a no-op otherwise.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.out.Printf("["+l.name+"] "+format, args...)
}

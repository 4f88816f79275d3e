// Copyright 2016 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clog provides a logging interface for rdfwriter packages.
package clog

import (
	"fmt"
	"log"
	"sync"
)

// Logger is the clog logging interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Leveled is implemented by loggers that manage their own verbosity.
type Leveled interface {
	V(level int) bool
	SetV(level int)
}

var (
	mu        sync.RWMutex
	logger    Logger = stdlog{}
	verbosity int
)

// SetLogger set the clog logging implementation.
func SetLogger(l Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func current() Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return l
}

// V returns whether the current clog verbosity is above the specified level.
func V(level int) bool {
	if l, ok := current().(Leveled); ok {
		return l.V(level)
	}
	mu.RLock()
	defer mu.RUnlock()
	return verbosity >= level
}

// SetV sets the clog verbosity level.
func SetV(level int) {
	if l, ok := current().(Leveled); ok {
		l.SetV(level)
		return
	}
	mu.Lock()
	verbosity = level
	mu.Unlock()
}

// Infof logs information level messages.
func Infof(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Infof(format, args...)
	}
}

// Warningf logs warning level messages.
func Warningf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Warningf(format, args...)
	}
}

// Errorf logs error level messages.
func Errorf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Errorf(format, args...)
	}
}

// Fatalf logs fatal messages and terminates the program.
func Fatalf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Fatalf(format, args...)
	}
}

// Warner returns a callback that forwards serializer warnings to the
// current logger, tagged with the given syntax name.
func Warner(syntax string) func(msg string) {
	return func(msg string) {
		Warningf("%s: %s", syntax, msg)
	}
}

// stdlog wraps the standard library logger.
type stdlog struct{}

func (stdlog) Infof(format string, args ...interface{})    { log.Printf(format, args...) }
func (stdlog) Warningf(format string, args ...interface{}) { log.Printf("WARN: "+format, args...) }
func (stdlog) Errorf(format string, args ...interface{})   { log.Printf("ERROR: "+format, args...) }
func (stdlog) Fatalf(format string, args ...interface{})   { log.Fatalf("FATAL: "+format, args...) }

// Recorder is a Logger that keeps messages in memory. It is mostly useful in tests.
type Recorder struct {
	mu       sync.Mutex
	Messages []string
}

func (r *Recorder) add(level, format string, args ...interface{}) {
	r.mu.Lock()
	r.Messages = append(r.Messages, level+": "+fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

func (r *Recorder) Infof(format string, args ...interface{})    { r.add("INFO", format, args...) }
func (r *Recorder) Warningf(format string, args ...interface{}) { r.add("WARN", format, args...) }
func (r *Recorder) Errorf(format string, args ...interface{})   { r.add("ERROR", format, args...) }
func (r *Recorder) Fatalf(format string, args ...interface{})   { r.add("FATAL", format, args...) }

// Lines returns a copy of the recorded messages.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Messages...)
}

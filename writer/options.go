// Copyright 2026 The Cayley Authors. All rights reserved.
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

package writer

import (
	"fmt"
	"strconv"
	"strings"
)

// CompressionLevel controls how aggressively a writer abbreviates its output.
type CompressionLevel int

const (
	// CompressionNone disables every abbreviation: full IRIs, flat output.
	CompressionNone CompressionLevel = -1
	// CompressionMinimal allows prefixed names only.
	CompressionMinimal CompressionLevel = 0
	CompressionDefault CompressionLevel = 1
	CompressionMedium  CompressionLevel = 3
	// CompressionMore enables collection and annotation syntax.
	CompressionMore CompressionLevel = 5
	CompressionHigh CompressionLevel = 10
)

var compressionNames = []struct {
	name  string
	level CompressionLevel
}{
	{"none", CompressionNone},
	{"minimal", CompressionMinimal},
	{"default", CompressionDefault},
	{"medium", CompressionMedium},
	{"more", CompressionMore},
	{"high", CompressionHigh},
}

func (c CompressionLevel) String() string {
	for _, n := range compressionNames {
		if n.level == c {
			return n.name
		}
	}
	return strconv.Itoa(int(c))
}

// ParseCompressionLevel accepts a level name (none, minimal, default, medium,
// more, high) or an integer.
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range compressionNames {
		if n.name == s {
			return n.level, nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown compression level: %q", s)
	}
	if v < int(CompressionNone) {
		v = int(CompressionNone)
	}
	return CompressionLevel(v), nil
}

// Set implements pflag.Value.
func (c *CompressionLevel) Set(s string) error {
	v, err := ParseCompressionLevel(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *CompressionLevel) Type() string { return "compression" }

// WarningFunc receives non-fatal diagnostics raised while serializing.
type WarningFunc func(msg string)

// Options configures a writer. They are resolved once, when the writer is
// constructed; nothing reads process-wide defaults afterwards.
type Options struct {
	Compression CompressionLevel
	// PrettyPrint enables indentation and line breaks in grouped output.
	PrettyPrint bool
	// HighSpeed permits flat output for graphs that would not benefit from grouping.
	HighSpeed bool
	// Threads is the number of dataset workers. Values below 2 write sequentially.
	Threads int
	// BOM prefixes files written by SaveFile with a UTF-8 byte order mark.
	BOM bool
	// Warning is called for non-fatal diagnostics. May be nil.
	Warning WarningFunc
}

// DefaultThreads is the worker count used by DefaultOptions.
const DefaultThreads = 4

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Compression: CompressionMore,
		PrettyPrint: true,
		HighSpeed:   true,
		Threads:     DefaultThreads,
	}
}

// Warn reports a diagnostic through the configured callback, if any.
func (o Options) Warn(format string, args ...interface{}) {
	if o.Warning != nil {
		o.Warning(fmt.Sprintf(format, args...))
	}
}

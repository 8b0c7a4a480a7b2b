// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package facts defines the preprocessor-data value consumed by the
// classification engine: macros, their invocations, and the restriction
// lattice over them.
package facts

import "strconv"

import "strings"

// Location is a parsed "file:line:col" analyzer location. An analyzer
// record may report a location that doesn't resolve to real source (a
// compiler builtin, a command-line define); Valid distinguishes that case
// rather than defaulting File/Line/Col to their zero values.
type Location struct {
	raw   string
	File  string
	Line  int
	Col   int
	Valid bool
}

// InvalidLocation returns a Location carrying the raw analyzer string but
// marked invalid.
func InvalidLocation(raw string) Location {
	return Location{raw: raw}
}

// ParseLocation parses an analyzer "file:line:col" string. A location
// that fails to parse is reported invalid rather than silently zeroed;
// callers that require a valid location must check Valid explicitly.
func ParseLocation(raw string) Location {
	// Windows paths ("C:\foo\bar.c:10:4") contain more than two colons;
	// the line and column are always the last two fields.
	idx2 := strings.LastIndex(raw, ":")
	if idx2 < 0 {
		return InvalidLocation(raw)
	}
	idx1 := strings.LastIndex(raw[:idx2], ":")
	if idx1 < 0 {
		return InvalidLocation(raw)
	}

	file := raw[:idx1]
	lineStr := raw[idx1+1 : idx2]
	colStr := raw[idx2+1:]

	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return InvalidLocation(raw)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return InvalidLocation(raw)
	}
	if file == "" {
		return InvalidLocation(raw)
	}

	return Location{raw: raw, File: file, Line: line, Col: col, Valid: true}
}

// String returns the original "file:line:col" text.
func (l Location) String() string {
	return l.raw
}

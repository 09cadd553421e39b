// Copyright 2025 walteh LLC
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

package section

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Default markers used when nothing else is configured
const (
	DefaultStart      = "// Footnote types"
	DefaultFallback   = "export interface FootnoteReference"
	DefaultEnd        = "export type DocumentElement"
	DefaultTerminator = ";"
)

// ErrInvalidMarkers is returned when a Markers value cannot locate anything.
var ErrInvalidMarkers = errors.Base("invalid markers")

// 🔖 Markers are the literal substrings used to find a section
type Markers struct {
	Start      string // Primary start marker
	Fallback   string // Used only when Start is absent
	End        string // Declaration boundary the end scan starts from
	Terminator string // Suffix of the line that closes the section
}

// 🏭 DefaultMarkers returns the built-in markers
func DefaultMarkers() Markers {
	return Markers{
		Start:      DefaultStart,
		Fallback:   DefaultFallback,
		End:        DefaultEnd,
		Terminator: DefaultTerminator,
	}
}

// 🔍 Validate checks that the markers can be searched for
func (m Markers) Validate() error {
	if m.Start == "" {
		return errors.Errorf("%w: start marker is required", ErrInvalidMarkers)
	}
	if m.End == "" {
		return errors.Errorf("%w: end marker is required", ErrInvalidMarkers)
	}
	if m.Terminator == "" {
		return errors.Errorf("%w: terminator is required", ErrInvalidMarkers)
	}
	return nil
}

// 📏 Span is the half-open byte range [Start, End) slated for removal
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// location carries the details of a lookup, not just the span.
type location struct {
	span       Span
	fellBack   bool
	terminated bool
}

func locate(doc string, m Markers) (location, bool) {
	var loc location

	start := strings.Index(doc, m.Start)
	if start < 0 && m.Fallback != "" {
		start = strings.Index(doc, m.Fallback)
		loc.fellBack = start >= 0
	}
	if start < 0 {
		return loc, false
	}

	marker := strings.Index(doc, m.End)
	if marker < 0 {
		return loc, false
	}

	end, terminated := scanTerminator(doc, marker, m.Terminator)
	if start > end {
		return loc, false
	}

	loc.span = Span{Start: start, End: end}
	loc.terminated = terminated
	return loc, true
}

// scanTerminator walks lines from offset and returns the offset just past the
// first line whose trimmed text ends with terminator. When no line qualifies
// the offset itself is returned.
func scanTerminator(doc string, offset int, terminator string) (int, bool) {
	pos := offset
	for _, line := range strings.Split(doc[offset:], "\n") {
		pos += len(line) + 1
		if strings.HasSuffix(strings.TrimSpace(line), terminator) {
			return min(pos, len(doc)), true
		}
	}
	return offset, false
}

// 🔎 Locate finds the span delimited by m in doc.
// The bool is false when either boundary is missing or the boundaries are
// out of order.
func Locate(doc string, m Markers) (Span, bool) {
	loc, ok := locate(doc, m)
	return loc.span, ok
}

// ✂️ Splice removes s from doc and drops any newlines left at the cut point.
func Splice(doc string, s Span) string {
	// \r goes with \n so a CRLF file is not left with a bare \r at the seam
	return doc[:s.Start] + strings.TrimLeft(doc[s.End:], "\r\n")
}

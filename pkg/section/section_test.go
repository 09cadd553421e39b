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
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMarkers = Markers{
	Start:      "<P>",
	Fallback:   "<F>",
	End:        "<E>",
	Terminator: ";",
}

func TestRemover_Remove(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		markers        Markers
		want           string
		wantFound      bool
		wantSpan       Span
		wantFellBack   bool
		wantTerminated bool
	}{
		{
			name:           "exact_span",
			content:        "A<P>B<E>C;\nD",
			markers:        testMarkers,
			want:           "AD",
			wantFound:      true,
			wantSpan:       Span{Start: 1, End: 11},
			wantTerminated: true,
		},
		{
			name:           "fallback_marker",
			content:        "A<F>B<E>C;\nD",
			markers:        testMarkers,
			want:           "AD",
			wantFound:      true,
			wantSpan:       Span{Start: 1, End: 11},
			wantFellBack:   true,
			wantTerminated: true,
		},
		{
			name:           "primary_preferred_over_fallback",
			content:        "<F>A<P>B<E>C;\nD",
			markers:        testMarkers,
			want:           "<F>AD",
			wantFound:      true,
			wantSpan:       Span{Start: 4, End: 14},
			wantTerminated: true,
		},
		{
			name:      "no_terminator",
			content:   "A<P>B<E>C\nD",
			markers:   testMarkers,
			want:      "A<E>C\nD",
			wantFound: true,
			wantSpan:  Span{Start: 1, End: 5},
		},
		{
			name:           "terminator_on_last_line",
			content:        "A<P>B<E>C;",
			markers:        testMarkers,
			want:           "A",
			wantFound:      true,
			wantSpan:       Span{Start: 1, End: 10},
			wantTerminated: true,
		},
		{
			name:           "terminator_after_trailing_space",
			content:        "A<P>B<E>C;   \nD",
			markers:        testMarkers,
			want:           "AD",
			wantFound:      true,
			wantSpan:       Span{Start: 1, End: 14},
			wantTerminated: true,
		},
		{
			name:           "leading_newlines_stripped",
			content:        "A\n<P>B<E>C;\n\n\nD",
			markers:        testMarkers,
			want:           "A\nD",
			wantFound:      true,
			wantSpan:       Span{Start: 2, End: 12},
			wantTerminated: true,
		},
		{
			name:           "crlf_line_endings",
			content:        "A<P>B<E>C;\r\n\r\nD",
			markers:        testMarkers,
			want:           "AD",
			wantFound:      true,
			wantSpan:       Span{Start: 1, End: 12},
			wantTerminated: true,
		},
		{
			name:           "terminator_several_lines_down",
			content:        "X<P>\n<E> = A\n  | B\n  | C;\nrest\n",
			markers:        testMarkers,
			want:           "Xrest\n",
			wantFound:      true,
			wantSpan:       Span{Start: 1, End: 26},
			wantTerminated: true,
		},
		{
			name:    "no_markers",
			content: "nothing to see here;\n",
			markers: testMarkers,
			want:    "nothing to see here;\n",
		},
		{
			name:    "start_without_end",
			content: "A<P>B;\nC",
			markers: testMarkers,
			want:    "A<P>B;\nC",
		},
		{
			name:    "end_without_start",
			content: "A<E>B;\nC",
			markers: testMarkers,
			want:    "A<E>B;\nC",
		},
		{
			name:    "end_before_start",
			content: "<E>x\n<P>y",
			markers: testMarkers,
			want:    "<E>x\n<P>y",
		},
		{
			name:    "empty_content",
			content: "",
			markers: testMarkers,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remover := NewRemover()
			result, err := remover.Remove(context.Background(), strings.NewReader(tt.content), tt.markers)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, tt.content, string(result.Original))
			assert.Equal(t, tt.want, string(result.Modified))
			assert.Equal(t, tt.wantFound, result.Found)
			assert.Equal(t, tt.wantFellBack, result.FellBack)
			assert.Equal(t, tt.wantTerminated, result.Terminated)
			if tt.wantFound {
				assert.Equal(t, tt.wantSpan, result.Span)
			}
		})
	}
}

func TestRemover_DefaultMarkers(t *testing.T) {
	content := `export interface Paragraph {
  runs: TextRun[];
}

// Footnote types
export interface Footnote {
  id: string;
}

export type DocumentElement =
  | Paragraph
  | Footnote;

export interface ParsedDocument {}
`
	want := `export interface Paragraph {
  runs: TextRun[];
}

export interface ParsedDocument {}
`

	remover := NewRemover()
	first, err := remover.Remove(context.Background(), strings.NewReader(content), DefaultMarkers())
	require.NoError(t, err)
	require.True(t, first.Found)
	assert.Equal(t, want, string(first.Modified))

	// a second pass has nothing left to find
	second, err := remover.Remove(context.Background(), strings.NewReader(string(first.Modified)), DefaultMarkers())
	require.NoError(t, err)
	assert.False(t, second.Found)
	assert.Equal(t, want, string(second.Modified))
}

func TestMarkers_Validate(t *testing.T) {
	tests := []struct {
		name      string
		markers   Markers
		wantError string
	}{
		{
			name:    "defaults",
			markers: DefaultMarkers(),
		},
		{
			name:    "no_fallback",
			markers: Markers{Start: "a", End: "b", Terminator: ";"},
		},
		{
			name:      "missing_start",
			markers:   Markers{End: "b", Terminator: ";"},
			wantError: "start marker is required",
		},
		{
			name:      "missing_end",
			markers:   Markers{Start: "a", Terminator: ";"},
			wantError: "end marker is required",
		},
		{
			name:      "missing_terminator",
			markers:   Markers{Start: "a", End: "b"},
			wantError: "terminator is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.markers.Validate()
			if tt.wantError != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMarkers)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRemover_InvalidMarkers(t *testing.T) {
	_, err := NewRemover().Remove(context.Background(), strings.NewReader("abc"), Markers{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMarkers)
}

func TestSplice(t *testing.T) {
	assert.Equal(t, "ab", Splice("a---b", Span{Start: 1, End: 4}))
	assert.Equal(t, "a-b", Splice("a-\n\nb", Span{Start: 2, End: 2}))
	assert.Equal(t, "", Splice("abc", Span{Start: 0, End: 3}))
}

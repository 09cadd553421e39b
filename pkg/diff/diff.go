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

// Package diff renders the change a removal would make, for dry runs.
package diff

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Format selects how a change is rendered
type Format string

const (
	FormatUnified Format = "unified" // line-based unified diff
	FormatInline  Format = "inline"  // character-level diff of the whole document
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatUnified, FormatInline:
		return f, nil
	case "":
		return FormatUnified, nil
	default:
		return "", errors.Errorf("unknown diff format %q (want %q or %q)", s, FormatUnified, FormatInline)
	}
}

// 🖨️ Renderer writes diffs
type Renderer struct {
	Format  Format
	Color   bool
	Context int // unified context lines
	Style   string
}

// 🏭 NewRenderer creates a renderer with three lines of context
func NewRenderer(format Format, color bool) *Renderer {
	return &Renderer{
		Format:  format,
		Color:   color,
		Context: 3,
		Style:   "monokai",
	}
}

// Render writes the difference between before and after to w. Nothing is
// written when they are equal.
func (r *Renderer) Render(w io.Writer, name string, before, after []byte) error {
	if string(before) == string(after) {
		return nil
	}

	switch r.Format {
	case FormatInline:
		return r.renderInline(w, string(before), string(after))
	default:
		return r.renderUnified(w, name, string(before), string(after))
	}
}

func (r *Renderer) renderUnified(w io.Writer, name, before, after string) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  r.Context,
	})
	if err != nil {
		return errors.Errorf("building unified diff: %w", err)
	}

	if !r.Color {
		if _, err := io.WriteString(w, text); err != nil {
			return errors.Errorf("writing diff: %w", err)
		}
		return nil
	}

	return r.highlight(w, text)
}

// splitLines splits s after each newline. A final newline does not start an
// extra empty line, and every returned line ends in a newline.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += "\n"
	return lines
}

func (r *Renderer) highlight(w io.Writer, text string) error {
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	style := styles.Get(r.Style)
	if style == nil {
		style = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return errors.Errorf("tokenising diff: %w", err)
	}
	if err := formatter.Format(w, style, it); err != nil {
		return errors.Errorf("formatting diff: %w", err)
	}
	return nil
}

func (r *Renderer) renderInline(w io.Writer, before, after string) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var out string
	if r.Color {
		out = dmp.DiffPrettyText(diffs)
	} else {
		var sb strings.Builder
		for _, d := range diffs {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString("[-" + d.Text + "-]")
			case diffmatchpatch.DiffInsert:
				sb.WriteString("{+" + d.Text + "+}")
			default:
				sb.WriteString(d.Text)
			}
		}
		out = sb.String()
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return errors.Errorf("writing diff: %w", err)
	}
	return nil
}

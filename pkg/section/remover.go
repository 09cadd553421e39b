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
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 Result describes the outcome of a single removal
type Result struct {
	Original   []byte // Document as read
	Modified   []byte // Document after removal, equal to Original when !Found
	Span       Span   // Removed range in Original
	Found      bool   // Whether both boundaries were located
	FellBack   bool   // Whether the fallback start marker was used
	Terminated bool   // Whether a terminator line closed the section
}

// ✂️ Remover cuts marker-bounded sections out of documents
type Remover struct{}

// 🏭 NewRemover creates a new Remover
func NewRemover() *Remover {
	return &Remover{}
}

// Remove reads the whole document from content and removes the section
// delimited by m. A missing section is not an error: the result has Found set
// to false and Modified equal to Original.
func (r *Remover) Remove(ctx context.Context, content io.Reader, m Markers) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		Original: original,
		Modified: original,
	}

	doc := string(original)
	loc, ok := locate(doc, m)
	if !ok {
		zerolog.Ctx(ctx).Debug().Str("start", m.Start).Str("end", m.End).Msg("section not found")
		return result, nil
	}

	result.Found = true
	result.Span = loc.span
	result.FellBack = loc.fellBack
	result.Terminated = loc.terminated
	result.Modified = []byte(Splice(doc, loc.span))

	zerolog.Ctx(ctx).Debug().
		Int("start", loc.span.Start).
		Int("end", loc.span.End).
		Bool("fallback", loc.fellBack).
		Bool("terminated", loc.terminated).
		Msg("section located")

	return result, nil
}

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

package operation

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/snip/pkg/fileio"
	"github.com/walteh/snip/pkg/log"
	"github.com/walteh/snip/pkg/section"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work the runner executes
type Operation interface {
	Execute(ctx context.Context) error
}

// 🛡️ Guard vets a file before it is overwritten
type Guard interface {
	CheckClean(ctx context.Context, path string) error
}

// 🖨️ Renderer writes a preview of a change
type Renderer interface {
	Render(w io.Writer, name string, before, after []byte) error
}

// 🔧 Options contains what every excise operation shares
type Options struct {
	Files    fileio.FileManager // Required
	Remover  *section.Remover   // Defaults to section.NewRemover()
	Guard    Guard              // Consulted before writing when set
	Renderer Renderer           // Used for dry runs when set
	DryRun   bool
	Backup   bool
}

// ✂️ ExciseOperation removes one section from one file
type ExciseOperation struct {
	opts    Options
	path    string
	markers section.Markers

	outcome log.Outcome
}

// 🏭 NewExciseOperation creates an operation for path
func NewExciseOperation(opts Options, path string, markers section.Markers) (*ExciseOperation, error) {
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Remover == nil {
		opts.Remover = section.NewRemover()
	}
	if err := markers.Validate(); err != nil {
		return nil, errors.Errorf("target %s: %w", path, err)
	}
	return &ExciseOperation{
		opts:    opts,
		path:    path,
		markers: markers,
	}, nil
}

// Path returns the file the operation rewrites.
func (o *ExciseOperation) Path() string {
	return o.path
}

// Outcome returns what the last Execute did.
func (o *ExciseOperation) Outcome() log.Outcome {
	return o.outcome
}

// 🏃 Execute reads, removes, and (unless nothing was found or this is a dry
// run) writes the file back, then reports a single outcome line.
func (o *ExciseOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("file", o.path).Logger()

	if err := ctx.Err(); err != nil {
		return errors.Errorf("before reading %s: %w", o.path, err)
	}

	content, err := o.opts.Files.ReadFile(ctx, o.path)
	if err != nil {
		return errors.Errorf("reading %s: %w", o.path, err)
	}

	result, err := o.opts.Remover.Remove(ctx, bytes.NewReader(content), o.markers)
	if err != nil {
		return errors.Errorf("removing section from %s: %w", o.path, err)
	}

	o.outcome = log.Outcome{
		Path:     o.path,
		Found:    result.Found,
		Span:     result.Span,
		FellBack: result.FellBack,
		DryRun:   o.opts.DryRun,
	}

	if !result.Found {
		log.FromContext(ctx).LogOutcome(ctx, o.outcome)
		return nil
	}

	if o.opts.DryRun {
		var preview bytes.Buffer
		if o.opts.Renderer != nil {
			if err := o.opts.Renderer.Render(&preview, o.path, result.Original, result.Modified); err != nil {
				return errors.Errorf("rendering diff for %s: %w", o.path, err)
			}
		}
		log.FromContext(ctx).LogPreview(ctx, o.outcome, preview.Bytes())
		return nil
	}

	if err := ctx.Err(); err != nil {
		return errors.Errorf("before writing %s: %w", o.path, err)
	}

	if o.opts.Guard != nil {
		if err := o.opts.Guard.CheckClean(ctx, o.opts.Files.Abs(o.path)); err != nil {
			return errors.Errorf("refusing to rewrite %s: %w", o.path, err)
		}
	}

	if o.opts.Backup {
		backup, err := o.opts.Files.BackupFile(ctx, o.path)
		if err != nil {
			return errors.Errorf("backing up %s: %w", o.path, err)
		}
		o.outcome.Backup = backup
	}

	if err := o.opts.Files.WriteFile(ctx, o.path, result.Modified); err != nil {
		return errors.Errorf("writing %s: %w", o.path, err)
	}

	logger.Debug().Int("removed_bytes", result.Span.Len()).Msg("section removed")
	log.FromContext(ctx).LogOutcome(ctx, o.outcome)
	return nil
}

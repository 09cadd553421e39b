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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/snip/pkg/section"
)

// 🎯 Outcome is the result of running one target
type Outcome struct {
	Path     string       // File path as configured
	Found    bool         // Whether the section was located
	Span     section.Span // Removed range, valid when Found
	FellBack bool         // Whether the fallback start marker matched
	DryRun   bool         // Whether the file was left untouched on purpose
	Backup   string       // Backup path, if one was written
}

// 🎯 Logger prints one console line per outcome and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a stdout logger if none was set
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(color.Output, *zerolog.Ctx(ctx))
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatOutcome formats an outcome for display
func formatOutcome(op Outcome) string {
	if !op.Found {
		return fmt.Sprintf("%s section not found in %s",
			color.New(color.FgYellow).Sprint("-"),
			op.Path)
	}

	symbol, verb := color.New(color.FgGreen).Sprint("✓"), "removed"
	if op.DryRun {
		symbol, verb = color.New(color.FgBlue).Sprint("~"), "would remove"
	}

	return fmt.Sprintf("%s %s section from %s %s",
		symbol,
		verb,
		op.Path,
		color.New(color.Faint).Sprintf("[%d:%d]", op.Span.Start, op.Span.End))
}

// 📝 LogOutcome prints exactly one line for the outcome
func (l *Logger) LogOutcome(ctx context.Context, op Outcome) {
	l.LogPreview(ctx, op, nil)
}

// 👀 LogPreview prints a rendered diff followed by the outcome line. Both are
// written under one lock so concurrent previews never interleave.
func (l *Logger) LogPreview(ctx context.Context, op Outcome, preview []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(preview) > 0 {
		l.console.Write(preview)
	}
	fmt.Fprintln(l.console, formatOutcome(op))

	l.zlog.Debug().
		Str("file", op.Path).
		Bool("found", op.Found).
		Int("start", op.Span.Start).
		Int("end", op.Span.End).
		Bool("fallback", op.FellBack).
		Bool("dry_run", op.DryRun).
		Str("backup", op.Backup).
		Msg("section outcome")
}

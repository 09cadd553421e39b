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
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/snip/pkg/config"
	"github.com/walteh/snip/pkg/diff"
)

type countingOp struct {
	calls *atomic.Int32
	err   error
}

func (o countingOp) Execute(ctx context.Context) error {
	o.calls.Add(1)
	return o.err
}

func TestOperationRunner(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("sync_stops_at_first_error", func(t *testing.T) {
		var calls atomic.Int32
		runner := NewRunner(&logger, false)

		err := runner.Run(context.Background(),
			countingOp{calls: &calls},
			countingOp{calls: &calls, err: assert.AnError},
			countingOp{calls: &calls},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("async_runs_everything", func(t *testing.T) {
		var calls atomic.Int32
		runner := NewRunner(&logger, true)

		ops := make([]Operation, 10)
		for i := range ops {
			ops[i] = countingOp{calls: &calls}
		}

		require.NoError(t, runner.Run(context.Background(), ops...))
		assert.Equal(t, int32(10), calls.Load())
	})

	t.Run("async_reports_error", func(t *testing.T) {
		var calls atomic.Int32
		runner := NewRunner(&logger, true)

		err := runner.Run(context.Background(), countingOp{calls: &calls}, countingOp{calls: &calls, err: assert.AnError})
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("empty", func(t *testing.T) {
		require.NoError(t, NewRunner(&logger, true).Run(context.Background()))
		require.NoError(t, NewRunner(&logger, false).Run(context.Background()))
	})
}

func TestPlan(t *testing.T) {
	f := newFixture(t, map[string]string{
		"src/a.ts":        documentTS,
		"src/nested/b.ts": documentTS,
		"other.ts":        documentTS,
	})

	t.Run("expands_globs", func(t *testing.T) {
		cfg := &config.Config{Targets: []config.Target{
			{File: "src/**/*.ts"},
			{File: "other.ts", Start: "<P>", End: "<E>"},
		}}
		require.NoError(t, cfg.Validate())

		ops, err := Plan(f.ctx, cfg, Options{Files: f.files})
		require.NoError(t, err)

		paths := make([]string, 0, len(ops))
		for _, op := range ops {
			paths = append(paths, op.Path())
		}
		sort.Strings(paths)
		assert.Equal(t, []string{"other.ts", filepath.FromSlash("src/a.ts"), filepath.FromSlash("src/nested/b.ts")}, paths)
	})

	t.Run("overlapping_targets", func(t *testing.T) {
		cfg := &config.Config{Targets: []config.Target{
			{File: "src/*.ts"},
			{File: "src/a.ts"},
		}}
		require.NoError(t, cfg.Validate())

		_, err := Plan(f.ctx, cfg, Options{Files: f.files})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already matched by target 0")
	})

	t.Run("no_matches", func(t *testing.T) {
		cfg := &config.Config{Targets: []config.Target{{File: "*.rs"}}}
		require.NoError(t, cfg.Validate())

		_, err := Plan(f.ctx, cfg, Options{Files: f.files})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no files match")
	})

	t.Run("runs_concurrently", func(t *testing.T) {
		cfg := &config.Config{Targets: []config.Target{{File: "src/**/*.ts"}}, Async: true}
		require.NoError(t, cfg.Validate())

		ops, err := Plan(f.ctx, cfg, Options{Files: f.files})
		require.NoError(t, err)

		logger := zerolog.Nop()
		require.NoError(t, NewRunner(&logger, cfg.Async).Run(f.ctx, Operations(ops)...))

		assert.Equal(t, snippedTS, f.read(t, "src/a.ts"))
		assert.Equal(t, snippedTS, f.read(t, "src/nested/b.ts"))
		assert.Equal(t, documentTS, f.read(t, "other.ts"))
	})
}

func TestPlan_AsyncDryRun(t *testing.T) {
	const n = 8
	files := make(map[string]string, n)
	for i := 0; i < n; i++ {
		files[fmt.Sprintf("src/doc%d.ts", i)] = documentTS
	}
	f := newFixture(t, files)

	cfg := &config.Config{Targets: []config.Target{{File: "src/*.ts"}}, Async: true}
	require.NoError(t, cfg.Validate())

	ops, err := Plan(f.ctx, cfg, Options{
		Files:    f.files,
		Renderer: diff.NewRenderer(diff.FormatUnified, false),
		DryRun:   true,
	})
	require.NoError(t, err)
	require.Len(t, ops, n)

	logger := zerolog.Nop()
	require.NoError(t, NewRunner(&logger, cfg.Async).Run(f.ctx, Operations(ops)...))

	// each preview is a complete unified diff followed by its own outcome line
	blocks := strings.SplitAfter(f.console.String(), "]\n")
	require.Len(t, blocks, n+1)
	assert.Empty(t, blocks[n])
	for _, block := range blocks[:n] {
		lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
		header := strings.TrimPrefix(lines[0], "--- a/")
		require.NotEqual(t, lines[0], header, "block should start with a diff header")
		assert.Equal(t, "+++ b/"+header, lines[1])
		assert.Equal(t, "~ would remove section from "+header+" [51:172]", lines[len(lines)-1])
	}

	for name := range files {
		assert.Equal(t, documentTS, f.read(t, name), "dry run never writes")
	}
}

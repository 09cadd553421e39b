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

// Package gitguard refuses rewrites of files that have uncommitted changes.
//
// snip overwrites files in place without a backup by default; when the file
// lives in a git repository and is committed, git is the backup.
package gitguard

import (
	"context"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrDirty is returned for files with staged, unstaged or untracked changes.
var ErrDirty = errors.Base("file has uncommitted changes")

// 🛡️ Guard checks files against their git worktree
type Guard struct{}

// 🏭 New creates a new guard
func New() *Guard {
	return &Guard{}
}

// CheckClean returns ErrDirty when path differs from what git has committed.
// Files outside any repository pass.
func (g *Guard) CheckClean(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Errorf("resolving path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(filepath.Dir(absPath), &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		logger.Debug().Str("path", path).Msg("not in a git repository, skipping clean check")
		return nil
	}
	if err != nil {
		return errors.Errorf("opening git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return errors.Errorf("getting worktree: %w", err)
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), absPath)
	if err != nil {
		return errors.Errorf("resolving path in worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return errors.Errorf("getting worktree status: %w", err)
	}

	fs, ok := status[filepath.ToSlash(rel)]
	if !ok || (fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified) {
		logger.Debug().Str("path", rel).Msg("file is clean")
		return nil
	}

	return errors.Errorf("%w: %s (staging %q, worktree %q)", ErrDirty, rel, string(fs.Staging), string(fs.Worktree))
}

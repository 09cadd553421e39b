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

package fileio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager handles all file system operations
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte) error
	BackupFile(ctx context.Context, path string) (string, error)
	Expand(ctx context.Context, pattern string) ([]string, error)
	Abs(path string) string
}

// 🔧 Manager implements FileManager relative to a base directory
type Manager struct {
	baseDir string
	now     func() time.Time
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new file manager rooted at baseDir
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
		now:     time.Now,
	}
}

// 🔒 Abs returns the absolute path for a path relative to the base directory
func (m *Manager) Abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// ReadFile reads the whole file. The handle is closed before returning.
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.Abs(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("read file")
	return content, nil
}

// WriteFile truncates and rewrites the file in place. An existing file keeps
// its permissions.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := os.WriteFile(m.Abs(path), content, 0o644); err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// BackupFile copies the file next to itself as name.YYYYMMDD_HHMMSS.bak.ext
// and returns the backup path.
func (m *Manager) BackupFile(ctx context.Context, path string) (string, error) {
	absPath := m.Abs(path)

	info, err := os.Stat(absPath)
	if err != nil {
		return "", errors.Errorf("checking file existence: %w", err)
	}

	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", errors.Errorf("reading file for backup: %w", err)
	}

	ext := filepath.Ext(absPath)
	backupPath := fmt.Sprintf("%s.%s.bak%s", strings.TrimSuffix(absPath, ext), m.now().Format("20060102_150405"), ext)

	if err := os.WriteFile(backupPath, input, info.Mode().Perm()); err != nil {
		return "", errors.Errorf("writing backup: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Str("backup_path", backupPath).Msg("created backup")
	return backupPath, nil
}

// 🔍 Expand resolves a target path. Literal paths are returned unchanged,
// whether or not they exist. An existing file whose name contains glob
// characters is also taken literally. Other glob patterns are matched against
// regular files and must match at least one.
func (m *Manager) Expand(ctx context.Context, pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	if info, err := os.Stat(m.Abs(pattern)); err == nil && info.Mode().IsRegular() {
		return []string{pattern}, nil
	}

	var matches []string
	var err error
	if filepath.IsAbs(pattern) {
		matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	} else {
		matches, err = doublestar.Glob(os.DirFS(m.baseDir), filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		for i := range matches {
			matches[i] = filepath.FromSlash(matches[i])
		}
	}
	if err != nil {
		return nil, errors.Errorf("expanding %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no files match %q", pattern)
	}

	slices.Sort(matches)
	zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Strs("matches", matches).Msg("expanded target")
	return matches, nil
}

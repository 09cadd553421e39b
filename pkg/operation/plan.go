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
	"path/filepath"

	"github.com/walteh/snip/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📋 Plan expands every configured target into one operation per file.
// A file matched by more than one target is an error.
func Plan(ctx context.Context, cfg *config.Config, opts Options) ([]*ExciseOperation, error) {
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}

	var ops []*ExciseOperation
	owner := make(map[string]int)

	for i, target := range cfg.Targets {
		paths, err := opts.Files.Expand(ctx, target.File)
		if err != nil {
			return nil, errors.Errorf("target %d: %w", i, err)
		}

		for _, path := range paths {
			key := filepath.Clean(opts.Files.Abs(path))
			if prev, ok := owner[key]; ok {
				return nil, errors.Errorf("target %d: %s is already matched by target %d", i, path, prev)
			}
			owner[key] = i

			op, err := NewExciseOperation(opts, path, target.Markers())
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
	}

	return ops, nil
}

// Operations converts excise operations for the runner.
func Operations(ops []*ExciseOperation) []Operation {
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = op
	}
	return out
}

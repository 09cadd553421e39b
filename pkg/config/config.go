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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/snip/pkg/section"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is the document rewritten when no target names one.
const DefaultFile = "src/types/document.ts"

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = ".snip.hcl"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes; filename is used in diagnostics
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Target is one file and the markers bounding the section to remove
type Target struct {
	File       string `json:"file" yaml:"file"`
	Start      string `json:"start,omitempty" yaml:"start,omitempty"`
	Fallback   string `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	End        string `json:"end,omitempty" yaml:"end,omitempty"`
	Terminator string `json:"terminator,omitempty" yaml:"terminator,omitempty"`
}

// 🔖 Markers converts the target into section markers
func (t Target) Markers() section.Markers {
	return section.Markers{
		Start:      t.Start,
		Fallback:   t.Fallback,
		End:        t.End,
		Terminator: t.Terminator,
	}
}

// 📚 Config represents the complete configuration
type Config struct {
	Targets      []Target `json:"targets" yaml:"targets"`
	Backup       bool     `json:"backup,omitempty" yaml:"backup,omitempty"`
	RequireClean bool     `json:"require_clean,omitempty" yaml:"require_clean,omitempty"`
	Async        bool     `json:"async,omitempty" yaml:"async,omitempty"`
}

// 🏭 Default returns the built-in configuration: one target, default markers
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if len(cfg.Targets) == 0 {
		cfg.Targets = []Target{{}}
	}

	defaults := section.DefaultMarkers()
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		if t.File == "" {
			t.File = DefaultFile
		}
		// markers are all-or-nothing, a lone custom start must not inherit the default fallback
		if t.Start == "" && t.Fallback == "" && t.End == "" {
			t.Start = defaults.Start
			t.Fallback = defaults.Fallback
			t.End = defaults.End
		}
		if t.Terminator == "" {
			t.Terminator = defaults.Terminator
		}
	}
}

// 🔍 Validate fills defaults and checks that the configuration is usable
func (cfg *Config) Validate() error {
	cfg.applyDefaults()

	seen := make(map[string]int, len(cfg.Targets))
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		t.File = filepath.Clean(t.File)

		if err := t.Markers().Validate(); err != nil {
			return errors.Errorf("target %d: %w", i, err)
		}

		if prev, ok := seen[t.File]; ok {
			return errors.Errorf("target %d: file %q already used by target %d", i, t.File, prev)
		}
		seen[t.File] = i
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	files := make([]string, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		files = append(files, t.File)
	}
	return fmt.Sprintf("targets=[%s] backup=%v require_clean=%v", strings.Join(files, ", "), cfg.Backup, cfg.RequireClean)
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault is Load, except a missing file yields Default()
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

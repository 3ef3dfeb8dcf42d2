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

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

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

// Output formats understood by wcr.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// 🔢 WCArgs holds defaults for wcr
type WCArgs struct {
	Lines  bool   `json:"lines,omitempty" yaml:"lines,omitempty"`
	Words  bool   `json:"words,omitempty" yaml:"words,omitempty"`
	Bytes  bool   `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Chars  bool   `json:"chars,omitempty" yaml:"chars,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ✂️ HeadArgs holds defaults for headr. Nil means unset.
type HeadArgs struct {
	Lines *int64 `json:"lines,omitempty" yaml:"lines,omitempty"`
	Bytes *int64 `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

// 🐱 CatArgs holds defaults for catr
type CatArgs struct {
	Number         bool `json:"number,omitempty" yaml:"number,omitempty"`
	NumberNonblank bool `json:"number_nonblank,omitempty" yaml:"number_nonblank,omitempty"`
}

// 📣 EchoArgs holds defaults for echor
type EchoArgs struct {
	OmitNewline bool `json:"omit_newline,omitempty" yaml:"omit_newline,omitempty"`
}

// 📂 SourceArgs controls how file operands are resolved
type SourceArgs struct {
	ExpandGlobs bool     `json:"expand_globs,omitempty" yaml:"expand_globs,omitempty"`
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	WC     *WCArgs     `json:"wc,omitempty" yaml:"wc,omitempty"`
	Head   *HeadArgs   `json:"head,omitempty" yaml:"head,omitempty"`
	Cat    *CatArgs    `json:"cat,omitempty" yaml:"cat,omitempty"`
	Echo   *EchoArgs   `json:"echo,omitempty" yaml:"echo,omitempty"`
	Source *SourceArgs `json:"source,omitempty" yaml:"source,omitempty"`

	location string
}

// Location is the file the config was loaded from, empty for the zero config.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from path on fsys. An empty path yields an
// empty configuration.
func Load(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		return &Config{}, nil
	}

	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.WC != nil {
		if cfg.WC.Bytes && cfg.WC.Chars {
			return errors.Errorf("wc.bytes and wc.chars cannot both be set")
		}
		switch cfg.WC.Format {
		case "", FormatText, FormatJSON, FormatYAML, FormatTable:
		default:
			return errors.Errorf("wc.format %q is not one of text, json, yaml, table", cfg.WC.Format)
		}
	}

	if cfg.Head != nil {
		if cfg.Head.Lines != nil && cfg.Head.Bytes != nil {
			return errors.Errorf("head.lines and head.bytes cannot both be set")
		}
		if cfg.Head.Bytes != nil && *cfg.Head.Bytes < 1 {
			return errors.Errorf("head.bytes must be at least 1, got %d", *cfg.Head.Bytes)
		}
	}

	if cfg.Cat != nil && cfg.Cat.Number && cfg.Cat.NumberNonblank {
		return errors.Errorf("cat.number and cat.number_nonblank cannot both be set")
	}

	return nil
}

// 📊 WCDefaults returns the wc section, or zero values when it is missing.
func (cfg *Config) WCDefaults() WCArgs {
	if cfg == nil || cfg.WC == nil {
		return WCArgs{}
	}
	return *cfg.WC
}

// ✂️ HeadDefaults returns the head section; nil counts mean "not set".
func (cfg *Config) HeadDefaults() HeadArgs {
	if cfg == nil || cfg.Head == nil {
		return HeadArgs{}
	}
	return *cfg.Head
}

// 🐱 CatDefaults returns the cat section, or zero values when it is missing.
func (cfg *Config) CatDefaults() CatArgs {
	if cfg == nil || cfg.Cat == nil {
		return CatArgs{}
	}
	return *cfg.Cat
}

// 📣 EchoDefaults returns the echo section, or zero values when it is missing.
func (cfg *Config) EchoDefaults() EchoArgs {
	if cfg == nil || cfg.Echo == nil {
		return EchoArgs{}
	}
	return *cfg.Echo
}

// 📂 SourceDefaults returns how file operands are resolved. Globs stay
// unexpanded and nothing is ignored when the section is missing.
func (cfg *Config) SourceDefaults() SourceArgs {
	if cfg == nil || cfg.Source == nil {
		return SourceArgs{}
	}
	return *cfg.Source
}

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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL. Expressions may reference env.NAME
// for environment variables.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		WC *struct {
			Lines  bool   `hcl:"lines,optional"`
			Words  bool   `hcl:"words,optional"`
			Bytes  bool   `hcl:"bytes,optional"`
			Chars  bool   `hcl:"chars,optional"`
			Format string `hcl:"format,optional"`
		} `hcl:"wc,block"`
		Head *struct {
			Lines *int64 `hcl:"lines,optional"`
			Bytes *int64 `hcl:"bytes,optional"`
		} `hcl:"head,block"`
		Cat *struct {
			Number         bool `hcl:"number,optional"`
			NumberNonblank bool `hcl:"number_nonblank,optional"`
		} `hcl:"cat,block"`
		Echo *struct {
			OmitNewline bool `hcl:"omit_newline,optional"`
		} `hcl:"echo,block"`
		Source *struct {
			ExpandGlobs bool     `hcl:"expand_globs,optional"`
			Ignore      []string `hcl:"ignore,optional"`
		} `hcl:"source,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	if hclCfg.WC != nil {
		cfg.WC = &WCArgs{
			Lines:  hclCfg.WC.Lines,
			Words:  hclCfg.WC.Words,
			Bytes:  hclCfg.WC.Bytes,
			Chars:  hclCfg.WC.Chars,
			Format: hclCfg.WC.Format,
		}
	}
	if hclCfg.Head != nil {
		cfg.Head = &HeadArgs{
			Lines: hclCfg.Head.Lines,
			Bytes: hclCfg.Head.Bytes,
		}
	}
	if hclCfg.Cat != nil {
		cfg.Cat = &CatArgs{
			Number:         hclCfg.Cat.Number,
			NumberNonblank: hclCfg.Cat.NumberNonblank,
		}
	}
	if hclCfg.Echo != nil {
		cfg.Echo = &EchoArgs{OmitNewline: hclCfg.Echo.OmitNewline}
	}
	if hclCfg.Source != nil {
		cfg.Source = &SourceArgs{
			ExpandGlobs: hclCfg.Source.ExpandGlobs,
			Ignore:      hclCfg.Source.Ignore,
		}
	}

	return cfg, nil
}

func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}

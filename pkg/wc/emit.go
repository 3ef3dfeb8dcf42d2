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

package wc

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/textr/pkg/config"
	"github.com/walteh/textr/pkg/count"
)

// 🔌 Emitter receives records in input order
type Emitter interface {
	// Emit writes the record of one source. label is empty for standard input.
	Emit(label string, rec count.Record) error
	// Total writes the aggregate record.
	Total(rec count.Record) error
	// Flush writes anything still buffered.
	Flush() error
}

// 🏭 NewEmitter returns the emitter for format
func NewEmitter(format string, w io.Writer, m Metrics) (Emitter, error) {
	switch format {
	case "", config.FormatText:
		return &textEmitter{w: w, m: m}, nil
	case config.FormatJSON:
		return &structuredEmitter{w: w, m: m, encode: encodeJSON}, nil
	case config.FormatYAML:
		return &structuredEmitter{w: w, m: m, encode: encodeYAML}, nil
	case config.FormatTable:
		return &tableEmitter{w: w, m: m}, nil
	default:
		return nil, errors.Errorf("unknown output format %q", format)
	}
}

type textEmitter struct {
	w io.Writer
	m Metrics
}

func (e *textEmitter) Emit(label string, rec count.Record) error {
	_, err := fmt.Fprintln(e.w, FormatLine(e.m, rec, label))
	return err
}

func (e *textEmitter) Total(rec count.Record) error {
	_, err := fmt.Fprintln(e.w, FormatTotal(e.m, rec))
	return err
}

func (e *textEmitter) Flush() error { return nil }

// 📦 Row is one entry of structured output. Unselected metrics are nil.
type Row struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Lines *int64 `json:"lines,omitempty" yaml:"lines,omitempty"`
	Words *int64 `json:"words,omitempty" yaml:"words,omitempty"`
	Bytes *int64 `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Chars *int64 `json:"chars,omitempty" yaml:"chars,omitempty"`
}

// 📦 Report is the document written by the json and yaml formats
type Report struct {
	Sources []Row `json:"sources" yaml:"sources"`
	Total   *Row  `json:"total,omitempty" yaml:"total,omitempty"`
}

func pick(show bool, v int64) *int64 {
	if !show {
		return nil
	}
	return &v
}

func (m Metrics) row(name string, rec count.Record) Row {
	return Row{
		Name:  name,
		Lines: pick(m.Lines, rec.Lines),
		Words: pick(m.Words, rec.Words),
		Bytes: pick(m.Bytes, rec.Bytes),
		Chars: pick(m.Chars, rec.Chars),
	}
}

type structuredEmitter struct {
	w      io.Writer
	m      Metrics
	doc    Report
	encode func(io.Writer, Report) error
}

func (e *structuredEmitter) Emit(label string, rec count.Record) error {
	e.doc.Sources = append(e.doc.Sources, e.m.row(label, rec))
	return nil
}

func (e *structuredEmitter) Total(rec count.Record) error {
	total := e.m.row(totalLabel, rec)
	e.doc.Total = &total
	return nil
}

func (e *structuredEmitter) Flush() error {
	if e.doc.Sources == nil {
		e.doc.Sources = []Row{}
	}
	return e.encode(e.w, e.doc)
}

func encodeJSON(w io.Writer, doc Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, doc Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return errors.Errorf("closing YAML encoder: %w", err)
	}
	return nil
}

type tableEmitter struct {
	w    io.Writer
	m    Metrics
	rows pterm.TableData
}

func (e *tableEmitter) cells(name string, rec count.Record) []string {
	var out []string
	add := func(show bool, v int64) {
		if show {
			out = append(out, strconv.FormatInt(v, 10))
		}
	}
	add(e.m.Lines, rec.Lines)
	add(e.m.Words, rec.Words)
	add(e.m.Bytes, rec.Bytes)
	add(e.m.Chars, rec.Chars)
	return append(out, name)
}

func (e *tableEmitter) header() []string {
	var out []string
	for _, c := range []struct {
		show bool
		name string
	}{
		{e.m.Lines, "lines"},
		{e.m.Words, "words"},
		{e.m.Bytes, "bytes"},
		{e.m.Chars, "chars"},
	} {
		if c.show {
			out = append(out, c.name)
		}
	}
	return append(out, "name")
}

func (e *tableEmitter) Emit(label string, rec count.Record) error {
	e.rows = append(e.rows, e.cells(label, rec))
	return nil
}

func (e *tableEmitter) Total(rec count.Record) error {
	e.rows = append(e.rows, e.cells(totalLabel, rec))
	return nil
}

func (e *tableEmitter) Flush() error {
	data := append(pterm.TableData{e.header()}, e.rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprint(e.w, out)
	return err
}

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

// Package count computes line, word, byte and character counts over a stream
// in a single pass.
package count

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/source"
)

// 📊 Record holds the counts for one source
type Record struct {
	Lines int64 `json:"lines" yaml:"lines"`
	Words int64 `json:"words" yaml:"words"`
	Bytes int64 `json:"bytes" yaml:"bytes"`
	Chars int64 `json:"chars" yaml:"chars"`
}

// ➕ Add returns the field-wise sum of r and o
func (r Record) Add(o Record) Record {
	return Record{
		Lines: r.Lines + o.Lines,
		Words: r.Words + o.Words,
		Bytes: r.Bytes + o.Bytes,
		Chars: r.Chars + o.Chars,
	}
}

// 📏 Line counts a single line. The line is expected to contain at least one
// byte; it counts as one line whether or not it ends with a terminator.
func Line(line []byte) Record {
	if len(line) == 0 {
		return Record{}
	}
	return Record{
		Lines: 1,
		Words: int64(len(bytes.Fields(line))),
		Bytes: int64(len(line)),
		Chars: int64(utf8.RuneCount(line)),
	}
}

// 🔄 Reader counts everything readable from r. Only one line is held in
// memory at a time. Empty input yields a zero Record.
func Reader(r io.Reader) (Record, error) {
	var (
		br  = bufio.NewReader(r)
		res Record
	)
	for {
		line, err := br.ReadBytes('\n')
		res = res.Add(Line(line))
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, errors.WithStack(&source.ReadError{Err: err})
		}
	}
}

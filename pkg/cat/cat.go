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

// Package cat copies streams line by line with optional line numbers.
package cat

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/source"
)

// 🔢 Mode selects which lines get a number
type Mode int

const (
	// None copies lines unchanged.
	None Mode = iota
	// Number numbers every line.
	Number
	// NumberNonBlank numbers lines that are not empty.
	NumberNonBlank
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Number:
		return "number"
	case NumberNonBlank:
		return "number-nonblank"
	default:
		return "unknown"
	}
}

// 🐱 Copy writes every line of r to w terminated by a newline, prefixing
// numbered lines with a right aligned counter and a tab. A "\r\n" terminator
// is replaced as a whole.
func Copy(r io.Reader, w io.Writer, mode Mode) error {
	var (
		br = bufio.NewReader(r)
		bw = bufio.NewWriter(w)
		n  int
	)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			line = trimEOL(line)

			var werr error
			switch {
			case mode == Number, mode == NumberNonBlank && len(line) > 0:
				n++
				_, werr = fmt.Fprintf(bw, "%6d\t%s\n", n, line)
			default:
				_, werr = fmt.Fprintf(bw, "%s\n", line)
			}
			if werr != nil {
				return errors.Errorf("writing output: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if ferr := bw.Flush(); ferr != nil {
				return errors.Errorf("writing output: %w", ferr)
			}
			return errors.WithStack(&source.ReadError{Err: err})
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Errorf("writing output: %w", err)
	}
	return nil
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}

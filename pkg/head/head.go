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

// Package head copies the leading part of a stream.
package head

import (
	"bufio"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textr/pkg/source"
)

// DefaultLines is the number of lines copied when nothing else is asked for.
const DefaultLines = 10

// ✂️ Lines copies the first n lines of r to w with their terminators. A
// negative n copies every line except the last -n.
func Lines(r io.Reader, w io.Writer, n int64) error {
	br := bufio.NewReader(r)
	if n < 0 {
		return allButLast(br, w, -n)
	}

	for i := int64(0); i < n; i++ {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := w.Write(line); werr != nil {
				return errors.Errorf("writing output: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.WithStack(&source.ReadError{Err: err})
		}
	}
	return nil
}

// allButLast holds back a window of skip lines and releases the oldest line
// whenever the window overflows.
func allButLast(br *bufio.Reader, w io.Writer, skip int64) error {
	var window [][]byte
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			window = append(window, line)
			if int64(len(window)) > skip {
				if _, werr := w.Write(window[0]); werr != nil {
					return errors.Errorf("writing output: %w", werr)
				}
				window[0] = nil
				window = window[1:]
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.WithStack(&source.ReadError{Err: err})
		}
	}
}

// ✂️ Bytes copies at most the first n bytes of r to w.
func Bytes(r io.Reader, w io.Writer, n int64) error {
	if n < 1 {
		return errors.Errorf("byte count must be at least 1, got %d", n)
	}
	_, err := io.Copy(w, io.LimitReader(r, n))
	if err != nil {
		return errors.WithStack(&source.ReadError{Err: err})
	}
	return nil
}

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

package source

import (
	"io/fs"

	"gitlab.com/tozd/go/errors"
)

// 🚫 OpenError is returned when a named source cannot be opened.
type OpenError struct {
	Name string
	Err  error
}

func (e *OpenError) Error() string {
	return e.Name + ": " + e.Reason()
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Reason is the OS error text without the operation and path prefix.
func (e *OpenError) Reason() string {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return pathErr.Err.Error()
	}
	return e.Err.Error()
}

// ❌ ReadError is returned when a stream fails after it was opened.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "reading input: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

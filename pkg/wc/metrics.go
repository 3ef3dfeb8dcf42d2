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
	"fmt"
	"strings"

	"github.com/walteh/textr/pkg/count"
)

// columnWidth is the width of every numeric column in text output.
const columnWidth = 8

// totalLabel replaces the file name on the aggregate line.
const totalLabel = "total"

// 🎛️ Metrics is the set of counts shown to the user
type Metrics struct {
	Lines bool
	Words bool
	Bytes bool
	Chars bool
}

// DefaultMetrics is shown when nothing was requested explicitly.
var DefaultMetrics = Metrics{Lines: true, Words: true, Bytes: true}

// None reports whether no metric is selected.
func (m Metrics) None() bool {
	return m == Metrics{}
}

// 🎯 Select applies the default set when nothing was requested
func Select(requested Metrics) Metrics {
	if requested.None() {
		return DefaultMetrics
	}
	return requested
}

func column(show bool, v int64) string {
	if !show {
		return ""
	}
	return fmt.Sprintf("%*d", columnWidth, v)
}

func (m Metrics) columns(rec count.Record) string {
	var sb strings.Builder
	sb.WriteString(column(m.Lines, rec.Lines))
	sb.WriteString(column(m.Words, rec.Words))
	sb.WriteString(column(m.Bytes, rec.Bytes))
	sb.WriteString(column(m.Chars, rec.Chars))
	return sb.String()
}

// 📝 FormatLine renders one source. label is empty for standard input.
func FormatLine(m Metrics, rec count.Record, label string) string {
	if label == "" {
		return m.columns(rec)
	}
	return m.columns(rec) + " " + label
}

// 📝 FormatTotal renders the aggregate line
func FormatTotal(m Metrics, rec count.Record) string {
	return m.columns(rec) + " " + totalLabel
}

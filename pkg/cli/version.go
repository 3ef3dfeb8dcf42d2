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

package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// VersionInfo represents the version information of the binary
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Revision  string `json:"revision"`
	Time      string `json:"time"`
	Modified  bool   `json:"modified"`
}

// GetVersionInfo returns the version information from build info
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Revision = setting.Value
			case "vcs.time":
				info.Time = setting.Value
			case "vcs.modified":
				info.Modified = setting.Value == "true"
			}
		}
	}

	return info
}

// shortRevision is the length of a commit hash shown by --version.
const shortRevision = 12

// FormatVersion returns the --version text for prog
func FormatVersion(prog string) string {
	return GetVersionInfo().Format(prog)
}

// 🏷️ Format renders the version block for prog. Build details missing from
// the binary (no VCS stamp, go run) are left out instead of printed empty.
func (v *VersionInfo) Format(prog string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (textr) %s\n", prog, v.Version)

	if v.Revision != "" {
		rev := v.Revision
		if len(rev) > shortRevision {
			rev = rev[:shortRevision]
		}
		if v.Modified {
			rev += "-dirty"
		}
		fmt.Fprintf(&b, "revision: %s\n", rev)
	}
	if v.Time != "" {
		fmt.Fprintf(&b, "built:    %s\n", v.Time)
	}
	fmt.Fprintf(&b, "go:       %s %s\n", v.GoVersion, v.Platform)
	return b.String()
}

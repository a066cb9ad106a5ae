// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

// DefaultVersion is reported when the binary carries no module version, e.g. when built from
// a working tree with `go build`
const DefaultVersion = "0.3.0-dev"

// set by the mage build through -ldflags -X
var (
	commitHash string
	buildDate  string
)

// BuildInfo describes how the running binary was built
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
	Deps      []string
}

// ReadBuildInfo merges the link-time commit and date with the module and vcs information the
// go toolchain embeds in the binary. Link-time values take precedence.
func ReadBuildInfo() *BuildInfo {
	info := &BuildInfo{
		Version:   DefaultVersion,
		Commit:    commitHash,
		Date:      buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = strings.TrimPrefix(v, "v")
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "" && len(setting.Value) >= 7 {
				info.Commit = setting.Value[:7]
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = setting.Value
			}
		}
	}

	for _, dep := range bi.Deps {
		info.Deps = append(info.Deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}
	sort.Strings(info.Deps)

	return info
}

// Version returns the semantic version of the binary; pre-release builds carry the commit as
// build metadata
func Version() string {
	info := ReadBuildInfo()
	if info.Commit != "" && strings.Contains(info.Version, "-") && !strings.Contains(info.Version, "+") {
		return info.Version + "+" + strings.ToLower(info.Commit)
	}
	return info.Version
}

// BuildVersionString is what `pmatrix version` prints
func BuildVersionString(deps bool) string {
	info := ReadBuildInfo()

	orUnknown := func(s string) string {
		if s == "" {
			return "unknown"
		}
		return s
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "pmatrix v%s %s\n\n", Version(), info.Platform)
	fmt.Fprintf(sb, "Build Date: %s\n", orUnknown(info.Date))
	fmt.Fprintf(sb, "Commit: %s\n", orUnknown(info.Commit))
	fmt.Fprintf(sb, "Built with: %s", info.GoVersion)

	if deps && len(info.Deps) > 0 {
		sb.WriteString("\n\nDependencies:\n\n")
		sb.WriteString(strings.Join(info.Deps, "\n"))
	}

	return sb.String()
}

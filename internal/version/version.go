/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Name is the program name reported in version output and AWS user agents
const Name = "stacks"

// Populated via -ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	GoVersion = runtime.Version()
	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// Info returns formatted version information for display to users
func Info() string {
	return fmt.Sprintf(`%s %s
  Git commit: %s
  Build date: %s
  Go version: %s
  Platform:   %s`, Name, Version, GitCommit, BuildDate, GoVersion, Platform)
}

// Short returns just the version string without additional metadata
func Short() string {
	return Version
}

// AppID identifies this program to AWS. The SDK limits application IDs to
// 50 characters, so build metadata after '+' is dropped.
func AppID() string {
	v, _, _ := strings.Cut(Version, "+")
	id := Name + "/" + v
	if len(id) > 50 {
		id = id[:50]
	}
	return id
}

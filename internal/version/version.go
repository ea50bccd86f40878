// Package version holds build metadata stamped in with ldflags:
//
//	go build -ldflags "-X github.com/Freddy-Gong/react-native-website/internal/version.Version=v1.0.0" ./cmd/docsite
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the release version of the generator.
var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String describes the build for --version output. When no ldflags were
// given, the module version and VCS revision recorded by the toolchain are
// used instead.
func String() string {
	v, commit := Version, GitCommit
	if info, ok := readBuildInfo(); ok {
		if v == "unknown" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && commit == "unknown" {
				commit = s.Value
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("docsite %s (commit %s, built %s)", v, commit, BuildTime)
}

package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestString_Ldflags(t *testing.T) {
	stubBuildInfo(t, nil)
	origV, origC := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origV, origC })

	Version, GitCommit = "v1.2.0", "0123456789abcdef"
	require.Equal(t, "docsite v1.2.0 (commit 0123456789ab, built unknown)", String())
}

func TestString_BuildInfoFallback(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})
	require.Equal(t, "docsite v0.4.1 (commit abc123, built unknown)", String())
}

func TestString_DevelBuild(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	require.Equal(t, "docsite unknown (commit unknown, built unknown)", String())
}

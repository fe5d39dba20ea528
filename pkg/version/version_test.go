package version

import (
	"encoding/json"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v, built, commit string, bi *debug.BuildInfo) {
	t.Helper()

	origV, origB, origC, origRead := Version, BuildTime, Commit, readBuildInfo
	t.Cleanup(func() {
		Version, BuildTime, Commit, readBuildInfo = origV, origB, origC, origRead
	})

	Version, BuildTime, Commit = v, built, commit
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGet_String_Short_Full(t *testing.T) {
	withVersion(t, "1.2.3", "2025-12-22T00:00:00Z", "deadbeef", nil)

	info := Get()
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, "2025-12-22T00:00:00Z", info.BuildTime)
	require.Equal(t, "deadbeef", info.Commit)

	// Runtime fields should be non-empty
	require.NotEmpty(t, info.GoVersion)
	require.NotEmpty(t, info.OS)
	require.NotEmpty(t, info.Arch)

	assert.Equal(t, "1.2.3", Short())
	assert.Contains(t, Full(), "ghget 1.2.3")
	assert.Contains(t, info.String(), "ghget 1.2.3 (commit: deadbeef, built: 2025-12-22T00:00:00Z")
}

func TestGet_BuildInfoFallback(t *testing.T) {
	withVersion(t, "dev", "unknown", "unknown", &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "cafebabe"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	info := Get()

	assert.Equal(t, "v0.4.0", info.Version)
	assert.Equal(t, "cafebabe", info.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildTime)
	assert.True(t, info.Modified)
}

func TestGet_LdflagsWin(t *testing.T) {
	withVersion(t, "1.0.0", "yesterday", "abc123", &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "cafebabe"}},
	})

	info := Get()

	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "yesterday", info.BuildTime)
}

func TestInfo_JSON(t *testing.T) {
	withVersion(t, "1.2.3", "now", "deadbeef", nil)

	data, err := Get().JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "1.2.3", decoded["version"])
	assert.Equal(t, "deadbeef", decoded["commit"])
	assert.NotContains(t, decoded, "modified")
}

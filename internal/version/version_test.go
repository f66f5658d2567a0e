package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origTag := tag
	origCommit := commit
	origBuildTime := buildTime
	origBuildInfoReader := buildInfoReader

	defer func() {
		tag = origTag
		commit = origCommit
		buildTime = origBuildTime
		buildInfoReader = origBuildInfoReader
	}()

	t.Run("ldflags values used when no build info", func(t *testing.T) {
		tag = "v1.2.0"
		commit = "abc123"
		buildTime = "2026-08-01"
		buildInfoReader = func() (*debug.BuildInfo, bool) { return nil, false }

		expected := "v1.2.0 (abc123) built at 2026-08-01\nhttps://github.com/fitplate-app/mealplan-server/releases/tag/v1.2.0"
		assert.Equal(t, expected, String())
	})

	t.Run("vcs info fills in defaults", func(t *testing.T) {
		tag = "dev"
		commit = "unknown"
		buildTime = "unknown"
		buildInfoReader = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "deadbeef"},
					{Key: "vcs.time", Value: "2026-08-02T00:00:00Z"},
				},
			}, true
		}

		expected := "dev (deadbeef) built at 2026-08-02T00:00:00Z\nhttps://github.com/fitplate-app/mealplan-server/releases/tag/dev"
		assert.Equal(t, expected, String())
	})

	t.Run("ldflags take precedence over vcs info", func(t *testing.T) {
		tag = "v2.0.0"
		commit = "ldflags-commit"
		buildTime = "ldflags-time"
		buildInfoReader = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "vcs-commit"},
					{Key: "vcs.time", Value: "vcs-time"},
				},
			}, true
		}

		expected := "v2.0.0 (ldflags-commit) built at ldflags-time\nhttps://github.com/fitplate-app/mealplan-server/releases/tag/v2.0.0"
		assert.Equal(t, expected, String())
	})
}

package version

import (
	"fmt"
	"runtime/debug"
)

var (
	tag       = "dev" // set via ldflags
	commit    = "unknown"
	buildTime = "unknown"
)

const template = "%s (%s) built at %s\nhttps://github.com/fitplate-app/mealplan-server/releases/tag/%s"

// buildInfoReader is a function type that can be mocked in tests
var buildInfoReader = defaultBuildInfoReader

func defaultBuildInfoReader() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}

// String returns the human-readable version line. ldflags values win; when the
// binary was built without them, VCS stamping from the Go toolchain fills in
// commit and build time.
func String() string {
	currentCommit := commit
	currentDate := buildTime

	info, ok := buildInfoReader()
	if ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && commit == "unknown" {
				currentCommit = setting.Value
			}
			if setting.Key == "vcs.time" && buildTime == "unknown" {
				currentDate = setting.Value
			}
		}
	}

	return fmt.Sprintf(template, tag, currentCommit, currentDate, tag)
}

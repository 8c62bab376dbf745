// Package version holds the build metadata of the recipes binary, set with
// -ldflags "-X" by the mage build target.
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary is the multi-line text printed by "recipes version".
func Summary() string {
	return fmt.Sprintf("recipes version %s\nCommit: %s\nBuilt: %s\n", Version, CommitHash, BuildDate)
}

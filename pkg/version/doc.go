// Package version implements the three-part version number used by recipes.
//
// A Version is an immutable (major, minor, patch) triple. Versions are read
// from release-notes headings such as "## 1.4.2", compared structurally and
// bumped when a release is cut.
package version

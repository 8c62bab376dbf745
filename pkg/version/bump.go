package version

import (
	"fmt"
	"strings"
)

// BumpMethod selects which part of a version is incremented.
type BumpMethod int

const (
	// Patch increments the patch number only.
	Patch BumpMethod = iota
	// Minor increments the minor number and resets patch.
	Minor
	// Major increments the major number and resets minor and patch.
	Major
)

func (m BumpMethod) String() string {
	switch m {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	}
	return fmt.Sprintf("BumpMethod(%d)", int(m))
}

// ParseBumpMethod parses "major", "minor" or "patch" (case-insensitive).
func ParseBumpMethod(s string) (BumpMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	}
	return Patch, fmt.Errorf("unknown bump method %q", s)
}

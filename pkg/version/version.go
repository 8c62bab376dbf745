package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when parsing empty or whitespace-only text.
	ErrEmpty = errors.New("version text is empty")

	// ErrInvalid is returned when text does not contain a major.minor.patch version.
	ErrInvalid = errors.New("unable to parse version")
)

// versionPattern matches a version at the end of the text, so "v1.2.3" and
// "Release 1.2.3" both parse.
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)$`)

// Version is a simplified semantic version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// New returns the version major.minor.patch.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Default is the version assumed when none can be read from release notes.
var Default = New(0, 0, 1)

// Parse parses a version from text.
func Parse(text string) (Version, error) {
	if strings.TrimSpace(text) == "" {
		return Version{}, ErrEmpty
	}

	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Version{}, fmt.Errorf("%w from: %s", ErrInvalid, text)
	}

	return fromGroups(text, m[1], m[2], m[3])
}

// TryParse parses a version from text, reporting whether it succeeded.
func TryParse(text string) (Version, bool) {
	v, err := Parse(text)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// MustParse is like Parse but panics on failure. Use it for literals.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func fromGroups(text, major, minor, patch string) (Version, error) {
	var parts [3]int
	for i, s := range []string{major, minor, patch} {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Version{}, fmt.Errorf("%w from: %s: %w", ErrInvalid, text, err)
		}
		parts[i] = n
	}
	return New(parts[0], parts[1], parts[2]), nil
}

// String returns "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 when v is less than, equal to or greater than other.
// Major is most significant, then minor, then patch.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(v.Major - other.Major)
	case v.Minor != other.Minor:
		return sign(v.Minor - other.Minor)
	default:
		return sign(v.Patch - other.Patch)
	}
}

// Equal reports whether v and other are the same version.
func (v Version) Equal(other Version) bool { return v == other }

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Greater reports whether v orders after other.
func (v Version) Greater(other Version) bool { return v.Compare(other) > 0 }

// Bump returns the next version for the given method.
func (v Version) Bump(method BumpMethod) Version {
	switch method {
	case Major:
		return New(v.Major+1, 0, 0)
	case Minor:
		return New(v.Major, v.Minor+1, 0)
	default:
		return New(v.Major, v.Minor, v.Patch+1)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// MarshalText renders the version as major.minor.patch.
func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText parses a version, so config files can carry one as a string.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

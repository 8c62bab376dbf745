package version

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

// headingPattern matches a markdown heading holding only a version, e.g. "## 1.2.3".
var headingPattern = regexp.MustCompile(`^#+\s*(\d+)\.(\d+)\.(\d+)$`)

// FromHeading parses a version from a release-notes heading line.
func FromHeading(line string) (Version, error) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return Version{}, fmt.Errorf("%w from: %s", ErrInvalid, line)
	}
	return fromGroups(line, m[1], m[2], m[3])
}

// FromFile reads the version from the first line of a release-notes file.
//
// A missing file, an empty file or a first line that is not a version
// heading all yield Default; the reason is logged and no error is returned.
// Only other read failures are reported as errors.
func FromFile(path string, log zerolog.Logger) (Version, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str("file", path).Msgf("No release notes file, using version %s", Default)
			return Default, nil
		}
		return Version{}, fmt.Errorf("read version file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return Version{}, fmt.Errorf("read version file: %w", err)
		}
		log.Info().Str("file", path).Msgf("No lines in file, using version %s", Default)
		return Default, nil
	}

	first := sc.Text()
	v, err := FromHeading(first)
	if err != nil {
		log.Info().Str("file", path).Msgf("Unable to parse version from: %s", first)
		return Default, nil
	}
	return v, nil
}

package build

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Verbosity is the requested amount of build output.
type Verbosity int

const (
	Quiet Verbosity = iota
	Minimal
	Normal
	Verbose
	Diagnostic
)

var verbosityNames = [...]string{"quiet", "minimal", "normal", "verbose", "diagnostic"}

func (v Verbosity) String() string {
	if v < Quiet || v > Diagnostic {
		return fmt.Sprintf("verbosity(%d)", int(v))
	}
	return verbosityNames[v]
}

// ParseVerbosity parses a verbosity name, ignoring case.
func ParseVerbosity(s string) (Verbosity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range verbosityNames {
		if n == name {
			return Verbosity(i), nil
		}
	}
	return Quiet, fmt.Errorf("unknown verbosity %q (want one of %s)", s, strings.Join(verbosityNames[:], ", "))
}

// Set implements pflag.Value.
func (v *Verbosity) Set(s string) error {
	parsed, err := ParseVerbosity(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements pflag.Value.
func (v *Verbosity) Type() string { return "verbosity" }

// UnmarshalText lets config files name the verbosity.
func (v *Verbosity) UnmarshalText(text []byte) error { return v.Set(string(text)) }

// MarshalText renders the verbosity name.
func (v Verbosity) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// DotNet returns the matching dotnet CLI verbosity.
func (v Verbosity) DotNet() string {
	switch v {
	case Minimal:
		return "minimal"
	case Normal:
		return "normal"
	case Verbose:
		return "detailed"
	case Diagnostic:
		return "diagnostic"
	default:
		return "quiet"
	}
}

// NuGet returns the matching nuget CLI verbosity.
func (v Verbosity) NuGet() string {
	switch v {
	case Verbose, Diagnostic:
		return "detailed"
	case Normal:
		return "normal"
	default:
		return "quiet"
	}
}

// Level returns the log level for the verbosity.
func (v Verbosity) Level() zerolog.Level {
	switch v {
	case Quiet:
		return zerolog.WarnLevel
	case Minimal, Normal:
		return zerolog.InfoLevel
	case Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

package build

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the config files looked for, in order.
var FileNames = []string{"recipes.yaml", "recipes.yml", "recipes.toml"}

// FindFile returns the first config file present in dir, or "".
func FindFile(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// fileLayer is the part of a config file this package reads.
type fileLayer struct {
	Build Config `yaml:"build" toml:"build"`
}

// LoadFile overlays the build section of the file at path onto c. Keys the
// file does not set keep their current values.
func LoadFile(path string, c *Config) error {
	layer := fileLayer{Build: *c}
	defined, err := DecodeFile(path, &layer)
	if err != nil {
		return err
	}
	if defined("build") {
		*c = layer.Build
	}
	return nil
}

// DecodeFile decodes a YAML or TOML file, chosen by extension, into out.
// Keys out does not declare are ignored so several packages can read their
// own sections of one file. The returned func reports whether a top-level
// key was present.
func DecodeFile(path string, out any) (func(key string) bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(out)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		return func(key string) bool { return meta.IsDefined(key) }, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		var top map[string]yaml.Node
		if err := yaml.Unmarshal(data, &top); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		return func(key string) bool { _, ok := top[key]; return ok }, nil
	default:
		return nil, fmt.Errorf("config file %s: unsupported extension (want .yaml, .yml or .toml)", path)
	}
}

package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile registers the recipes listed in the recipes section of a YAML
// or TOML config file. Each entry names its kind ("app" or "lib"); unset
// keys keep the recipe defaults.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recipes from %s: %w", path, err)
	}

	var entries []decoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var doc struct {
			Recipes []toml.Primitive `toml:"recipes"`
		}
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return fmt.Errorf("parse recipes from %s: %w", path, err)
		}
		for _, p := range doc.Recipes {
			entries = append(entries, func(v any) error { return meta.PrimitiveDecode(p, v) })
		}
	case ".yaml", ".yml":
		var doc struct {
			Recipes []yaml.Node `yaml:"recipes"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse recipes from %s: %w", path, err)
		}
		for i := range doc.Recipes {
			entries = append(entries, doc.Recipes[i].Decode)
		}
	default:
		return fmt.Errorf("recipes file %s: unsupported extension (want .yaml, .yml or .toml)", path)
	}

	for i, decode := range entries {
		b, err := decodeRecipe(decode)
		if err != nil {
			return fmt.Errorf("%s: recipe %d: %w", path, i+1, err)
		}
		if err := r.Add(b); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

type decoder func(v any) error

func decodeRecipe(decode decoder) (Buildable, error) {
	var head struct {
		Kind Kind `yaml:"kind" toml:"kind"`
	}
	if err := decode(&head); err != nil {
		return nil, err
	}

	var b Buildable
	switch head.Kind {
	case KindApp:
		b = NewDotNetApp()
	case KindLib:
		b = NewDotNetLib()
	default:
		return nil, fmt.Errorf("unknown recipe kind %q (want %q or %q)", head.Kind, KindApp, KindLib)
	}
	if err := decode(b); err != nil {
		return nil, err
	}
	if err := b.Common().Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

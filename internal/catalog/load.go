package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("catalog: unsupported file format")

// catalog file layout, shared by the toml and yaml decoders:
//
//	[[plants]]
//	name = "carrot"
//	grow_time = "24h"        # or grow_time_seconds = 86400
type fileCatalog struct {
	Plants []filePlant `toml:"plants" yaml:"plants"`
}

type filePlant struct {
	Name            string `toml:"name" yaml:"name"`
	GrowTime        string `toml:"grow_time" yaml:"grow_time"`
	GrowTimeSeconds int64  `toml:"grow_time_seconds" yaml:"grow_time_seconds"`
}

// LoadFile reads a catalog from a .toml, .yaml or .yml file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog load failed (%s): %w", path, err)
	}

	var raw fileCatalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, &raw)
	case ".yaml", ".yml":
		err = decodeYAML(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog parse failed (%s): %w", path, err)
	}

	c, err := raw.build()
	if err != nil {
		return nil, fmt.Errorf("catalog invalid (%s): %w", path, err)
	}
	return c, nil
}

func decodeTOML(data []byte, out *fileCatalog) error {
	meta, err := toml.Decode(string(data), out)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, out *fileCatalog) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func (f fileCatalog) build() (*Catalog, error) {
	entries := make(map[string]time.Duration, len(f.Plants))
	for i, p := range f.Plants {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("plants[%d]: %w", i, ErrInvalidName)
		}
		if _, dup := entries[name]; dup {
			return nil, fmt.Errorf("plants[%d]: duplicate plant type %q", i, name)
		}
		growTime, err := p.growTime()
		if err != nil {
			return nil, fmt.Errorf("plants[%d] (%s): %w", i, name, err)
		}
		entries[name] = growTime
	}
	return New(entries)
}

func (p filePlant) growTime() (time.Duration, error) {
	hasText := strings.TrimSpace(p.GrowTime) != ""
	hasSeconds := p.GrowTimeSeconds != 0
	switch {
	case hasText && hasSeconds:
		return 0, errors.New("set only one of grow_time and grow_time_seconds")
	case hasText:
		d, err := time.ParseDuration(strings.TrimSpace(p.GrowTime))
		if err != nil {
			return 0, fmt.Errorf("parse grow_time: %w", err)
		}
		return d, nil
	case hasSeconds:
		return time.Duration(p.GrowTimeSeconds) * time.Second, nil
	default:
		return 0, errors.New("grow_time is required")
	}
}

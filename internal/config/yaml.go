package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	yaml "go.yaml.in/yaml/v3"
)

// toJSON converts a YAML or TOML config file to JSON so every format goes
// through the same strict decoder. Other extensions are treated as JSON.
//
// Both formats decode into map[string]any; a mapping with non-string keys
// has no place in the config and fails at json.Marshal.
func toJSON(path string, data []byte) ([]byte, error) {
	var (
		doc    map[string]any
		format string
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		format = "toml"
		err = toml.Unmarshal(data, &doc)
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	if doc == nil {
		// empty document
		return []byte("{}"), nil
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", format, err)
	}
	return out, nil
}

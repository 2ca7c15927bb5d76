package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// discoveryNames are tried, in order, in a directory when no explicit
// config path is given (§6 CLI boundary: config file loading is an
// external collaborator, supplemented here for a runnable CLI).
var discoveryNames = []string{".erbfmt.yaml", ".erbfmt.yml", ".erbfmt.jsonc", ".erbfmt.json"}

// Discover looks for a config file in dir using discoveryNames, returning
// ("", nil) if none is present.
func Discover(dir string) (string, error) {
	for _, name := range discoveryNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// Load reads a config file (YAML or JSON-with-comments, by extension) and
// merges it over Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from CLI flag or discovered config file
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var override Override
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		clean := jsonc.ToJSON(data)
		if err := json.Unmarshal(clean, &override); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	return Merge(&override), nil
}

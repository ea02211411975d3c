package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the optional per-project configuration file name.
const ConfigFile = "javascan.toml"

// Config controls which files a load pass considers.
type Config struct {
	// Roots are source directories relative to the project root. Empty
	// means the project root itself.
	Roots []string `toml:"roots"`

	// Exclude lists glob patterns (matched against root-relative paths)
	// and plain substrings for files to skip.
	Exclude []string `toml:"exclude"`
}

// LoadConfig reads javascan.toml from the project root. A missing file
// yields the zero config, not an error.
func LoadConfig(root string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", ConfigFile, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}
	return cfg, nil
}

// Package config reads the optional .renamekit.toml defaults file.
// Values from the file fill in flags the user left at their defaults; explicit command line input always wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	From    string   `toml:"from"`
	To      string   `toml:"to"`
	Exclude []string `toml:"exclude"`
}

const FileName = ".renamekit.toml"

func Load(path string) (*Config, error) {
	var cfg Config

	meta, err := toml.DecodeFile(filepath.Clean(path), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
	}

	if keys := meta.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("unknown key %q in config file %q", keys[0].String(), path)
	}

	return &cfg, nil
}

// Locate returns the path of the defaults file in dir, if there is one.
func Locate(dir string) (path string, ok bool) {
	path = filepath.Clean(filepath.Join(dir, FileName))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	return path, true
}

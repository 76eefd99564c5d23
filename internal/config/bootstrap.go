package config

import (
	"errors"
	"os"
)

// EnsureConfig writes the default config to path unless a file already
// exists there. It reports whether a new file was written.
func EnsureConfig(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	cfg := Default()
	// Spell out the preset so the file is self-describing.
	fields, _ := cfg.ResolvedFields()
	cfg.Fields = fields
	if err := SaveAtomic(path, cfg); err != nil {
		return false, err
	}
	return true, nil
}

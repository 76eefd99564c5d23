package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"usajobs-list/internal/common"
)

func Validate(cfg Config) error {
	var errs []string

	fields, err := cfg.ResolvedFields()
	if err != nil {
		errs = append(errs, "variant: "+err.Error())
	}

	checkNames := func(name string, names []string) {
		for i, n := range names {
			if strings.TrimSpace(n) == "" {
				errs = append(errs, fmt.Sprintf("%s[%d] cannot be empty", name, i))
			}
		}
	}
	checkNames("fields.top", cfg.Fields.Top)
	checkNames("fields.details", cfg.Fields.Details)

	if err == nil {
		seen := map[string]bool{}
		for _, h := range fields.Header() {
			if seen[h] {
				errs = append(errs, fmt.Sprintf("field %q appears more than once", h))
			}
			seen[h] = true
		}
		if cfg.Report.SortField != "" && !seen[cfg.Report.SortField] {
			errs = append(errs, fmt.Sprintf("report.sort_field %q is not a configured field", cfg.Report.SortField))
		}
	}

	if cfg.HTTP.TimeoutSeconds <= 0 {
		errs = append(errs, "http.timeout_seconds must be > 0")
	}

	if len(errs) > 0 {
		return common.ConfigError("config validation failed:\n- "+strings.Join(errs, "\n- "), nil)
	}
	return nil
}

// SaveAtomic writes cfg as YAML, keeping the previous file as <path>.bak.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return common.FSError("create config dir", err)
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return common.FSError("write config", err)
	}

	_ = os.Remove(bak)
	if err := os.Rename(path, bak); err != nil && !errors.Is(err, os.ErrNotExist) {
		return common.FSError("back up config", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return common.FSError("replace config", err)
	}
	return nil
}

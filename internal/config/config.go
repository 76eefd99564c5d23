// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"usajobs-list/internal/common"
)

const (
	VariantExtended = "extended"
	VariantMinimal  = "minimal"

	IDField = "MatchedObjectId"
)

// Fields are the descriptor keys copied into each row, in column order.
type Fields struct {
	Top     []string `yaml:"top"`     // MatchedObjectDescriptor.<name>
	Details []string `yaml:"details"` // MatchedObjectDescriptor.UserArea.Details.<name>
}

type Config struct {
	Variant string `yaml:"variant"`
	Fields  Fields `yaml:"fields"`

	Report struct {
		SortField       string `yaml:"sort_field"`
		DetailURLPrefix string `yaml:"detail_url_prefix"`
		XLSX            bool   `yaml:"xlsx"`
	} `yaml:"report"`

	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
}

var topFields = []string{
	"PositionLocationDisplay",
	"PositionTitle",
	"PublicationStartDate",
	"ApplicationCloseDate",
	"DepartmentName",
	"PositionID",
}

var presets = map[string]Fields{
	VariantExtended: {
		Top:     topFields,
		Details: []string{"ApplyOnlineUrl", "LowGrade", "HighGrade", "PromotionPotential"},
	},
	VariantMinimal: {
		Top:     topFields,
		Details: []string{"ApplyOnlineUrl"},
	},
}

// Preset returns a copy of the named field set.
func Preset(name string) (Fields, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Fields{}, fmt.Errorf("unknown variant %q (want %s or %s)", name, VariantExtended, VariantMinimal)
	}
	return Fields{
		Top:     append([]string(nil), p.Top...),
		Details: append([]string(nil), p.Details...),
	}, nil
}

func Default() Config {
	var cfg Config
	cfg.Variant = VariantExtended
	cfg.Report.SortField = "PublicationStartDate"
	cfg.Report.DetailURLPrefix = "https://www.usajobs.gov/GetJob/ViewDetails/"
	cfg.HTTP.TimeoutSeconds = 30
	return cfg
}

// Load reads a YAML file over Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, common.FSError("read config "+path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, common.ConfigError("parse config "+path, err)
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides (USAJOBS_TIMEOUT).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	raw, ok := lookup("USAJOBS_TIMEOUT")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return common.ConfigError("USAJOBS_TIMEOUT must be a duration like 30s", err)
	}
	if d < time.Second {
		return common.ConfigError("USAJOBS_TIMEOUT must be at least 1s", nil)
	}
	cfg.HTTP.TimeoutSeconds = int(d / time.Second)
	return nil
}

// ResolvedFields returns the variant preset with any non-empty list from the
// config file replacing the preset's list.
func (c Config) ResolvedFields() (Fields, error) {
	f, err := Preset(c.Variant)
	if err != nil {
		return Fields{}, err
	}
	if len(c.Fields.Top) > 0 {
		f.Top = append([]string(nil), c.Fields.Top...)
	}
	if len(c.Fields.Details) > 0 {
		f.Details = append([]string(nil), c.Fields.Details...)
	}
	return f, nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Header is the column order every row follows.
func (f Fields) Header() []string {
	out := make([]string, 0, 1+len(f.Top)+len(f.Details))
	out = append(out, IDField)
	out = append(out, f.Top...)
	out = append(out, f.Details...)
	return out
}

package report

import (
	"fmt"
	"sort"
	"strings"

	"usajobs-list/internal/common"
	"usajobs-list/internal/config"
	"usajobs-list/internal/domain"
)

// ReviewOptions control the human-facing outputs (HTML, XLSX). CSV ignores
// them.
type ReviewOptions struct {
	SortField       string // descending string sort; "" keeps source order
	DetailURLPrefix string // prepended to the id column; "" leaves ids bare
}

func ReviewOptionsFrom(cfg config.Config) ReviewOptions {
	return ReviewOptions{
		SortField:       cfg.Report.SortField,
		DetailURLPrefix: cfg.Report.DetailURLPrefix,
	}
}

// IsLink reports whether a cell renders as a hyperlink. Only the "http"
// prefix is checked.
func IsLink(s string) bool {
	return strings.HasPrefix(s, "http")
}

// reviewTable returns a copy of t sorted by opts.SortField (descending,
// stable) with the id column rewritten to detail-page URLs. t is not
// modified.
func reviewTable(t domain.Table, opts ReviewOptions) (domain.Table, error) {
	out := t.Clone()

	if opts.SortField != "" {
		col := out.Column(opts.SortField)
		if col < 0 {
			return domain.Table{}, common.ConfigError(fmt.Sprintf("sort field %q is not in the header", opts.SortField), nil)
		}
		// Plain string comparison; the API's ISO-8601 dates order correctly.
		sort.SliceStable(out.Rows, func(i, j int) bool {
			return out.Rows[i][col] > out.Rows[j][col]
		})
	}

	if opts.DetailURLPrefix != "" {
		if id := out.Column(config.IDField); id >= 0 {
			for _, r := range out.Rows {
				r[id] = opts.DetailURLPrefix + r[id]
			}
		}
	}
	return out, nil
}

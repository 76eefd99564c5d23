package poll

import (
	"io"
	"log/slog"
	"time"

	"usajobs-list/internal/common"
	"usajobs-list/internal/config"
	"usajobs-list/internal/extract"
	"usajobs-list/internal/report"
	"usajobs-list/internal/store"
)

// Outputs lists the files a parse run produced.
type Outputs struct {
	CSV  string
	HTML string
	XLSX string // "" unless enabled
	Rows int
}

// ParseOnce flattens the saved response at path and writes the CSV, HTML
// and (optionally) XLSX tables beside it. Nothing is written unless every
// item extracts cleanly.
func ParseOnce(log *slog.Logger, cfg config.Config, path string) (Outputs, error) {
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()

	fields, err := cfg.ResolvedFields()
	if err != nil {
		return Outputs{}, common.ConfigError("resolve fields", err)
	}
	for _, ext := range []string{".csv", ".html", ".xlsx"} {
		if report.OutputPath(path, ext) == path {
			return Outputs{}, common.ConfigError("input "+path+" would be overwritten by its own "+ext+" output", nil)
		}
	}

	unlock, err := store.Lock(path)
	if err != nil {
		return Outputs{}, err
	}
	defer func() { _ = unlock() }()

	table, err := extract.ReadFile(path, fields)
	if err != nil {
		return Outputs{}, err
	}
	out := Outputs{Rows: len(table.Rows)}

	// CSV gets the rows as extracted; the review writers work on copies.
	out.CSV = report.OutputPath(path, ".csv")
	if err := store.WriteFileAtomic(out.CSV, func(w io.Writer) error {
		return report.WriteCSV(w, table)
	}); err != nil {
		return out, err
	}
	log.Info("parse.csv.ok", "path", out.CSV, "rows", out.Rows)

	opts := report.ReviewOptionsFrom(cfg)
	out.HTML = report.OutputPath(path, ".html")
	if err := store.WriteFileAtomic(out.HTML, func(w io.Writer) error {
		return report.WriteHTML(w, table, opts)
	}); err != nil {
		return out, err
	}
	log.Info("parse.html.ok", "path", out.HTML, "rows", out.Rows)

	if cfg.Report.XLSX {
		out.XLSX = report.OutputPath(path, ".xlsx")
		if err := store.WriteFileAtomic(out.XLSX, func(w io.Writer) error {
			return report.WriteXLSX(w, table, opts)
		}); err != nil {
			return out, err
		}
		log.Info("parse.xlsx.ok", "path", out.XLSX, "rows", out.Rows)
	}

	log.Info("parse.ok", "path", path, "rows", out.Rows,
		"elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}

package report

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"usajobs-list/internal/domain"
)

// WriteCSV writes the header and rows unchanged, comma separated, with
// standard quoting.
func WriteCSV(w io.Writer, t domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OutputPath swaps the extension of path for ext (".csv", ".html", ...).
// A path without an extension gets ext appended.
func OutputPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

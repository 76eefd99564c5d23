package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"usajobs-list/internal/domain"
)

const sheetName = "Jobs"

// WriteXLSX writes the review table as a workbook with one sheet. Link cells
// get a hyperlink to their own URL.
func WriteXLSX(w io.Writer, t domain.Table, opts ReviewOptions) error {
	rt, err := reviewTable(t, opts)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	for i, h := range rt.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for ri, r := range rt.Rows {
		for ci, v := range r {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
			if IsLink(v) {
				if err := f.SetCellHyperLink(sheetName, cell, v, "External"); err != nil {
					return err
				}
			}
		}
	}

	if len(rt.Header) > 0 {
		last, _ := excelize.ColumnNumberToName(len(rt.Header))
		_ = f.SetColWidth(sheetName, "A", last, 24)
	}
	// Keep the header visible while scrolling.
	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return f.Write(w)
}

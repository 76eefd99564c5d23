package domain

// Row is one flattened posting (or the header), one value per column.
type Row []string

func (r Row) Clone() Row {
	return append(Row(nil), r...)
}

// Table is a header plus data rows in source order.
type Table struct {
	Header Row
	Rows   []Row
}

// Clone deep-copies the table so one writer may rewrite cells without the
// change being visible to another.
func (t Table) Clone() Table {
	out := Table{Header: t.Header.Clone(), Rows: make([]Row, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Column returns the index of name in the header, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

package report

import (
	"html/template"
	"io"
	"strings"

	"usajobs-list/internal/domain"
)

type htmlCell struct {
	Text string
	Href template.HTMLAttr // set only for link cells
}

// attrEscaper escapes a double-quoted attribute value. Link targets are
// otherwise written as-is, with no URL normalisation.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func hrefAttr(u string) template.HTMLAttr {
	return template.HTMLAttr(`href="` + attrEscaper.Replace(u) + `"`)
}

type htmlPage struct {
	Header []string
	Rows   [][]htmlCell
}

var pageTmpl = template.Must(template.New("page").Parse(`<html>
  <body>
    <table>
      <tr>
{{- range .Header}}
        <th>{{.}}</th>
{{- end}}
      </tr>
{{- range .Rows}}
      <tr>
{{- range .}}
{{- if .Href}}
        <td>
          <a {{.Href}} target="_blank">link</a>
        </td>
{{- else}}
        <td>{{.Text}}</td>
{{- end}}
{{- end}}
      </tr>
{{- end}}
    </table>
  </body>
</html>
`))

// WriteHTML renders a single-table HTML document: rows sorted, id column
// turned into detail links, and every http* cell rendered as a link. The
// caller's table is left untouched.
func WriteHTML(w io.Writer, t domain.Table, opts ReviewOptions) error {
	rt, err := reviewTable(t, opts)
	if err != nil {
		return err
	}

	page := htmlPage{Header: rt.Header, Rows: make([][]htmlCell, 0, len(rt.Rows))}
	for _, r := range rt.Rows {
		cells := make([]htmlCell, len(r))
		for i, v := range r {
			cells[i] = htmlCell{Text: v}
			if IsLink(v) {
				cells[i].Href = hrefAttr(v)
			}
		}
		page.Rows = append(page.Rows, cells)
	}
	return pageTmpl.Execute(w, page)
}

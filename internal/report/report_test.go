package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"usajobs-list/internal/common"
	"usajobs-list/internal/domain"
	"usajobs-list/internal/report"
)

const detailPrefix = "https://www.usajobs.gov/GetJob/ViewDetails/"

func sample() domain.Table {
	return domain.Table{
		Header: domain.Row{"MatchedObjectId", "PositionTitle", "PublicationStartDate", "ApplyOnlineUrl", "LowGrade"},
		Rows: []domain.Row{
			{"700000000", "Chemist, Lead", "2019-11-10", "https://apply.example.gov/x", "GS-9"},
			{"700000001", `Toxicologist "Senior"`, "2019-11-15", "https://apply.example.gov/y", "13"},
			{"700000002", "Biologist\nField", "2019-11-10", "", "7"},
		},
	}
}

func opts() report.ReviewOptions {
	return report.ReviewOptions{SortField: "PublicationStartDate", DetailURLPrefix: detailPrefix}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sample()))

	require.Equal(t, strings.Join([]string{
		"MatchedObjectId,PositionTitle,PublicationStartDate,ApplyOnlineUrl,LowGrade",
		`700000000,"Chemist, Lead",2019-11-10,https://apply.example.gov/x,GS-9`,
		`700000001,"Toxicologist ""Senior""",2019-11-15,https://apply.example.gov/y,13`,
		"700000002,\"Biologist\nField\",2019-11-10,,7",
		"",
	}, "\n"), buf.String())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	tbl := domain.Table{Header: domain.Row{"MatchedObjectId", "PositionTitle"}}
	require.NoError(t, report.WriteCSV(&buf, tbl))
	require.Equal(t, "MatchedObjectId,PositionTitle\n", buf.String())
}

func TestWriteCSVIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, report.WriteCSV(&a, sample()))
	require.NoError(t, report.WriteCSV(&b, sample()))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func parseHTML(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestWriteHTMLSortsAndLinks(t *testing.T) {
	tbl := sample()
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, tbl, opts()))

	doc := parseHTML(t, buf.String())

	var headers []string
	doc.Find("tr").First().Find("th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, s.Text())
	})
	require.Equal(t, []string(tbl.Header), headers)

	rows := doc.Find("tr:has(td)")
	require.Equal(t, 3, rows.Length())

	// 2019-11-15 first, then the two 2019-11-10 rows in source order.
	var ids []string
	rows.Each(func(_ int, tr *goquery.Selection) {
		href, ok := tr.Find("td").First().Find("a").Attr("href")
		require.True(t, ok)
		ids = append(ids, href)
	})
	require.Equal(t, []string{
		detailPrefix + "700000001",
		detailPrefix + "700000000",
		detailPrefix + "700000002",
	}, ids)

	first := rows.Eq(1).Find("td")
	link := first.Eq(3).Find("a")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	target, _ := link.Attr("target")
	require.Equal(t, "https://apply.example.gov/x", href)
	require.Equal(t, "_blank", target)
	require.Equal(t, "link", link.Text())

	grade := first.Eq(4)
	require.Equal(t, 0, grade.Find("a").Length())
	require.Equal(t, "GS-9", grade.Text())

	// The caller's rows are not rewritten.
	require.Equal(t, "700000000", tbl.Rows[0][0])
	require.Equal(t, "2019-11-10", tbl.Rows[0][2])
}

func TestWriteHTMLEscapesText(t *testing.T) {
	tbl := domain.Table{
		Header: domain.Row{"MatchedObjectId", "PositionTitle"},
		Rows:   []domain.Row{{"1", "<script>alert(1)</script> & co"}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, tbl, report.ReviewOptions{}))

	require.NotContains(t, buf.String(), "<script>")
	doc := parseHTML(t, buf.String())
	require.Equal(t, "<script>alert(1)</script> & co", doc.Find("td").Eq(1).Text())
	require.Equal(t, "1", doc.Find("td").First().Text())
}

func TestWriteHTMLLayout(t *testing.T) {
	tbl := domain.Table{
		Header: domain.Row{"MatchedObjectId", "LowGrade"},
		Rows:   []domain.Row{{"7", "GS-9"}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, tbl, report.ReviewOptions{DetailURLPrefix: "https://x/"}))
	require.Equal(t, `<html>
  <body>
    <table>
      <tr>
        <th>MatchedObjectId</th>
        <th>LowGrade</th>
      </tr>
      <tr>
        <td>
          <a href="https://x/7" target="_blank">link</a>
        </td>
        <td>GS-9</td>
      </tr>
    </table>
  </body>
</html>
`, buf.String())
}

func TestWriteHTMLKeepsLinkTargetsVerbatim(t *testing.T) {
	tbl := domain.Table{
		Header: domain.Row{"MatchedObjectId", "ApplyOnlineUrl", "Other"},
		Rows:   []domain.Row{{"7", `https://a.gov/x y?q=é&z="1"`, "httpx:foo"}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, tbl, report.ReviewOptions{}))
	out := buf.String()

	require.Contains(t, out, `<a href="https://a.gov/x y?q=é&amp;z=&quot;1&quot;" target="_blank">link</a>`)
	require.Contains(t, out, `<a href="httpx:foo" target="_blank">link</a>`)
	require.NotContains(t, out, "ZgotmplZ")

	doc := parseHTML(t, out)
	href, _ := doc.Find("td").Eq(1).Find("a").Attr("href")
	require.Equal(t, `https://a.gov/x y?q=é&z="1"`, href)
	require.Equal(t, "7", doc.Find("td").First().Text())
}

func TestWriteHTMLUnknownSortField(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteHTML(&buf, sample(), report.ReviewOptions{SortField: "Nope"})
	require.True(t, common.IsCode(err, common.CodeConfig))
}

func TestIsLink(t *testing.T) {
	require.True(t, report.IsLink("https://apply.example.gov/x"))
	require.True(t, report.IsLink("http://x"))
	require.True(t, report.IsLink("httpish"))
	require.False(t, report.IsLink("GS-9"))
	require.False(t, report.IsLink(" https://x"))
	require.False(t, report.IsLink(""))
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "20191115.csv", report.OutputPath("20191115.json", ".csv"))
	require.Equal(t, "dir.v1/run.html", report.OutputPath("dir.v1/run.json", ".html"))
	require.Equal(t, "run.csv", report.OutputPath("run", ".csv"))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, sample(), opts()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Jobs")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, []string(sample().Header), rows[0])
	require.Equal(t, detailPrefix+"700000001", rows[1][0])

	ok, target, err := f.GetCellHyperLink("Jobs", "D2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://apply.example.gov/y", target)

	ok, _, err = f.GetCellHyperLink("Jobs", "E2")
	require.NoError(t, err)
	require.False(t, ok)
}

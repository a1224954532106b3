package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

func reportFixture() (*entity.Session, []*entity.Message, *domain.SessionReport) {
	session := &entity.Session{
		ID:        "s-1",
		UserID:    "u-1",
		Title:     "Sales overview",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	messages := []*entity.Message{
		{
			ID:        "m-1",
			SessionID: "s-1",
			Question:  "total sales by region",
			Query:     "SELECT region, SUM(sales) FROM orders GROUP BY region",
			QueryType: entity.QueryTypeSQL,
			Result: viz.NewTable([]string{"region", "sales"}, []viz.Row{
				{"region": "north", "sales": 100.0},
				{"region": "south", "sales": 250.0},
			}),
			Summary:     "South leads with 250.",
			ExecutionMS: 120,
		},
	}
	report := &domain.SessionReport{
		Session:        session,
		MessageCount:   1,
		AvgExecutionMS: 120,
	}
	return session, messages, report
}

func TestBuildHTML(t *testing.T) {
	session, messages, report := reportFixture()
	charts := map[string][]string{
		"m-1": {`<svg xmlns="http://www.w3.org/2000/svg"></svg>`},
	}

	html, err := BuildHTML(session, messages, charts, report)
	require.NoError(t, err)

	doc := string(html)
	assert.Contains(t, doc, "Sales overview")
	assert.Contains(t, doc, "total sales by region")
	assert.Contains(t, doc, "SELECT region, SUM(sales)")
	assert.Contains(t, doc, "<th>region</th>")
	assert.Contains(t, doc, "<td>north</td>")
	assert.Contains(t, doc, "South leads with 250.")
	assert.Contains(t, doc, `<svg xmlns=`, "chart SVG embeds unescaped")
}

func TestBuildHTMLCapsRowsAndCells(t *testing.T) {
	session, _, report := reportFixture()

	var rows []viz.Row
	for i := 0; i < maxTableRows+10; i++ {
		rows = append(rows, viz.Row{"n": float64(i)})
	}
	long := strings.Repeat("x", maxCellRunes+20)
	rows[0]["n"] = long

	messages := []*entity.Message{{
		ID:       "m-big",
		Question: "everything",
		Result:   viz.NewTable([]string{"n"}, rows),
	}}

	html, err := BuildHTML(session, messages, nil, report)
	require.NoError(t, err)

	doc := string(html)
	assert.Contains(t, doc, "10 more rows omitted")
	assert.NotContains(t, doc, long, "long cells are truncated")
	assert.Contains(t, doc, strings.Repeat("x", maxCellRunes)+"…")
	assert.Equal(t, maxTableRows, strings.Count(doc, "<tr><td>"))
}

func TestBuildHTMLFailedExchange(t *testing.T) {
	session, _, report := reportFixture()
	messages := []*entity.Message{{
		ID:           "m-err",
		Question:     "bad question",
		ErrorMessage: "query failed: table missing",
	}}

	html, err := BuildHTML(session, messages, nil, report)
	require.NoError(t, err)

	doc := string(html)
	assert.Contains(t, doc, "query failed: table missing")
	assert.NotContains(t, doc, "<table>", "failed exchanges show no result table")
}

func TestBuildHTMLEscapesUserContent(t *testing.T) {
	session, messages, report := reportFixture()
	messages[0].Question = `<script>alert(1)</script>`

	html, err := BuildHTML(session, messages, nil, report)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "", truncateCell(nil))
	assert.Equal(t, "42", truncateCell(42))
	assert.Equal(t, "abc", truncateCell("abc"))

	long := strings.Repeat("y", maxCellRunes*2)
	got := truncateCell(long)
	assert.Equal(t, maxCellRunes+1, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

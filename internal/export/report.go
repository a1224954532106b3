// Package export builds the HTML session report that feeds the external
// PDF renderer.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

const (
	// maxTableRows caps the rendered result table per exchange; the full
	// set stays in the database.
	maxTableRows = 50
	// maxCellRunes truncates long cell values so wide results stay on the
	// page.
	maxCellRunes = 100
)

// ReportData is the template input for one session report.
type ReportData struct {
	Session     *entity.Session
	Report      *domain.SessionReport
	Exchanges   []Exchange
	GeneratedAt time.Time
}

// Exchange is one rendered question/answer block.
type Exchange struct {
	Index          int
	Question       string
	Query          string
	QueryType      string
	Columns        []string
	Rows           [][]string
	TruncatedRows  int
	Summary        string
	ThoughtProcess string
	ErrorMessage   string
	Charts         []template.HTML
	CreatedAt      time.Time
}

// BuildHTML renders the report document. charts maps message ID to the SVG
// documents selected for that exchange.
func BuildHTML(session *entity.Session, messages []*entity.Message, charts map[string][]string, report *domain.SessionReport) ([]byte, error) {
	data := ReportData{
		Session:     session,
		Report:      report,
		GeneratedAt: time.Now(),
	}

	for i, m := range messages {
		ex := Exchange{
			Index:          i + 1,
			Question:       m.Question,
			Query:          m.Query,
			QueryType:      m.QueryType,
			Summary:        m.Summary,
			ThoughtProcess: m.ThoughtProcess,
			ErrorMessage:   m.ErrorMessage,
			CreatedAt:      m.CreatedAt,
		}

		ex.Columns = m.Result.Columns
		rows := m.Result.Rows
		if len(rows) > maxTableRows {
			ex.TruncatedRows = len(rows) - maxTableRows
			rows = rows[:maxTableRows]
		}
		for _, row := range rows {
			cells := make([]string, len(ex.Columns))
			for j, col := range ex.Columns {
				cells[j] = truncateCell(row[col])
			}
			ex.Rows = append(ex.Rows, cells)
		}

		// Chart SVGs are engine output, safe to embed unescaped.
		for _, svg := range charts[m.ID] {
			ex.Charts = append(ex.Charts, template.HTML(svg))
		}

		data.Exchanges = append(data.Exchanges, ex)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateCell(v any) string {
	s := ""
	if v != nil {
		s = fmt.Sprint(v)
	}
	runes := []rune(s)
	if len(runes) > maxCellRunes {
		return string(runes[:maxCellRunes]) + "…"
	}
	return s
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Session.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 22px; border-bottom: 2px solid #4a90d9; padding-bottom: 8px; }
  h2 { font-size: 16px; margin-top: 32px; }
  .meta, .stats { display: grid; grid-template-columns: repeat(2, 1fr); gap: 4px 24px; margin: 16px 0; }
  .meta div, .stats div { font-size: 12px; }
  .label { color: #777; }
  pre.query { background: #f5f5f5; border-left: 3px solid #4a90d9; padding: 8px; font-size: 11px; white-space: pre-wrap; }
  table { border-collapse: collapse; width: 100%; font-size: 11px; margin: 8px 0; }
  th, td { border: 1px solid #ddd; padding: 4px 6px; text-align: left; }
  th { background: #f0f4f8; }
  .summary { font-size: 12px; margin: 8px 0; }
  .thought { font-size: 11px; color: #666; font-style: italic; }
  .error { color: #b00020; font-size: 12px; }
  .truncated { font-size: 10px; color: #999; }
  .chart { margin: 12px 0; }
  footer { margin-top: 40px; font-size: 10px; color: #999; }
</style>
</head>
<body>
<h1>{{.Session.Title}}</h1>
<div class="meta">
  <div><span class="label">Session ID:</span> {{.Session.ID}}</div>
  <div><span class="label">Created:</span> {{.Session.CreatedAt.Format "2006-01-02 15:04:05"}}</div>
  <div><span class="label">Queries:</span> {{.Report.MessageCount}}</div>
  <div><span class="label">Failed:</span> {{.Report.FailedCount}}</div>
  <div><span class="label">Avg execution:</span> {{.Report.AvgExecutionMS}} ms</div>
  <div><span class="label">Duration:</span> {{.Report.DurationMS}} ms</div>
</div>

{{range .Exchanges}}
<h2>{{.Index}}. {{.Question}}</h2>
{{if .ErrorMessage}}
<p class="error">{{.ErrorMessage}}</p>
{{else}}
{{if .Query}}<pre class="query">{{.Query}}</pre>{{end}}
{{if .Columns}}
<table>
  <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
  {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
  {{end}}
</table>
{{if .TruncatedRows}}<p class="truncated">… {{.TruncatedRows}} more rows omitted</p>{{end}}
{{end}}
{{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
{{if .ThoughtProcess}}<p class="thought">{{.ThoughtProcess}}</p>{{end}}
{{range .Charts}}<div class="chart">{{.}}</div>
{{end}}
{{end}}
{{end}}

<footer>Generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}} by EchoSQL</footer>
</body>
</html>
`))

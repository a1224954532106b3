package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/RahulRR-10/EchoSQL/internal/cli/types"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)  // Cyan
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // Gray
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true) // Pink

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")). // Yellow
			MarginTop(1)

	queryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // Blue
)

// maxDisplayRows caps the number of result rows printed to the terminal.
const maxDisplayRows = 20

// RenderAnswer renders one question/answer exchange.
func RenderAnswer(m *types.Message) string {
	var b strings.Builder

	if m.Error != "" {
		b.WriteString(color.RedString("✗ %s", m.Error))
		return b.String()
	}

	if m.Query != "" {
		label := strings.ToUpper(m.QueryType)
		if label == "" {
			label = "QUERY"
		}
		b.WriteString(keyStyle.Render(label+":") + " " + queryStyle.Render(m.Query) + "\n")
	}

	b.WriteString(RenderResultTable(m.Result))

	if m.Summary != "" {
		b.WriteString("\n" + summaryStyle.Render(m.Summary))
	}

	b.WriteString("\n" + keyStyle.Render(fmt.Sprintf("(%d rows, %dms)", len(m.Result.Rows), m.ExecutionMS)))

	return b.String()
}

// RenderResultTable renders a result set as an aligned text table in the
// server's column order.
func RenderResultTable(t viz.Table) string {
	if t.IsEmpty() {
		return keyStyle.Render("(no rows)")
	}

	rows := t.Rows
	truncated := 0
	if len(rows) > maxDisplayRows {
		truncated = len(rows) - maxDisplayRows
		rows = rows[:maxDisplayRows]
	}

	// Column widths
	widths := make([]int, len(t.Columns))
	cells := make([][]string, len(rows))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for r, row := range rows {
		cells[r] = make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cell := fmt.Sprintf("%v", row[col])
			if row[col] == nil {
				cell = "null"
			}
			cells[r][i] = cell
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, col := range t.Columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s", widths[i], col)))
	}
	b.WriteString("\n")
	for _, row := range cells {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	if truncated > 0 {
		b.WriteString(keyStyle.Render(fmt.Sprintf("... %d more rows", truncated)) + "\n")
	}

	return b.String()
}

// RenderSessionList renders sessions as an aligned list.
func RenderSessionList(sessions []types.Session, activeID string) string {
	if len(sessions) == 0 {
		return keyStyle.Render("No sessions found")
	}

	var b strings.Builder
	for _, s := range sessions {
		marker := "  "
		title := s.Title
		if s.ID == activeID {
			marker = highlightStyle.Render("* ")
			title = highlightStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			marker,
			keyStyle.Render(s.ID),
			title,
			keyStyle.Render(s.UpdatedAt),
		))
	}
	return b.String()
}

// RenderBookmarkList renders bookmarks as an aligned list.
func RenderBookmarkList(bookmarks []types.Bookmark) string {
	if len(bookmarks) == 0 {
		return keyStyle.Render("No bookmarks found")
	}

	var b strings.Builder
	for _, bm := range bookmarks {
		b.WriteString(fmt.Sprintf("%s  %s\n    %s\n",
			keyStyle.Render(bm.ID),
			headerStyle.Render(bm.Title),
			bm.Question,
		))
	}
	return b.String()
}

// RenderSessionSummary renders a total line for the session list.
func RenderSessionSummary(count int) string {
	label := "sessions"
	if count == 1 {
		label = "session"
	}
	return summaryStyle.Render(fmt.Sprintf("Total: %s %s",
		highlightStyle.Render(fmt.Sprintf("%d", count)),
		keyStyle.Render(label),
	))
}

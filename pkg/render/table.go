package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/easyops/context-academy-go/pkg/catalog"
	"github.com/easyops/context-academy-go/pkg/playground"
)

// Table 是简单的静态表格
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable 创建表格
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow 追加一行
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View 使用给定样式渲染表格
func (t *Table) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	header := styles.Bold.Padding(0, 1)
	cell := styles.Body.Padding(0, 1)
	sep := styles.Muted.Render("|")

	writeRow := func(style lipgloss.Style, row []string) {
		for i := range widths {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			sb.WriteString(style.Width(widths[i] + 2).Render(value))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(header, t.Headers)
	total := len(widths) - 1
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(cell, row)
	}

	return sb.String()
}

// ScenarioTable 渲染场景列表
func (r *Renderer) ScenarioTable(scenarios []playground.Scenario) string {
	t := NewTable("Scenarios", "ID", "Title", "Difficulty", "Components", "Responses")
	for _, s := range scenarios {
		t.AddRow(s.ID, s.Title, string(s.Difficulty),
			fmt.Sprint(len(s.Components)), fmt.Sprint(len(s.Responses)))
	}
	return t.View(r.styles)
}

// MatrixTable 渲染选择矩阵
func (r *Renderer) MatrixTable(scenario *playground.Scenario, rows []catalog.MatrixRow) string {
	t := NewTable("Selection matrix: "+scenario.ID, "Enabled", "Response", "Method", "Heuristic", "Score", "Tokens")
	for _, row := range rows {
		enabled := "{" + strings.Join(row.Enabled, ", ") + "}"
		t.AddRow(enabled, row.ResponseID, string(row.Method),
			fmt.Sprint(row.Heuristic), fmt.Sprint(row.Score), fmt.Sprint(row.Tokens))
	}
	out := t.View(r.styles)
	if unreachable := catalog.Unreachable(scenario, rows); len(unreachable) > 0 {
		out += r.styles.Negative.Render("unreachable: "+strings.Join(unreachable, ", ")) + "\n"
	}
	return out
}

// ValidationReport 渲染校验报告
func (r *Renderer) ValidationReport(report *catalog.Report) string {
	var sb strings.Builder
	for _, issue := range report.Errors {
		sb.WriteString(r.styles.Negative.Render("error   " + issue.Error()))
		sb.WriteString("\n")
	}
	for _, issue := range report.Warnings {
		sb.WriteString(r.styles.Muted.Render("warning " + issue.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("%d error(s), %d warning(s)\n", len(report.Errors), len(report.Warnings)))
	return sb.String()
}

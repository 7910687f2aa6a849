// Package render 将 Playground 的评估结果渲染为终端文本。
package render

import "github.com/charmbracelet/lipgloss"

// 调色板
var (
	ColorPrimary = lipgloss.Color("#8b5cf6")
	ColorMuted   = lipgloss.Color("#64748b")
	ColorBorder  = lipgloss.Color("#334155")

	ColorPoor      = lipgloss.Color("#ef4444")
	ColorFair      = lipgloss.Color("#f59e0b")
	ColorGood      = lipgloss.Color("#3b82f6")
	ColorExcellent = lipgloss.Color("#10b981")
)

// Styles 是渲染使用的样式集合
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Body     lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Box      lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style

	// Colored 为 false 时忽略组件颜色和分档颜色
	Colored bool
}

// DefaultStyles 返回带颜色的默认样式
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Heading:  lipgloss.NewStyle().Bold(true).Underline(true),
		Body:     lipgloss.NewStyle(),
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1),
		Positive: lipgloss.NewStyle().Foreground(ColorExcellent),
		Negative: lipgloss.NewStyle().Foreground(ColorPoor),
		Colored:  true,
	}
}

// PlainStyles 返回无装饰的样式，用于 --no-color 和测试
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Heading:  plain,
		Body:     plain,
		Bold:     plain,
		Muted:    plain,
		Box:      plain,
		Positive: plain,
		Negative: plain,
	}
}

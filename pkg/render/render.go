package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/playground"
)

const (
	defaultBarWidth = 30

	barFilled = "█"
	barEmpty  = "░"
	checkOn   = "✓"
	checkOff  = "○"
)

// Renderer 渲染评估视图
type Renderer struct {
	styles   Styles
	barWidth int
}

// Option 配置 Renderer
type Option func(*Renderer)

// WithStyles 设置样式
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithBarWidth 设置进度条宽度
func WithBarWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.barWidth = width
		}
	}
}

// New 创建 Renderer
func New(opts ...Option) *Renderer {
	r := &Renderer{
		styles:   DefaultStyles(),
		barWidth: defaultBarWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Evaluation 渲染完整的评估视图：组件开关、上下文窗口、Token 条、响应与原则清单
func (r *Renderer) Evaluation(scenario *playground.Scenario, ev *playground.Evaluation) string {
	blocks := []string{
		r.styles.Title.Render(scenario.Title),
		r.Toggles(scenario.Components, ev.Enabled),
		r.styles.Heading.Render("Context Window"),
		r.ContextWindow(scenario.Components, ev.Sections),
		r.TokenBar(ev.TokenUsage),
		r.styles.Heading.Render("Agent Response"),
		r.Response(ev.Selection),
		r.ScoreGauge(ev.Selection.Response.Score),
		r.Diagnostics(ev.Selection.Response),
	}
	if len(ev.Principles) > 0 {
		blocks = append(blocks, r.styles.Heading.Render("Principles"), r.Principles(ev.Principles))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

// Toggles 渲染组件开关列表
func (r *Renderer) Toggles(components []academyctx.Component, enabled academyctx.EnabledSet) string {
	parts := make([]string, len(components))
	for i := range components {
		c := &components[i]
		mark := checkOff
		style := r.styles.Muted
		if enabled.Has(c.ID) {
			mark = checkOn
			style = r.componentStyle(c)
		}
		parts[i] = style.Render(fmt.Sprintf("%s %s (%d)", mark, c.Short(), c.Tokens))
	}
	return strings.Join(parts, "  ")
}

// ContextWindow 渲染上下文窗口，每个段落使用组件颜色标注标题
func (r *Renderer) ContextWindow(components []academyctx.Component, sections []academyctx.Section) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		header := r.styles.Bold
		if c, ok := academyctx.FindComponent(components, s.ComponentID); ok {
			header = r.componentStyle(c).Bold(true)
		}
		parts[i] = header.Render("["+s.Label+"]") + "\n" + r.styles.Body.Render(s.Content)
	}
	return r.styles.Box.Render(strings.Join(parts, "\n\n"))
}

// TokenBar 渲染 Token 占用进度条
func (r *Renderer) TokenBar(usage academyctx.TokenUsage) string {
	filled := 0
	if usage.Max > 0 {
		filled = r.barWidth * usage.Used / usage.Max
	}
	if filled > r.barWidth {
		filled = r.barWidth
	}
	bar := r.styles.Positive.Render(strings.Repeat(barFilled, filled)) +
		r.styles.Muted.Render(strings.Repeat(barEmpty, r.barWidth-filled))
	return fmt.Sprintf("Tokens %s %d/%d (%d%%)", bar, usage.Used, usage.Max, usage.Percentage)
}

// Response 渲染选中的响应
func (r *Renderer) Response(sel playground.Selection) string {
	method := "exact match"
	if sel.Method == playground.MethodHeuristic {
		method = "closest match"
	}
	return r.styles.Box.Render(sel.Response.AgentResponse) + "\n" +
		r.styles.Muted.Render(fmt.Sprintf("response %s (%s)", sel.Response.ID, method))
}

// ScoreGauge 渲染质量分仪表，颜色随分档变化
func (r *Renderer) ScoreGauge(score int) string {
	grade := playground.GradeFor(score)
	filled := r.barWidth * score / 100
	style := r.gradeStyle(grade)
	bar := style.Render(strings.Repeat(barFilled, filled)) +
		r.styles.Muted.Render(strings.Repeat(barEmpty, r.barWidth-filled))
	return fmt.Sprintf("Score  %s %s/100 %s", bar, strconv.Itoa(score), style.Render(string(grade)))
}

// Diagnostics 渲染问题与优点
func (r *Renderer) Diagnostics(resp *playground.Response) string {
	var b strings.Builder
	for _, s := range resp.Strengths {
		b.WriteString(r.styles.Positive.Render("+ "+s) + "\n")
	}
	for _, s := range resp.Issues {
		b.WriteString(r.styles.Negative.Render("- "+s) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Principles 渲染原则清单
func (r *Renderer) Principles(statuses []playground.PrincipleStatus) string {
	lines := make([]string, len(statuses))
	for i, st := range statuses {
		if st.Active {
			lines[i] = r.styles.Positive.Render(checkOn + " " + st.Principle.Title)
			continue
		}
		lines[i] = r.styles.Muted.Render(fmt.Sprintf("%s %s (enable: %s)",
			checkOff, st.Principle.Title, strings.Join(st.MissingLinks, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) componentStyle(c *academyctx.Component) lipgloss.Style {
	if !r.styles.Colored || c.Color == "" {
		return r.styles.Body
	}
	return r.styles.Body.Foreground(lipgloss.Color(c.Color))
}

func (r *Renderer) gradeStyle(g playground.Grade) lipgloss.Style {
	if !r.styles.Colored {
		return r.styles.Body
	}
	switch g {
	case playground.GradePoor:
		return r.styles.Body.Foreground(ColorPoor)
	case playground.GradeFair:
		return r.styles.Body.Foreground(ColorFair)
	case playground.GradeGood:
		return r.styles.Body.Foreground(ColorGood)
	default:
		return r.styles.Body.Foreground(ColorExcellent)
	}
}

package catalog

import (
	stderrors "errors"
	"fmt"
	"strings"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/playground"
)

// Severity 表示校验问题的严重程度。
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue 是一条校验问题。
type Issue struct {
	Severity   Severity `json:"severity"`
	ScenarioID string   `json:"scenarioId,omitempty"`
	// Subject 是出问题的组件、响应或原则 ID
	Subject string `json:"subject,omitempty"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口。
func (i Issue) Error() string {
	var b strings.Builder
	if i.ScenarioID != "" {
		fmt.Fprintf(&b, "scenario %q: ", i.ScenarioID)
	}
	if i.Subject != "" {
		fmt.Fprintf(&b, "%s: ", i.Subject)
	}
	b.WriteString(i.Err.Error())
	return b.String()
}

// Unwrap 返回底层错误，便于 errors.Is 判断。
func (i Issue) Unwrap() error {
	return i.Err
}

// Report 是场景目录的校验报告。
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// HasErrors 报告是否存在致命错误。
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err 将所有致命错误合并为一个 error，没有错误时返回 nil。
func (r *Report) Err() error {
	return join(r.Errors)
}

// WarningErr 将所有警告合并为一个 error，没有警告时返回 nil。
func (r *Report) WarningErr() error {
	return join(r.Warnings)
}

func join(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, len(issues))
	for i := range issues {
		errs[i] = issues[i]
	}
	return stderrors.Join(errs...)
}

// add 记录一条问题，严重程度由 errors.IsWarning 决定。
func (r *Report) add(scenarioID, subject string, err error, format string, args ...any) {
	severity := SeverityError
	if errors.IsWarning(err) {
		severity = SeverityWarning
	}
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{err}, args...)...)
	}

	issue := Issue{Severity: severity, ScenarioID: scenarioID, Subject: subject, Err: err}
	if severity == SeverityWarning {
		r.Warnings = append(r.Warnings, issue)
	} else {
		r.Errors = append(r.Errors, issue)
	}
}

// Validate 在加载时校验场景目录。
//
// 致命错误：响应列表为空、引用未知组件、ID 缺失或重复、分数越界、Token 为负。
// 警告：重复的精确匹配、缺少空集合或全集合对应的响应、Token 偏差超出容忍度。
func Validate(scenarios []playground.Scenario, opts ...Option) *Report {
	o := newOptions(opts)
	report := &Report{Errors: []Issue{}, Warnings: []Issue{}}

	seen := make(map[string]bool, len(scenarios))
	for i := range scenarios {
		s := &scenarios[i]
		if s.ID == "" {
			report.add("", fmt.Sprintf("scenario[%d]", i), errors.ErrMissingID, "")
		} else if seen[s.ID] {
			report.add(s.ID, "", errors.ErrDuplicateScenario, "")
		}
		seen[s.ID] = true

		validateScenario(report, s, o)
	}

	return report
}

func validateScenario(report *Report, s *playground.Scenario, o *options) {
	components := make(map[string]bool, len(s.Components))
	for i := range s.Components {
		c := &s.Components[i]
		switch {
		case c.ID == "":
			report.add(s.ID, fmt.Sprintf("component[%d]", i), errors.ErrMissingID, "")
			continue
		case components[c.ID]:
			report.add(s.ID, c.ID, errors.ErrDuplicateComponent, "")
		}
		components[c.ID] = true

		if c.Tokens < 0 {
			report.add(s.ID, c.ID, errors.ErrNegativeTokens, "got %d", c.Tokens)
		}
		if c.Kind != "" && !c.Kind.IsValid() {
			report.add(s.ID, c.ID, errors.ErrInvalidInput, "unknown kind %q", c.Kind)
		}
		if o.driftTolerance > 0 && o.counter != nil {
			if d := academyctx.MeasureDrift(o.counter, c); d.Ratio > o.driftTolerance {
				report.add(s.ID, c.ID, errors.ErrTokenDrift,
					"authored %d, measured %d (%.0f%%)", d.Authored, d.Measured, d.Ratio*100)
			}
		}
	}

	for _, id := range s.DefaultEnabled {
		if !components[id] {
			report.add(s.ID, "default_enabled", errors.ErrUnknownComponentReference, "%s", id)
		}
	}

	validateResponses(report, s, components)

	for i := range s.Principles {
		p := &s.Principles[i]
		subject := p.ID
		if subject == "" {
			subject = fmt.Sprintf("principle[%d]", i)
			report.add(s.ID, subject, errors.ErrMissingID, "")
		}
		for _, id := range p.LinkedComponents {
			if !components[id] {
				report.add(s.ID, subject, errors.ErrUnknownComponentReference, "%s", id)
			}
		}
	}
}

func validateResponses(report *Report, s *playground.Scenario, components map[string]bool) {
	if len(s.Responses) == 0 {
		report.add(s.ID, "", errors.ErrEmptyCatalog, "")
		return
	}

	ids := make(map[string]bool, len(s.Responses))
	// 规范化后的必需集合 -> 第一个拥有它的响应
	exact := make(map[string]string, len(s.Responses))
	full := academyctx.AllEnabled(s.Components)
	hasEmpty, hasFull := false, false

	for i := range s.Responses {
		r := &s.Responses[i]
		subject := r.ID
		switch {
		case r.ID == "":
			subject = fmt.Sprintf("response[%d]", i)
			report.add(s.ID, subject, errors.ErrMissingID, "")
		case ids[r.ID]:
			report.add(s.ID, subject, errors.ErrDuplicateResponse, "")
		}
		ids[r.ID] = true

		if r.Score < 0 || r.Score > 100 {
			report.add(s.ID, subject, errors.ErrInvalidScore, "got %d", r.Score)
		}

		required := make(map[string]bool, len(r.RequiredComponents))
		for _, id := range r.RequiredComponents {
			if !components[id] {
				report.add(s.ID, subject, errors.ErrUnknownComponentReference, "%s", id)
			}
			if required[id] {
				report.add(s.ID, subject, errors.ErrDuplicateComponent, "%s listed twice in required_components", id)
			}
			required[id] = true
		}

		set := r.RequiredSet()
		key := set.String()
		if first, ok := exact[key]; ok {
			report.add(s.ID, subject, errors.ErrDuplicateExactMatch,
				"same required set as %q, which always wins", first)
		} else {
			exact[key] = subject
		}

		hasEmpty = hasEmpty || set.IsEmpty()
		hasFull = hasFull || set.Equal(full)
	}

	if !hasEmpty {
		report.add(s.ID, "", errors.ErrMissingEmptyResponse, "")
	}
	if !hasFull && len(s.Components) > 0 {
		report.add(s.ID, "", errors.ErrMissingFullResponse, "")
	}
}

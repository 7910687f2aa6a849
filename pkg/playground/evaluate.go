package playground

import (
	"fmt"
	"strings"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/core/message"
)

// Grade 是质量分所在的分档，用于分数仪表的着色。
type Grade string

const (
	GradePoor      Grade = "poor"
	GradeFair      Grade = "fair"
	GradeGood      Grade = "good"
	GradeExcellent Grade = "excellent"
)

// GradeFor 返回分数对应的分档：<40 poor，<70 fair，<90 good，其余 excellent。
func GradeFor(score int) Grade {
	switch {
	case score < 40:
		return GradePoor
	case score < 70:
		return GradeFair
	case score < 90:
		return GradeGood
	default:
		return GradeExcellent
	}
}

// PrincipleStatus 表示一条原则在当前集合下的满足情况。
type PrincipleStatus struct {
	Principle *Principle `json:"principle"`
	// Active 为 true 表示所有关联组件都已启用
	Active bool `json:"active"`
	// EnabledLinks 是已启用的关联组件
	EnabledLinks []string `json:"enabledLinks"`
	// MissingLinks 是未启用的关联组件
	MissingLinks []string `json:"missingLinks"`
}

// Evaluation 是展示层一次刷新所需的全部视图。
type Evaluation struct {
	ScenarioID    string                `json:"scenarioId"`
	Enabled       academyctx.EnabledSet `json:"enabled"`
	ContextWindow string                `json:"contextWindow"`
	Sections      []academyctx.Section  `json:"sections"`
	TokenUsage    academyctx.TokenUsage `json:"tokenUsage"`
	Selection     Selection             `json:"selection"`
	Grade         Grade                 `json:"grade"`
	Principles    []PrincipleStatus     `json:"principles"`
	// Transcript 是上下文窗口加上选中响应组成的模拟对话
	Transcript []message.Message `json:"transcript"`
}

// Evaluate 使用默认权重评估场景。
func Evaluate(scenario *Scenario, enabled academyctx.EnabledSet) (*Evaluation, error) {
	return defaultSelector.Evaluate(scenario, enabled)
}

// Evaluate 计算上下文窗口、Token 占用、选中的响应和原则清单。
//
// enabled 中包含场景没有的组件时返回 ErrUnknownComponentReference，
// 场景没有任何响应时返回 ErrEmptyCatalog，客户消息为空时返回 ErrInvalidInput。
func (s *Selector) Evaluate(scenario *Scenario, enabled academyctx.EnabledSet) (*Evaluation, error) {
	if scenario == nil {
		return nil, errors.WrapError(errors.ErrInvalidInput, "nil scenario")
	}

	if unknown := enabled.Unknown(scenario.Components); len(unknown) > 0 {
		return nil, fmt.Errorf("scenario %q: %w: %s",
			scenario.ID, errors.ErrUnknownComponentReference, strings.Join(unknown, ", "))
	}

	selection, err := s.Explain(enabled, scenario.Responses)
	if err != nil {
		return nil, errors.WrapError(err, "scenario "+scenario.ID)
	}

	sections := academyctx.Sections(enabled, scenario.Components, scenario.CustomerMessage)

	transcript, err := academyctx.AssembleMessages(enabled, scenario.Components,
		scenario.CustomerMessage, selection.Response.AgentResponse)
	if err != nil {
		return nil, fmt.Errorf("%w: scenario %q: %w", errors.ErrInvalidInput, scenario.ID, err)
	}

	return &Evaluation{
		ScenarioID:    scenario.ID,
		Enabled:       enabled,
		ContextWindow: academyctx.NewDefaultStructurer().Structure(sections),
		Sections:      sections,
		TokenUsage:    academyctx.ComputeTokenUsage(enabled, scenario.Components),
		Selection:     selection,
		Grade:         GradeFor(selection.Response.Score),
		Principles:    PrincipleChecklist(enabled, scenario.Principles),
		Transcript:    transcript,
	}, nil
}

// PrincipleChecklist 计算每条原则的满足情况，顺序与编写顺序一致。
func PrincipleChecklist(enabled academyctx.EnabledSet, principles []Principle) []PrincipleStatus {
	statuses := make([]PrincipleStatus, len(principles))
	for i := range principles {
		p := &principles[i]
		st := PrincipleStatus{
			Principle:    p,
			EnabledLinks: []string{},
			MissingLinks: []string{},
		}
		for _, id := range p.LinkedComponents {
			if enabled.Has(id) {
				st.EnabledLinks = append(st.EnabledLinks, id)
			} else {
				st.MissingLinks = append(st.MissingLinks, id)
			}
		}
		st.Active = len(st.MissingLinks) == 0
		statuses[i] = st
	}
	return statuses
}

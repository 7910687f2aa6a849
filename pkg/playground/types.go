// Package playground 实现 Playground 的响应选择引擎。
//
// 给定一组已启用的上下文组件，引擎确定性地从场景预先编写的响应中
// 选出最具代表性的一条，并给出质量分、问题与优点诊断、上下文窗口
// 以及 Token 占用。所有操作都是纯函数，可以在每次切换时直接调用。
package playground

import (
	academyctx "github.com/easyops/context-academy-go/pkg/context"
)

// Difficulty 表示场景难度。
type Difficulty string

const (
	// DifficultyBeginner 入门
	DifficultyBeginner Difficulty = "beginner"
	// DifficultyIntermediate 进阶
	DifficultyIntermediate Difficulty = "intermediate"
	// DifficultyAdvanced 高级
	DifficultyAdvanced Difficulty = "advanced"
)

// Response 是预先编写的 Agent 响应记录。
type Response struct {
	// ID 在场景内唯一
	ID string `json:"id" yaml:"id"`
	// RequiredComponents 是解锁该响应所需的组件 ID 集合（顺序无关）
	RequiredComponents []string `json:"requiredComponents" yaml:"required_components"`
	// Score 是质量分 [0, 100]
	Score int `json:"score" yaml:"score"`
	// AgentResponse 是模拟的 Agent 输出
	AgentResponse string `json:"agentResponse" yaml:"agent_response"`
	// Issues 是按顺序排列的问题诊断
	Issues []string `json:"issues" yaml:"issues"`
	// Strengths 是按顺序排列的优点诊断
	Strengths []string `json:"strengths" yaml:"strengths"`
}

// RequiredSet 返回必需组件的集合形式。
func (r *Response) RequiredSet() academyctx.EnabledSet {
	return academyctx.NewEnabledSet(r.RequiredComponents...)
}

// Principle 是与组件关联的教学原则，不影响选择。
type Principle struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	LinkedComponents []string `json:"linkedComponents" yaml:"linked_components"`
}

// Scenario 是一个独立的 Playground 配置。
//
// 场景之间互不影响：一个场景中的切换不会改变另一个场景的状态。
type Scenario struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Difficulty  Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`

	// CustomerMessage 是追加在上下文窗口最后的模拟用户消息
	CustomerMessage string `json:"customerMessage" yaml:"customer_message"`

	// DefaultEnabled 是场景激活时默认启用的组件
	DefaultEnabled []string `json:"defaultEnabled,omitempty" yaml:"default_enabled,omitempty"`

	Components []academyctx.Component `json:"components" yaml:"components"`
	Responses  []Response             `json:"responses" yaml:"responses"`
	Principles []Principle            `json:"principles" yaml:"principles"`
}

// InitialEnabled 返回场景激活时的已启用集合。
func (s *Scenario) InitialEnabled() academyctx.EnabledSet {
	return academyctx.NewEnabledSet(s.DefaultEnabled...)
}

// Component 按 ID 查找组件。
func (s *Scenario) Component(id string) (*academyctx.Component, bool) {
	return academyctx.FindComponent(s.Components, id)
}

// Response 按 ID 查找响应。
func (s *Scenario) Response(id string) (*Response, bool) {
	for i := range s.Responses {
		if s.Responses[i].ID == id {
			return &s.Responses[i], true
		}
	}
	return nil, false
}

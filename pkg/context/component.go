package context

// Kind 表示上下文组件的类别。
//
// 类别只影响展示（段落样式、图标），不参与响应选择。
type Kind string

const (
	// KindSystem 表示系统提示词。
	KindSystem Kind = "system"

	// KindTools 表示工具定义。
	KindTools Kind = "tools"

	// KindRAG 表示检索到的文档。
	KindRAG Kind = "rag"

	// KindMemory 表示长期记忆。
	KindMemory Kind = "memory"

	// KindHistory 表示对话历史。
	KindHistory Kind = "history"

	// KindExamples 表示少样本示例。
	KindExamples Kind = "examples"

	// KindCustom 表示其他自定义组件。
	KindCustom Kind = "custom"
)

// IsValid 检查类别是否为已知值。
func (k Kind) IsValid() bool {
	switch k {
	case KindSystem, KindTools, KindRAG, KindMemory, KindHistory, KindExamples, KindCustom:
		return true
	default:
		return false
	}
}

// Component 表示一个可切换的上下文组件。
//
// 组件在编写后不可变；Tokens 是编写时给定的静态值，不做实时计数。
type Component struct {
	// ID 在场景内唯一。
	ID string `json:"id" yaml:"id"`

	// Name 是展示名称，也用作上下文窗口中的段落标题。
	Name string `json:"name" yaml:"name"`

	// ShortName 是紧凑视图中使用的短名称。
	ShortName string `json:"shortName,omitempty" yaml:"short_name,omitempty"`

	// Kind 是组件类别。
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Color 是展示用的颜色（十六进制或终端颜色编号）。
	Color string `json:"color,omitempty" yaml:"color,omitempty"`

	// Tokens 是组件的 Token 成本，非负。
	Tokens int `json:"tokens" yaml:"tokens"`

	// Content 是组件贡献给上下文窗口的原文。
	Content string `json:"content" yaml:"content"`

	// Description 是面向读者的说明。
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Label 返回上下文窗口中使用的段落标题。
func (c *Component) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Short 返回短名称，未设置时退回到 Label。
func (c *Component) Short() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.Label()
}

// ComponentIDs 按编写顺序返回组件 ID。
func ComponentIDs(components []Component) []string {
	ids := make([]string, len(components))
	for i := range components {
		ids[i] = components[i].ID
	}
	return ids
}

// FindComponent 按 ID 查找组件。
func FindComponent(components []Component, id string) (*Component, bool) {
	for i := range components {
		if components[i].ID == id {
			return &components[i], true
		}
	}
	return nil, false
}

package context

import (
	"fmt"
	"strings"

	"github.com/easyops/context-academy-go/pkg/core/message"
)

// UserMessageLabel 是客户消息段落的标题。
const UserMessageLabel = "User Message"

// Section 表示上下文窗口中的一个段落。
type Section struct {
	// ComponentID 是来源组件的 ID，客户消息段落为空。
	ComponentID string `json:"componentId,omitempty"`

	// Kind 是来源组件的类别。
	Kind Kind `json:"kind,omitempty"`

	// Label 是段落标题。
	Label string `json:"label"`

	// Content 是段落正文。
	Content string `json:"content"`

	// Tokens 是段落的 Token 成本，客户消息为 0。
	Tokens int `json:"tokens"`
}

// Structurer 定义将段落组织成上下文字符串的接口。
type Structurer interface {
	// Structure 将段落组织成上下文字符串。
	Structure(sections []Section) string
}

// DefaultStructurer 为每个段落输出 [Label] 标题，段落之间以空行分隔。
type DefaultStructurer struct{}

// NewDefaultStructurer 创建新的 DefaultStructurer。
func NewDefaultStructurer() *DefaultStructurer {
	return &DefaultStructurer{}
}

// Structure 将段落组织成带标题的上下文。
func (s *DefaultStructurer) Structure(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		parts = append(parts, "["+sec.Label+"]\n"+sec.Content)
	}
	return strings.Join(parts, "\n\n")
}

// MinimalStructurer 只输出段落正文，不带标题。
type MinimalStructurer struct{}

// NewMinimalStructurer 创建新的 MinimalStructurer。
func NewMinimalStructurer() *MinimalStructurer {
	return &MinimalStructurer{}
}

// Structure 将段落正文以空行连接。
func (s *MinimalStructurer) Structure(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		if sec.Content != "" {
			parts = append(parts, sec.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Sections 按编写顺序返回已启用组件的段落，客户消息段落总在最后。
//
// 遍历顺序由 components 决定，与集合的插入顺序无关。
func Sections(enabled EnabledSet, components []Component, userMessage string) []Section {
	sections := make([]Section, 0, enabled.Len()+1)
	for i := range components {
		c := &components[i]
		if !enabled.Has(c.ID) {
			continue
		}
		sections = append(sections, Section{
			ComponentID: c.ID,
			Kind:        c.Kind,
			Label:       c.Label(),
			Content:     c.Content,
			Tokens:      c.Tokens,
		})
	}

	sections = append(sections, Section{
		Label:   UserMessageLabel,
		Content: userMessage,
	})

	return sections
}

// AssembleContext 组装上下文窗口文本。
func AssembleContext(enabled EnabledSet, components []Component, userMessage string) string {
	return AssembleWith(NewDefaultStructurer(), enabled, components, userMessage)
}

// AssembleWith 使用给定结构化器组装上下文窗口文本。
func AssembleWith(structurer Structurer, enabled EnabledSet, components []Component, userMessage string) string {
	return structurer.Structure(Sections(enabled, components, userMessage))
}

// AssembleMessages 将上下文窗口和选中的响应表示为一段模拟对话。
//
// 有已启用组件时先输出一条系统消息（带标题的组件段落），然后输出客户消息；
// agentResponse 非空时再追加一条助手消息。每条消息都经过 Validate 检查，
// 客户消息为空时返回 message.ErrEmptyContent。
func AssembleMessages(enabled EnabledSet, components []Component, userMessage, agentResponse string) ([]message.Message, error) {
	sections := Sections(enabled, components, userMessage)
	componentSections := sections[:len(sections)-1]

	messages := make([]message.Message, 0, 3)
	if len(componentSections) > 0 {
		messages = append(messages, message.NewSystemMessage(
			NewDefaultStructurer().Structure(componentSections),
		))
	}
	messages = append(messages, message.NewUserMessage(userMessage))
	if agentResponse != "" {
		messages = append(messages, message.NewAssistantMessage(agentResponse))
	}

	for i := range messages {
		if err := messages[i].Validate(); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
	}
	return messages, nil
}

// 编译时接口检查
var _ Structurer = (*DefaultStructurer)(nil)
var _ Structurer = (*MinimalStructurer)(nil)

// Package message 定义对话消息相关的类型
package message

import "fmt"

// Role 表示消息的角色类型
type Role string

const (
	// RoleSystem 系统消息（组装后的上下文窗口）
	RoleSystem Role = "system"
	// RoleUser 用户消息（场景中的客户消息）
	RoleUser Role = "user"
	// RoleAssistant 模拟的 Agent 响应
	RoleAssistant Role = "assistant"
)

// IsValid 检查 Role 是否为有效值
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Message 表示对话中的一条消息
type Message struct {
	// Role 消息角色
	Role Role `json:"role"`
	// Content 消息内容
	Content string `json:"content"`
	// Name 名称（可选，例如场景中的客户名）
	Name string `json:"name,omitempty"`
}

// NewMessage 创建新消息
func NewMessage(role Role, content string) Message {
	return Message{
		Role:    role,
		Content: content,
	}
}

// NewSystemMessage 创建系统消息
func NewSystemMessage(content string) Message {
	return NewMessage(RoleSystem, content)
}

// NewUserMessage 创建用户消息
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage 创建模拟 Agent 的回复消息
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// Validate 检查角色合法且内容非空
func (m *Message) Validate() error {
	if !m.Role.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, m.Role)
	}
	if m.Content == "" {
		return fmt.Errorf("%w: %s turn", ErrEmptyContent, m.Role)
	}
	return nil
}

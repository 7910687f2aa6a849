package message

import "errors"

var (
	// ErrInvalidRole 角色不是 system、user 或 assistant
	ErrInvalidRole = errors.New("transcript: unknown message role")
	// ErrEmptyContent 模拟对话中出现空消息
	ErrEmptyContent = errors.New("transcript: empty message content")
)

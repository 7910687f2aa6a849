// Package errors 定义框架的通用错误类型
package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidInput 请求或事件参数无效
var ErrInvalidInput = errors.New("invalid input")

// 场景目录相关错误
var (
	// ErrEmptyCatalog 候选响应列表为空
	ErrEmptyCatalog = errors.New("empty response catalog")
	// ErrUnknownComponentReference 引用了场景中不存在的组件
	ErrUnknownComponentReference = errors.New("unknown component reference")
	// ErrDuplicateComponent 组件 ID 重复
	ErrDuplicateComponent = errors.New("duplicate component id")
	// ErrDuplicateScenario 场景 ID 重复
	ErrDuplicateScenario = errors.New("duplicate scenario id")
	// ErrDuplicateResponse 响应 ID 重复
	ErrDuplicateResponse = errors.New("duplicate response id")
	// ErrInvalidScore 分数不在 [0, 100] 范围内
	ErrInvalidScore = errors.New("score must be between 0 and 100")
	// ErrNegativeTokens Token 数为负
	ErrNegativeTokens = errors.New("component tokens must be non-negative")
	// ErrMissingID 缺少 ID
	ErrMissingID = errors.New("id is required")
	// ErrScenarioNotFound 场景未找到
	ErrScenarioNotFound = errors.New("scenario not found")
)

// 场景目录编写警告（非致命）
var (
	// ErrDuplicateExactMatch 多个响应拥有完全相同的必需组件集合
	ErrDuplicateExactMatch = errors.New("duplicate exact-match response")
	// ErrMissingEmptyResponse 缺少空组件集合对应的响应
	ErrMissingEmptyResponse = errors.New("no response for the empty component set")
	// ErrMissingFullResponse 缺少全组件集合对应的响应
	ErrMissingFullResponse = errors.New("no response for the full component set")
	// ErrTokenDrift 编写的 Token 数与实测值偏差过大
	ErrTokenDrift = errors.New("authored token count drifts from measured count")
)

// WrapError 包装错误并添加上下文信息
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsWarning 判断错误是否仅为编写警告，校验报告据此区分 Warnings 与 Errors
func IsWarning(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrDuplicateExactMatch) ||
		errors.Is(err, ErrMissingEmptyResponse) ||
		errors.Is(err, ErrMissingFullResponse) ||
		errors.Is(err, ErrTokenDrift)
}

// IsFatal 判断错误是否为场景目录的编写错误，这类目录不能加载
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrEmptyCatalog) ||
		errors.Is(err, ErrUnknownComponentReference) ||
		errors.Is(err, ErrDuplicateComponent) ||
		errors.Is(err, ErrDuplicateScenario) ||
		errors.Is(err, ErrDuplicateResponse) ||
		errors.Is(err, ErrInvalidScore) ||
		errors.Is(err, ErrNegativeTokens) ||
		errors.Is(err, ErrMissingID)
}

package otel

import "go.opentelemetry.io/otel/attribute"

// 预定义的语义属性键
const (
	// Scenario 相关属性
	AttrScenarioID     = "playground.scenario.id"
	AttrEnabledCount   = "playground.enabled.count"
	AttrEnabledIDs     = "playground.enabled.ids"
	AttrComponentCount = "playground.component.count"
	AttrCandidateCount = "playground.candidate.count"
	AttrComponentID    = "playground.component.id"

	// Selection 相关属性
	AttrResponseID      = "playground.response.id"
	AttrResponseScore   = "playground.response.score"
	AttrSelectionMethod = "playground.selection.method"

	// Token 相关属性
	AttrTokensUsed       = "playground.tokens.used"
	AttrTokensMax        = "playground.tokens.max"
	AttrTokensPercentage = "playground.tokens.percentage"

	// Error 相关属性
	AttrErrorType    = "error.type"
	AttrErrorMessage = "error.message"
)

// ScenarioID 创建场景 ID 属性
func ScenarioID(id string) attribute.KeyValue {
	return attribute.String(AttrScenarioID, id)
}

// EnabledComponents 创建已启用组件属性
func EnabledComponents(ids []string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrEnabledCount, len(ids)),
		attribute.StringSlice(AttrEnabledIDs, ids),
	}
}

// ComponentID 创建组件 ID 属性
func ComponentID(id string) attribute.KeyValue {
	return attribute.String(AttrComponentID, id)
}

// SelectedResponse 创建选中响应属性
func SelectedResponse(id string, score int, method string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrResponseID, id),
		attribute.Int(AttrResponseScore, score),
		attribute.String(AttrSelectionMethod, method),
	}
}

// TokenUsage 创建 Token 占用属性
func TokenUsage(used, max, percentage int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrTokensUsed, used),
		attribute.Int(AttrTokensMax, max),
		attribute.Int(AttrTokensPercentage, percentage),
	}
}

// ErrorAttrs 创建错误属性
func ErrorAttrs(errType, message string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, message),
	}
}

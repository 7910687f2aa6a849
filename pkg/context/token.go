package context

import (
	"math"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TokenUsage 表示 Token 预算的占用情况。
type TokenUsage struct {
	// Used 是已启用组件的 Token 之和。
	Used int `json:"used"`

	// Max 是场景中全部组件的 Token 之和。
	Max int `json:"max"`

	// Percentage 是 round(100 * Used / Max)，Max 为 0 时为 0。
	Percentage int `json:"percentage"`
}

// ComputeTokenUsage 计算已启用组件的 Token 占用。
//
// 客户消息不计入；Max 为 0 时百分比定义为 0。
func ComputeTokenUsage(enabled EnabledSet, components []Component) TokenUsage {
	var usage TokenUsage
	for i := range components {
		usage.Max += components[i].Tokens
		if enabled.Has(components[i].ID) {
			usage.Used += components[i].Tokens
		}
	}

	if usage.Max > 0 {
		usage.Percentage = int(math.Round(100 * float64(usage.Used) / float64(usage.Max)))
	}

	return usage
}

// TokenCounter 定义 Token 计数接口。
//
// 只用于审计编写的 Token 数，展示的 Token 数始终是编写值。
type TokenCounter interface {
	// Count 返回给定文本的 Token 数量。
	Count(text string) int
}

// TiktokenCounter 使用 tiktoken 实现精确的 Token 计数。
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	model    string
}

// TiktokenOption 配置 TiktokenCounter。
type TiktokenOption func(*TiktokenCounter)

// WithModel 设置 Token 编码使用的模型。
func WithModel(model string) TiktokenOption {
	return func(c *TiktokenCounter) {
		if model != "" {
			c.model = model
		}
	}
}

// NewTiktokenCounter 创建新的 TiktokenCounter。
// 模型没有对应编码时使用 cl100k_base。
//
// 编码表只从本地读取（见 LocalBpeLoader），本地没有时返回 ErrEncodingUnavailable。
func NewTiktokenCounter(opts ...TiktokenOption) (*TiktokenCounter, error) {
	c := &TiktokenCounter{
		model: "gpt-4o",
	}

	for _, opt := range opts {
		opt(c)
	}

	useLocalBpeLoader()

	encoding, err := tiktoken.EncodingForModel(c.model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	c.encoding = encoding
	return c, nil
}

// Count 返回给定文本的 Token 数量。
func (c *TiktokenCounter) Count(text string) int {
	if c.encoding == nil {
		return estimateTokens(text)
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// EstimatedCounter 使用字符估算实现 Token 计数。
// 这是当 tiktoken 不可用（本地没有编码表）时的降级方案。
type EstimatedCounter struct {
	// CharsPerToken 是每个 Token 的平均字符数，默认 4。
	CharsPerToken float64
}

// NewEstimatedCounter 创建新的 EstimatedCounter。
func NewEstimatedCounter() *EstimatedCounter {
	return &EstimatedCounter{
		CharsPerToken: 4.0,
	}
}

// Count 返回估算的 Token 数量。
func (c *EstimatedCounter) Count(text string) int {
	perToken := c.CharsPerToken
	if perToken <= 0 {
		perToken = 4.0
	}
	return int(float64(len(text)) / perToken)
}

// estimateTokens 提供简单的 Token 估算降级方案。
func estimateTokens(text string) int {
	charCount := len(text)
	wordCount := len(strings.Fields(text))

	if wordCount == 0 {
		return charCount / 4
	}

	// 取字符估算和词估算的平均值
	charBasedTokens := charCount / 4
	wordBasedTokens := int(float64(wordCount) * 1.3)

	return (charBasedTokens + wordBasedTokens) / 2
}

// DefaultTokenCounter 返回一个 TokenCounter，
// 优先使用 TiktokenCounter，如果不可用则降级到 EstimatedCounter。
func DefaultTokenCounter(opts ...TiktokenOption) TokenCounter {
	counter, err := NewTiktokenCounter(opts...)
	if err != nil {
		return NewEstimatedCounter()
	}
	return counter
}

// TokenDrift 描述组件编写 Token 数与实测值的偏差。
type TokenDrift struct {
	ComponentID string  `json:"componentId"`
	Authored    int     `json:"authored"`
	Measured    int     `json:"measured"`
	Ratio       float64 `json:"ratio"`
}

// MeasureDrift 计算组件编写 Token 数与实测值的相对偏差。
//
// Ratio = |Authored - Measured| / max(Measured, 1)。
func MeasureDrift(counter TokenCounter, c *Component) TokenDrift {
	measured := counter.Count(c.Content)
	denom := measured
	if denom < 1 {
		denom = 1
	}
	return TokenDrift{
		ComponentID: c.ID,
		Authored:    c.Tokens,
		Measured:    measured,
		Ratio:       math.Abs(float64(c.Tokens-measured)) / float64(denom),
	}
}

// 编译时接口检查
var _ TokenCounter = (*TiktokenCounter)(nil)
var _ TokenCounter = (*EstimatedCounter)(nil)

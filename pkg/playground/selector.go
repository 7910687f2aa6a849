package playground

import (
	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/core/errors"
)

// Method 表示响应是如何被选中的。
type Method string

const (
	// MethodExact 必需组件集合与已启用集合完全相等
	MethodExact Method = "exact"
	// MethodHeuristic 无精确匹配，按启发式分数选出
	MethodHeuristic Method = "heuristic"
)

// Weights 是启发式评分的权重。
//
// score = Match*matchCount - Missing*missingCount - Extra*extraCount
type Weights struct {
	Match   int `json:"match"`
	Missing int `json:"missing"`
	Extra   int `json:"extra"`
}

// DefaultWeights 未满足的需求惩罚是多余组件的五倍，命中给予适度奖励。
var DefaultWeights = Weights{Match: 3, Missing: 5, Extra: 1}

// CandidateScore 是单个候选响应的启发式评分明细。
type CandidateScore struct {
	ResponseID string `json:"responseId"`
	Match      int    `json:"match"`
	Missing    int    `json:"missing"`
	Extra      int    `json:"extra"`
	Score      int    `json:"score"`
}

// Selection 是一次选择的结果与诊断。
type Selection struct {
	// Response 指向调用方传入切片中的元素
	Response *Response `json:"response"`
	// Method 是选择方式
	Method Method `json:"method"`
	// Candidates 按列表顺序给出每个候选的启发式评分
	Candidates []CandidateScore `json:"candidates,omitempty"`
}

// Selector 根据已启用集合选出响应。
//
// Selector 不持有可变状态，可在多个 goroutine 中共享。
type Selector struct {
	weights Weights
}

// SelectorOption 配置 Selector。
type SelectorOption func(*Selector)

// WithWeights 设置启发式权重。
func WithWeights(match, missing, extra int) SelectorOption {
	return func(s *Selector) {
		s.weights = Weights{Match: match, Missing: missing, Extra: extra}
	}
}

// NewSelector 创建 Selector，默认使用 DefaultWeights。
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{weights: DefaultWeights}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights 返回选择器使用的权重。
func (s *Selector) Weights() Weights {
	return s.weights
}

// Select 返回应展示给用户的响应。
//
//  1. 精确匹配：按列表顺序返回第一个必需集合与 enabled 相等的响应。
//  2. 启发式回退：返回分数严格最高的响应，平分时保留先出现者。
//
// responses 为空时返回 ErrEmptyCatalog。
func (s *Selector) Select(enabled academyctx.EnabledSet, responses []Response) (*Response, error) {
	if len(responses) == 0 {
		return nil, errors.ErrEmptyCatalog
	}

	if r := exactMatch(enabled, responses); r != nil {
		return r, nil
	}

	best := 0
	bestScore := s.Score(enabled, responses[0].RequiredComponents).Score
	for i := 1; i < len(responses); i++ {
		if score := s.Score(enabled, responses[i].RequiredComponents).Score; score > bestScore {
			best, bestScore = i, score
		}
	}

	return &responses[best], nil
}

// Explain 与 Select 选出相同的响应，并附带选择方式和每个候选的评分明细。
func (s *Selector) Explain(enabled academyctx.EnabledSet, responses []Response) (Selection, error) {
	if len(responses) == 0 {
		return Selection{}, errors.ErrEmptyCatalog
	}

	candidates := make([]CandidateScore, len(responses))
	best := 0
	for i := range responses {
		candidates[i] = s.Score(enabled, responses[i].RequiredComponents)
		candidates[i].ResponseID = responses[i].ID
		if candidates[i].Score > candidates[best].Score {
			best = i
		}
	}

	if r := exactMatch(enabled, responses); r != nil {
		return Selection{Response: r, Method: MethodExact, Candidates: candidates}, nil
	}

	return Selection{Response: &responses[best], Method: MethodHeuristic, Candidates: candidates}, nil
}

// Score 计算单个候选的启发式评分明细（ResponseID 留空）。
//
// 必需列表中的重复 ID 只计一次。
func (s *Selector) Score(enabled academyctx.EnabledSet, required []string) CandidateScore {
	req := academyctx.NewEnabledSet(required...)

	var c CandidateScore
	for _, id := range req.IDs() {
		if enabled.Has(id) {
			c.Match++
		} else {
			c.Missing++
		}
	}
	c.Extra = enabled.Len() - c.Match
	c.Score = s.weights.Match*c.Match - s.weights.Missing*c.Missing - s.weights.Extra*c.Extra

	return c
}

// exactMatch 返回列表中第一个必需集合与 enabled 相等的响应。
func exactMatch(enabled academyctx.EnabledSet, responses []Response) *Response {
	for i := range responses {
		if enabled.EqualIDs(responses[i].RequiredComponents) {
			return &responses[i]
		}
	}
	return nil
}

var defaultSelector = NewSelector()

// SelectResponse 使用默认权重选择响应。
func SelectResponse(enabled academyctx.EnabledSet, responses []Response) (*Response, error) {
	return defaultSelector.Select(enabled, responses)
}

// HeuristicScore 使用默认权重计算启发式分数。
func HeuristicScore(enabled academyctx.EnabledSet, required []string) int {
	return defaultSelector.Score(enabled, required).Score
}

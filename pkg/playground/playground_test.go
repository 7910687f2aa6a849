package playground_test

import (
	"fmt"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	academyerr "github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/playground"
)

// supportScenario 返回一个三组件的小场景。
func supportScenario() *playground.Scenario {
	return &playground.Scenario{
		ID:              "support",
		Title:           "Support",
		CustomerMessage: "Where is my refund?",
		DefaultEnabled:  []string{"sys"},
		Components: []academyctx.Component{
			{ID: "sys", Name: "System Prompt", Kind: academyctx.KindSystem, Tokens: 100, Content: "Be helpful."},
			{ID: "tools", Name: "Tools", Kind: academyctx.KindTools, Tokens: 150, Content: "lookup_order()"},
			{ID: "rag", Name: "Policy", Kind: academyctx.KindRAG, Tokens: 200, Content: "30-day refunds."},
		},
		Responses: []playground.Response{
			{ID: "bare", RequiredComponents: []string{}, Score: 10},
			{ID: "sys-only", RequiredComponents: []string{"sys"}, Score: 40, Issues: []string{"no data"}},
			{ID: "sys-tools", RequiredComponents: []string{"tools", "sys"}, Score: 70, Strengths: []string{"looks up the order"}},
			{ID: "full", RequiredComponents: []string{"sys", "tools", "rag"}, Score: 95},
		},
		Principles: []playground.Principle{
			{ID: "ground", Title: "Ground answers in data", LinkedComponents: []string{"tools", "rag"}},
			{ID: "role", Title: "Set the role", LinkedComponents: []string{"sys"}},
			{ID: "always", Title: "Unlinked principle"},
		},
	}
}

// catalogSource 是基于 map 的 ScenarioSource。
type catalogSource map[string]*playground.Scenario

func (c catalogSource) Scenario(id string) (*playground.Scenario, error) {
	if s, ok := c[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", academyerr.ErrScenarioNotFound, id)
}

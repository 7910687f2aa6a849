package catalog

import (
	"fmt"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/playground"
)

// MaxMatrixComponents 限制枚举的组件数量（2^16 个子集）。
const MaxMatrixComponents = 16

// MatrixRow 是选择矩阵中的一行：一个已启用子集及其选中的响应。
type MatrixRow struct {
	Enabled    []string          `json:"enabled"`
	ResponseID string            `json:"responseId"`
	Method     playground.Method `json:"method"`
	Heuristic  int               `json:"heuristic"`
	Score      int               `json:"score"`
	Tokens     int               `json:"tokens"`
}

// Matrix 枚举场景全部 2^n 个已启用子集，给出每个子集选中的响应。
//
// 第 i 行对应位掩码 i，位 k 表示编写顺序中的第 k 个组件；Enabled 按编写顺序排列。
func Matrix(scenario *playground.Scenario, selector *playground.Selector) ([]MatrixRow, error) {
	if selector == nil {
		selector = playground.NewSelector()
	}
	n := len(scenario.Components)
	if n > MaxMatrixComponents {
		return nil, fmt.Errorf("%w: %d components exceeds matrix limit %d",
			errors.ErrInvalidInput, n, MaxMatrixComponents)
	}

	ids := academyctx.ComponentIDs(scenario.Components)
	rows := make([]MatrixRow, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		enabledIDs := make([]string, 0, n)
		for k := 0; k < n; k++ {
			if mask&(1<<k) != 0 {
				enabledIDs = append(enabledIDs, ids[k])
			}
		}
		enabled := academyctx.NewEnabledSet(enabledIDs...)

		sel, err := selector.Explain(enabled, scenario.Responses)
		if err != nil {
			return nil, errors.WrapError(err, "scenario "+scenario.ID)
		}

		row := MatrixRow{
			Enabled:    enabledIDs,
			ResponseID: sel.Response.ID,
			Method:     sel.Method,
			Score:      sel.Response.Score,
			Tokens:     academyctx.ComputeTokenUsage(enabled, scenario.Components).Used,
		}
		for _, c := range sel.Candidates {
			if c.ResponseID == sel.Response.ID {
				row.Heuristic = c.Score
				break
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Unreachable 返回在任何子集下都不会被选中的响应 ID，按编写顺序排列。
func Unreachable(scenario *playground.Scenario, rows []MatrixRow) []string {
	selected := make(map[string]bool, len(rows))
	for _, r := range rows {
		selected[r.ResponseID] = true
	}
	out := make([]string, 0)
	for _, r := range scenario.Responses {
		if !selected[r.ID] {
			out = append(out, r.ID)
		}
	}
	return out
}

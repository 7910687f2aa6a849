// Package catalog 提供声明式的场景目录：加载、校验与查询。
//
// 场景以 YAML 编写，内置场景通过 go:embed 打包进二进制。目录在加载时
// 一次性解析并校验，之后只读，可以在多个 goroutine 中共享。
package catalog

import (
	"fmt"

	"github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/playground"
)

// Catalog 是校验通过的只读场景集合。
type Catalog struct {
	scenarios []playground.Scenario
	index     map[string]int
	report    *Report
}

// New 校验场景并创建目录。
//
// 存在致命错误时返回合并后的错误；警告通过日志输出，严格模式下同样导致失败。
func New(scenarios []playground.Scenario, opts ...Option) (*Catalog, error) {
	o := newOptions(opts)

	report := Validate(scenarios, opts...)
	for _, w := range report.Warnings {
		o.logger.Warn("scenario catalog warning",
			"scenario", w.ScenarioID,
			"subject", w.Subject,
			"error", w.Err.Error(),
		)
	}
	if err := report.Err(); err != nil {
		return nil, errors.WrapError(err, "invalid scenario catalog")
	}
	if o.strict {
		if err := report.WarningErr(); err != nil {
			return nil, errors.WrapError(err, "scenario catalog warnings (strict)")
		}
	}

	c := &Catalog{
		scenarios: scenarios,
		index:     make(map[string]int, len(scenarios)),
		report:    report,
	}
	for i := range scenarios {
		c.index[scenarios[i].ID] = i
	}

	o.logger.Debug("scenario catalog loaded", "scenarios", len(scenarios), "warnings", len(report.Warnings))
	return c, nil
}

// Scenario 按 ID 返回场景，不存在时返回 ErrScenarioNotFound。
//
// 返回的场景归目录所有，调用方不得修改。
func (c *Catalog) Scenario(id string) (*playground.Scenario, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrScenarioNotFound, id)
	}
	return &c.scenarios[i], nil
}

// Scenarios 按加载顺序返回全部场景。
func (c *Catalog) Scenarios() []playground.Scenario {
	out := make([]playground.Scenario, len(c.scenarios))
	copy(out, c.scenarios)
	return out
}

// IDs 按加载顺序返回场景 ID。
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.scenarios))
	for i := range c.scenarios {
		ids[i] = c.scenarios[i].ID
	}
	return ids
}

// Len 返回场景数量。
func (c *Catalog) Len() int {
	return len(c.scenarios)
}

// First 返回第一个场景，目录为空时返回 ErrScenarioNotFound。
func (c *Catalog) First() (*playground.Scenario, error) {
	if len(c.scenarios) == 0 {
		return nil, errors.ErrScenarioNotFound
	}
	return &c.scenarios[0], nil
}

// Report 返回加载时的校验报告（只包含警告）。
func (c *Catalog) Report() *Report {
	return c.report
}

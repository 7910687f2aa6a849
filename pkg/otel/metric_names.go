package otel

// 预定义的指标名称
// 遵循 OpenTelemetry 语义约定
const (
	// Playground 指标
	MetricEvaluations          = "playground.evaluations"          // 计数器: 评估次数
	MetricEvaluationErrors     = "playground.evaluation.errors"    // 计数器: 评估失败次数
	MetricEvaluationDuration   = "playground.evaluation.duration"  // 直方图: 评估耗时(ms)
	MetricSelectionsExact      = "playground.selections.exact"     // 计数器: 精确匹配次数
	MetricSelectionsHeuristic  = "playground.selections.heuristic" // 计数器: 启发式回退次数
	MetricResponseScore        = "playground.response.score"       // 直方图: 选中响应的质量分
	MetricTokenUsagePercentage = "playground.tokens.percentage"    // 仪表: 最近一次 Token 占用百分比
	MetricToggles              = "playground.toggles"              // 计数器: 组件切换次数

	// Catalog 指标
	MetricCatalogScenarios = "catalog.scenarios" // 仪表: 已加载场景数
	MetricCatalogWarnings  = "catalog.warnings"  // 计数器: 编写警告数

	// HTTP 指标
	MetricHTTPRequests = "http.requests" // 计数器: API 请求次数
)

// MetricUnit 指标单位
type MetricUnit string

const (
	UnitNone         MetricUnit = ""
	UnitMilliseconds MetricUnit = "ms"
	UnitPercent      MetricUnit = "%"
	UnitCount        MetricUnit = "1"
)

// MetricDescription 指标描述
type MetricDescription struct {
	Name        string
	Description string
	Unit        MetricUnit
	Type        string // counter, histogram, gauge
}

// PredefinedMetrics 预定义指标列表
var PredefinedMetrics = []MetricDescription{
	{MetricEvaluations, "Number of playground evaluations", UnitCount, "counter"},
	{MetricEvaluationErrors, "Number of failed playground evaluations", UnitCount, "counter"},
	{MetricEvaluationDuration, "Duration of playground evaluations", UnitMilliseconds, "histogram"},
	{MetricSelectionsExact, "Number of exact-match response selections", UnitCount, "counter"},
	{MetricSelectionsHeuristic, "Number of heuristic fallback selections", UnitCount, "counter"},
	{MetricResponseScore, "Quality score of the selected response", UnitNone, "histogram"},
	{MetricTokenUsagePercentage, "Token budget usage of the last evaluation", UnitPercent, "gauge"},
	{MetricToggles, "Number of component toggle events", UnitCount, "counter"},

	{MetricCatalogScenarios, "Number of loaded scenarios", UnitCount, "gauge"},
	{MetricCatalogWarnings, "Number of catalog authoring warnings", UnitCount, "counter"},

	{MetricHTTPRequests, "Number of API requests", UnitCount, "counter"},
}

// describe 查找预定义指标描述，未登记的名称返回仅含名称的描述
func describe(name string) MetricDescription {
	for _, d := range PredefinedMetrics {
		if d.Name == name {
			return d
		}
	}
	return MetricDescription{Name: name}
}

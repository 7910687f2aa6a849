package otel

import (
	"context"
	"errors"
	"time"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	academyerr "github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/playground"
	"go.opentelemetry.io/otel/attribute"
)

// TracedEngine 为 Playground 引擎添加追踪和指标
//
// 引擎本身是纯函数；TracedEngine 只在外围记录 Span 和指标，不改变结果。
type TracedEngine struct {
	selector *playground.Selector
	tracer   Tracer
	metrics  Metrics
	logger   Logger
}

// TracedEngineOption 配置 TracedEngine
type TracedEngineOption func(*TracedEngine)

// WithEngineTracer 设置追踪器
func WithEngineTracer(tracer Tracer) TracedEngineOption {
	return func(e *TracedEngine) {
		e.tracer = tracer
	}
}

// WithEngineMetrics 设置指标收集器
func WithEngineMetrics(metrics Metrics) TracedEngineOption {
	return func(e *TracedEngine) {
		e.metrics = metrics
	}
}

// WithEngineLogger 设置日志器
func WithEngineLogger(logger Logger) TracedEngineOption {
	return func(e *TracedEngine) {
		e.logger = logger
	}
}

// WithProvider 使用 Provider 的追踪器、指标和日志器
func WithProvider(p *Provider) TracedEngineOption {
	return func(e *TracedEngine) {
		e.tracer = p.Tracer()
		e.metrics = p.Metrics()
		e.logger = p.Logger()
	}
}

// NewTracedEngine 创建带追踪的引擎，selector 为 nil 时使用默认权重
//
// 未指定追踪器、指标或日志器时使用全局提供者的实现（未设置时为空实现）。
func NewTracedEngine(selector *playground.Selector, opts ...TracedEngineOption) *TracedEngine {
	if selector == nil {
		selector = playground.NewSelector()
	}
	e := &TracedEngine{
		selector: selector,
		tracer:   GetTracer(),
		metrics:  GetMetrics(),
		logger:   GetLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Selector 返回底层选择器
func (e *TracedEngine) Selector() *playground.Selector {
	return e.selector
}

// Evaluate 评估场景并记录 playground.evaluate Span
func (e *TracedEngine) Evaluate(ctx context.Context, scenario *playground.Scenario, enabled academyctx.EnabledSet) (*playground.Evaluation, error) {
	scenarioID := ""
	if scenario != nil {
		scenarioID = scenario.ID
	}

	ctx, span := e.tracer.Start(ctx, "playground.evaluate",
		WithAttributes(ScenarioID(scenarioID)),
		WithAttributes(EnabledComponents(enabled.IDs())...),
	)
	defer span.End()

	startTime := time.Now()
	ev, err := e.selector.Evaluate(scenario, enabled)
	duration := time.Since(startTime)

	e.metrics.Histogram(MetricEvaluationDuration).Record(ctx, duration.Seconds()*1000,
		NewAttr("scenario", scenarioID),
	)

	if err != nil {
		kind := errorKind(err)
		span.SetAttributes(ErrorAttrs(kind, err.Error())...)
		span.Fail(err)
		e.metrics.Counter(MetricEvaluations).Add(ctx, 1,
			NewAttr("scenario", scenarioID),
			NewAttr("status", "error"),
		)
		e.metrics.Counter(MetricEvaluationErrors).Add(ctx, 1,
			NewAttr("scenario", scenarioID),
			NewAttr(AttrErrorType, kind),
		)
		e.logger.WithContext(ctx).Warn("evaluation failed", "scenario", scenarioID, "error", err)
		return nil, err
	}

	selected := ev.Selection.Response
	method := string(ev.Selection.Method)

	span.SetAttributes(SelectedResponse(selected.ID, selected.Score, method)...)
	span.SetAttributes(TokenUsage(ev.TokenUsage.Used, ev.TokenUsage.Max, ev.TokenUsage.Percentage)...)
	span.AddEvent("playground.selection",
		attribute.Int(AttrCandidateCount, len(ev.Selection.Candidates)),
		attribute.String("grade", string(ev.Grade)),
	)
	span.Succeed()

	e.metrics.Counter(MetricEvaluations).Add(ctx, 1,
		NewAttr("scenario", scenarioID),
		NewAttr("status", "success"),
	)
	if ev.Selection.Method == playground.MethodExact {
		e.metrics.Counter(MetricSelectionsExact).Add(ctx, 1, NewAttr("scenario", scenarioID))
	} else {
		e.metrics.Counter(MetricSelectionsHeuristic).Add(ctx, 1, NewAttr("scenario", scenarioID))
	}
	e.metrics.Histogram(MetricResponseScore).Record(ctx, float64(selected.Score),
		NewAttr("scenario", scenarioID),
		NewAttr("response", selected.ID),
	)
	e.metrics.Gauge(MetricTokenUsagePercentage).Set(ctx, float64(ev.TokenUsage.Percentage),
		NewAttr("scenario", scenarioID),
	)

	e.logger.WithContext(ctx).Debug("evaluated scenario",
		"scenario", scenarioID,
		"enabled", enabled.String(),
		"response", selected.ID,
		"method", method,
	)

	return ev, nil
}

// Reduce 应用状态事件并记录 playground.reduce Span
func (e *TracedEngine) Reduce(ctx context.Context, state playground.State, event playground.Event, source playground.ScenarioSource) (playground.State, error) {
	ctx, span := e.tracer.Start(ctx, "playground.reduce",
		WithAttributes(ScenarioID(state.ScenarioID)),
	)
	defer span.End()

	if toggle, ok := event.(playground.ToggleComponent); ok {
		span.SetAttributes(ComponentID(toggle.ComponentID))
	}

	next, err := playground.Reduce(state, event, source)
	if err != nil {
		span.SetAttributes(ErrorAttrs(errorKind(err), err.Error())...)
		span.Fail(err)
		return state, err
	}

	if toggle, ok := event.(playground.ToggleComponent); ok {
		e.metrics.Counter(MetricToggles).Add(ctx, 1,
			NewAttr("scenario", next.ScenarioID),
			NewAttr("component", toggle.ComponentID),
			NewAttr("enabled", next.Enabled.Has(toggle.ComponentID)),
		)
	}
	span.SetAttributes(EnabledComponents(next.Enabled.IDs())...)
	span.Succeed()

	return next, nil
}

// RecordCatalog 记录场景目录加载结果
func (e *TracedEngine) RecordCatalog(ctx context.Context, scenarios, warnings int) {
	e.metrics.Gauge(MetricCatalogScenarios).Set(ctx, float64(scenarios))
	if warnings > 0 {
		e.metrics.Counter(MetricCatalogWarnings).Add(ctx, int64(warnings))
	}
}

// errorKind 将引擎错误归类为 error.type 属性值
func errorKind(err error) string {
	switch {
	case errors.Is(err, academyerr.ErrUnknownComponentReference):
		return "unknown_component"
	case errors.Is(err, academyerr.ErrEmptyCatalog):
		return "empty_catalog"
	case errors.Is(err, academyerr.ErrScenarioNotFound):
		return "scenario_not_found"
	case errors.Is(err, academyerr.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

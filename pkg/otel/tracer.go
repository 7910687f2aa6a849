// Package otel 提供 OpenTelemetry 可观测性支持
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer 为 playground.evaluate 与 playground.reduce 创建 Span。
//
// 这两个 Span 都是进程内调用；HTTP 层的服务端 Span 由 otelgin 中间件创建。
type Tracer interface {
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// SpanFromContext 返回 ctx 中的当前 Span，日志据此附加 trace_id
	SpanFromContext(ctx context.Context) Span
}

// Span 是一次评估或状态迁移的追踪记录。
type Span interface {
	End()
	SetAttributes(attrs ...attribute.KeyValue)
	AddEvent(name string, attrs ...attribute.KeyValue)
	// Fail 记录错误并把 Span 标记为失败
	Fail(err error)
	// Succeed 把 Span 标记为成功
	Succeed()
	SpanContext() SpanContext
}

// SpanContext 是日志关联所需的十六进制 ID。
type SpanContext struct {
	TraceID string
	SpanID  string
}

// Valid 报告是否带有真实的 trace ID
func (sc SpanContext) Valid() bool {
	return sc.TraceID != "" && sc.TraceID != zeroTraceID
}

// zeroTraceID 无效 Trace ID 的字符串形式
const zeroTraceID = "00000000000000000000000000000000"

// SpanOption 配置新建的 Span
type SpanOption func(*spanConfig)

type spanConfig struct {
	attrs []attribute.KeyValue
}

// WithAttributes 在 Span 创建时附加属性，例如场景 ID 和已启用组件
func WithAttributes(attrs ...attribute.KeyValue) SpanOption {
	return func(cfg *spanConfig) {
		cfg.attrs = append(cfg.attrs, attrs...)
	}
}

// OTelTracer 基于 OpenTelemetry SDK 的实现
type OTelTracer struct {
	tracer trace.Tracer
}

// NewTracer 包装一个 trace.Tracer
func NewTracer(tracer trace.Tracer) *OTelTracer {
	return &OTelTracer{tracer: tracer}
}

func (t *OTelTracer) Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span) {
	var cfg spanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, span := t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(cfg.attrs...),
	)
	return ctx, otelSpan{span}
}

func (t *OTelTracer) SpanFromContext(ctx context.Context) Span {
	return otelSpan{trace.SpanFromContext(ctx)}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End() { s.span.End() }

func (s otelSpan) SetAttributes(attrs ...attribute.KeyValue) { s.span.SetAttributes(attrs...) }

func (s otelSpan) AddEvent(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

func (s otelSpan) Fail(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s otelSpan) Succeed() { s.span.SetStatus(codes.Ok, "") }

func (s otelSpan) SpanContext() SpanContext {
	sc := s.span.SpanContext()
	return SpanContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NoopTracer 在追踪关闭时使用
type NoopTracer struct{}

// NewNoopTracer 创建空追踪器
func NewNoopTracer() *NoopTracer {
	return &NoopTracer{}
}

func (NoopTracer) Start(ctx context.Context, _ string, _ ...SpanOption) (context.Context, Span) {
	return ctx, noopSpan{}
}

func (NoopTracer) SpanFromContext(context.Context) Span { return noopSpan{} }

type noopSpan struct{}

func (noopSpan) End()                                   {}
func (noopSpan) SetAttributes(...attribute.KeyValue)    {}
func (noopSpan) AddEvent(string, ...attribute.KeyValue) {}
func (noopSpan) Fail(error)                             {}
func (noopSpan) Succeed()                               {}
func (noopSpan) SpanContext() SpanContext               { return SpanContext{} }

var (
	_ Tracer = (*OTelTracer)(nil)
	_ Tracer = (*NoopTracer)(nil)
)

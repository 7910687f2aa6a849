package catalog

import (
	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/otel"
)

// options 是加载与校验的可选配置。
type options struct {
	logger         otel.Logger
	counter        academyctx.TokenCounter
	driftTolerance float64
	strict         bool
}

// Option 配置场景目录的加载与校验。
type Option func(*options)

// WithLogger 设置用于输出编写警告的日志记录器。
func WithLogger(logger otel.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTokenCounter 设置 Token 审计使用的计数器。
func WithTokenCounter(counter academyctx.TokenCounter) Option {
	return func(o *options) {
		o.counter = counter
	}
}

// WithDriftTolerance 设置 Token 偏差容忍度（相对比例），0 表示关闭审计。
func WithDriftTolerance(tolerance float64) Option {
	return func(o *options) {
		o.driftTolerance = tolerance
	}
}

// WithStrict 开启严格模式：编写警告也会导致加载失败。
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: otel.NewNoopLogger()}
	for _, opt := range opts {
		opt(o)
	}
	if o.driftTolerance > 0 && o.counter == nil {
		o.counter = academyctx.DefaultTokenCounter()
	}
	return o
}

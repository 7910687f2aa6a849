package otel

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ExporterType 导出器类型
type ExporterType string

const (
	// ExporterOTLPGRPC OTLP gRPC 导出器
	ExporterOTLPGRPC ExporterType = "otlp-grpc"
	// ExporterOTLPHTTP OTLP HTTP 导出器
	ExporterOTLPHTTP ExporterType = "otlp-http"
	// ExporterStdout 输出到日志目标，本地调试选择逻辑时使用
	ExporterStdout ExporterType = "stdout"
	// ExporterNone 不导出；指标退化为内存实现
	ExporterNone ExporterType = "none"
)

// IsValid 检查导出器类型是否受支持
func (t ExporterType) IsValid() bool {
	switch t {
	case ExporterOTLPGRPC, ExporterOTLPHTTP, ExporterStdout, ExporterNone:
		return true
	default:
		return false
	}
}

// exporterConfig 追踪与指标导出器共用的连接参数
type exporterConfig struct {
	kind     ExporterType
	endpoint string
	insecure bool
	timeout  time.Duration
	// writer 是 stdout 导出器的输出目标，为空时使用 os.Stderr
	writer io.Writer
}

func (c exporterConfig) out() io.Writer {
	if c.writer == nil {
		return os.Stderr
	}
	return c.writer
}

// insecureDial 是 insecure 模式下 gRPC 导出器的拨号选项
func insecureDial() grpc.DialOption {
	return grpc.WithTransportCredentials(insecure.NewCredentials())
}

func unsupportedExporter(signal string, kind ExporterType) error {
	return fmt.Errorf("%w: unsupported %s exporter %q", ErrInvalidConfig, signal, kind)
}

// newSpanExporter 按类型创建追踪导出器
func newSpanExporter(ctx context.Context, cfg exporterConfig) (sdktrace.SpanExporter, error) {
	switch cfg.kind {
	case ExporterOTLPGRPC:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.endpoint)}
		if cfg.insecure {
			opts = append(opts, otlptracegrpc.WithInsecure(), otlptracegrpc.WithDialOption(insecureDial()))
		}
		if cfg.timeout > 0 {
			opts = append(opts, otlptracegrpc.WithTimeout(cfg.timeout))
		}
		return otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))

	case ExporterOTLPHTTP:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.endpoint)}
		if cfg.insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if cfg.timeout > 0 {
			opts = append(opts, otlptracehttp.WithTimeout(cfg.timeout))
		}
		return otlptracehttp.New(ctx, opts...)

	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(cfg.out()), stdouttrace.WithPrettyPrint())

	default:
		return nil, unsupportedExporter("trace", cfg.kind)
	}
}

// newMetricExporter 按类型创建指标导出器
func newMetricExporter(ctx context.Context, cfg exporterConfig) (sdkmetric.Exporter, error) {
	switch cfg.kind {
	case ExporterOTLPGRPC:
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.endpoint)}
		if cfg.insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure(), otlpmetricgrpc.WithDialOption(insecureDial()))
		}
		if cfg.timeout > 0 {
			opts = append(opts, otlpmetricgrpc.WithTimeout(cfg.timeout))
		}
		return otlpmetricgrpc.New(ctx, opts...)

	case ExporterOTLPHTTP:
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.endpoint)}
		if cfg.insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		if cfg.timeout > 0 {
			opts = append(opts, otlpmetrichttp.WithTimeout(cfg.timeout))
		}
		return otlpmetrichttp.New(ctx, opts...)

	case ExporterStdout:
		return stdoutmetric.New(stdoutmetric.WithWriter(cfg.out()), stdoutmetric.WithPrettyPrint())

	default:
		return nil, unsupportedExporter("metric", cfg.kind)
	}
}

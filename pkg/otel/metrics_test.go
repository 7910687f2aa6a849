package otel

import (
	"context"
	"sync"
	"testing"
)

func TestInMemoryMetricsCounter(t *testing.T) {
	metrics := NewInMemoryMetrics()
	ctx := context.Background()

	metrics.Counter(MetricToggles).Add(ctx, 5)
	metrics.Counter(MetricToggles).Add(ctx, 3, NewAttr(AttrComponentID, "rag"))

	if got := metrics.GetCounterValue(MetricToggles); got != 8 {
		t.Errorf("GetCounterValue() = %d, want 8", got)
	}
	if got := metrics.GetCounterValue("missing"); got != 0 {
		t.Errorf("GetCounterValue(missing) = %d, want 0", got)
	}
}

func TestInMemoryMetricsHistogramAndGauge(t *testing.T) {
	metrics := NewInMemoryMetrics()
	ctx := context.Background()

	metrics.Histogram(MetricResponseScore).Record(ctx, 40)
	metrics.Histogram(MetricResponseScore).Record(ctx, 70)
	metrics.Gauge(MetricTokenUsagePercentage).Set(ctx, 36)
	metrics.Gauge(MetricTokenUsagePercentage).Set(ctx, 67)

	values := metrics.GetHistogramValues(MetricResponseScore)
	if len(values) != 2 || values[0] != 40 || values[1] != 70 {
		t.Errorf("GetHistogramValues() = %v, want [40 70]", values)
	}
	if got := metrics.GetGaugeValue(MetricTokenUsagePercentage); got != 67 {
		t.Errorf("GetGaugeValue() = %v, want 67", got)
	}
	if got := metrics.GetHistogramValues("missing"); got != nil {
		t.Errorf("GetHistogramValues(missing) = %v, want nil", got)
	}
}

func TestInMemoryMetricsConcurrentAccess(t *testing.T) {
	metrics := NewInMemoryMetrics()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metrics.Counter(MetricEvaluations).Add(ctx, 1)
		}()
	}
	wg.Wait()

	if got := metrics.GetCounterValue(MetricEvaluations); got != 50 {
		t.Errorf("GetCounterValue() = %d, want 50", got)
	}
}

func TestDescribe(t *testing.T) {
	d := describe(MetricEvaluationDuration)
	if d.Unit != UnitMilliseconds || d.Type != "histogram" {
		t.Errorf("describe() = %+v", d)
	}
	if d := describe("custom.metric"); d.Name != "custom.metric" || d.Description != "" {
		t.Errorf("describe(custom) = %+v", d)
	}
}

func TestMetricsImplementations(t *testing.T) {
	var _ Metrics = NewInMemoryMetrics()
	var _ Metrics = NewNoopMetrics()

	noop := NewNoopMetrics()
	noop.Counter("x").Add(context.Background(), 1)
	noop.Histogram("x").Record(context.Background(), 1)
	noop.Gauge("x").Set(context.Background(), 1)
}

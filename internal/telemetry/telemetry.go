// Package telemetry sets up OpenTelemetry metrics exported in Prometheus
// format and the instruments the service records.
package telemetry

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// NewExporter builds a Prometheus exporter and installs its meter provider
// globally. The exporter is an http.Handler serving the scrape endpoint.
func NewExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, err
	}
	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

var (
	routeKey  = attribute.Key("http.route")
	methodKey = attribute.Key("http.method")
	statusKey = attribute.Key("http.status_code")
	resultKey = attribute.Key("result")
)

// Metrics records request and snapshot activity. A nil *Metrics records
// nothing.
type Metrics struct {
	requests metric.Int64Counter
	latency  metric.Float64ValueRecorder

	saved  metric.BoundInt64Counter
	failed metric.BoundInt64Counter
}

func NewMetrics(meter metric.Meter) *Metrics {
	must := metric.Must(meter)

	snapshots := must.NewInt64Counter(
		"snapshot/save_count",
		metric.WithDescription("Count of snapshot saves, by result"),
	)

	return &Metrics{
		requests: must.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by route, HTTP method and response status"),
		),
		latency: must.NewFloat64ValueRecorder(
			"http/server/duration_ms",
			metric.WithDescription("Request handling time in milliseconds, by route"),
		),
		saved:  snapshots.Bind(resultKey.String("ok")),
		failed: snapshots.Bind(resultKey.String("error")),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(ctx context.Context, route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.Add(ctx, 1,
		routeKey.String(route),
		methodKey.String(method),
		statusKey.String(strconv.Itoa(status)),
	)
	m.latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), routeKey.String(route))
}

func (m *Metrics) SnapshotSaved(ctx context.Context) {
	if m == nil {
		return
	}
	m.saved.Add(ctx, 1)
}

func (m *Metrics) SnapshotFailed(ctx context.Context) {
	if m == nil {
		return
	}
	m.failed.Add(ctx, 1)
}

// Close releases the bound instruments.
func (m *Metrics) Close() {
	if m == nil {
		return
	}
	m.saved.Unbind()
	m.failed.Unbind()
}

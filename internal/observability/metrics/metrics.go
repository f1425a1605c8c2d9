package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	entitlementChecks  metric.Int64Counter
	usageEvents        metric.Int64Counter
	sheetOps           metric.Int64Counter
	contentGenerations metric.Int64Counter
	checkoutSessions   metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "dealercommand"
	}
	meter := provider.Meter(name)

	entitlementChecks, err := meter.Int64Counter("dealercommand_entitlement_checks_total")
	if err != nil {
		return nil, err
	}
	usageEvents, err := meter.Int64Counter("dealercommand_usage_events_total")
	if err != nil {
		return nil, err
	}
	sheetOps, err := meter.Int64Counter("dealercommand_sheet_ops_total")
	if err != nil {
		return nil, err
	}
	contentGenerations, err := meter.Int64Counter("dealercommand_content_generations_total")
	if err != nil {
		return nil, err
	}
	checkoutSessions, err := meter.Int64Counter("dealercommand_checkout_sessions_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		entitlementChecks:  entitlementChecks,
		usageEvents:        usageEvents,
		sheetOps:           sheetOps,
		contentGenerations: contentGenerations,
		checkoutSessions:   checkoutSessions,
	}, nil
}

// RecordEntitlementCheck increments entitlement check counts.
func (m *Metrics) RecordEntitlementCheck(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("operation", strings.TrimSpace(operation)))
	m.entitlementChecks.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordUsageEvent increments trial usage event counts.
func (m *Metrics) RecordUsageEvent(ctx context.Context, direction string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("direction", strings.TrimSpace(direction)))
	m.usageEvents.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordSheetOp increments spreadsheet operation counts.
func (m *Metrics) RecordSheetOp(ctx context.Context, table, op string, ok bool) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("table", strings.TrimSpace(table)),
		attribute.String("op", strings.TrimSpace(op)),
		attribute.Bool("ok", ok),
	)
	m.sheetOps.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordContentGeneration increments content generation counts.
func (m *Metrics) RecordContentGeneration(ctx context.Context, kind, model string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("kind", strings.TrimSpace(kind)),
		attribute.String("model", strings.TrimSpace(model)),
	)
	m.contentGenerations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCheckoutSession increments checkout session counts.
func (m *Metrics) RecordCheckoutSession(ctx context.Context, plan string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("plan", strings.TrimSpace(plan)))
	m.checkoutSessions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"operation": {},
	"direction": {},
	"table":     {},
	"op":        {},
	"ok":        {},
	"kind":      {},
	"model":     {},
	"plan":      {},
}

// FilterAttributes keeps only low-cardinality labels. Emails and free-form
// payload fields must never become metric labels.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

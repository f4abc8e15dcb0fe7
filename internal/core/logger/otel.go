package logger

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const otelExportInterval = 2 * time.Second

// OTELLogger ships log records to an OTLP collector over gRPC. Records below
// minSeverity are dropped before they reach the batch processor.
type OTELLogger struct {
	logger      otellog.Logger
	provider    *sdklog.LoggerProvider
	minSeverity otellog.Severity
}

func initializeOtelLogger(collectorEndpoint, serviceName string, level LogLevel) (Logger, error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(
		collectorEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to %s: %w", collectorEndpoint, err)
	}

	exporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment("production"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter, sdklog.WithExportInterval(otelExportInterval))),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(provider)

	return &OTELLogger{
		logger:      provider.Logger(serviceName),
		provider:    provider,
		minSeverity: otelSeverity(level),
	}, nil
}

func (l *OTELLogger) Log(ctx context.Context, entry LogEntry) {
	severity := otelSeverity(entry.Level)
	if severity < l.minSeverity {
		return
	}

	var record otellog.Record
	record.SetTimestamp(entry.Timestamp)
	record.SetObservedTimestamp(time.Now())
	record.SetBody(otellog.StringValue(entry.Message))
	record.SetSeverity(severity)
	record.SetSeverityText(string(entry.Level))
	record.AddAttributes(otelAttributes(entry)...)

	l.logger.Emit(ctx, record)
}

func (l *OTELLogger) Shutdown(ctx context.Context) error {
	return l.provider.Shutdown(ctx)
}

func otelSeverity(level LogLevel) otellog.Severity {
	switch level {
	case LogLevelDebug:
		return otellog.SeverityDebug
	case LogLevelWarn:
		return otellog.SeverityWarn
	case LogLevelError:
		return otellog.SeverityError
	case LogLevelFatal:
		return otellog.SeverityFatal
	default:
		return otellog.SeverityInfo
	}
}

func otelAttributes(entry LogEntry) []otellog.KeyValue {
	kvs := make([]otellog.KeyValue, 0, len(entry.Attributes)+1)
	for key, value := range entry.Attributes {
		switch v := value.(type) {
		case string:
			kvs = append(kvs, otellog.String(key, v))
		case int:
			kvs = append(kvs, otellog.Int(key, v))
		case int64:
			kvs = append(kvs, otellog.Int64(key, v))
		case float64:
			kvs = append(kvs, otellog.Float64(key, v))
		case bool:
			kvs = append(kvs, otellog.Bool(key, v))
		case time.Duration:
			kvs = append(kvs, otellog.Int64(key+"_ms", v.Milliseconds()))
		case error:
			kvs = append(kvs, otellog.String(key, v.Error()))
		default:
			kvs = append(kvs, otellog.String(key, fmt.Sprintf("%v", v)))
		}
	}

	if entry.Error != nil {
		kvs = append(kvs, otellog.String("error", entry.Error.Error()))
	}
	return kvs
}

// Package tracing exports game rounds as OpenTelemetry spans.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/soundpairs/internal/config"
	"github.com/zjrosen/soundpairs/internal/log"
)

// InstrumentationName names the tracer used for game spans.
const InstrumentationName = "github.com/zjrosen/soundpairs"

// Provider owns the tracer provider and whatever its exporter writes to.
type Provider struct {
	tracer   trace.Tracer
	sdk      *sdktrace.TracerProvider
	closer   io.Closer
	exporter string
}

// Setup builds a provider from cfg. A disabled config yields a no-op tracer.
// With an OTLP endpoint spans go over gRPC; otherwise they are appended as
// JSON to cfg.File, defaulting to defaultFile.
func Setup(ctx context.Context, cfg config.TraceConfig, defaultFile, version string) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName), exporter: "none"}, nil
	}

	var (
		exp      sdktrace.SpanExporter
		closer   io.Closer
		exporter string
		err      error
	)
	if cfg.OTLPEndpoint != "" {
		exp, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating otlp exporter: %w", err)
		}
		exporter = "otlp"
	} else {
		path := cfg.File
		if path == "" {
			path = defaultFile
		}
		f, err := openTraceFile(path)
		if err != nil {
			return nil, err
		}
		exp, err = stdouttrace.New(stdouttrace.WithWriter(f))
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		closer = f
		exporter = "file"
	}

	p := NewProvider(sdktrace.WithBatcher(exp), sdktrace.WithResource(Resource(version)))
	p.closer = closer
	p.exporter = exporter
	otel.SetTracerProvider(p.sdk)

	log.Info(log.CatTrace, "Tracing enabled", "exporter", exporter)
	return p, nil
}

// NewProvider wraps an SDK tracer provider built from opts.
func NewProvider(opts ...sdktrace.TracerProviderOption) *Provider {
	sdk := sdktrace.NewTracerProvider(opts...)
	return &Provider{tracer: sdk.Tracer(InstrumentationName), sdk: sdk, exporter: "sdk"}
}

// Resource describes this process to trace backends.
func Resource(version string) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", "soundpairs"),
		attribute.String("service.version", version),
	)
}

// Tracer returns the tracer for game spans.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Exporter names the configured exporter: none, file or otlp.
func (p *Provider) Exporter() string {
	return p.exporter
}

// Shutdown flushes pending spans and releases the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	var err error
	if p.sdk != nil {
		err = p.sdk.Shutdown(ctx)
	}
	if p.closer != nil {
		err = errors.Join(err, p.closer.Close())
	}
	return err
}

func openTraceFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path from config
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	return f, nil
}

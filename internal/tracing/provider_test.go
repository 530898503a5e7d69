package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundpairs/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), config.TraceConfig{}, "", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "none", p.Exporter())

	_, span := p.Tracer().Start(context.Background(), "round")
	assert.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_FileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "spans.jsonl")
	p, err := Setup(context.Background(), config.TraceConfig{Enabled: true}, path, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "file", p.Exporter())

	_, span := p.Tracer().Start(context.Background(), "round")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"round"`)
	assert.Contains(t, string(data), "soundpairs")
}

func TestSetup_ExplicitFileWins(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.jsonl")
	fallback := filepath.Join(dir, "fallback.jsonl")

	p, err := Setup(context.Background(), config.TraceConfig{Enabled: true, File: explicit}, fallback, "1.0.0")
	require.NoError(t, err)
	require.NoError(t, p.Shutdown(context.Background()))

	_, err = os.Stat(explicit)
	require.NoError(t, err)
	_, err = os.Stat(fallback)
	assert.True(t, os.IsNotExist(err))
}

func TestSetup_OTLPExporter(t *testing.T) {
	// The gRPC client connects lazily, so no collector is needed to build it.
	p, err := Setup(context.Background(), config.TraceConfig{Enabled: true, OTLPEndpoint: "127.0.0.1:4317"}, "", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "otlp", p.Exporter())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Shutdown(ctx)
}

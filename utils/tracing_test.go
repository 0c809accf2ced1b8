package utils

import (
	"context"
	"testing"

	"nhap/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerInstallsRecordingProvider(t *testing.T) {
	tp, err := InitTracer(context.Background(), config.Config{OTelServiceName: "nhap", Env: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	assert.Same(t, tp, otel.GetTracerProvider())
	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.True(t, span.IsRecording())
	assert.True(t, span.SpanContext().IsValid())
}

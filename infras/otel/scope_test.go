package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"hotel/infras/otel"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScope_Attributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttribute("booking.nights", 3)
		scope.SetAttributes(map[string]any{
			"booking.total":  420.5,
			"booking.room":   "r-305",
			"booking.guests": []string{"g1"},
			"booking.paid":   false,
			"lock.wait":      1500 * time.Millisecond,
		})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), attrs["booking.nights"].AsInt64())
	assert.InDelta(t, 420.5, attrs["booking.total"].AsFloat64(), 0.0001)
	assert.Equal(t, "r-305", attrs["booking.room"].AsString())
	assert.Equal(t, []string{"g1"}, attrs["booking.guests"].AsStringSlice())
	assert.False(t, attrs["booking.paid"].AsBool())
	assert.Equal(t, "1.5s", attrs["lock.wait"].AsString())
}

func TestScope_TraceIfError(t *testing.T) {
	clean := record(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})
	assert.Equal(t, codes.Unset, clean.Status().Code)

	failed := record(t, func(scope otel.Scope) {
		scope.AddEvent("room locked")
		scope.TraceIfError(errors.New("room r-305 is not available"))
	})
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "room r-305 is not available", failed.Status().Description)
	require.NotEmpty(t, failed.Events())
	assert.Equal(t, "room locked", failed.Events()[0].Name)
}

package telemetry

import (
	"context"
	"testing"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), "test", false)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	_, span := Tracer("test").Start(context.Background(), "noop")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("expected a no-op span when telemetry is disabled")
	}
}

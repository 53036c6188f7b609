package telemetry_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/wiki_search/pkg/telemetry"
)

func TestSetupTracing_Disabled_Noop(t *testing.T) {
	shutdown, err := telemetry.SetupTracing(context.Background(), telemetry.Options{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown must not fail: %v", err)
	}
}

func TestClampRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		if got := telemetry.ClampRatio(tt.in); got != tt.want {
			t.Fatalf("ClampRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

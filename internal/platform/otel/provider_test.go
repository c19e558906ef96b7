package otel

import (
	"context"
	"strings"
	"testing"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("CRAPSHOOT_OTEL_ENDPOINT", "")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("CRAPSHOOT_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("CRAPSHOOT_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupRejectsMalformedEnv(t *testing.T) {
	t.Setenv("CRAPSHOOT_OTEL_SAMPLE_RATIO", "half")

	_, err := Setup(context.Background(), "test-service")
	if err == nil || !strings.Contains(err.Error(), "otel config") {
		t.Fatalf("err = %v, want otel config error", err)
	}
}

func TestSamplerBounds(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 1, want: "AlwaysOnSampler"},
		{ratio: 2, want: "AlwaysOnSampler"},
		{ratio: 0, want: "AlwaysOffSampler"},
		{ratio: 0.5, want: "ParentBased"},
	}
	for _, tc := range tests {
		got := sampler(tc.ratio).Description()
		if !strings.HasPrefix(got, tc.want) {
			t.Fatalf("sampler(%v) = %q, want prefix %q", tc.ratio, got, tc.want)
		}
	}
}

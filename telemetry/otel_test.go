package telemetry

import (
	"context"
	"testing"

	"slotbook/config"

	"go.uber.org/zap"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	config.AppConfig.OtelEnabled = false
	shutdown, err := Setup(context.Background(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestSampleRatio(t *testing.T) {
	for in, want := range map[float64]float64{0: 0, 0.25: 0.25, 1: 1, -1: 1, 2: 1} {
		if got := sampleRatio(in); got != want {
			t.Errorf("sampleRatio(%v) = %v, want %v", in, got, want)
		}
	}
}

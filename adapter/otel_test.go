package adapter

import (
	"context"
	"testing"
	"time"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playerkit/plugin-sleeptimer/pkg/sleeptimer"
)

func TestInstrumentedServiceForwards(t *testing.T) {
	svc := sleeptimer.New(func() {}, sleeptimer.WithUnit(time.Hour))
	inst, err := Instrument(svc, tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
	require.NoError(t, err)

	ctx := context.Background()
	inst.SetTimeout(ctx, 30)
	assert.Eventually(t, func() bool { return svc.Snapshot().Armed }, time.Second, 5*time.Millisecond)

	inst.Cancel(ctx)
	assert.Eventually(t, func() bool { return !svc.Snapshot().Armed }, time.Second, 5*time.Millisecond)

	inst.SetTimeout(ctx, sleeptimer.MaxMinutes+1) // coerced to cancel
	assert.False(t, svc.Snapshot().Armed)

	inst.Shutdown(ctx)
	assert.False(t, svc.Alive())
	assert.Same(t, svc, inst.Service())
}

package adapter

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/playerkit/plugin-sleeptimer/pkg/sleeptimer"
)

const instrumentationName = "github.com/playerkit/plugin-sleeptimer"

// InstrumentedService wraps a countdown service with OpenTelemetry
// spans and counters. Only the otel API is used; the host decides which
// SDK, if any, backs the providers.
type InstrumentedService struct {
	svc    *sleeptimer.Service
	tracer trace.Tracer

	arms    metric.Int64Counter
	cancels metric.Int64Counter
}

// Instrument wraps svc using the given providers.
func Instrument(svc *sleeptimer.Service, tp trace.TracerProvider, mp metric.MeterProvider) (*InstrumentedService, error) {
	meter := mp.Meter(instrumentationName)
	arms, err := meter.Int64Counter("sleeptimer.arms")
	if err != nil {
		return nil, err
	}
	cancels, err := meter.Int64Counter("sleeptimer.cancels")
	if err != nil {
		return nil, err
	}
	return &InstrumentedService{
		svc:     svc,
		tracer:  tp.Tracer(instrumentationName),
		arms:    arms,
		cancels: cancels,
	}, nil
}

// SetTimeout records the instruction and forwards it to the service.
func (i *InstrumentedService) SetTimeout(ctx context.Context, minutes int) {
	ctx, span := i.tracer.Start(ctx, "sleeptimer.SetTimeout")
	defer span.End()
	if sleeptimer.ValidTimeout(minutes) {
		i.arms.Add(ctx, 1)
	} else {
		i.cancels.Add(ctx, 1)
	}
	i.svc.SetTimeout(minutes)
}

// Cancel disarms the timer.
func (i *InstrumentedService) Cancel(ctx context.Context) {
	ctx, span := i.tracer.Start(ctx, "sleeptimer.Cancel")
	defer span.End()
	i.cancels.Add(ctx, 1)
	i.svc.Cancel()
}

// Shutdown stops the service and waits for its worker.
func (i *InstrumentedService) Shutdown(ctx context.Context) {
	_, span := i.tracer.Start(ctx, "sleeptimer.Shutdown")
	defer span.End()
	i.svc.Shutdown()
}

// Service returns the wrapped countdown service.
func (i *InstrumentedService) Service() *sleeptimer.Service {
	return i.svc
}

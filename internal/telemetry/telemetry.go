// Package telemetry counts instrument events with OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "proximity.klederson.com/instrument"

// Recorder holds the instrument counters.
type Recorder struct {
	activations   metric.Int64Counter
	deactivations metric.Int64Counter
	pulses        metric.Int64Counter
	crackles      metric.Int64Counter
}

// New creates counters on m. A nil meter uses the global provider,
// which is a no-op unless one has been installed.
func New(m metric.Meter) (*Recorder, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}

	r := &Recorder{}
	var err error

	r.activations, err = m.Int64Counter(
		"proximity.gate.activations",
		metric.WithDescription("Times the instrument went live"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating activations counter: %w", err)
	}

	r.deactivations, err = m.Int64Counter(
		"proximity.gate.deactivations",
		metric.WithDescription("Times the instrument went quiet, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating deactivations counter: %w", err)
	}

	r.pulses, err = m.Int64Counter(
		"proximity.audio.pulses",
		metric.WithDescription("Audio pulses armed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pulses counter: %w", err)
	}

	r.crackles, err = m.Int64Counter(
		"proximity.indicator.crackles",
		metric.WithDescription("Sweep frames rendered with breakup"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating crackles counter: %w", err)
	}

	return r, nil
}

// Nop returns a recorder backed by the no-op meter.
func Nop() *Recorder {
	r, _ := New(noop.Meter{})
	return r
}

// Activated counts a gate activation on the vessel.
func (r *Recorder) Activated(vesselID string) {
	r.activations.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("vessel", vesselID)))
}

// Deactivated counts a gate deactivation with its reason.
func (r *Recorder) Deactivated(vesselID, reason string) {
	r.deactivations.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("vessel", vesselID), attribute.String("reason", reason)))
}

// Pulse counts one armed audio pulse.
func (r *Recorder) Pulse(vesselID string) {
	r.pulses.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("vessel", vesselID)))
}

// Crackle counts one crackled sweep frame.
func (r *Recorder) Crackle(vesselID string) {
	r.crackles.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("vessel", vesselID)))
}

// Package instrument composes sampling, gating, scheduling and rendering
// into one per-frame step.
package instrument

import (
	"math/rand"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"proximity.klederson.com/internal/gate"
	"proximity.klederson.com/internal/indicator"
	"proximity.klederson.com/internal/scheduler"
	"proximity.klederson.com/internal/telemetry"
	"proximity.klederson.com/internal/vessel"
)

// Frame is what the host needs to draw one frame.
type Frame struct {
	Signal    vessel.Signal
	Altitude  int
	Active    bool
	Reason    gate.Reason
	Event     gate.Event
	Sweep     string // last rendered track; shown only while Active
	Color     lipgloss.Color
	Refreshed bool
	Pulsed    bool
	Crackled  bool
}

// Options wires optional collaborators. Zero values are safe.
type Options struct {
	Publisher scheduler.Publisher
	Pulser    scheduler.Pulser
	Rand      *rand.Rand
	Recorder  *telemetry.Recorder
	Logger    *zerolog.Logger
}

// Instrument is one installed warning unit.
type Instrument struct {
	id       string
	vesselID string
	registry *Registry

	gate      *gate.Gate
	scheduler *scheduler.Scheduler
	recorder  *telemetry.Recorder
	log       zerolog.Logger
}

// New creates an instrument. It registers on the vessel of the first signal it sees.
func New(id string, reg *Registry, opts Options) *Instrument {
	rec := opts.Recorder
	if rec == nil {
		rec = telemetry.Nop()
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("instrument", id).Logger()
	}

	return &Instrument{
		id:        id,
		registry:  reg,
		gate:      gate.New(),
		scheduler: scheduler.New(indicator.New(opts.Rand), opts.Publisher, opts.Pulser),
		recorder:  rec,
		log:       log,
	}
}

// ID returns the instance identifier.
func (in *Instrument) ID() string {
	return in.id
}

// Detach removes the instance from its vessel.
func (in *Instrument) Detach() {
	if in.vesselID == "" {
		return
	}
	in.registry.Deregister(in.vesselID, in.id)
	in.log.Debug().Str("vessel", in.vesselID).Msg("detached")
	in.vesselID = ""
}

func (in *Instrument) attach(vesselID string) {
	if vesselID == in.vesselID {
		return
	}
	in.Detach()
	in.vesselID = vesselID
	in.registry.Register(vesselID, in.id)

	// Timers belong to the previous vessel's clock.
	in.gate = gate.New()
	in.scheduler.Reset()
	in.scheduler.Silence(in.registry.Settings())
	in.log.Debug().Str("vessel", vesselID).Msg("attached")
}

// Tick runs one frame against the latest telemetry snapshot.
func (in *Instrument) Tick(sig vessel.Signal) Frame {
	in.attach(sig.VesselID)
	settings := in.registry.Settings()

	sig.Primary = in.registry.IsPrimary(sig.VesselID, in.id)
	altitude := vessel.Sample(sig)
	event := in.gate.Update(sig, altitude, gate.ParamsFrom(settings))

	f := Frame{
		Signal:   sig,
		Altitude: altitude,
		Active:   in.gate.Active(),
		Reason:   in.gate.Reason(),
		Event:    event,
	}

	switch event {
	case gate.Activated:
		in.recorder.Activated(sig.VesselID)
		in.log.Info().Int("altitude", altitude).Float64("vs", sig.VerticalSpeed).Msg("instrument live")
	case gate.Deactivated:
		in.recorder.Deactivated(sig.VesselID, f.Reason.String())
		in.log.Info().Str("reason", f.Reason.String()).Int("altitude", altitude).Msg("instrument quiet")
	}

	if f.Active {
		out := in.scheduler.Tick(scheduler.Input{
			Signal:   sig,
			Altitude: altitude,
			Settings: settings,
			Event:    event,
		})
		f.Refreshed, f.Pulsed, f.Crackled = out.Refreshed, out.Pulsed, out.Crackled
		if out.Pulsed {
			in.recorder.Pulse(sig.VesselID)
		}
		if out.Crackled {
			in.recorder.Crackle(sig.VesselID)
			in.log.Debug().Float64("vs", sig.VerticalSpeed).Msg("crackle")
		}
	} else if event == gate.Deactivated {
		in.scheduler.Silence(settings)
	}

	f.Sweep = in.scheduler.Sweep()
	f.Color = indicator.Color(altitude, sig.VerticalSpeed, sig.Powered, settings)
	return f
}

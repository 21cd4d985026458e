package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"proximity.klederson.com/internal/config"
	"proximity.klederson.com/internal/gate"
	"proximity.klederson.com/internal/instrument"
	"proximity.klederson.com/internal/ui"
	"proximity.klederson.com/internal/vessel"
)

// Source pushes telemetry snapshots into the program.
type Source interface {
	Start(p vessel.Sender) error
	Stop()
}

// Options wires the model to the instrument and its telemetry.
type Options struct {
	Registry   *instrument.Registry
	Instrument *instrument.Instrument
	Source     Source
	SourceName string
	Logger     *zerolog.Logger
	Audio      bool
	Pulses     func() int64 // armed pulse count, when audio is on
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	registry   *instrument.Registry
	instrument *instrument.Instrument
	source     Source
	history    *Ring[float64]
	events     *Ring[string]
	pulses     func() int64
	log        zerolog.Logger
}

// AppModel is the root Bubble Tea model for the instrument host.
type AppModel struct {
	width  int
	height int

	paused     bool
	audio      bool
	sourceName string

	signal     vessel.Signal
	haveSignal bool
	frame      instrument.Frame
	feedErr    error

	shared *shared
}

// New creates a new AppModel.
func New(opts Options) AppModel {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	pulses := opts.Pulses
	if pulses == nil {
		pulses = func() int64 { return 0 }
	}

	return AppModel{
		audio:      opts.Audio,
		sourceName: opts.SourceName,
		frame:      instrument.Frame{Reason: gate.SwitchedOff},
		shared: &shared{
			registry:   opts.Registry,
			instrument: opts.Instrument,
			source:     opts.Source,
			history:    NewRing[float64](config.HistoryLen),
			events:     NewRing[string](config.EventLogLen),
			pulses:     pulses,
			log:        log,
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m = m.step()
		return m, tickCmd()

	case vessel.SignalMsg:
		m.signal = msg.Signal
		m.haveSignal = true
		m.feedErr = nil
		return m, nil

	case vessel.StreamErrorMsg:
		m.feedErr = msg.Err
		m.shared.log.Error().Err(msg.Err).Msg("telemetry feed failed")
		return m, nil
	}

	return m, nil
}

// step runs one instrument frame on the latest snapshot.
func (m AppModel) step() AppModel {
	if !m.haveSignal {
		return m
	}

	sig := m.signal
	if m.paused {
		sig.Paused = true
	}

	m.frame = m.shared.instrument.Tick(sig)
	m.shared.history.Add(sig.VerticalSpeed)

	if m.frame.Event != gate.NoChange {
		entry := fmt.Sprintf("T+%06.1fs %-11s %s", sig.MissionTime, m.frame.Event, m.frame.Reason)
		m.shared.events.Add(entry)
	}
	return m
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.shared.registry.Settings()

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.stopSource()
		return m, tea.Quit

	case " ":
		m.paused = !m.paused
		return m, nil

	case "o", "O":
		s.SystemOn = !s.SystemOn
	case "a", "A":
		s.AlwaysShow = !s.AlwaysShow
	case "w", "W":
		s.Waveform = s.Waveform.Next()
	case "v", "V":
		s.Visual = s.Visual.Next()
	case "p", "P":
		s.Pitch = s.Pitch.Next()
	case "+", "=":
		s = s.StepActivationHeight(1)
	case "-", "_":
		s = s.StepActivationHeight(-1)
	case ">", ".":
		s = s.StepDSThreshold(1)
	case "<", ",":
		s = s.StepDSThreshold(-1)

	default:
		return m, nil
	}

	m.shared.registry.SetSettings(s)
	m.shared.log.Debug().
		Bool("systemOn", s.SystemOn).
		Bool("alwaysShow", s.AlwaysShow).
		Str("waveform", s.Waveform.String()).
		Str("visual", s.Visual.String()).
		Str("pitch", s.Pitch.String()).
		Int("activationHeight", s.ActivationHeight).
		Int("dsThreshold", s.DSThreshold).
		Msg("settings changed")
	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	s := m.shared.registry.Settings()

	menuH := 1
	statusH := 1
	sweepH := 7
	bodyH := max(8, m.height-menuH-statusH-sweepH)

	menuBar := ui.RenderMenuBar(m.width, m.sourceName, s.SystemOn)

	reason := m.frame.Reason.String()
	if !m.haveSignal {
		reason = "waiting for telemetry"
	}
	sweepPanel := ui.RenderSweepPanel(m.width, sweepH, ui.SweepView{
		Track:  m.frame.Sweep,
		Color:  m.frame.Color,
		Active: m.frame.Active,
		Reason: reason,
	})

	telemetry := ui.RenderTelemetryPanel(m.frame, m.width, bodyH,
		m.shared.history.Slice(), m.shared.events.Newest(config.EventLogLen))

	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Active:   m.frame.Active,
		Reason:   reason,
		Paused:   m.paused,
		Audio:    m.audio,
		Pulses:   m.shared.pulses(),
		Settings: s,
		Err:      m.feedErr,
	})

	return ui.ComposeLayout(menuBar, sweepPanel, telemetry, statusBar)
}

// StartSource starts the telemetry source. Must be called before p.Run().
func (m *AppModel) StartSource(p *tea.Program) error {
	if m.shared.source == nil {
		return nil
	}
	if err := m.shared.source.Start(p); err != nil {
		return fmt.Errorf("failed to start telemetry source: %w", err)
	}
	return nil
}

func (m *AppModel) stopSource() {
	if m.shared.source != nil {
		m.shared.source.Stop()
	}
	m.shared.instrument.Detach()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

package config

import "time"

const (
	// Warning track
	TrackLength  = 50  // Filler characters in the sweep track
	TrackFiller  = '-' // Uniform filler character
	TrackMarker  = 'O' // Near/far marker character
	CrackleLimit = 20  // Max glitch substitutions per render

	// Gating
	DefaultGracePeriod = 3.0 // Seconds of hysteresis at landing, launch and descent reversal
	AscentSpeed        = 0.1 // m/s at or above which the vessel counts as ascending
	LandedSpeed        = 1.0 // m/s below which a vessel on the ground counts as settled

	// Audio
	SampleRate       = 44100 // Default output sample rate
	BaseFrequency    = 280.0 // Hz, variable-pitch floor
	TerminalSpeed    = 250.0 // m/s, descent speed at which variable pitch stops rising
	PitchPerSpeed    = 15.0  // Hz per m/s of descent
	ReuseTolerance   = 8.0   // Hz, frequency drift that still reuses the previous buffer
	SamplesPerLength = 512   // Samples per unit of beep length
	AudioCadence     = 8     // Scheduler refreshes between audio pulses
	BeepIntervalGain = 15    // Refresh interval scale (frames at the activation ceiling)

	// Settings bounds, applied by the loader
	MinActivationHeight  = 500
	MaxActivationHeight  = 10000
	ActivationHeightStep = 500
	MinDSThreshold       = 50
	MaxDSThreshold       = 2000
	DSThresholdStep      = 50
	MinBeepLength        = 1
	MaxBeepLength        = 10

	// Host
	TargetFPS    = 30                     // Frames per second driven into the instrument
	FeedInterval = 100 * time.Millisecond // Demo telemetry cadence
	HistoryLen   = 120                    // Vertical speed samples kept for the sparkline
	EventLogLen  = 6                      // Gate transitions listed in the telemetry panel
	ConfigName   = "proximity.cfg.json"

	// App
	AppName    = "PROXIMITY"
	AppVersion = "2.1"
)

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Waveform selects the beep tone shape.
type Waveform int

const (
	WaveSquare Waveform = iota
	WaveSaw
	WaveSine
	WaveSilent
)

var waveformNames = []string{"square", "saw", "sine", "none"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return "unknown"
	}
	return waveformNames[w]
}

// Next cycles to the following waveform.
func (w Waveform) Next() Waveform {
	return (w + 1) % Waveform(len(waveformNames))
}

// Pitch selects how the tone frequency is chosen.
type Pitch int

const (
	PitchVariable Pitch = iota
	Pitch440
	Pitch880
	Pitch1760
)

var pitchNames = []string{"variable", "440", "880", "1760"}

func (p Pitch) String() string {
	if p < 0 || int(p) >= len(pitchNames) {
		return "unknown"
	}
	return pitchNames[p]
}

// Next cycles to the following pitch mode.
func (p Pitch) Next() Pitch {
	return (p + 1) % Pitch(len(pitchNames))
}

// Visual selects what the sweep marker encodes.
type Visual int

const (
	VisualDistance Visual = iota
	VisualSpeed
	VisualHybrid
	VisualHidden
)

var visualNames = []string{"distance", "speed", "hybrid", "hidden"}

func (v Visual) String() string {
	if v < 0 || int(v) >= len(visualNames) {
		return "unknown"
	}
	return visualNames[v]
}

// Next cycles to the following visual mode.
func (v Visual) Next() Visual {
	return (v + 1) % Visual(len(visualNames))
}

func parseIndex(names []string, s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}

// Settings is the tunables bag read by the instrument each tick.
// Values are assumed to be clamped already; see Clamp.
type Settings struct {
	ActivationHeight      int      `json:"activationHeight" mapstructure:"activationHeight"`
	DSThreshold           int      `json:"dsThreshold" mapstructure:"dsThreshold"`
	BeepLength            int      `json:"beepLength" mapstructure:"beepLength"`
	Waveform              Waveform `json:"-" mapstructure:"-"`
	Pitch                 Pitch    `json:"-" mapstructure:"-"`
	Visual                Visual   `json:"-" mapstructure:"-"`
	Volume                float64  `json:"volume" mapstructure:"volume"`
	DeactivateOnParachute bool     `json:"offIfParachute" mapstructure:"offIfParachute"`
	DeactivateIfRover     bool     `json:"offIfRover" mapstructure:"offIfRover"`
	SystemOn              bool     `json:"systemOn" mapstructure:"systemOn"`
	AlwaysShow            bool     `json:"alwaysShow" mapstructure:"alwaysShow"`
	GracePeriod           float64  `json:"gracePeriod" mapstructure:"gracePeriod"`
	ReuseBuffer           bool     `json:"reuseBuffer" mapstructure:"reuseBuffer"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		ActivationHeight:      4000,
		DSThreshold:           500,
		BeepLength:            3,
		Waveform:              WaveSaw,
		Pitch:                 PitchVariable,
		Visual:                VisualSpeed,
		Volume:                0.5,
		DeactivateOnParachute: true,
		DeactivateIfRover:     true,
		SystemOn:              true,
		GracePeriod:           DefaultGracePeriod,
	}
}

// Clamp forces every field into its documented range.
func (s Settings) Clamp() Settings {
	s.ActivationHeight = clampInt(s.ActivationHeight, MinActivationHeight, MaxActivationHeight)
	s.DSThreshold = clampInt(s.DSThreshold, MinDSThreshold, MaxDSThreshold)
	s.BeepLength = clampInt(s.BeepLength, MinBeepLength, MaxBeepLength)

	if s.Waveform < WaveSquare || s.Waveform > WaveSilent {
		s.Waveform = WaveSaw
	}
	if s.Pitch < PitchVariable || s.Pitch > Pitch1760 {
		s.Pitch = PitchVariable
	}
	if s.Visual < VisualDistance || s.Visual > VisualHidden {
		s.Visual = VisualSpeed
	}

	if s.Volume < 0 {
		s.Volume = 0
	}
	if s.Volume > 1 {
		s.Volume = 1
	}
	if s.GracePeriod <= 0 {
		s.GracePeriod = DefaultGracePeriod
	}
	return s
}

// BeepSamples is the length in samples of one audio pulse.
func (s Settings) BeepSamples() int {
	return s.BeepLength * SamplesPerLength
}

// StepActivationHeight moves the ceiling by n steps, staying in bounds.
func (s Settings) StepActivationHeight(n int) Settings {
	s.ActivationHeight = clampInt(s.ActivationHeight+n*ActivationHeightStep, MinActivationHeight, MaxActivationHeight)
	return s
}

// StepDSThreshold moves the distance/speed threshold by n steps, staying in bounds.
func (s Settings) StepDSThreshold(n int) Settings {
	s.DSThreshold = clampInt(s.DSThreshold+n*DSThresholdStep, MinDSThreshold, MaxDSThreshold)
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func setDefaults() {
	d := Defaults()
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "proximity.log")
	viper.SetDefault("sampleRate", SampleRate)

	viper.SetDefault("activationHeight", d.ActivationHeight)
	viper.SetDefault("dsThreshold", d.DSThreshold)
	viper.SetDefault("beepLength", d.BeepLength)
	viper.SetDefault("waveform", d.Waveform.String())
	viper.SetDefault("pitch", d.Pitch.String())
	viper.SetDefault("visual", d.Visual.String())
	viper.SetDefault("volume", d.Volume)
	viper.SetDefault("offIfParachute", d.DeactivateOnParachute)
	viper.SetDefault("offIfRover", d.DeactivateIfRover)
	viper.SetDefault("systemOn", d.SystemOn)
	viper.SetDefault("alwaysShow", d.AlwaysShow)
	viper.SetDefault("gracePeriod", d.GracePeriod)
	viper.SetDefault("reuseBuffer", d.ReuseBuffer)
}

// Load reads configuration from the JSON file in configDir and sets default values.
// A missing file is not an error: defaults stay in effect and found is false.
func Load(configDir string) (found bool, err error) {
	setDefaults()

	viper.SetConfigName(ConfigName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("error reading config file: %w", err)
	}
	return true, nil
}

// Current decodes the loaded configuration into clamped Settings.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}

	d := Defaults()
	if i, ok := parseIndex(waveformNames, viper.GetString("waveform")); ok {
		s.Waveform = Waveform(i)
	} else {
		s.Waveform = d.Waveform
	}
	if i, ok := parseIndex(pitchNames, viper.GetString("pitch")); ok {
		s.Pitch = Pitch(i)
	} else {
		s.Pitch = d.Pitch
	}
	if i, ok := parseIndex(visualNames, viper.GetString("visual")); ok {
		s.Visual = Visual(i)
	} else {
		s.Visual = d.Visual
	}
	return s.Clamp(), nil
}

// Save writes the settings to path as JSON.
func Save(path string, s Settings) error {
	viper.Set("activationHeight", s.ActivationHeight)
	viper.Set("dsThreshold", s.DSThreshold)
	viper.Set("beepLength", s.BeepLength)
	viper.Set("waveform", s.Waveform.String())
	viper.Set("pitch", s.Pitch.String())
	viper.Set("visual", s.Visual.String())
	viper.Set("volume", s.Volume)
	viper.Set("offIfParachute", s.DeactivateOnParachute)
	viper.Set("offIfRover", s.DeactivateIfRover)
	viper.Set("systemOn", s.SystemOn)
	viper.Set("alwaysShow", s.AlwaysShow)
	viper.Set("gracePeriod", s.GracePeriod)
	viper.Set("reuseBuffer", s.ReuseBuffer)

	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

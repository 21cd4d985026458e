package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"activationHeight": 3000,
		"dsThreshold": 250,
		"waveform": "square",
		"pitch": "880",
		"visual": "hybrid",
		"offIfRover": false
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(cfg), 0644))

	found, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, found)

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, 3000, s.ActivationHeight)
	assert.Equal(t, 250, s.DSThreshold)
	assert.Equal(t, WaveSquare, s.Waveform)
	assert.Equal(t, Pitch880, s.Pitch)
	assert.Equal(t, VisualHybrid, s.Visual)
	assert.False(t, s.DeactivateIfRover)
	assert.True(t, s.DeactivateOnParachute)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	found, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, found)

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, SampleRate, GetInt("sampleRate"))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(`{not json`), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestCurrent_ClampsOutOfRange(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"activationHeight": 20000,
		"dsThreshold": 10,
		"beepLength": 0,
		"volume": 3.5,
		"waveform": "kazoo"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(cfg), 0644))
	_, err := Load(dir)
	require.NoError(t, err)

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, MaxActivationHeight, s.ActivationHeight)
	assert.Equal(t, MinDSThreshold, s.DSThreshold)
	assert.Equal(t, MinBeepLength, s.BeepLength)
	assert.Equal(t, 1.0, s.Volume)
	assert.Equal(t, WaveSaw, s.Waveform)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	_, err := Load(dir)
	require.NoError(t, err)

	s := Defaults()
	s.ActivationHeight = 6500
	s.Waveform = WaveSine
	s.Visual = VisualDistance
	s.SystemOn = false
	require.NoError(t, Save(filepath.Join(dir, ConfigName), s))

	viper.Reset()
	found, err := Load(dir)
	require.NoError(t, err)
	require.True(t, found)

	got, err := Current()
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSettings_Steps(t *testing.T) {
	s := Defaults()

	assert.Equal(t, 4500, s.StepActivationHeight(1).ActivationHeight)
	assert.Equal(t, MaxActivationHeight, s.StepActivationHeight(100).ActivationHeight)
	assert.Equal(t, MinActivationHeight, s.StepActivationHeight(-100).ActivationHeight)
	assert.Equal(t, 550, s.StepDSThreshold(1).DSThreshold)
	assert.Equal(t, MinDSThreshold, s.StepDSThreshold(-100).DSThreshold)
	assert.Equal(t, 3*SamplesPerLength, s.BeepSamples())
}

func TestEnums_CycleAndName(t *testing.T) {
	assert.Equal(t, WaveSquare, WaveSilent.Next())
	assert.Equal(t, "none", WaveSilent.String())
	assert.Equal(t, PitchVariable, Pitch1760.Next())
	assert.Equal(t, "1760", Pitch1760.String())
	assert.Equal(t, VisualDistance, VisualHidden.Next())
	assert.Equal(t, "hybrid", VisualHybrid.String())
	assert.Equal(t, "unknown", Visual(9).String())
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"proximity.klederson.com/internal/app"
	"proximity.klederson.com/internal/audio"
	"proximity.klederson.com/internal/config"
	"proximity.klederson.com/internal/instrument"
	"proximity.klederson.com/internal/logging"
	"proximity.klederson.com/internal/scheduler"
	"proximity.klederson.com/internal/synth"
	"proximity.klederson.com/internal/telemetry"
	"proximity.klederson.com/internal/vessel"
)

var (
	flagDemo       bool
	flagConfigDir  string
	flagTelemetry  string
	flagSampleRate int
	flagMute       bool
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proximity",
		Short: "Proximity - terminal descent warning instrument",
		Long: `Proximity watches altitude and vertical speed during a descent and warns
with a rising tone and a sweeping text indicator as the ground gets closer.

Telemetry comes from a newline-delimited JSON file or pipe (--telemetry), or
from a scripted hop (--demo). Settings are read from and saved to
proximity.cfg.json in the config directory.`,
		RunE:         run,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigDir, "config", ".", "Directory holding "+config.ConfigName)
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default from config, \"proximity.log\")")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Fly the built-in demo hop instead of reading telemetry")
	rootCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Path to a JSON-lines telemetry file or FIFO")
	rootCmd.Flags().IntVar(&flagSampleRate, "sample-rate", 0, "Audio sample rate in Hz (default from config, 44100)")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio output")

	rootCmd.AddCommand(newSimulateCmd())
	return rootCmd
}

// loadSettings reads the config directory and opens the log.
func loadSettings() (config.Settings, zerolog.Logger, func(), error) {
	found, err := config.Load(flagConfigDir)
	if err != nil {
		return config.Settings{}, zerolog.Nop(), nil, err
	}
	settings, err := config.Current()
	if err != nil {
		return config.Settings{}, zerolog.Nop(), nil, err
	}

	logPath := flagLogFile
	if logPath == "" {
		logPath = config.GetString("logFile")
	}
	level := flagLogLevel
	if level == "" {
		level = config.GetString("logLevel")
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return config.Settings{}, zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := logging.Setup(f, level)
	closeLog := func() { _ = f.Close() }

	if !found {
		logger.Warn().Str("dir", flagConfigDir).Msg("no config file found, using defaults")
	}
	return settings, logger, closeLog, nil
}

func run(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use `proximity simulate` for headless runs")
	}

	settings, logger, closeLog, err := loadSettings()
	if err != nil {
		return err
	}
	defer closeLog()

	source, sourceName, err := openSource()
	if err != nil {
		return err
	}
	defer source.Stop()

	sampleRate := flagSampleRate
	if sampleRate <= 0 {
		sampleRate = config.GetInt("sampleRate")
	}

	registry := instrument.NewRegistry(settings)
	recorder, err := telemetry.New(nil)
	if err != nil {
		return err
	}

	syn := synth.New(sampleRate)
	var pulser scheduler.Pulser
	var pulses func() int64
	if !flagMute {
		src := audio.NewSource(syn)
		player, err := audio.NewPlayer(sampleRate, src)
		if err != nil {
			logger.Warn().Err(err).Msg("synthesizer disabled, gating still runs")
		} else {
			player.Start()
			defer func() {
				if err := player.Close(); err != nil {
					logger.Warn().Err(err).Msg("audio shutdown")
				}
			}()
			pulser, pulses = src, src.Pulses
		}
	}

	inst := instrument.New("proximity-1", registry, instrument.Options{
		Publisher: syn,
		Pulser:    pulser,
		Recorder:  recorder,
		Logger:    &logger,
	})

	model := app.New(app.Options{
		Registry:   registry,
		Instrument: inst,
		Source:     source,
		SourceName: sourceName,
		Logger:     &logger,
		Audio:      pulser != nil,
		Pulses:     pulses,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	if err := model.StartSource(p); err != nil {
		return err
	}
	logger.Info().Str("source", sourceName).Int("sampleRate", sampleRate).Bool("audio", pulser != nil).Msg("instrument started")

	_, err = p.Run()

	path := filepath.Join(flagConfigDir, config.ConfigName)
	if saveErr := config.Save(path, registry.Settings()); saveErr != nil {
		logger.Error().Err(saveErr).Msg("settings not saved")
		err = errors.Join(err, saveErr)
	} else {
		logger.Info().Str("path", path).Msg("settings saved")
	}
	return err
}

func openSource() (app.Source, string, error) {
	switch {
	case flagDemo:
		return vessel.NewFeed(vessel.DemoProfile(), config.FeedInterval), "demo", nil
	case flagTelemetry != "":
		f, err := os.Open(flagTelemetry)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open telemetry: %w", err)
		}
		return vessel.NewStream(f), filepath.Base(flagTelemetry), nil
	}

	fmt.Fprintln(os.Stderr, "\nError: no telemetry source.")
	fmt.Fprintln(os.Stderr, "Try one of:")
	fmt.Fprintln(os.Stderr, "  ./proximity --telemetry /path/to/feed.jsonl")
	fmt.Fprintln(os.Stderr, "  ./proximity --demo    (scripted hop, no simulator needed)")
	return nil, "", errors.New("no telemetry source")
}

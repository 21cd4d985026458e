package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/cobra"

	"proximity.klederson.com/internal/config"
	"proximity.klederson.com/internal/gate"
	"proximity.klederson.com/internal/instrument"
	"proximity.klederson.com/internal/vessel"
)

var (
	flagTicks int
	flagEvery int
	flagSeed  int64
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fly the demo hop headlessly and print sweep frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, closeLog, err := loadSettings()
			if err != nil {
				return err
			}
			defer closeLog()

			reg := instrument.NewRegistry(settings)
			inst := instrument.New("simulate", reg, instrument.Options{
				Rand:   rand.New(rand.NewSource(flagSeed)),
				Logger: &logger,
			})
			return simulate(cmd.OutOrStdout(), inst, vessel.DemoProfile(), flagTicks, flagEvery)
		},
	}

	cmd.Flags().IntVar(&flagTicks, "ticks", 160*config.TargetFPS, "Frames to run at the host frame rate")
	cmd.Flags().IntVar(&flagEvery, "every", config.TargetFPS/2, "Print every Nth frame, plus every gate transition")
	cmd.Flags().Int64Var(&flagSeed, "seed", 1, "Crackle random seed")
	return cmd
}

// simulate drives inst through p one frame at a time and writes a line per
// printed frame: mission time, altitude, vertical speed, gate reason, sweep.
func simulate(w io.Writer, inst *instrument.Instrument, p vessel.Profile, ticks, every int) error {
	every = max(1, every)
	for tick := 0; tick < ticks; tick++ {
		f := inst.Tick(p.At(float64(tick) / config.TargetFPS))
		if tick%every != 0 && f.Event == gate.NoChange {
			continue
		}

		sweep := ""
		if f.Active {
			sweep = f.Sweep
		}
		_, err := fmt.Fprintf(w, "T+%06.2f %5dm %+7.1fm/s %-14s %s\n",
			f.Signal.MissionTime, f.Altitude, f.Signal.VerticalSpeed, f.Reason, sweep)
		if err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	}
	inst.Detach()
	return nil
}

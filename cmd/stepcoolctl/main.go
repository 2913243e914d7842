// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command stepcoolctl is a CLI test harness exercising the thermal
// manager end to end: tick the estimator, run a predictive sweep, or
// replay an operating-point scenario and print the resulting
// temperatures and admit decision.
package main

import (
	"os"

	"github.com/ascdrive/stepcool/config"
	"github.com/ascdrive/stepcool/statespace"
	"github.com/ascdrive/stepcool/thermal"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var scheduleFile string

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:   "stepcoolctl",
		Short: "Thermal-overload management subsystem test harness",
		Long: `stepcoolctl drives the motor/driver thermal estimator and overload
predictor from the command line: one-off ticks, predictive sweeps, a
multi-period simulation loop, or a replay of fixed operating-point
scenarios.`,
	}
	root.PersistentFlags().StringVar(&scheduleFile, "schedule", "", "path to a schedule JSON file (defaults to the reference characterization's constants)")

	root.AddCommand(newTickCmd(), newPredictCmd(), newServeLoopCmd(), newScenarioCmd())

	if err := root.Execute(); err != nil {
		io.Pfred("%v\n", err)
		os.Exit(1)
	}
}

func loadSchedule() (*config.Schedule, error) {
	if scheduleFile == "" {
		return config.Default(), nil
	}
	return config.Load(scheduleFile)
}

func buildManager(sched *config.Schedule) (*thermal.Manager, error) {
	cfg := &thermal.Config{
		StateSpace: statespace.Default(),

		EstimatorH:            sched.EstimatorH,
		EstimatorPeriodCounts: sched.EstimatorPeriodCounts,
		EstimatorInitialState: sched.EstimatorInitialState,

		PredictorH:              sched.PredictorH,
		PredictorPeriodCounts:   sched.PredictorPeriodCounts,
		PredictorOverloadCounts: sched.PredictorOverloadCounts,
		PredictorInitialState:   sched.PredictorInitialState,
		MaxTempThresholds:       sched.MaxTempThresholds,
		OverloadInputs:          sched.OverloadInputs,
		RatedInputs:             sched.RatedInputs,

		AmbientTemp: sched.AmbientTemp,

		Prms: sched.Prms,
	}

	m := thermal.NewManager()
	if !m.Setup(cfg) {
		chk.Panic("thermal.Manager.Setup failed\n")
	}
	return m, nil
}

func printTemps(label string, temps []float32) {
	io.Pf("%s: [", label)
	for i, t := range temps {
		if i > 0 {
			io.Pf(", ")
		}
		io.Pf("%.3f", t)
	}
	io.Pf("]\n")
}

func newTickCmd() *cobra.Command {
	var current, omega float64
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Advance the estimator by one coarse period and print the resulting temperatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := loadSchedule()
			if err != nil {
				return err
			}
			m, err := buildManager(sched)
			if err != nil {
				return err
			}

			u := make([]float32, 3)
			if !m.CalculateSourceInputs(float32(current), float32(omega), u) {
				chk.Panic("CalculateSourceInputs failed\n")
			}
			m.SetInputs(u)
			m.PeriodicTask()

			out := make([]float32, 4)
			m.GetCurrentTemp(out)
			printTemps("current temp", out)
			return nil
		},
	}
	cmd.Flags().Float64Var(&current, "current", 5.4168, "drive current [A]")
	cmd.Flags().Float64Var(&omega, "omega", 209.4, "rotational speed [rad/s]")
	return cmd
}

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one predictive sweep and print the admit decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := loadSchedule()
			if err != nil {
				return err
			}
			m, err := buildManager(sched)
			if err != nil {
				return err
			}

			m.BackgroundTask()

			out := make([]float32, 4)
			m.GetOLTemp(out)
			printTemps("predicted peak temp", out)
			if m.IsOverloadAvailable() {
				io.PfGreen("overload available: true\n")
			} else {
				io.Pfred("overload available: false\n")
			}
			return nil
		},
	}
	return cmd
}

func newServeLoopCmd() *cobra.Command {
	var periods int
	var current, omega float64
	cmd := &cobra.Command{
		Use:   "serve-loop",
		Short: "Run N coarse periods, interleaving a predictive sweep every period",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := loadSchedule()
			if err != nil {
				return err
			}
			m, err := buildManager(sched)
			if err != nil {
				return err
			}

			u := make([]float32, 3)
			for i := 0; i < periods; i++ {
				if !m.CalculateSourceInputs(float32(current), float32(omega), u) {
					chk.Panic("CalculateSourceInputs failed\n")
				}
				m.SetInputs(u)
				m.PeriodicTask()
				m.BackgroundTask()

				cur := make([]float32, 4)
				m.GetCurrentTemp(cur)
				io.Pf("period %d: ", i)
				printTemps("temp", cur)
			}
			io.Pf("overload available after %d periods: %v\n", periods, m.IsOverloadAvailable())
			return nil
		},
	}
	cmd.Flags().IntVar(&periods, "periods", 10, "number of coarse periods to simulate")
	cmd.Flags().Float64Var(&current, "current", 5.4168, "drive current [A]")
	cmd.Flags().Float64Var(&omega, "omega", 209.4, "rotational speed [rad/s]")
	return cmd
}

// scenario is one fixed operating point replayed end to end through
// the full periodic/background cycle.
type scenario struct {
	name          string
	driveCurrentA float32
	omegaRadps    float32
}

var scenarios = []scenario{
	{"idle", 0.5, 10},
	{"cruise", 5.4168, 209.4},
	{"full-load", 23.04, 1500},
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario [name]",
		Short: "Replay a fixed operating-point scenario end to end (idle, cruise, full-load)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := loadSchedule()
			if err != nil {
				return err
			}
			m, err := buildManager(sched)
			if err != nil {
				return err
			}

			selected := scenarios
			if len(args) > 0 {
				selected = nil
				for _, s := range scenarios {
					if s.name == args[0] {
						selected = append(selected, s)
					}
				}
				if len(selected) == 0 {
					chk.Panic("unknown scenario: %v\n", args[0])
				}
			}

			u := make([]float32, 3)
			for _, s := range selected {
				io.PfWhite("\n-- scenario: %s (current=%.4fA, omega=%.1frad/s) --\n", s.name, s.driveCurrentA, s.omegaRadps)
				if !m.CalculateSourceInputs(s.driveCurrentA, s.omegaRadps, u) {
					chk.Panic("CalculateSourceInputs failed\n")
				}
				m.SetInputs(u)
				m.PeriodicTask()
				m.BackgroundTask()

				cur := make([]float32, 4)
				m.GetCurrentTemp(cur)
				printTemps("current temp", cur)

				ol := make([]float32, 4)
				m.GetOLTemp(ol)
				printTemps("predicted peak temp", ol)

				io.Pf("overload available: %v\n", m.IsOverloadAvailable())
			}
			return nil
		},
	}
	return cmd
}

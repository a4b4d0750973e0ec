package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/aesidau/quantumrandom/qsim"
)

// runHeadless builds, runs and prints one circuit without the TUI.
// Counts go to stdout so they can be piped; everything else is logged.
func runHeadless(key string, shots int, seed int64, qasmOut string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "qsim",
	})

	d, ok := demoByKey(key)
	if !ok {
		logger.Error("unknown circuit", "circuit", key, "available", demoKeys())
		return fmt.Errorf("unknown circuit %q", key)
	}

	p, err := d.build()
	if err != nil {
		logger.Error("build failed", "circuit", key, "err", err)
		return err
	}
	logger.Info("circuit built", "circuit", key, "qubits", p.NumQubits, "gates", len(p.Gates))

	if qasmOut != "" {
		if err := os.WriteFile(qasmOut, []byte(p.ToQASM()), 0644); err != nil {
			logger.Error("qasm write failed", "path", qasmOut, "err", err)
			return err
		}
		logger.Info("qasm written", "path", qasmOut)
	}

	state, err := p.Run()
	if err != nil {
		logger.Error("replay failed", "circuit", key, "err", err)
		return err
	}
	probs := state.Probabilities()
	fmt.Println("statevector:")
	for i, a := range state.Cleaned(0) {
		fmt.Printf("  |%0*b>  %+.4f%+.4fi  %.4f\n", state.NumQubits, i, real(a), imag(a), probs[i])
	}

	backend := qsim.NewSimulatorBackend()
	res, err := backend.Run(p, qsim.RunOptions{Shots: shots, Seed: seed})
	if err != nil {
		logger.Error("run failed", "circuit", key, "err", err)
		return err
	}
	logger.Info("run complete",
		"backend", res.Backend,
		"job", res.JobID,
		"shots", res.Shots,
		"elapsed", res.Elapsed,
	)

	outcomes := make([]string, 0, len(res.Counts))
	for outcome := range res.Counts {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)

	fmt.Println("counts:")
	for _, outcome := range outcomes {
		n := res.Counts[outcome]
		fmt.Printf("  %s %6d  %.4f\n", outcome, n, float64(n)/float64(res.Shots))
	}
	return nil
}

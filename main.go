package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	var (
		headless = flag.Bool("headless", false, "run once and print results instead of the TUI")
		circuit  = flag.String("circuit", "grover", "circuit to run in headless mode: "+demoKeys())
		shots    = flag.Int("shots", 0, "number of measurement shots (0 for the default)")
		seed     = flag.Int64("seed", 0, "random seed for reproducible runs (0 seeds from the clock)")
		qasmOut  = flag.String("qasm", "", "write the circuit as OPENQASM 2.0 to this file")
		list     = flag.Bool("list", false, "list the built-in circuits and exit")
	)
	flag.Parse()

	if *list {
		for _, d := range demos {
			fmt.Printf("%-10s %s\n", d.key, d.desc)
		}
		return
	}

	if *headless {
		if err := runHeadless(*circuit, *shots, *seed, *qasmOut); err != nil {
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

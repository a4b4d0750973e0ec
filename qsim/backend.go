package qsim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Backend runs a finished program and returns aggregated measurement
// counts, the way the notebooks hand a circuit to a qasm_simulator.
// The statevector simulator is the only implementation here; the
// interface leaves room for remote hardware backends.
type Backend interface {
	Name() string
	MaxQubits() int
	IsSimulator() bool
	Run(p *Program, opts RunOptions) (*Result, error)
}

// RunOptions configures one backend run.
type RunOptions struct {
	// Shots is the number of measurement draws; 0 means DefaultShots.
	Shots int
	// Seed fixes the random source for reproducible histograms; 0
	// seeds from the clock.
	Seed int64
	// Measure overrides the program's declared readout qubits. Empty
	// falls back to the program's Measured list, or every qubit.
	Measure []int
}

// Result is the outcome of one backend run.
type Result struct {
	JobID   string
	Backend string
	Shots   int
	Counts  Histogram
	Elapsed time.Duration
}

// SimulatorBackend replays programs against in-memory statevectors.
type SimulatorBackend struct {
	maxQubits int
}

// NewSimulatorBackend returns the local statevector backend. The qubit
// cap keeps amplitude arrays at a sane size for dense simulation.
func NewSimulatorBackend() *SimulatorBackend {
	return &SimulatorBackend{maxQubits: 20}
}

func (b *SimulatorBackend) Name() string      { return "statevector_simulator" }
func (b *SimulatorBackend) MaxQubits() int    { return b.maxQubits }
func (b *SimulatorBackend) IsSimulator() bool { return true }

// Run replays the program from the all-zero state and samples the
// readout qubits.
func (b *SimulatorBackend) Run(p *Program, opts RunOptions) (*Result, error) {
	if p.NumQubits > b.maxQubits {
		return nil, fmt.Errorf("qsim: %d qubits exceeds backend cap of %d: %w",
			p.NumQubits, b.maxQubits, ErrInvalidDimension)
	}

	shots := opts.Shots
	if shots == 0 {
		shots = DefaultShots
	}

	spec := MeasurementSpec{Qubits: opts.Measure}
	if len(spec.Qubits) == 0 {
		if len(p.Measured) > 0 {
			spec.Qubits = p.Measured
		} else {
			spec = AllQubits(p.NumQubits)
		}
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	start := time.Now()
	state, err := p.Run()
	if err != nil {
		return nil, err
	}
	counts, err := Sample(state, spec, shots, rng)
	if err != nil {
		return nil, err
	}

	return &Result{
		JobID:   uuid.NewString(),
		Backend: b.Name(),
		Shots:   shots,
		Counts:  counts,
		Elapsed: time.Since(start),
	}, nil
}

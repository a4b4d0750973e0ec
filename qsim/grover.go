package qsim

import (
	"fmt"
	"math"
	"math/rand"
)

// Phase tracks the Grover session's position in its fixed step order.
type Phase int

const (
	PhaseInitial Phase = iota
	PhasePrepared
	PhaseMarked
	PhaseAmplified
	PhaseMeasured // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhasePrepared:
		return "prepared"
	case PhaseMarked:
		return "marked"
	case PhaseAmplified:
		return "amplified"
	case PhaseMeasured:
		return "measured"
	default:
		return "unknown"
	}
}

// Grover is a per-run amplitude amplification session. The caller
// supplies a bit-flip verify fragment that flips the ancilla qubit
// exactly for solution states; the session converts it into a phase
// oracle, runs the diffusion operator, and samples the non-ancilla
// qubits. Steps must follow prepare, mark, amplify, measure.
type Grover struct {
	verify  *Program
	ancilla int
	state   *StateVector
	phase   Phase
}

// NewGrover creates a session over verify's register. The ancilla is
// the qubit the verify fragment flips; it is excluded from the final
// readout.
func NewGrover(verify *Program, ancilla int) (*Grover, error) {
	if ancilla < 0 || ancilla >= verify.NumQubits {
		return nil, fmt.Errorf("qsim: ancilla q[%d] on %d-qubit register: %w",
			ancilla, verify.NumQubits, ErrQubitOutOfRange)
	}
	state, err := New(verify.NumQubits)
	if err != nil {
		return nil, err
	}
	return &Grover{verify: verify, ancilla: ancilla, state: state}, nil
}

// State exposes the session's current state vector for inspection.
func (g *Grover) State() *StateVector {
	return g.state
}

// CurrentPhase reports where the session is in its step order.
func (g *Grover) CurrentPhase() Phase {
	return g.phase
}

func (g *Grover) advance(from, to Phase, step string) error {
	if g.phase != from {
		return fmt.Errorf("qsim: %s in phase %s: %w", step, g.phase, ErrPhaseOrder)
	}
	g.phase = to
	return nil
}

// Prepare puts the full register into the uniform superposition.
func (g *Grover) Prepare() error {
	if err := g.advance(PhaseInitial, PhasePrepared, "prepare"); err != nil {
		return err
	}
	return Replay(Prepare(g.state.NumQubits), g.state)
}

// Mark applies the phase-kickback oracle built from the verify
// fragment, flipping the sign of every solution amplitude. Calling
// Mark again after a diffusion round starts the next iteration.
func (g *Grover) Mark() error {
	if g.phase == PhaseAmplified {
		g.phase = PhasePrepared
	}
	if err := g.advance(PhasePrepared, PhaseMarked, "mark"); err != nil {
		return err
	}
	oracle, err := VerifyWithPhase(g.verify, g.ancilla)
	if err != nil {
		return err
	}
	return Replay(oracle, g.state)
}

// AmplifyOnce runs one diffusion round. For the 3-qubit single-solution
// search of the tutorials a single round is the whole amplification.
func (g *Grover) AmplifyOnce() error {
	if err := g.advance(PhaseMarked, PhaseAmplified, "amplify"); err != nil {
		return err
	}
	return Replay(Amplify(g.state.NumQubits), g.state)
}

// Measure samples the non-ancilla qubits and ends the session.
func (g *Grover) Measure(shots int, rng *rand.Rand) (Histogram, error) {
	if err := g.advance(PhaseAmplified, PhaseMeasured, "measure"); err != nil {
		return nil, err
	}
	return Sample(g.state, g.readoutSpec(), shots, rng)
}

func (g *Grover) readoutSpec() MeasurementSpec {
	qs := make([]int, 0, g.state.NumQubits-1)
	for q := 0; q < g.state.NumQubits; q++ {
		if q != g.ancilla {
			qs = append(qs, q)
		}
	}
	return MeasurementSpec{Qubits: qs}
}

// Run executes the whole session: prepare, mark, amplify, measure.
func (g *Grover) Run(shots int, rng *rand.Rand) (Histogram, error) {
	if err := g.Prepare(); err != nil {
		return nil, err
	}
	if err := g.Mark(); err != nil {
		return nil, err
	}
	if err := g.AmplifyOnce(); err != nil {
		return nil, err
	}
	return g.Measure(shots, rng)
}

// MarkState builds a verify fragment over n qubits that flips the
// ancilla exactly when the non-ancilla qubits spell the marked value,
// by sandwiching a multi-controlled X between X gates on the zero bits
// (the tutorial's add_verify pattern).
func MarkState(n, ancilla, marked int) (*Program, error) {
	p, err := NewProgram(n)
	if err != nil {
		return nil, err
	}
	if ancilla < 0 || ancilla >= n {
		return nil, fmt.Errorf("qsim: ancilla q[%d] on %d-qubit register: %w", ancilla, n, ErrQubitOutOfRange)
	}
	if marked < 0 || marked >= 1<<(n-1) {
		return nil, fmt.Errorf("qsim: marked value %d exceeds %d-bit search space: %w", marked, n-1, ErrInvalidGateSpec)
	}
	var controls, zeros []int
	pos := 0
	for q := 0; q < n; q++ {
		if q == ancilla {
			continue
		}
		controls = append(controls, q)
		if marked>>pos&1 == 0 {
			zeros = append(zeros, q)
		}
		pos++
	}
	for _, q := range zeros {
		p.AddGate(GateX, q)
	}
	p.AddGate(GateX, ancilla, controls...)
	for _, q := range zeros {
		p.AddGate(GateX, q)
	}
	return p, nil
}

// SuggestedIterations is the textbook round count for a search space
// of 2^n items with k solutions. The tutorial circuits hardcode one
// round; this is documented as an extension point only.
func SuggestedIterations(n, k int) int {
	if n < 1 || k < 1 {
		return 1
	}
	iters := int(math.Floor(math.Pi / 4 * math.Sqrt(float64(int(1)<<n)/float64(k))))
	if iters < 1 {
		return 1
	}
	return iters
}

package qsim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestSampleCountsSumToShots(t *testing.T) {
	state, err := BellProgram().Run()
	if err != nil {
		t.Fatal(err)
	}
	for _, shots := range []int{1, 17, 1000} {
		hist, err := Sample(state, AllQubits(2), shots, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("shots=%d: %v", shots, err)
		}
		if hist.Total() != shots {
			t.Errorf("shots=%d: counts sum to %d", shots, hist.Total())
		}
	}
}

func TestBellHistogramOnlyTwoOutcomes(t *testing.T) {
	state, err := BellProgram().Run()
	if err != nil {
		t.Fatal(err)
	}
	hist, err := Sample(state, AllQubits(2), 1000, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	for bits, count := range hist {
		if bits != "00" && bits != "11" {
			t.Errorf("impossible outcome %q seen %d times", bits, count)
		}
	}
	// Each leg should land near 500; 5 sigma is about 79.
	if c := hist["00"]; c < 400 || c > 600 {
		t.Errorf("count(00) = %d, want near 500", c)
	}
	if c := hist["11"]; c < 400 || c > 600 {
		t.Errorf("count(11) = %d, want near 500", c)
	}
}

func TestSampleDeterministicForFixedSeed(t *testing.T) {
	state, err := ThirdsProgram().Run()
	if err != nil {
		t.Fatal(err)
	}
	h1, err := Sample(state, AllQubits(2), 500, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Sample(state, AllQubits(2), 500, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	if len(h1) != len(h2) {
		t.Fatalf("histograms differ in size: %v vs %v", h1, h2)
	}
	for bits, c := range h1 {
		if h2[bits] != c {
			t.Errorf("count(%q) = %d vs %d for the same seed", bits, c, h2[bits])
		}
	}
}

func TestMarginalization(t *testing.T) {
	// H on qubit 2 only: measuring qubit 2 is a coin flip, measuring
	// qubit 0 alone always reads 0.
	p, _ := NewProgram(3)
	p.AddGate(GateH, 2)
	state, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}

	probs, err := Probabilities(state, MeasurementSpec{Qubits: []int{2}})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(probs[0]-0.5) > testEps || math.Abs(probs[1]-0.5) > testEps {
		t.Errorf("marginal over q2 = %v, want [0.5 0.5]", probs)
	}

	probs, err = Probabilities(state, MeasurementSpec{Qubits: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(probs[0]-1) > testEps {
		t.Errorf("marginal over q0 = %v, want [1 0]", probs)
	}
}

func TestBitstringOrder(t *testing.T) {
	// Qubits[0] is the least-significant character. Prepare |q1=1,q0=0>
	// and read the spec ordering both ways.
	p, _ := NewProgram(2)
	p.AddGate(GateX, 1)
	state, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}

	hist, err := Sample(state, MeasurementSpec{Qubits: []int{0, 1}}, 10, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if hist["10"] != 10 {
		t.Errorf("qubit order [0,1]: hist = %v, want all mass on %q", hist, "10")
	}

	hist, err = Sample(state, MeasurementSpec{Qubits: []int{1, 0}}, 10, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if hist["01"] != 10 {
		t.Errorf("qubit order [1,0]: hist = %v, want all mass on %q", hist, "01")
	}
}

func TestSampleErrors(t *testing.T) {
	state, _ := New(2)

	if _, err := Sample(state, AllQubits(2), 0, nil); !errors.Is(err, ErrInvalidShotCount) {
		t.Errorf("shots=0: err = %v, want ErrInvalidShotCount", err)
	}
	if _, err := Sample(state, AllQubits(2), -5, nil); !errors.Is(err, ErrInvalidShotCount) {
		t.Errorf("shots=-5: err = %v, want ErrInvalidShotCount", err)
	}

	if _, err := Sample(state, MeasurementSpec{Qubits: []int{0, 0}}, 10, nil); !errors.Is(err, ErrInvalidGateSpec) {
		t.Errorf("duplicate qubit: err = %v, want ErrInvalidGateSpec", err)
	}
	if _, err := Sample(state, MeasurementSpec{Qubits: []int{4}}, 10, nil); !errors.Is(err, ErrQubitOutOfRange) {
		t.Errorf("out of range: err = %v, want ErrQubitOutOfRange", err)
	}

	// A corrupted state is rejected before any shot is drawn.
	state.Amplitudes[0] = complex(2, 0)
	if _, err := Sample(state, AllQubits(2), 10, nil); !errors.Is(err, ErrNormalizationViolation) {
		t.Errorf("corrupt state: err = %v, want ErrNormalizationViolation", err)
	}
}

// chiSquare measures the distance between empirical frequencies and
// the true distribution over outcome values.
func chiSquare(hist Histogram, spec MeasurementSpec, probs []float64, shots int) float64 {
	dist := 0.0
	for outcome, p := range probs {
		if p == 0 {
			continue
		}
		freq := float64(hist[spec.Bitstring(outcome)]) / float64(shots)
		dist += (freq - p) * (freq - p) / p
	}
	return dist
}

func TestSamplingConvergence(t *testing.T) {
	state, err := ThirdsProgram().Run()
	if err != nil {
		t.Fatal(err)
	}
	spec := AllQubits(2)
	probs, err := Probabilities(state, spec)
	if err != nil {
		t.Fatal(err)
	}

	// Average over a few seeds so a single lucky small draw cannot
	// mask the trend.
	var dSmall, dLarge float64
	for seed := int64(1); seed <= 5; seed++ {
		small, err := Sample(state, spec, 100, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		large, err := Sample(state, spec, 100000, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		dSmall += chiSquare(small, spec, probs, 100)
		dLarge += chiSquare(large, spec, probs, 100000)
	}
	if dLarge >= dSmall {
		t.Errorf("chi-square did not shrink: %g (100 shots) vs %g (100000 shots)", dSmall/5, dLarge/5)
	}
}

package qsim

import (
	"errors"
	"math"
	"testing"
)

func TestHadamardTwiceRestores(t *testing.T) {
	s, _ := New(2)
	Apply(s, Gate{Type: GateX, Target: 1}) // start at |10> so the test is not trivial
	before := s.Clone()

	for i := 0; i < 2; i++ {
		if err := Apply(s, Gate{Type: GateH, Target: 0}); err != nil {
			t.Fatal(err)
		}
	}
	checkState(t, s, before.Amplitudes)
}

func TestPauliXTwiceRestores(t *testing.T) {
	s, _ := New(2)
	Apply(s, Gate{Type: GateH, Target: 0})
	Apply(s, Gate{Type: GateH, Target: 1})
	before := s.Clone()

	for i := 0; i < 2; i++ {
		if err := Apply(s, Gate{Type: GateX, Target: 1}); err != nil {
			t.Fatal(err)
		}
	}
	checkState(t, s, before.Amplitudes)
}

func TestControlledXOnlyFiresWhenControlSet(t *testing.T) {
	// Control clear: nothing moves.
	s, _ := New(2)
	Apply(s, Gate{Type: GateX, Target: 1, Controls: []int{0}})
	want := []complex128{1, 0, 0, 0}
	checkState(t, s, want)

	// Control set: |01> -> |11>.
	s, _ = New(2)
	Apply(s, Gate{Type: GateX, Target: 0})
	Apply(s, Gate{Type: GateX, Target: 1, Controls: []int{0}})
	want = []complex128{0, 0, 0, 1}
	checkState(t, s, want)
}

func TestToffoliNeedsBothControls(t *testing.T) {
	for start, wantIdx := range map[int]int{
		0: 0, // |000> untouched
		1: 1, // only q0 set
		2: 2, // only q1 set
		3: 7, // both controls set: q2 flips
	} {
		s, _ := New(3)
		for q := 0; q < 3; q++ {
			if start>>q&1 != 0 {
				Apply(s, Gate{Type: GateX, Target: q})
			}
		}
		if err := Apply(s, Gate{Type: GateX, Target: 2, Controls: []int{0, 1}}); err != nil {
			t.Fatal(err)
		}
		if !ampNear(s.Amplitudes[wantIdx], 1) {
			t.Errorf("start |%d>: amplitude at %d = %v, want 1", start, wantIdx, s.Amplitudes[wantIdx])
		}
	}
}

func TestCCZFlipsOnlyAllOnes(t *testing.T) {
	s, _ := New(3)
	p := Prepare(3)
	if err := Replay(p, s); err != nil {
		t.Fatal(err)
	}
	before := s.Clone()

	if err := Apply(s, Gate{Type: GateZ, Target: 2, Controls: []int{0, 1}}); err != nil {
		t.Fatal(err)
	}
	for i := range s.Amplitudes {
		want := before.Amplitudes[i]
		if i == 7 {
			want = -want
		}
		if !ampNear(s.Amplitudes[i], want) {
			t.Errorf("amplitude[%d] = %v, want %v", i, s.Amplitudes[i], want)
		}
	}
}

func TestRYSplitsProbability(t *testing.T) {
	// The thirds circuit's first rotation: a third of the weight moves
	// onto the rotated qubit.
	theta := 2 * math.Asin(math.Sqrt(1.0/3.0))
	s, _ := New(1)
	if err := Apply(s, Gate{Type: GateRY, Target: 0, Theta: theta}); err != nil {
		t.Fatal(err)
	}
	probs := s.Probabilities()
	if math.Abs(probs[0]-2.0/3.0) > testEps {
		t.Errorf("prob[0] = %g, want 2/3", probs[0])
	}
	if math.Abs(probs[1]-1.0/3.0) > testEps {
		t.Errorf("prob[1] = %g, want 1/3", probs[1])
	}
}

func TestNormPreservedAcrossGateZoo(t *testing.T) {
	s, _ := New(3)
	gates := []Gate{
		{Type: GateH, Target: 0},
		{Type: GateX, Target: 1},
		{Type: GateY, Target: 2},
		{Type: GateZ, Target: 0},
		{Type: GateS, Target: 1},
		{Type: GateSdg, Target: 1},
		{Type: GateT, Target: 2},
		{Type: GateTdg, Target: 2},
		{Type: GateRX, Target: 0, Theta: 0.7},
		{Type: GateRY, Target: 1, Theta: -1.3},
		{Type: GateRZ, Target: 2, Theta: 2.1},
		{Type: GateX, Target: 2, Controls: []int{0}},
		{Type: GateZ, Target: 1, Controls: []int{0, 2}},
	}
	for i, g := range gates {
		if err := Apply(s, g); err != nil {
			t.Fatalf("gate %d (%s): %v", i, g.Type, err)
		}
		if err := s.NormCheck(1e-6); err != nil {
			t.Fatalf("after gate %d (%s): %v", i, g.Type, err)
		}
	}
}

func TestApplyErrors(t *testing.T) {
	s, _ := New(2)
	tests := []struct {
		name string
		gate Gate
		want error
	}{
		{"target too high", Gate{Type: GateX, Target: 2}, ErrQubitOutOfRange},
		{"target negative", Gate{Type: GateH, Target: -1}, ErrQubitOutOfRange},
		{"control too high", Gate{Type: GateX, Target: 0, Controls: []int{5}}, ErrQubitOutOfRange},
		{"control equals target", Gate{Type: GateX, Target: 1, Controls: []int{1}}, ErrInvalidGateSpec},
		{"duplicate control", Gate{Type: GateX, Target: 0, Controls: []int{1, 1}}, ErrInvalidGateSpec},
		{"unknown type", Gate{Type: "QFT", Target: 0}, ErrInvalidGateSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Apply(s, tt.gate); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			// A failed Apply must leave the state intact.
			if !ampNear(s.Amplitudes[0], 1) {
				t.Error("state changed by rejected gate")
			}
		})
	}
}

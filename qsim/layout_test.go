package qsim

import (
	"reflect"
	"testing"
)

func TestLayoutPacksDisjointGates(t *testing.T) {
	p, err := NewProgram(3)
	if err != nil {
		t.Fatal(err)
	}
	p.AddGate(GateH, 0)
	p.AddGate(GateH, 1) // disjoint from the first, shares its column
	p.AddGate(GateX, 1, 0)
	p.AddGate(GateH, 2) // free the whole time

	l := LayoutProgram(p)
	want := []int{0, 0, 1, 0}
	if !reflect.DeepEqual(l.Steps, want) {
		t.Errorf("Steps = %v, want %v", l.Steps, want)
	}
	if l.MaxSteps != 2 {
		t.Errorf("MaxSteps = %d, want 2", l.MaxSteps)
	}
}

func TestLayoutControlsBlockColumns(t *testing.T) {
	p, err := NewProgram(3)
	if err != nil {
		t.Fatal(err)
	}
	p.AddGate(GateX, 2, 0, 1) // spans all three qubits
	p.AddGate(GateH, 1)       // must wait

	l := LayoutProgram(p)
	if !reflect.DeepEqual(l.Steps, []int{0, 1}) {
		t.Errorf("Steps = %v, want [0 1]", l.Steps)
	}
}

func TestLayoutSequentialSameQubit(t *testing.T) {
	p, err := NewProgram(1)
	if err != nil {
		t.Fatal(err)
	}
	p.AddGate(GateH, 0)
	p.AddGate(GateZ, 0)
	p.AddGate(GateH, 0)

	l := LayoutProgram(p)
	if !reflect.DeepEqual(l.Steps, []int{0, 1, 2}) {
		t.Errorf("Steps = %v, want [0 1 2]", l.Steps)
	}
	if l.MaxSteps != 3 {
		t.Errorf("MaxSteps = %d, want 3", l.MaxSteps)
	}
}

func TestLayoutEmptyProgram(t *testing.T) {
	p, err := NewProgram(2)
	if err != nil {
		t.Fatal(err)
	}
	l := LayoutProgram(p)
	if len(l.Steps) != 0 || l.MaxSteps != 0 {
		t.Errorf("empty program layout = %+v", l)
	}
}

func TestGateAt(t *testing.T) {
	p := BellProgram()
	l := LayoutProgram(p)

	if g := l.GateAt(p, 0, 0); g == nil || g.Type != GateH {
		t.Errorf("GateAt(0,0) = %+v, want H", g)
	}
	// The CX occupies column 1 on both its control and target rows.
	if g := l.GateAt(p, 1, 0); g == nil || g.Type != GateX {
		t.Errorf("GateAt(1,0) = %+v, want CX", g)
	}
	if g := l.GateAt(p, 1, 1); g == nil || g.Type != GateX {
		t.Errorf("GateAt(1,1) = %+v, want CX", g)
	}
	if g := l.GateAt(p, 0, 1); g != nil {
		t.Errorf("GateAt(0,1) = %+v, want nil", g)
	}
}

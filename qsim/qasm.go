package qsim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// QASM 2.0 interchange for the supported gate set. Output targets the
// same dialect the parser reads back, so ToQASM followed by ParseQASM
// reproduces the program. ccz is emitted by name even though qelib1
// leaves it out; the parser and qiskit both accept it.

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex          = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	cregRegex          = regexp.MustCompile(`^creg\s+(\w+)\[(\d+)\];?$`)
	singleGateRegex    = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	paramGateRegex     = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex    = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex       = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*\w+\[(\d+)\];?$`)
)

// ToQASM renders the program as OPENQASM 2.0 text.
func (p *Program) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", p.NumQubits)
	if n := p.NumCbits(); n > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", n)
	}
	sb.WriteString("\n")

	cbit := 0
	for _, g := range p.Gates {
		switch {
		case g.Type == GateMeasure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", g.Target, cbit)
			cbit++
		case len(g.Controls) == 0:
			name := strings.ToLower(g.Type)
			switch g.Type {
			case GateRX, GateRY, GateRZ:
				fmt.Fprintf(&sb, "%s(%s) q[%d];\n", name, FormatAngle(g.Theta), g.Target)
			case GateSdg, GateTdg:
				fmt.Fprintf(&sb, "%sdg q[%d];\n", strings.ToLower(g.Type[:1]), g.Target)
			default:
				fmt.Fprintf(&sb, "%s q[%d];\n", name, g.Target)
			}
		case len(g.Controls) == 1:
			switch g.Type {
			case GateRX, GateRY, GateRZ:
				fmt.Fprintf(&sb, "c%s(%s) q[%d], q[%d];\n",
					strings.ToLower(g.Type), FormatAngle(g.Theta), g.Controls[0], g.Target)
			default:
				fmt.Fprintf(&sb, "c%s q[%d], q[%d];\n", strings.ToLower(g.Type), g.Controls[0], g.Target)
			}
		case len(g.Controls) == 2:
			fmt.Fprintf(&sb, "cc%s q[%d], q[%d], q[%d];\n",
				strings.ToLower(g.Type), g.Controls[0], g.Controls[1], g.Target)
		default:
			// Wider controls have no qelib name; spell out the mask.
			qubits := make([]string, 0, len(g.Controls)+1)
			for _, c := range g.Controls {
				qubits = append(qubits, fmt.Sprintf("q[%d]", c))
			}
			qubits = append(qubits, fmt.Sprintf("q[%d]", g.Target))
			fmt.Fprintf(&sb, "// mc%s %s\n", strings.ToLower(g.Type), strings.Join(qubits, ", "))
		}
	}
	return sb.String()
}

// ParseQASM rebuilds a Program from QASM text in the dialect ToQASM
// emits. Unknown gate names fail with ErrInvalidGateSpec naming the
// offending line.
func ParseQASM(qasm string) (*Program, error) {
	p := &Program{}

	for lineNo, raw := range strings.Split(qasm, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}

		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			n, _ := strconv.Atoi(matches[2])
			if n < 1 {
				return nil, fmt.Errorf("qsim: line %d: qreg of size %d: %w", lineNo+1, n, ErrInvalidDimension)
			}
			p.NumQubits = n
			continue
		}
		if cregRegex.MatchString(line) {
			continue
		}

		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			q, _ := strconv.Atoi(matches[1])
			p.Measure(q)
			continue
		}

		if matches := paramGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			theta, ok := ParseAngle(matches[2])
			if !ok {
				return nil, fmt.Errorf("qsim: line %d: bad angle %q: %w", lineNo+1, matches[2], ErrInvalidGateSpec)
			}
			target, _ := strconv.Atoi(matches[3])
			switch gateType {
			case GateRX, GateRY, GateRZ:
				p.AddRotation(gateType, target, theta)
			default:
				return nil, fmt.Errorf("qsim: line %d: unknown gate %q: %w", lineNo+1, matches[1], ErrInvalidGateSpec)
			}
			continue
		}

		if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			theta, ok := ParseAngle(matches[2])
			if !ok {
				return nil, fmt.Errorf("qsim: line %d: bad angle %q: %w", lineNo+1, matches[2], ErrInvalidGateSpec)
			}
			q1, _ := strconv.Atoi(matches[3])
			q2, _ := strconv.Atoi(matches[4])
			switch gateType {
			case "CRX", "CRY", "CRZ":
				p.AddRotation(gateType[1:], q2, theta, q1)
			default:
				return nil, fmt.Errorf("qsim: line %d: unknown gate %q: %w", lineNo+1, matches[1], ErrInvalidGateSpec)
			}
			continue
		}

		if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			q3, _ := strconv.Atoi(matches[4])
			switch gateType {
			case "CCX", "TOFFOLI":
				p.AddGate(GateX, q3, q1, q2)
			case "CCZ":
				p.AddGate(GateZ, q3, q1, q2)
			default:
				return nil, fmt.Errorf("qsim: line %d: unknown gate %q: %w", lineNo+1, matches[1], ErrInvalidGateSpec)
			}
			continue
		}

		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			switch gateType {
			case "CX", "CNOT":
				p.AddGate(GateX, q2, q1)
			case "CZ":
				p.AddGate(GateZ, q2, q1)
			case "CY":
				p.AddGate(GateY, q2, q1)
			case "CH":
				p.AddGate(GateH, q2, q1)
			default:
				return nil, fmt.Errorf("qsim: line %d: unknown gate %q: %w", lineNo+1, matches[1], ErrInvalidGateSpec)
			}
			continue
		}

		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[2])
			switch gateType {
			case GateH, GateX, GateY, GateZ, GateS, GateT:
				p.AddGate(gateType, target)
			case GateSdg, GateTdg:
				p.AddGate(gateType, target)
			default:
				return nil, fmt.Errorf("qsim: line %d: unknown gate %q: %w", lineNo+1, matches[1], ErrInvalidGateSpec)
			}
			continue
		}

		return nil, fmt.Errorf("qsim: line %d: cannot parse %q: %w", lineNo+1, line, ErrInvalidGateSpec)
	}

	if p.NumQubits < 1 {
		return nil, fmt.Errorf("qsim: no qreg declaration: %w", ErrInvalidDimension)
	}
	for i, g := range p.Gates {
		if err := g.validate(p.NumQubits); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return p, nil
}

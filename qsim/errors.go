package qsim

import "errors"

// Sentinel errors returned by the simulator. Callers match them with
// errors.Is; the wrapped message carries the offending qubit or gate.
var (
	// ErrInvalidDimension is returned when a register is created with
	// fewer than one qubit.
	ErrInvalidDimension = errors.New("register size must be at least 1")

	// ErrQubitOutOfRange is returned when a target or control index
	// falls outside [0, n).
	ErrQubitOutOfRange = errors.New("qubit index out of range")

	// ErrInvalidGateSpec is returned for malformed gates: a control
	// equal to the target, a duplicated control, or an unknown type.
	ErrInvalidGateSpec = errors.New("invalid gate specification")

	// ErrQubitCountMismatch is returned when composing programs or
	// replaying against a state built for a different register size.
	ErrQubitCountMismatch = errors.New("qubit count mismatch")

	// ErrNormalizationViolation signals a simulator bug: the sum of
	// squared magnitudes drifted away from 1 beyond tolerance.
	ErrNormalizationViolation = errors.New("state vector is not normalized")

	// ErrInvalidShotCount is returned when sampling with shots < 1.
	ErrInvalidShotCount = errors.New("shot count must be at least 1")

	// ErrPhaseOrder is returned when Grover steps are invoked out of
	// their prepare/mark/amplify/measure order.
	ErrPhaseOrder = errors.New("grover step out of order")
)

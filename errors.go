package rendergraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy in §7. CapacityExceeded and
// InvalidHandle are not represented here: per the spec they surface as a
// false/invalid-handle return, never as an error value, and NoWriter is
// not an error at all (§7).
var (
	// ErrCycleDetected means the declared dependencies form a cycle.
	// Compile fails and the graph stays uncompiled.
	ErrCycleDetected = errors.New("rendergraph: cycle detected among passes")

	// ErrNotCompiled means Execute was called before a successful
	// Compile.
	ErrNotCompiled = errors.New("rendergraph: graph is not compiled")
)

// CompileError wraps ErrCycleDetected with the phase where it was
// detected. The cycle and topological-sort phases do not identify a
// single pass, so they leave Pass empty.
type CompileError struct {
	Phase string // "cycle", "topological-sort"
	Pass  string // name of the offending pass, if applicable
	Err   error
}

func (e *CompileError) Error() string {
	if e.Pass != "" {
		return fmt.Sprintf("rendergraph: compile failed in %s phase at pass %q: %v", e.Phase, e.Pass, e.Err)
	}
	return fmt.Sprintf("rendergraph: compile failed in %s phase: %v", e.Phase, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

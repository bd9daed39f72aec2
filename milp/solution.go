//go:build linux || darwin

package milp

// Solution is a read-only wrapper pairing a solved engine instance with the
// typed handles of the Model that produced it. It exclusively owns the engine
// until IntoEngine or Close is called.
//
// Callers should branch on Status before trusting ObjectiveValue or Col:
// engine outcomes such as infeasible, unbounded or a hit time limit are
// passed through unchanged.
type Solution struct {
	engine    *Engine
	colValues []float64
}

// Col returns the solution value of a column. Valid only for handles from
// the Model that produced this Solution.
func (s *Solution) Col(col Col) float64 {
	if s.colValues == nil {
		s.colValues = s.engine.ColSolution()
	}
	return s.colValues[col.Index()]
}

// Status reports the engine's outcome for this solve.
func (s *Solution) Status() ModelStatus {
	return s.engine.ModelStatus()
}

// ObjectiveValue returns the objective value at the solution.
func (s *Solution) ObjectiveValue() float64 {
	return s.engine.ObjectiveValue()
}

// IsOptimal returns true if the solve reached optimality.
func (s *Solution) IsOptimal() bool {
	return s.Status().IsOptimal()
}

// IsInfeasible returns true if the model was reported infeasible.
func (s *Solution) IsInfeasible() bool {
	status := s.Status()
	return status == ModelStatusInfeasible ||
		status == ModelStatusUnboundedOrInfeasible
}

// IsUnbounded returns true if the model was reported unbounded.
func (s *Solution) IsUnbounded() bool {
	status := s.Status()
	return status == ModelStatusUnbounded ||
		status == ModelStatusUnboundedOrInfeasible
}

// Engine exposes the wrapped engine for queries not covered by this wrapper,
// such as dual values or info items. The Solution retains ownership.
func (s *Solution) Engine() *Engine {
	return s.engine
}

// IntoEngine releases the wrapped engine to the caller, transferring
// ownership. The Solution must not be used afterwards.
func (s *Solution) IntoEngine() *Engine {
	eng := s.engine
	s.engine = nil
	return eng
}

// Close releases the wrapped engine. It is safe to call Close multiple times.
func (s *Solution) Close() {
	if s.engine != nil {
		s.engine.Close()
		s.engine = nil
	}
}

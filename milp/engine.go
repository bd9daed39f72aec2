//go:build linux || darwin

// Package milp builds mixed-integer linear programs and solves them with the
// HiGHS optimization engine.
//
// Problems are declared incrementally on a Model through typed column and row
// handles, then assembled into a compressed sparse column matrix and handed to
// a freshly created engine instance:
//
//	m := milp.NewModel()
//	row := m.AddRow()
//	m.SetRowUpper(row, 10)
//	x := m.AddCol()
//	m.SetBinary(x)
//	m.SetWeight(row, x, 2)
//	m.SetObjCoeff(x, 5)
//	m.SetObjSense(milp.Maximize)
//
//	sol, err := m.Solve(milp.WithOutput(false))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sol.Close()
//	fmt.Println(sol.Status(), sol.ObjectiveValue(), sol.Col(x))
//
// The Engine type is the low-level binding to the HiGHS C API. It exposes the
// narrow contract the builder needs (load a problem, set per-column
// integrality and the objective sense, run, query the result) plus solver
// option access. Linking requires a HiGHS installation providing libhighs and
// its C API headers.
package milp

/*
#cgo CFLAGS: -I/usr/include/highs -I/usr/local/include/highs
#cgo linux LDFLAGS: -lhighs -lstdc++ -lm
#cgo darwin LDFLAGS: -lhighs -lc++
#include <stdlib.h>
#include <stdint.h>
#include "interfaces/highs_c_api.h"
*/
import "C"
import (
	"fmt"
	"runtime"
	"unsafe"
)

// ----------------------------------------------------------------------------
// Types
// ----------------------------------------------------------------------------

// Sense is the optimization direction of the objective function.
type Sense int

const (
	// Minimize the objective function (default).
	Minimize Sense = iota
	// Maximize the objective function.
	Maximize
)

// String returns a human-readable representation of the sense.
func (s Sense) String() string {
	if s == Maximize {
		return "Maximize"
	}
	return "Minimize"
}

func (s Sense) toC() C.HighsInt {
	if s == Maximize {
		return C.kHighsObjSenseMaximize
	}
	return C.kHighsObjSenseMinimize
}

// Status represents the result status of an engine call.
type Status int

const (
	// StatusError indicates the call failed with an error.
	StatusError Status = -1
	// StatusOK indicates the call succeeded.
	StatusOK Status = 0
	// StatusWarning indicates the call succeeded with warnings.
	StatusWarning Status = 1
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusError:
		return "Error"
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// ModelStatus represents the outcome of a solve as reported by the engine.
// It is passed through unchanged; callers branch on it before trusting
// objective or column values.
type ModelStatus int

const (
	// ModelStatusNotSet indicates the model status has not been set.
	ModelStatusNotSet ModelStatus = iota
	// ModelStatusLoadError indicates an error loading the model.
	ModelStatusLoadError
	// ModelStatusModelError indicates an error in the model.
	ModelStatusModelError
	// ModelStatusPresolveError indicates an error during presolve.
	ModelStatusPresolveError
	// ModelStatusSolveError indicates an error during solve.
	ModelStatusSolveError
	// ModelStatusPostsolveError indicates an error during postsolve.
	ModelStatusPostsolveError
	// ModelStatusModelEmpty indicates the model is empty.
	ModelStatusModelEmpty
	// ModelStatusOptimal indicates an optimal solution was found.
	ModelStatusOptimal
	// ModelStatusInfeasible indicates the model is infeasible.
	ModelStatusInfeasible
	// ModelStatusUnboundedOrInfeasible indicates the model is unbounded or infeasible.
	ModelStatusUnboundedOrInfeasible
	// ModelStatusUnbounded indicates the model is unbounded.
	ModelStatusUnbounded
	// ModelStatusObjectiveBound indicates the objective bound was reached.
	ModelStatusObjectiveBound
	// ModelStatusObjectiveTarget indicates the objective target was reached.
	ModelStatusObjectiveTarget
	// ModelStatusTimeLimit indicates the time limit was reached.
	ModelStatusTimeLimit
	// ModelStatusIterationLimit indicates the iteration limit was reached.
	ModelStatusIterationLimit
	// ModelStatusUnknown indicates an unknown status.
	ModelStatusUnknown
)

// String returns a human-readable representation of the model status.
func (s ModelStatus) String() string {
	names := []string{
		"NotSet", "LoadError", "ModelError", "PresolveError",
		"SolveError", "PostsolveError", "ModelEmpty", "Optimal",
		"Infeasible", "UnboundedOrInfeasible", "Unbounded",
		"ObjectiveBound", "ObjectiveTarget", "TimeLimit",
		"IterationLimit", "Unknown",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// IsOptimal returns true if the model was solved to optimality.
func (s ModelStatus) IsOptimal() bool {
	return s == ModelStatusOptimal
}

// HasSolution returns true if the model has a valid solution.
func (s ModelStatus) HasSolution() bool {
	return s == ModelStatusOptimal ||
		s == ModelStatusObjectiveBound ||
		s == ModelStatusObjectiveTarget ||
		s == ModelStatusTimeLimit ||
		s == ModelStatusIterationLimit
}

func modelStatusFromC(status C.HighsInt) ModelStatus {
	switch status {
	case C.kHighsModelStatusNotset:
		return ModelStatusNotSet
	case C.kHighsModelStatusLoadError:
		return ModelStatusLoadError
	case C.kHighsModelStatusModelError:
		return ModelStatusModelError
	case C.kHighsModelStatusPresolveError:
		return ModelStatusPresolveError
	case C.kHighsModelStatusSolveError:
		return ModelStatusSolveError
	case C.kHighsModelStatusPostsolveError:
		return ModelStatusPostsolveError
	case C.kHighsModelStatusModelEmpty:
		return ModelStatusModelEmpty
	case C.kHighsModelStatusOptimal:
		return ModelStatusOptimal
	case C.kHighsModelStatusInfeasible:
		return ModelStatusInfeasible
	case C.kHighsModelStatusUnboundedOrInfeasible:
		return ModelStatusUnboundedOrInfeasible
	case C.kHighsModelStatusUnbounded:
		return ModelStatusUnbounded
	case C.kHighsModelStatusObjectiveBound:
		return ModelStatusObjectiveBound
	case C.kHighsModelStatusObjectiveTarget:
		return ModelStatusObjectiveTarget
	case C.kHighsModelStatusTimeLimit:
		return ModelStatusTimeLimit
	case C.kHighsModelStatusIterationLimit:
		return ModelStatusIterationLimit
	default:
		return ModelStatusUnknown
	}
}

// ----------------------------------------------------------------------------
// Errors
// ----------------------------------------------------------------------------

// Error represents an engine error with context about which operation failed.
type Error struct {
	Op     string // Operation that failed (e.g., "Run", "SetIntOption")
	Status Status // Engine status code
	Msg    string // Additional context
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("milp: %s failed: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("milp: %s failed with status %s", e.Op, e.Status)
}

// newError creates a new Error if status is not OK.
// Returns nil if status is OK or Warning.
func newError(op string, status Status) error {
	if status == StatusOK || status == StatusWarning {
		return nil
	}
	return &Error{Op: op, Status: status}
}

// newErrorMsg creates a new Error with an additional message.
func newErrorMsg(op, msg string) error {
	return &Error{Op: op, Status: StatusError, Msg: msg}
}

// ----------------------------------------------------------------------------
// Engine
// ----------------------------------------------------------------------------

// Engine wraps a native HiGHS instance. A fresh instance is created per
// assembly; after a solve it is exclusively owned by the Solution that
// wrapped it.
//
// Always call Close() when done to release the native resources:
//
//	eng, _ := milp.NewEngine()
//	defer eng.Close()
type Engine struct {
	ptr unsafe.Pointer
}

// NewEngine creates a new engine instance.
// The engine must be closed with Close() when no longer needed.
func NewEngine() (*Engine, error) {
	ptr := C.Highs_create()
	if ptr == nil {
		return nil, newErrorMsg("NewEngine", "failed to create HiGHS instance")
	}

	e := &Engine{ptr: ptr}
	runtime.SetFinalizer(e, (*Engine).Close)
	return e, nil
}

// Close releases the resources held by the engine.
// It is safe to call Close multiple times.
func (e *Engine) Close() {
	if e.ptr != nil {
		C.Highs_destroy(e.ptr)
		e.ptr = nil
	}
}

// Clear resets the engine to its initial state, clearing
// the problem and resetting options to defaults.
func (e *Engine) Clear() error {
	status := Status(C.Highs_clear(e.ptr))
	return newError("Clear", status)
}

// ClearModel removes the loaded problem but keeps options.
func (e *Engine) ClearModel() error {
	status := Status(C.Highs_clearModel(e.ptr))
	return newError("ClearModel", status)
}

// ClearSolver clears solution data but keeps the loaded problem.
func (e *Engine) ClearSolver() error {
	status := Status(C.Highs_clearSolver(e.ptr))
	return newError("ClearSolver", status)
}

// Infinity returns the value used by the engine to represent infinity.
func (e *Engine) Infinity() float64 {
	return float64(C.Highs_getInfinity(e.ptr))
}

// NumCol returns the number of columns (variables) in the loaded problem.
func (e *Engine) NumCol() int {
	return int(C.Highs_getNumCol(e.ptr))
}

// NumRow returns the number of rows (constraints) in the loaded problem.
func (e *Engine) NumRow() int {
	return int(C.Highs_getNumRow(e.ptr))
}

// NumNonzero returns the number of non-zero entries in the constraint matrix.
func (e *Engine) NumNonzero() int {
	return int(C.Highs_getNumNz(e.ptr))
}

// SetBoolOption sets a boolean option.
func (e *Engine) SetBoolOption(name string, value bool) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var cVal C.HighsInt
	if value {
		cVal = 1
	}
	status := Status(C.Highs_setBoolOptionValue(e.ptr, cName, cVal))
	return newError("SetBoolOption", status)
}

// SetIntOption sets an integer option.
func (e *Engine) SetIntOption(name string, value int) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	status := Status(C.Highs_setIntOptionValue(e.ptr, cName, C.HighsInt(value)))
	return newError("SetIntOption", status)
}

// SetFloatOption sets a floating-point option.
func (e *Engine) SetFloatOption(name string, value float64) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	status := Status(C.Highs_setDoubleOptionValue(e.ptr, cName, C.double(value)))
	return newError("SetFloatOption", status)
}

// SetStringOption sets a string option.
func (e *Engine) SetStringOption(name, value string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cVal := C.CString(value)
	defer C.free(unsafe.Pointer(cVal))

	status := Status(C.Highs_setStringOptionValue(e.ptr, cName, cVal))
	return newError("SetStringOption", status)
}

// GetBoolOption returns the value of a boolean option.
func (e *Engine) GetBoolOption(name string) (bool, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.HighsInt
	status := Status(C.Highs_getBoolOptionValue(e.ptr, cName, &val))
	if err := newError("GetBoolOption", status); err != nil {
		return false, err
	}
	return val != 0, nil
}

// GetIntOption returns the value of an integer option.
func (e *Engine) GetIntOption(name string) (int, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.HighsInt
	status := Status(C.Highs_getIntOptionValue(e.ptr, cName, &val))
	if err := newError("GetIntOption", status); err != nil {
		return 0, err
	}
	return int(val), nil
}

// GetFloatOption returns the value of a floating-point option.
func (e *Engine) GetFloatOption(name string) (float64, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.double
	status := Status(C.Highs_getDoubleOptionValue(e.ptr, cName, &val))
	if err := newError("GetFloatOption", status); err != nil {
		return 0, err
	}
	return float64(val), nil
}

// SetObjSense sets the optimization direction of the loaded problem.
func (e *Engine) SetObjSense(sense Sense) error {
	status := Status(C.Highs_changeObjectiveSense(e.ptr, sense.toC()))
	return newError("SetObjSense", status)
}

// SetInteger marks a column as integer.
func (e *Engine) SetInteger(col int) error {
	status := Status(C.Highs_changeColIntegrality(e.ptr,
		C.HighsInt(col), C.kHighsVarTypeInteger))
	return newError("SetInteger", status)
}

// SetContinuous marks a column as continuous. Engine defaults may differ
// per column, so continuous columns are asserted explicitly too.
func (e *Engine) SetContinuous(col int) error {
	status := Status(C.Highs_changeColIntegrality(e.ptr,
		C.HighsInt(col), C.kHighsVarTypeContinuous))
	return newError("SetContinuous", status)
}

// LoadProblem loads a complete problem in compressed sparse column form.
// Column c's nonzeros occupy index[start[c]:start[c+1]] and
// value[start[c]:start[c+1]], sorted by ascending row index.
//
// The bound and objective slices are optional: a nil slice leaves the
// corresponding values at the engine's defaults. Non-nil slices must match
// the stated column or row count.
func (e *Engine) LoadProblem(
	numCol, numRow int,
	start, index []int,
	value []float64,
	colLower, colUpper, objCoeff []float64,
	rowLower, rowUpper []float64,
) error {
	if len(start) != numCol+1 {
		return newErrorMsg("LoadProblem", "start must have numCol+1 entries")
	}
	if len(index) != len(value) {
		return newErrorMsg("LoadProblem", "index and value must have same length")
	}
	for _, v := range [][]float64{colLower, colUpper, objCoeff} {
		if v != nil && len(v) != numCol {
			return newErrorMsg("LoadProblem", "inconsistent column vector length")
		}
	}
	for _, v := range [][]float64{rowLower, rowUpper} {
		if v != nil && len(v) != numRow {
			return newErrorMsg("LoadProblem", "inconsistent row vector length")
		}
	}

	cStart := toHighsInts(start)
	cIndex := toHighsInts(index)

	var pStart, pIndex *C.HighsInt
	if len(cStart) > 0 {
		pStart = &cStart[0]
	}
	if len(cIndex) > 0 {
		pIndex = &cIndex[0]
	}

	status := Status(C.Highs_passLp(e.ptr,
		C.HighsInt(numCol), C.HighsInt(numRow),
		C.HighsInt(len(value)),
		C.kHighsMatrixFormatColwise,
		C.kHighsObjSenseMinimize, C.double(0),
		doublePtr(objCoeff), doublePtr(colLower), doublePtr(colUpper),
		doublePtr(rowLower), doublePtr(rowUpper),
		pStart, pIndex, doublePtr(value)))
	return newError("LoadProblem", status)
}

// Run solves the loaded problem. It blocks until the engine terminates;
// the outcome is reported by ModelStatus and the solution queries.
func (e *Engine) Run() error {
	status := Status(C.Highs_run(e.ptr))
	return newError("Run", status)
}

// ModelStatus returns the engine's status for the most recent Run.
func (e *Engine) ModelStatus() ModelStatus {
	return modelStatusFromC(C.Highs_getModelStatus(e.ptr))
}

// ObjectiveValue returns the objective value of the most recent Run.
func (e *Engine) ObjectiveValue() float64 {
	return float64(C.Highs_getObjectiveValue(e.ptr))
}

// ColSolution returns the primal column values of the most recent Run,
// ordered by column index.
func (e *Engine) ColSolution() []float64 {
	colValue, _, _, _ := e.solution()
	return colValue
}

// RowSolution returns the primal row activity values of the most recent Run.
func (e *Engine) RowSolution() []float64 {
	_, _, rowValue, _ := e.solution()
	return rowValue
}

// ColDuals returns the dual column values of the most recent Run.
// Only meaningful for LP problems.
func (e *Engine) ColDuals() []float64 {
	_, colDual, _, _ := e.solution()
	return colDual
}

// RowDuals returns the dual row values of the most recent Run.
// Only meaningful for LP problems.
func (e *Engine) RowDuals() []float64 {
	_, _, _, rowDual := e.solution()
	return rowDual
}

func (e *Engine) solution() (colValue, colDual, rowValue, rowDual []float64) {
	numCol := e.NumCol()
	numRow := e.NumRow()

	colValue = make([]float64, numCol)
	colDual = make([]float64, numCol)
	rowValue = make([]float64, numRow)
	rowDual = make([]float64, numRow)

	var pColValue, pColDual, pRowValue, pRowDual *C.double
	if numCol > 0 {
		pColValue = (*C.double)(&colValue[0])
		pColDual = (*C.double)(&colDual[0])
	}
	if numRow > 0 {
		pRowValue = (*C.double)(&rowValue[0])
		pRowDual = (*C.double)(&rowDual[0])
	}

	C.Highs_getSolution(e.ptr, pColValue, pColDual, pRowValue, pRowDual)
	return colValue, colDual, rowValue, rowDual
}

// GetIntInfo returns an integer info value, e.g. "mip_node_count"
// or "simplex_iteration_count".
func (e *Engine) GetIntInfo(name string) (int, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.HighsInt
	status := Status(C.Highs_getIntInfoValue(e.ptr, cName, &val))
	if err := newError("GetIntInfo", status); err != nil {
		return 0, err
	}
	return int(val), nil
}

// GetInt64Info returns a 64-bit integer info value.
func (e *Engine) GetInt64Info(name string) (int64, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.int64_t
	status := Status(C.Highs_getInt64InfoValue(e.ptr, cName, &val))
	if err := newError("GetInt64Info", status); err != nil {
		return 0, err
	}
	return int64(val), nil
}

// GetFloatInfo returns a floating-point info value, e.g. "mip_gap".
func (e *Engine) GetFloatInfo(name string) (float64, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.double
	status := Status(C.Highs_getDoubleInfoValue(e.ptr, cName, &val))
	if err := newError("GetFloatInfo", status); err != nil {
		return 0, err
	}
	return float64(val), nil
}

func toHighsInts(v []int) []C.HighsInt {
	out := make([]C.HighsInt, len(v))
	for i, x := range v {
		out[i] = C.HighsInt(x)
	}
	return out
}

func doublePtr(v []float64) *C.double {
	if len(v) == 0 {
		return nil
	}
	return (*C.double)(&v[0])
}

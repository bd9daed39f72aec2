//go:build linux || darwin

package milp

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/v2/maps/treemap"
	"gonum.org/v1/gonum/mat"

	"github.com/optgo/gomilp/logger"
)

// Col identifies a column (decision variable) of a Model. Handles are minted
// by AddCol in creation order and stay valid for the lifetime of the Model
// that produced them; they are never reused or invalidated by later mutation.
type Col int32

// Index returns the zero-based column index.
func (c Col) Index() int { return int(c) }

// Row identifies a row (constraint) of a Model. Handles are minted by AddRow
// in creation order.
type Row int32

// Index returns the zero-based row index.
func (r Row) Index() int { return int(r) }

// Model is an incremental builder for mixed-integer linear programs.
//
// Columns and rows are appended, never removed; all other mutation (bounds,
// objective coefficients, constraint weights, integrality, sense) is
// unrestricted until the model is assembled. Defaults: columns are continuous
// with bounds [0, +inf) and objective coefficient 0; rows are unconstrained
// (-inf, +inf); the objective sense is Minimize.
//
// Mutators on valid handles never fail. A handle from another Model, or one
// the Model never minted, is a programming error and panics.
//
// A Model is not safe for concurrent use, but independent Models may be built
// and solved on separate goroutines without synchronization.
type Model struct {
	numCols int
	numRows int

	colLower []float64
	colUpper []float64
	rowLower []float64
	rowUpper []float64

	objCoeff []float64

	// weights[c] holds column c's nonzero row coefficients keyed by row,
	// iterated in ascending row order. An entry is never stored with value
	// exactly 0: the structurally-nonzero set equals the stored-entry set.
	weights []*treemap.Map[Row, float64]

	isInteger []bool
	sense     Sense
}

// NewModel returns an empty model with zero columns and zero rows.
func NewModel() *Model {
	return &Model{}
}

// NumCols returns the number of columns added so far.
func (m *Model) NumCols() int { return m.numCols }

// NumRows returns the number of rows added so far.
func (m *Model) NumRows() int { return m.numRows }

// AddCol appends a continuous column with objective coefficient 0, no
// constraint weights and bounds [0, +inf), and returns its handle.
func (m *Model) AddCol() Col {
	col := Col(m.numCols)
	m.numCols++
	m.colLower = append(m.colLower, 0)
	m.colUpper = append(m.colUpper, math.Inf(1))
	m.objCoeff = append(m.objCoeff, 0)
	m.weights = append(m.weights, treemap.New[Row, float64]())
	m.isInteger = append(m.isInteger, false)
	return col
}

// AddRow appends a row with bounds (-inf, +inf), non-binding until set,
// and returns its handle.
func (m *Model) AddRow() Row {
	row := Row(m.numRows)
	m.numRows++
	m.rowLower = append(m.rowLower, math.Inf(-1))
	m.rowUpper = append(m.rowUpper, math.Inf(1))
	return row
}

// SetWeight sets the coefficient of a column in a row. A weight of 0 removes
// any existing entry, restoring the implicit zero.
func (m *Model) SetWeight(row Row, col Col, weight float64) {
	m.checkRow(row)
	if weight == 0 {
		m.weights[col.Index()].Remove(row)
	} else {
		m.weights[col.Index()].Put(row, weight)
	}
}

// Weight returns the coefficient of a column in a row, and whether a nonzero
// entry is stored for it.
func (m *Model) Weight(row Row, col Col) (float64, bool) {
	m.checkRow(row)
	return m.weights[col.Index()].Get(row)
}

// SetInteger constrains a column to integer values.
func (m *Model) SetInteger(col Col) {
	m.isInteger[col.Index()] = true
}

// SetContinuous makes a column continuous (the default).
func (m *Model) SetContinuous(col Col) {
	m.isInteger[col.Index()] = false
}

// IsInteger reports whether a column is constrained to integer values.
func (m *Model) IsInteger(col Col) bool {
	return m.isInteger[col.Index()]
}

// SetBinary constrains a column to {0, 1}: it is made integer and its bounds
// are overwritten with [0, 1].
func (m *Model) SetBinary(col Col) {
	m.SetInteger(col)
	m.SetColLower(col, 0)
	m.SetColUpper(col, 1)
}

// SetColLower sets the lower bound of a column. NegInf() removes the bound.
func (m *Model) SetColLower(col Col, value float64) {
	m.colLower[col.Index()] = value
}

// SetColUpper sets the upper bound of a column. Inf() removes the bound.
func (m *Model) SetColUpper(col Col, value float64) {
	m.colUpper[col.Index()] = value
}

// ColBounds returns the lower and upper bound of a column.
func (m *Model) ColBounds(col Col) (lower, upper float64) {
	return m.colLower[col.Index()], m.colUpper[col.Index()]
}

// SetRowLower sets the lower bound of a row. NegInf() removes the bound.
func (m *Model) SetRowLower(row Row, value float64) {
	m.rowLower[row.Index()] = value
}

// SetRowUpper sets the upper bound of a row. Inf() removes the bound.
func (m *Model) SetRowUpper(row Row, value float64) {
	m.rowUpper[row.Index()] = value
}

// RowBounds returns the lower and upper bound of a row.
func (m *Model) RowBounds(row Row) (lower, upper float64) {
	return m.rowLower[row.Index()], m.rowUpper[row.Index()]
}

// SetObjCoeff sets the objective coefficient of a column.
func (m *Model) SetObjCoeff(col Col, value float64) {
	m.objCoeff[col.Index()] = value
}

// ObjCoeff returns the objective coefficient of a column.
func (m *Model) ObjCoeff(col Col) float64 {
	return m.objCoeff[col.Index()]
}

// SetObjSense sets the optimization direction.
func (m *Model) SetObjSense(sense Sense) {
	m.sense = sense
}

// NumNonzeros returns the number of structurally nonzero constraint weights.
func (m *Model) NumNonzeros() int {
	nnz := 0
	for _, w := range m.weights {
		nnz += w.Size()
	}
	return nnz
}

func (m *Model) checkRow(row Row) {
	if row.Index() < 0 || row.Index() >= m.numRows {
		panic(fmt.Sprintf("milp: row handle %d out of range (model has %d rows)",
			row.Index(), m.numRows))
	}
}

// csc flattens the per-column weight maps into the compressed sparse column
// triple (start, index, value): column c's nonzeros occupy
// index[start[c]:start[c+1]] / value[start[c]:start[c+1]], sorted by
// ascending row index. The ordered maps guarantee the row ordering without a
// sort. A column with no weights produces an empty range; a model with no
// columns or rows produces degenerate arrays.
func (m *Model) csc() (start, index []int, value []float64) {
	nnz := m.NumNonzeros()
	start = make([]int, 1, m.numCols+1)
	index = make([]int, 0, nnz)
	value = make([]float64, 0, nnz)
	for _, w := range m.weights {
		it := w.Iterator()
		for it.Next() {
			index = append(index, it.Key().Index())
			value = append(value, it.Value())
		}
		start = append(start, len(index))
	}
	return start, index, value
}

// ToEngine assembles the model and loads it into a freshly created engine:
// the constraint matrix in compressed sparse column form, the bound and
// objective vectors, the integrality of every column (continuous columns are
// asserted too, since engine defaults may differ), and the objective sense.
// Options are applied to the engine before the problem is loaded.
//
// Assembly is a pure read of the model; the engine receives copies, never
// references into the model, and the model remains usable afterwards. The
// caller owns the returned engine.
func (m *Model) ToEngine(opts ...SolveOption) (*Engine, error) {
	start, index, value := m.csc()

	log := logger.Logger()
	log.Debug().
		Ints("start", start).
		Ints("index", index).
		Floats64("value", value).
		Msg("assembled constraint matrix")

	eng, err := NewEngine()
	if err != nil {
		return nil, err
	}

	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.apply(eng); err != nil {
		eng.Close()
		return nil, err
	}

	if err := eng.LoadProblem(
		m.numCols, m.numRows,
		start, index, value,
		m.colLower, m.colUpper, m.objCoeff,
		m.rowLower, m.rowUpper,
	); err != nil {
		eng.Close()
		return nil, err
	}

	for col, isInt := range m.isInteger {
		if isInt {
			err = eng.SetInteger(col)
		} else {
			err = eng.SetContinuous(col)
		}
		if err != nil {
			eng.Close()
			return nil, err
		}
	}

	if err := eng.SetObjSense(m.sense); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

// Solve assembles the model into a fresh engine instance, runs it to
// completion and returns a Solution owning that instance. The model is not
// mutated and may be modified or solved again afterwards; repeated solves of
// an unmodified model are independent and yield identical results.
//
// Solve blocks for the duration of the solve. Time limits and other
// termination policy belong to the engine and are configured through options:
//
//	sol, err := model.Solve(
//		milp.WithTimeLimit(60),
//		milp.WithOutput(false),
//	)
func (m *Model) Solve(opts ...SolveOption) (*Solution, error) {
	eng, err := m.ToEngine(opts...)
	if err != nil {
		return nil, err
	}
	if err := eng.Run(); err != nil {
		eng.Close()
		return nil, err
	}
	return &Solution{engine: eng}, nil
}

// DenseMatrix returns the constraint matrix as a dense numRows x numCols
// matrix, for inspection and debugging. Returns nil if the model has no rows
// or no columns.
func (m *Model) DenseMatrix() *mat.Dense {
	if m.numRows == 0 || m.numCols == 0 {
		return nil
	}
	d := mat.NewDense(m.numRows, m.numCols, nil)
	for col, w := range m.weights {
		it := w.Iterator()
		for it.Next() {
			d.Set(it.Key().Index(), col, it.Value())
		}
	}
	return d
}

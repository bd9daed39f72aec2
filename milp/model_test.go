//go:build linux || darwin

package milp

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddColDefaults(t *testing.T) {
	m := NewModel()
	col := m.AddCol()

	assert.Equal(t, 0, col.Index())
	assert.Equal(t, 1, m.NumCols())
	assert.False(t, m.IsInteger(col))
	assert.Equal(t, 0.0, m.ObjCoeff(col))

	lower, upper := m.ColBounds(col)
	assert.Equal(t, 0.0, lower)
	assert.True(t, math.IsInf(upper, 1))
}

func TestAddRowDefaults(t *testing.T) {
	m := NewModel()
	row := m.AddRow()

	assert.Equal(t, 0, row.Index())
	assert.Equal(t, 1, m.NumRows())

	lower, upper := m.RowBounds(row)
	assert.True(t, math.IsInf(lower, -1))
	assert.True(t, math.IsInf(upper, 1))
}

// Handles are strictly increasing and all per-column and per-row vectors stay
// in lockstep with the counts after any sequence of adds and mutations.
func TestHandleMonotonicity(t *testing.T) {
	m := NewModel()
	var prevCol, prevRow = -1, -1
	for i := 0; i < 10; i++ {
		col := m.AddCol()
		row := m.AddRow()
		require.Greater(t, col.Index(), prevCol)
		require.Greater(t, row.Index(), prevRow)
		prevCol = col.Index()
		prevRow = row.Index()

		m.SetObjCoeff(col, float64(i))
		m.SetWeight(row, col, 1)
		m.SetColUpper(col, 100)

		require.Len(t, m.colLower, m.numCols)
		require.Len(t, m.colUpper, m.numCols)
		require.Len(t, m.objCoeff, m.numCols)
		require.Len(t, m.weights, m.numCols)
		require.Len(t, m.isInteger, m.numCols)
		require.Len(t, m.rowLower, m.numRows)
		require.Len(t, m.rowUpper, m.numRows)
	}
}

// Setting a weight to 0 removes the entry; setting it nonzero stores exactly
// that value.
func TestWeightCanonicalization(t *testing.T) {
	m := NewModel()
	row := m.AddRow()
	col := m.AddCol()

	m.SetWeight(row, col, 3.5)
	w, ok := m.Weight(row, col)
	require.True(t, ok)
	assert.Equal(t, 3.5, w)
	assert.Equal(t, 1, m.NumNonzeros())

	m.SetWeight(row, col, 0)
	_, ok = m.Weight(row, col)
	assert.False(t, ok)
	assert.Equal(t, 0, m.NumNonzeros())

	// Removing an entry that was never stored is a no-op.
	m.SetWeight(row, col, 0)
	assert.Equal(t, 0, m.NumNonzeros())
}

func TestWeightIdempotence(t *testing.T) {
	build := func(writes int) *Model {
		m := NewModel()
		row := m.AddRow()
		col := m.AddCol()
		for i := 0; i < writes; i++ {
			m.SetWeight(row, col, 2.5)
		}
		return m
	}
	a, b := build(2), build(1)

	aStart, aIndex, aValue := a.csc()
	bStart, bIndex, bValue := b.csc()
	assert.Empty(t, cmp.Diff(bStart, aStart))
	assert.Empty(t, cmp.Diff(bIndex, aIndex))
	assert.Empty(t, cmp.Diff(bValue, aValue))
}

// SetBinary forces integrality and [0, 1] bounds regardless of prior values.
func TestSetBinaryOverridesBounds(t *testing.T) {
	m := NewModel()
	col := m.AddCol()
	m.SetColLower(col, -5)
	m.SetColUpper(col, 40)

	m.SetBinary(col)

	assert.True(t, m.IsInteger(col))
	lower, upper := m.ColBounds(col)
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 1.0, upper)
}

// A column with no weights produces a valid empty range in start.
func TestCSCAssembly(t *testing.T) {
	m := NewModel()
	row := m.AddRow()
	empty := m.AddCol()
	filled := m.AddCol()
	m.SetWeight(row, filled, 2)
	_ = empty

	start, index, value := m.csc()
	assert.Empty(t, cmp.Diff([]int{0, 0, 1}, start))
	assert.Empty(t, cmp.Diff([]int{0}, index))
	assert.Empty(t, cmp.Diff([]float64{2}, value))
}

// Within a column, entries come out in ascending row order no matter the
// insertion order.
func TestCSCAscendingRowOrder(t *testing.T) {
	m := NewModel()
	rows := []Row{m.AddRow(), m.AddRow(), m.AddRow(), m.AddRow()}
	col := m.AddCol()
	m.SetWeight(rows[3], col, 4)
	m.SetWeight(rows[0], col, 1)
	m.SetWeight(rows[2], col, 3)
	m.SetWeight(rows[1], col, 2)

	start, index, value := m.csc()
	assert.Empty(t, cmp.Diff([]int{0, 4}, start))
	assert.Empty(t, cmp.Diff([]int{0, 1, 2, 3}, index))
	assert.Empty(t, cmp.Diff([]float64{1, 2, 3, 4}, value))
}

func TestCSCEmptyModel(t *testing.T) {
	m := NewModel()
	start, index, value := m.csc()
	assert.Empty(t, cmp.Diff([]int{0}, start))
	assert.Empty(t, index)
	assert.Empty(t, value)
}

func TestDenseMatrixMatchesWeights(t *testing.T) {
	m := NewModel()
	r0, r1 := m.AddRow(), m.AddRow()
	c0, c1, c2 := m.AddCol(), m.AddCol(), m.AddCol()
	m.SetWeight(r0, c0, 1)
	m.SetWeight(r0, c2, -2)
	m.SetWeight(r1, c1, 3)

	d := m.DenseMatrix()
	require.NotNil(t, d)
	nr, nc := d.Dims()
	require.Equal(t, 2, nr)
	require.Equal(t, 3, nc)
	assert.Equal(t, 1.0, d.At(r0.Index(), c0.Index()))
	assert.Equal(t, -2.0, d.At(r0.Index(), c2.Index()))
	assert.Equal(t, 3.0, d.At(r1.Index(), c1.Index()))
	assert.Equal(t, 0.0, d.At(r1.Index(), c0.Index()))

	assert.Nil(t, NewModel().DenseMatrix())
}

func TestSetWeightForeignRowPanics(t *testing.T) {
	m := NewModel()
	col := m.AddCol()
	assert.Panics(t, func() {
		m.SetWeight(Row(3), col, 1)
	})
}

// TestKnapsack solves a 0/1 knapsack with capacity 10:
//
//	maximize 5a + 3b + 2c + 7d + 4e
//	s.t.     2a + 8b + 4c + 2d + 5e <= 10
//	         a..e binary
//
// Optimum picks a, d, e: weight 2+2+5 = 9, value 5+7+4 = 16.
func TestKnapsack(t *testing.T) {
	m := NewModel()
	row := m.AddRow()
	m.SetRowUpper(row, 10)

	weights := []float64{2, 8, 4, 2, 5}
	values := []float64{5, 3, 2, 7, 4}
	cols := make([]Col, len(weights))
	for i := range cols {
		cols[i] = m.AddCol()
		m.SetBinary(cols[i])
		m.SetWeight(row, cols[i], weights[i])
		m.SetObjCoeff(cols[i], values[i])
	}
	m.SetObjSense(Maximize)

	sol, err := m.Solve(WithOutput(false))
	require.NoError(t, err)
	defer sol.Close()

	require.True(t, sol.IsOptimal(), "status = %s", sol.Status())
	assert.InDelta(t, 16.0, sol.ObjectiveValue(), 1e-6)

	want := []float64{1, 0, 0, 1, 1}
	for i, col := range cols {
		assert.InDelta(t, want[i], sol.Col(col), 1e-6, "column %d", i)
	}
}

// Solving the same unmodified model twice yields two independent solutions
// with identical results.
func TestSolveReuse(t *testing.T) {
	m := NewModel()
	row := m.AddRow()
	m.SetRowUpper(row, 10)
	x := m.AddCol()
	y := m.AddCol()
	m.SetInteger(x)
	m.SetColUpper(x, 6)
	m.SetColUpper(y, 6)
	m.SetWeight(row, x, 2)
	m.SetWeight(row, y, 3)
	m.SetObjCoeff(x, 3)
	m.SetObjCoeff(y, 4)
	m.SetObjSense(Maximize)

	first, err := m.Solve(WithOutput(false))
	require.NoError(t, err)
	defer first.Close()
	second, err := m.Solve(WithOutput(false))
	require.NoError(t, err)
	defer second.Close()

	require.Equal(t, first.Status(), second.Status())
	assert.InDelta(t, first.ObjectiveValue(), second.ObjectiveValue(), 1e-9)
	assert.InDelta(t, first.Col(x), second.Col(x), 1e-9)
	assert.InDelta(t, first.Col(y), second.Col(y), 1e-9)
}

// TestSolveInfeasible checks that engine outcomes pass through unchanged:
// x <= 3 (column bound) conflicts with x >= 5 (row bound).
func TestSolveInfeasible(t *testing.T) {
	m := NewModel()
	col := m.AddCol()
	m.SetColUpper(col, 3)
	row := m.AddRow()
	m.SetRowLower(row, 5)
	m.SetWeight(row, col, 1)
	m.SetObjCoeff(col, 1)

	sol, err := m.Solve(WithOutput(false))
	require.NoError(t, err)
	defer sol.Close()

	assert.True(t, sol.IsInfeasible(), "status = %s", sol.Status())
	assert.False(t, sol.IsOptimal())
}

// IntoEngine transfers ownership; post-solve queries keep working on the
// released engine.
func TestSolutionIntoEngine(t *testing.T) {
	m := NewModel()
	x := m.AddCol()
	m.SetColUpper(x, 4)
	m.SetObjCoeff(x, 1)
	m.SetObjSense(Maximize)

	sol, err := m.Solve(WithOutput(false))
	require.NoError(t, err)
	require.True(t, sol.IsOptimal())

	eng := sol.IntoEngine()
	require.NotNil(t, eng)
	defer eng.Close()

	assert.True(t, eng.ModelStatus().IsOptimal())
	assert.InDelta(t, 4.0, eng.ObjectiveValue(), 1e-6)
	assert.InDelta(t, 4.0, eng.ColSolution()[x.Index()], 1e-6)
}

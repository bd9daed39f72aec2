package main

import (
	"fmt"
	"log"

	"github.com/optgo/gomilp/milp"
)

func main() {
	// 0/1 knapsack with capacity 10:
	// maximize 5a + 3b + 2c + 7d + 4e
	// s.t.     2a + 8b + 4c + 2d + 5e <= 10
	m := milp.NewModel()
	capacity := m.AddRow()
	m.SetRowUpper(capacity, 10)

	weights := []float64{2, 8, 4, 2, 5}
	values := []float64{5, 3, 2, 7, 4}
	items := make([]milp.Col, len(weights))
	for i := range items {
		items[i] = m.AddCol()
		m.SetBinary(items[i])
		m.SetWeight(capacity, items[i], weights[i])
		m.SetObjCoeff(items[i], values[i])
	}
	m.SetObjSense(milp.Maximize)

	sol, err := m.Solve(milp.WithOutput(false))
	if err != nil {
		log.Fatal(err)
	}
	defer sol.Close()

	if !sol.IsOptimal() {
		log.Fatalf("solve ended with status %s", sol.Status())
	}

	fmt.Printf("total value = %.0f\n", sol.ObjectiveValue())
	for i, item := range items {
		if sol.Col(item) > 0.5 {
			fmt.Printf("take item %d (weight %.0f, value %.0f)\n", i, weights[i], values[i])
		}
	}
}

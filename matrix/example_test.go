package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvsvm/matrix"
)

// ExampleNewCSR builds a 2×4 sparse matrix and reads it back.
func ExampleNewCSR() {
	// row 0: col1=2, col3=5 ; row 1: col0=1
	m, err := matrix.NewCSR(2, 4,
		[]float64{2, 5, 1},
		[]int{1, 3, 0},
		[]int{0, 2, 3},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	v, _ := m.At(0, 3)
	fmt.Println(m.NNZ(), v, m.Row(1).ToDense())
	// Output: 3 5 [1 0 0 0]
}

// ExampleDense_SelectRows copies a training subset.
func ExampleDense_SelectRows() {
	m, _ := matrix.NewDenseRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	sub, _ := m.SelectRows([]int{2, 0})
	fmt.Print(sub)
	// Output:
	// [5, 6]
	// [1, 2]
}

// ExampleFitScaler maps each feature onto [0, 1].
func ExampleFitScaler() {
	m, _ := matrix.NewDenseRows([][]float64{{0, 100}, {5, 300}, {10, 200}})
	s, _ := matrix.FitScaler(m, 0, 1)
	out, _ := s.Transform(m)
	for i := 0; i < out.Rows(); i++ {
		fmt.Println(out.Row(i).Dense())
	}
	// Output:
	// [0 0]
	// [0.5 1]
	// [1 0.5]
}

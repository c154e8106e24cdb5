package svm

// classGroups partitions row indices by class label.
type classGroups struct {
	labels []int   // distinct labels in order of first appearance
	rows   [][]int // rows[c] lists the training rows of labels[c], ascending
}

// groupClasses orders classes by first appearance in y, which fixes both the
// model's label order and the one-vs-one pair order. y must hold integral
// values (checked by validate).
func groupClasses(y []float64) classGroups {
	var g classGroups
	index := make(map[int]int)
	for i, v := range y {
		label := int(v)
		c, ok := index[label]
		if !ok {
			c = len(g.labels)
			index[label] = c
			g.labels = append(g.labels, label)
			g.rows = append(g.rows, nil)
		}
		g.rows[c] = append(g.rows[c], i)
	}

	return g
}

// pair is one one-vs-one sub-problem between classes i < j.
type pair struct{ i, j int }

// enumeratePairs lists (0,1), (0,2), ..., (k-2,k-1).
func enumeratePairs(k int) []pair {
	out := make([]pair, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			out = append(out, pair{i, j})
		}
	}

	return out
}

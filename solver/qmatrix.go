package solver

import (
	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
)

// kernelRows evaluates K over a permutable list of rows.
type kernelRows struct {
	x []matrix.Vector
	p kernel.Params
}

func newKernelRows(x matrix.FeatureMatrix, p kernel.Params) kernelRows {
	rows := make([]matrix.Vector, x.Rows())
	for i := range rows {
		rows[i] = x.Row(i)
	}

	return kernelRows{x: rows, p: p}
}

func (k kernelRows) eval(i, j int) float64 {
	return kernel.Evaluate(k.x[i], k.x[j], k.p)
}

func (k kernelRows) swap(i, j int) {
	k.x[i], k.x[j] = k.x[j], k.x[i]
}

// SVCQ is Q[i,j] = y_i·y_j·K(x_i, x_j) for classification.
type SVCQ struct {
	k     kernelRows
	y     []int8
	qd    []float64
	store columnStore
}

var (
	_ QMatrix = (*SVCQ)(nil)
	_ QMatrix = (*OneClassQ)(nil)
	_ QMatrix = (*SVRQ)(nil)
)

// NewSVCQ builds the classification Q over x with ±1 labels y. cacheBytes
// bounds the column cache (<= 0 means no limit). y is copied.
func NewSVCQ(x matrix.FeatureMatrix, y []int8, p kernel.Params, cacheBytes int64) *SVCQ {
	q := &SVCQ{
		k:     newKernelRows(x, p),
		y:     append([]int8(nil), y...),
		qd:    make([]float64, x.Rows()),
		store: newColumnStore(x.Rows(), cacheBytes),
	}
	for i := range q.qd {
		q.qd[i] = q.k.eval(i, i)
	}

	return q
}

// Len implements QMatrix.
func (q *SVCQ) Len() int { return len(q.y) }

// Column implements QMatrix.
func (q *SVCQ) Column(i, length int) []float64 {
	data, start := q.store.fetch(i, length)
	yi := float64(q.y[i])
	for j := start; j < length; j++ {
		data[j] = yi * float64(q.y[j]) * q.k.eval(i, j)
	}

	return data
}

// Diagonal implements QMatrix.
func (q *SVCQ) Diagonal() []float64 { return q.qd }

// SwapIndex implements QMatrix.
func (q *SVCQ) SwapIndex(i, j int) {
	q.store.swap(i, j)
	q.k.swap(i, j)
	q.y[i], q.y[j] = q.y[j], q.y[i]
	q.qd[i], q.qd[j] = q.qd[j], q.qd[i]
}

// OneClassQ is Q[i,j] = K(x_i, x_j).
type OneClassQ struct {
	k     kernelRows
	qd    []float64
	store columnStore
}

// NewOneClassQ builds the one-class Q over x.
func NewOneClassQ(x matrix.FeatureMatrix, p kernel.Params, cacheBytes int64) *OneClassQ {
	q := &OneClassQ{
		k:     newKernelRows(x, p),
		qd:    make([]float64, x.Rows()),
		store: newColumnStore(x.Rows(), cacheBytes),
	}
	for i := range q.qd {
		q.qd[i] = q.k.eval(i, i)
	}

	return q
}

// Len implements QMatrix.
func (q *OneClassQ) Len() int { return len(q.qd) }

// Column implements QMatrix.
func (q *OneClassQ) Column(i, length int) []float64 {
	data, start := q.store.fetch(i, length)
	for j := start; j < length; j++ {
		data[j] = q.k.eval(i, j)
	}

	return data
}

// Diagonal implements QMatrix.
func (q *OneClassQ) Diagonal() []float64 { return q.qd }

// SwapIndex implements QMatrix.
func (q *OneClassQ) SwapIndex(i, j int) {
	q.store.swap(i, j)
	q.k.swap(i, j)
	q.qd[i], q.qd[j] = q.qd[j], q.qd[i]
}

// SVRQ is the 2l×2l regression Q over l samples: variable k < l is α_k,
// variable k+l is α*_k, and Q[a,b] = s_a·s_b·K(x_{a mod l}, x_{b mod l})
// with s = +1 for the first half and −1 for the second.
// Kernel columns are cached per sample, so both halves share them.
type SVRQ struct {
	k     kernelRows
	l     int
	sign  []int8
	index []int
	qd    []float64
	store columnStore
	buf   [2][]float64
	next  int
}

// NewSVRQ builds the regression Q over x.
func NewSVRQ(x matrix.FeatureMatrix, p kernel.Params, cacheBytes int64) *SVRQ {
	l := x.Rows()
	q := &SVRQ{
		k:     newKernelRows(x, p),
		l:     l,
		sign:  make([]int8, 2*l),
		index: make([]int, 2*l),
		qd:    make([]float64, 2*l),
		store: newColumnStore(l, cacheBytes),
		buf:   [2][]float64{make([]float64, 2*l), make([]float64, 2*l)},
	}
	for k := 0; k < l; k++ {
		q.sign[k], q.sign[k+l] = 1, -1
		q.index[k], q.index[k+l] = k, k
		q.qd[k] = q.k.eval(k, k)
		q.qd[k+l] = q.qd[k]
	}

	return q
}

// Len implements QMatrix.
func (q *SVRQ) Len() int { return 2 * q.l }

// Column implements QMatrix.
func (q *SVRQ) Column(i, length int) []float64 {
	ri := q.index[i]
	data, start := q.store.fetch(ri, q.l)
	for j := start; j < q.l; j++ {
		data[j] = q.k.eval(ri, j)
	}
	out := q.buf[q.next][:length]
	q.next = 1 - q.next
	si := float64(q.sign[i])
	for j := range out {
		out[j] = si * float64(q.sign[j]) * data[q.index[j]]
	}

	return out
}

// Diagonal implements QMatrix.
func (q *SVRQ) Diagonal() []float64 { return q.qd }

// SwapIndex implements QMatrix.
func (q *SVRQ) SwapIndex(i, j int) {
	q.sign[i], q.sign[j] = q.sign[j], q.sign[i]
	q.index[i], q.index[j] = q.index[j], q.index[i]
	q.qd[i], q.qd[j] = q.qd[j], q.qd[i]
}

package svm

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
)

// Binary model format, little-endian:
//
//	magic "LSVM", version uint16
//	svmType, kernelType uint8; degree int32
//	gamma, coef0, C, nu, epsilon, tolerance float64
//	probability, sparse uint8
//	numFeatures, numClasses uint32; maxIter int64; numCores int32
//	labels int64×numClasses (classifiers only)
//	weightCount uint32; labels int64×n; weights float64×n
//	subCount uint32, then per sub-model:
//	  classI, classJ, svCount uint32
//	  dense:  svCount×numFeatures float64
//	  sparse: nnz uint32; rowStart (svCount+1)×uint32; colIndex nnz×uint32; values nnz×float64
//	  coef float64×svCount; rho float64
//	  probA, probB float64 (classifiers with probability)
//	svrSigma float64 (regression with probability)
const (
	codecMagic   = "LSVM"
	codecVersion = uint16(1)
)

var le = binary.LittleEndian

func appendFloat(b []byte, v float64) []byte { return le.AppendUint64(b, math.Float64bits(v)) }

func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}

// Marshal encodes m in the binary model format.
//
// Errors: ErrNilModel.
func Marshal(m *Model) ([]byte, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	p := m.params
	sparse := m.sv != nil && m.sv.Sparse()

	b := make([]byte, 0, 128+m.NumSupportVectors()*m.numFeatures*8)
	b = append(b, codecMagic...)
	b = le.AppendUint16(b, codecVersion)
	b = append(b, byte(p.Type), byte(p.Kernel.Type))
	b = le.AppendUint32(b, uint32(int32(p.Kernel.Degree)))
	for _, v := range [...]float64{p.Kernel.Gamma, p.Kernel.Coef0, p.C, p.Nu, p.Epsilon, p.Tolerance} {
		b = appendFloat(b, v)
	}
	b = append(b, boolByte(p.Probability), boolByte(sparse))
	b = le.AppendUint32(b, uint32(m.numFeatures))
	b = le.AppendUint32(b, uint32(m.NumClasses()))
	b = le.AppendUint64(b, uint64(int64(p.MaxIter)))
	b = le.AppendUint32(b, uint32(int32(p.NumCores)))
	if p.Type.IsClassifier() {
		for _, l := range m.labels {
			b = le.AppendUint64(b, uint64(int64(l)))
		}
	}
	b = le.AppendUint32(b, uint32(len(p.WeightLabels)))
	for _, l := range p.WeightLabels {
		b = le.AppendUint64(b, uint64(int64(l)))
	}
	for _, w := range p.Weights {
		b = appendFloat(b, w)
	}

	b = le.AppendUint32(b, uint32(len(m.subs)))
	for _, s := range m.subs {
		b = le.AppendUint32(b, uint32(s.ClassI))
		b = le.AppendUint32(b, uint32(s.ClassJ))
		b = le.AppendUint32(b, uint32(len(s.SV)))
		if sparse {
			b = m.appendSparseRows(b, s.SV)
		} else {
			for _, row := range s.SV {
				for _, v := range m.sv.Row(row).Dense() {
					b = appendFloat(b, v)
				}
			}
		}
		for _, c := range s.Coef {
			b = appendFloat(b, c)
		}
		b = appendFloat(b, s.Rho)
		if p.Probability && p.Type.IsClassifier() {
			b = appendFloat(b, s.ProbA)
			b = appendFloat(b, s.ProbB)
		}
	}
	if p.Probability && p.Type.IsRegression() {
		b = appendFloat(b, m.svrSigma)
	}

	return b, nil
}

func (m *Model) appendSparseRows(b []byte, rows []int) []byte {
	nnz := 0
	for _, row := range rows {
		nnz += m.sv.Row(row).NNZ()
	}
	b = le.AppendUint32(b, uint32(nnz))
	b = le.AppendUint32(b, 0)
	off := 0
	for _, row := range rows {
		off += m.sv.Row(row).NNZ()
		b = le.AppendUint32(b, uint32(off))
	}
	for _, row := range rows {
		idx, _ := m.sv.Row(row).Entries()
		for _, j := range idx {
			b = le.AppendUint32(b, uint32(j))
		}
	}
	for _, row := range rows {
		_, val := m.sv.Row(row).Entries()
		for _, v := range val {
			b = appendFloat(b, v)
		}
	}

	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *Model) MarshalBinary() ([]byte, error) { return Marshal(m) }

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error m is left
// unchanged.
func (m *Model) UnmarshalBinary(data []byte) error {
	if m == nil {
		return ErrNilModel
	}
	dec, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*m = *dec

	return nil
}

// WriteTo writes the encoded model to w.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	b, err := Marshal(m)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)

	return int64(n), err
}

// ReadModel decodes a model from all of r.
func ReadModel(r io.Reader) (*Model, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Unmarshal(b)
}

// reader is a bounds-checked cursor with a sticky truncation error.
type reader struct {
	b   []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.b)-r.off {
		r.err = ErrTruncated
		return nil
	}
	out := r.b[r.off : r.off+n]
	r.off += n

	return out
}

// fits reports whether count items of size bytes remain, setting
// ErrTruncated otherwise. It guards allocations sized from the payload.
func (r *reader) fits(count, size uint64) bool {
	if r.err != nil {
		return false
	}
	if size != 0 && count > uint64(len(r.b)-r.off)/size {
		r.err = ErrTruncated
		return false
	}

	return true
}

func (r *reader) u8() byte {
	if s := r.take(1); s != nil {
		return s[0]
	}

	return 0
}

func (r *reader) u16() uint16 {
	if s := r.take(2); s != nil {
		return le.Uint16(s)
	}

	return 0
}

func (r *reader) u32() uint32 {
	if s := r.take(4); s != nil {
		return le.Uint32(s)
	}

	return 0
}

func (r *reader) u64() uint64 {
	if s := r.take(8); s != nil {
		return le.Uint64(s)
	}

	return 0
}

func (r *reader) f64() float64 { return math.Float64frombits(r.u64()) }

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
}

// Unmarshal decodes a model produced by Marshal. Support vectors repeated
// across sub-models are merged into one shared set by exact value.
//
// Errors (all wrap ErrDecode): ErrBadMagic, ErrVersion, ErrTruncated,
// ErrCorrupt. No partial model is returned.
func Unmarshal(data []byte) (*Model, error) {
	r := &reader{b: data}
	if string(r.take(len(codecMagic))) != codecMagic {
		if r.err != nil {
			return nil, r.err
		}
		return nil, ErrBadMagic
	}
	if v := r.u16(); r.err == nil && v != codecVersion {
		return nil, fmt.Errorf("version %d: %w", v, ErrVersion)
	}

	p := DefaultParams()
	p.Type = Type(r.u8())
	p.Kernel.Type = kernel.Type(r.u8())
	p.Kernel.Degree = int(int32(r.u32()))
	p.Kernel.Gamma = r.f64()
	p.Kernel.Coef0 = r.f64()
	p.C = r.f64()
	p.Nu = r.f64()
	p.Epsilon = r.f64()
	p.Tolerance = r.f64()
	prob, sparse := r.u8(), r.u8()
	numFeatures := int(r.u32())
	numClasses := int(r.u32())
	p.MaxIter = int(int64(r.u64()))
	p.NumCores = int(int32(r.u32()))
	if r.err != nil {
		return nil, r.err
	}
	if err := checkHeader(p, prob, sparse, numFeatures, numClasses); err != nil {
		return nil, err
	}
	p.Probability = prob == 1

	m := &Model{params: p, numFeatures: numFeatures}
	if p.Type.IsClassifier() {
		if !r.fits(uint64(numClasses), 8) {
			return nil, r.err
		}
		m.labels = make([]int, numClasses)
		seen := make(map[int]bool, numClasses)
		for c := range m.labels {
			m.labels[c] = int(int64(r.u64()))
			if seen[m.labels[c]] {
				return nil, corruptf("duplicate label %d", m.labels[c])
			}
			seen[m.labels[c]] = true
		}
	}

	wc := uint64(r.u32())
	if !r.fits(wc, 16) {
		return nil, r.err
	}
	for k := uint64(0); k < wc; k++ {
		m.params.WeightLabels = append(m.params.WeightLabels, int(int64(r.u64())))
	}
	for k := uint64(0); k < wc; k++ {
		w := r.f64()
		if !finite(w) || w <= 0 {
			return nil, corruptf("weight %g", w)
		}
		m.params.Weights = append(m.params.Weights, w)
	}

	subCount := int(r.u32())
	if r.err != nil {
		return nil, r.err
	}
	want := 1
	if p.Type.IsClassifier() {
		want = numClasses * (numClasses - 1) / 2
	}
	if subCount != want {
		return nil, corruptf("%d sub-models, want %d", subCount, want)
	}

	// A sub-model takes at least i, j, count and rho.
	if !r.fits(uint64(subCount), 20) {
		return nil, r.err
	}
	d := newSVDeduper(numFeatures, sparse == 1)
	pairs := enumeratePairs(numClasses)
	m.subs = make([]SubModel, subCount)
	for k := range m.subs {
		s, err := d.readSubModel(r, &m.params)
		if err != nil {
			return nil, err
		}
		if p.Type.IsClassifier() && (s.ClassI != pairs[k].i || s.ClassJ != pairs[k].j) {
			return nil, corruptf("sub-model %d is pair (%d,%d), want (%d,%d)", k, s.ClassI, s.ClassJ, pairs[k].i, pairs[k].j)
		}
		if !p.Type.IsClassifier() && (s.ClassI != 0 || s.ClassJ != 0) {
			return nil, corruptf("sub-model pair (%d,%d) on %v", s.ClassI, s.ClassJ, p.Type)
		}
		m.subs[k] = s
	}
	if p.Probability && p.Type.IsRegression() {
		m.svrSigma = r.f64()
		if r.err == nil && (!finite(m.svrSigma) || m.svrSigma < 0) {
			return nil, corruptf("svr sigma %g", m.svrSigma)
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(data) {
		return nil, corruptf("%d trailing bytes", len(data)-r.off)
	}

	sv, err := d.matrix()
	if err != nil {
		return nil, err
	}
	m.sv = sv

	return m, nil
}

func checkHeader(p Params, prob, sparse byte, numFeatures, numClasses int) error {
	if !p.Type.valid() {
		return corruptf("svm type %d", int(p.Type))
	}
	if err := kernel.Validate(p.Kernel); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if prob > 1 || sparse > 1 {
		return corruptf("flag bytes %d, %d", prob, sparse)
	}
	if prob == 1 && p.Type == OneClass {
		return corruptf("probability on %v", p.Type)
	}
	if numFeatures <= 0 {
		return corruptf("%d features", numFeatures)
	}
	if (p.Type.IsClassifier() && numClasses < 2) || (!p.Type.IsClassifier() && numClasses != 2) {
		return corruptf("%d classes for %v", numClasses, p.Type)
	}
	if p.NumCores == 0 || p.NumCores < -1 {
		return corruptf("NumCores %d", p.NumCores)
	}

	return nil
}

// svDeduper collects support vector rows across sub-models, keeping one copy
// of each distinct row.
type svDeduper struct {
	cols   int
	sparse bool
	index  map[string]int
	rows   []matrix.Vector
}

func newSVDeduper(cols int, sparse bool) *svDeduper {
	return &svDeduper{cols: cols, sparse: sparse, index: make(map[string]int)}
}

// add returns the shared position of the row encoded by key.
func (d *svDeduper) add(key []byte, v matrix.Vector) int {
	if pos, ok := d.index[string(key)]; ok {
		return pos
	}
	pos := len(d.rows)
	d.index[string(key)] = pos
	d.rows = append(d.rows, v)

	return pos
}

func (d *svDeduper) readSubModel(r *reader, p *Params) (SubModel, error) {
	var s SubModel
	s.ClassI, s.ClassJ = int(r.u32()), int(r.u32())
	n := uint64(r.u32())
	if !r.fits(n, 8) {
		return SubModel{}, r.err
	}
	s.SV = make([]int, n)
	if d.sparse {
		if err := d.readSparse(r, s.SV); err != nil {
			return SubModel{}, err
		}
	} else {
		if !r.fits(n, uint64(d.cols)*8) {
			return SubModel{}, r.err
		}
		for t := range s.SV {
			raw := r.take(d.cols * 8)
			row := make([]float64, d.cols)
			for j := range row {
				row[j] = math.Float64frombits(le.Uint64(raw[j*8:]))
				if !finite(row[j]) {
					return SubModel{}, corruptf("support vector value %g", row[j])
				}
			}
			s.SV[t] = d.add(raw, matrix.NewDenseVector(row))
		}
	}

	s.Coef = make([]float64, n)
	for t := range s.Coef {
		s.Coef[t] = r.f64()
	}
	s.Rho = r.f64()
	if p.Probability && p.Type.IsClassifier() {
		s.ProbA, s.ProbB = r.f64(), r.f64()
	}
	if r.err != nil {
		return SubModel{}, r.err
	}
	for _, v := range append([]float64{s.Rho, s.ProbA, s.ProbB}, s.Coef...) {
		if !finite(v) {
			return SubModel{}, corruptf("coefficient %g", v)
		}
	}

	return s, nil
}

func (d *svDeduper) readSparse(r *reader, sv []int) error {
	nnz := uint64(r.u32())
	if !r.fits(uint64(len(sv))+1, 4) || !r.fits(nnz, 12) {
		return r.err
	}
	start := make([]int, len(sv)+1)
	for t := range start {
		start[t] = int(r.u32())
	}
	if start[0] != 0 || start[len(sv)] != int(nnz) {
		return corruptf("sparse row extents [%d, %d] for %d entries", start[0], start[len(sv)], nnz)
	}
	colRaw := r.take(int(nnz) * 4)
	valRaw := r.take(int(nnz) * 8)
	if r.err != nil {
		return r.err
	}

	for t := range sv {
		lo, hi := start[t], start[t+1]
		if hi < lo || hi > int(nnz) {
			return corruptf("sparse row %d extents [%d, %d)", t, lo, hi)
		}
		idx := make([]int, hi-lo)
		val := make([]float64, hi-lo)
		for k := lo; k < hi; k++ {
			idx[k-lo] = int(le.Uint32(colRaw[k*4:]))
			val[k-lo] = math.Float64frombits(le.Uint64(valRaw[k*8:]))
			if !finite(val[k-lo]) {
				return corruptf("support vector value %g", val[k-lo])
			}
		}
		v, err := matrix.NewSparseVector(d.cols, idx, val)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		key := make([]byte, 0, (hi-lo)*12)
		key = append(key, colRaw[lo*4:hi*4]...)
		key = append(key, valRaw[lo*8:hi*8]...)
		sv[t] = d.add(key, v)
	}

	return nil
}

// matrix materializes the shared set, or nil when it is empty.
func (d *svDeduper) matrix() (matrix.FeatureMatrix, error) {
	if len(d.rows) == 0 {
		return nil, nil
	}
	var (
		out matrix.FeatureMatrix
		err error
	)
	if d.sparse {
		out, err = matrix.VectorsToCSR(d.cols, d.rows)
	} else {
		dense := make([][]float64, len(d.rows))
		for i, v := range d.rows {
			dense[i] = v.Dense()
		}
		out, err = matrix.NewDenseRows(dense)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return out, nil
}

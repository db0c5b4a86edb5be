package sparse

import (
	"math"

	"github.com/cpmech/waternet/errs"
)

// Numeric is the factored system, reused across Newton iterations within a
// topology. Ldata[row][k] holds
// L[row][RowStruct[row][k]]; Diag[row] holds L[row][row].
type Numeric struct {
	sym  *Symbolic
	Aii  []float64 // permuted diagonal, 1-based size N+1 (input, set by caller before Factorize)
	Off  map[Loc]float64
	Ldata [][]float64
	Diag  []float64
}

// NewNumeric allocates scratch space sized to sym. Callers reuse one
// Numeric across Newton iterations, zeroing it with Reset between calls.
func NewNumeric(sym *Symbolic) *Numeric {
	n := sym.Order.N
	num := &Numeric{
		sym:   sym,
		Aii:   make([]float64, n+1),
		Off:   make(map[Loc]float64, len(sym.Ndx)),
		Ldata: make([][]float64, n+1),
		Diag:  make([]float64, n+1),
	}
	for i := 1; i <= n; i++ {
		num.Ldata[i] = make([]float64, len(sym.RowStruct[i]))
	}
	return num
}

// Reset zeroes the diagonal and off-diagonal accumulators ahead of a fresh
// coefficient assembly pass.
func (num *Numeric) Reset() {
	for i := range num.Aii {
		num.Aii[i] = 0
	}
	for k := range num.Off {
		num.Off[k] = 0
	}
}

// AddDiag adds val to the permuted diagonal entry for original junction
// index orig.
func (num *Numeric) AddDiag(orig int, val float64) {
	row := num.sym.Order.Row[orig]
	num.Aii[row] += val
}

// AddOffByLink adds val to the off-diagonal cell owned by linkIndex, via
// the Ndx map. No-op if linkIndex does not connect two junctions (e.g. it
// touches a tank/reservoir).
func (num *Numeric) AddOffByLink(linkIndex int, val float64) {
	loc, ok := num.sym.Ndx[linkIndex]
	if !ok {
		return
	}
	num.Off[loc] += val
}

// Factorize computes the Cholesky factor in-place using the up-looking
// algorithm consistent with Symbolic.RowStruct. A non-positive pivot is
// reported as errs.Singular, naming the offending junction in ORIGINAL
// indexing.
func (num *Numeric) Factorize() error {
	sym := num.sym
	n := sym.Order.N
	for i := 1; i <= n; i++ {
		rs := sym.RowStruct[i]
		d := num.Aii[i]
		for k, r := range rs {
			sum := num.off(i, r)
			// subtract inner product over the common prefix of RowStruct[i]
			// and RowStruct[r] that precedes r.
			for _, c := range rs[:k] {
				if lc := sym.colIndex(r, c); lc >= 0 {
					sum -= num.Ldata[i][sliceIndex(rs, c)] * num.Ldata[r][lc]
				}
			}
			lir := sum / num.Diag[r]
			num.Ldata[i][k] = lir
			d -= lir * lir
		}
		if d <= 0 {
			return errs.Singular(sym.Order.Order[i])
		}
		num.Diag[i] = math.Sqrt(d)
	}
	return nil
}

func sliceIndex(sorted []int, v int) int {
	for i, x := range sorted {
		if x == v {
			return i
		}
	}
	return -1
}

func (num *Numeric) off(row, col int) float64 {
	loc := Loc{Row: row, Col: col}
	if v, ok := num.Off[loc]; ok {
		return v
	}
	return 0
}

// Solve computes dh = A^-1 * f via forward substitution on L then backward
// substitution on L^T, returning the result in ORIGINAL node indexing
// (the caller supplies f in original indexing too).
func (num *Numeric) Solve(f []float64) []float64 {
	sym := num.sym
	n := sym.Order.N
	// permute RHS
	y := make([]float64, n+1)
	for row := 1; row <= n; row++ {
		y[row] = f[sym.Order.Order[row]]
	}
	// forward: L z = y
	z := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		s := y[i]
		for k, r := range sym.RowStruct[i] {
			s -= num.Ldata[i][k] * z[r]
		}
		z[i] = s / num.Diag[i]
	}
	// backward: L^T x = z
	x := make([]float64, n+1)
	for i := n; i >= 1; i-- {
		x[i] = z[i]
	}
	for i := n; i >= 1; i-- {
		x[i] /= num.Diag[i]
		for k, r := range sym.RowStruct[i] {
			x[r] -= num.Ldata[i][k] * x[i]
		}
	}
	// un-permute
	result := make([]float64, n+1)
	for row := 1; row <= n; row++ {
		result[sym.Order.Order[row]] = x[row]
	}
	return result
}

package gf

import "github.com/pkg/errors"

// Matrix is a row-major matrix over GF(2^8). It underlies the decoder
// family's Vandermonde-style systems: building the interpolation matrix for
// a set of share x-coordinates and inverting it to solve for polynomial
// coefficients.
type Matrix struct {
	rows, cols int
	data       []byte // row-major, len = rows*cols
}

var (
	// ErrDimensionMismatch is returned when a matrix operation is given an
	// operand of the wrong shape.
	ErrDimensionMismatch = errors.New("gf: matrix dimension mismatch")

	// ErrSingular is returned by Inverse when no non-zero pivot can be found
	// for some column.
	ErrSingular = errors.New("gf: matrix is singular")
)

// NewMatrix allocates a rows x cols zero matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]byte, rows*cols)}
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) byte {
	return m.data[row*m.cols+col]
}

// Set assigns the element at (row, col).
func (m *Matrix) Set(row, col int, v byte) {
	m.data[row*m.cols+col] = v
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]byte, len(m.data))}
	copy(out.data, m.data)
	return out
}

// RightMultiply computes m*v, the matrix-vector product. It fails if v's
// length doesn't match m's column count.
func (m *Matrix) RightMultiply(v []byte) ([]byte, error) {
	if len(v) != m.cols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "matrix has %d cols, vector has %d entries", m.cols, len(v))
	}
	out := make([]byte, m.rows)
	for r := 0; r < m.rows; r++ {
		var acc byte
		for c := 0; c < m.cols; c++ {
			acc = Add(acc, Mul(m.At(r, c), v[c]))
		}
		out[r] = acc
	}
	return out, nil
}

// swapRows exchanges rows a and b.
func (m *Matrix) swapRows(a, b int) {
	if a == b {
		return
	}
	rowA := m.data[a*m.cols : a*m.cols+m.cols]
	rowB := m.data[b*m.cols : b*m.cols+m.cols]
	for i := range rowA {
		rowA[i], rowB[i] = rowB[i], rowA[i]
	}
}

// scaleRow multiplies every element of row r by factor.
func (m *Matrix) scaleRow(r int, factor byte) {
	row := m.data[r*m.cols : r*m.cols+m.cols]
	for i := range row {
		row[i] = Mul(row[i], factor)
	}
}

// addScaledRow adds factor*src to dst, element-wise.
func (m *Matrix) addScaledRow(dst, src int, factor byte) {
	dstRow := m.data[dst*m.cols : dst*m.cols+m.cols]
	srcRow := m.data[src*m.cols : src*m.cols+m.cols]
	for i := range dstRow {
		dstRow[i] = Add(dstRow[i], Mul(srcRow[i], factor))
	}
}

// Inverse computes m^-1 via Gauss-Jordan elimination on [m | I]. It fails
// with ErrSingular if m is not square or if some column has no non-zero
// pivot available.
func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, errors.Wrap(ErrDimensionMismatch, "inverse requires a square matrix")
	}
	aug, err := m.augmentedIdentity()
	if err != nil {
		return nil, err
	}
	n := m.rows
	for col := 0; col < n; col++ {
		if err := aug.eliminateColumn(col, n); err != nil {
			return nil, err
		}
	}
	return aug.rightHalf(n), nil
}

// augmentedIdentity returns a clone of m with the identity matrix appended
// on the right, giving a rows x 2*cols working matrix for Gauss-Jordan.
func (m *Matrix) augmentedIdentity() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, errors.Wrap(ErrDimensionMismatch, "augmentedIdentity requires a square matrix")
	}
	n := m.rows
	aug := NewMatrix(n, 2*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			aug.Set(r, c, m.At(r, c))
		}
		aug.Set(r, n+r, 1)
	}
	return aug, nil
}

// eliminateColumn performs one pivot step of Gauss-Jordan elimination on an
// augmented n x 2n matrix, operating on logical column `col` out of the
// original n columns.
func (m *Matrix) eliminateColumn(col, n int) error {
	if m.At(col, col) == 0 {
		found := false
		for r := col + 1; r < n; r++ {
			if m.At(r, col) != 0 {
				m.swapRows(col, r)
				found = true
				break
			}
		}
		if !found {
			return errors.Wrapf(ErrSingular, "no non-zero pivot in column %d", col)
		}
	}
	pivotInv, err := Inverse(m.At(col, col))
	if err != nil {
		return errors.Wrap(err, "invert pivot")
	}
	m.scaleRow(col, pivotInv)
	for r := 0; r < n; r++ {
		if r == col {
			continue
		}
		factor := m.At(r, col)
		if factor != 0 {
			m.addScaledRow(r, col, factor)
		}
	}
	return nil
}

// rightHalf extracts the right n columns of an n x 2n augmented matrix.
func (m *Matrix) rightHalf(n int) *Matrix {
	out := NewMatrix(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out.Set(r, c, m.At(r, n+c))
		}
	}
	return out
}

// InverseElimDepRows behaves like Inverse on a matrix with at least as many
// rows as columns: for each column it takes the first not-yet-used row with
// a non-zero entry as the pivot, and rows never used as a pivot (the
// dependent/redundant ones) are dropped from the system. It fails with
// ErrSingular only when no remaining row has a non-zero entry in some
// column. This is used by the erasure decoder when more than k shares are
// supplied: the extra equations are over-determined, and dropping them still
// yields a usable pseudo-inverse over the surviving rows.
//
// It returns the reduced pseudo-inverse together with the indices of the
// rows that were kept (in their original order), so callers can select the
// matching subset of the right-hand-side vector.
func (m *Matrix) InverseElimDepRows() (inv *Matrix, kept []int, err error) {
	if m.rows < m.cols {
		return nil, nil, errors.Wrap(ErrDimensionMismatch, "fewer rows than columns")
	}
	// Build an augmented [m | I_rows] and reduce row-by-row, dropping rows
	// that cannot supply a pivot for their column.
	n := m.cols
	work := m.Clone()
	identityCols := m.rows
	aug := NewMatrix(m.rows, m.cols+identityCols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			aug.Set(r, c, work.At(r, c))
		}
		aug.Set(r, m.cols+r, 1)
	}

	active := make([]int, m.rows)
	for i := range active {
		active[i] = i
	}

	for col := 0; col < n; col++ {
		pivotRow := -1
		for _, r := range active {
			if aug.At(r, col) != 0 {
				pivotRow = r
				break
			}
		}
		if pivotRow == -1 {
			// Dependent column: no equation left to pin it down with a
			// non-zero pivot among the remaining rows is impossible here
			// because col < n means it's a real unknown; treat as singular.
			return nil, nil, errors.Wrapf(ErrSingular, "no pivot available for column %d", col)
		}
		pivotInv, perr := Inverse(aug.At(pivotRow, col))
		if perr != nil {
			return nil, nil, errors.Wrap(perr, "invert pivot")
		}
		aug.scaleRow(pivotRow, pivotInv)
		// Eliminate column col from every other row, not just the still-
		// active ones: a row already claimed as an earlier pivot can still
		// carry a non-zero entry in this column, and leaving it non-zero
		// would break the full (Gauss-Jordan, not just forward) reduction
		// the final extraction below relies on.
		for r := 0; r < aug.rows; r++ {
			if r == pivotRow {
				continue
			}
			factor := aug.At(r, col)
			if factor != 0 {
				aug.addScaledRow(r, pivotRow, factor)
			}
		}
		kept = append(kept, pivotRow)
		// Remove pivotRow from the active set.
		for i, r := range active {
			if r == pivotRow {
				active = append(active[:i], active[i+1:]...)
				break
			}
		}
	}

	// Only columns ever used as a pivot source ever get propagated into
	// another row's augmented half (addScaledRow's source is always the
	// current pivot row), so the augmented columns for dropped rows stay
	// zero. inv[i][j] is the coefficient of kept[j]'s y-value in output
	// coefficient i.
	inv = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			inv.Set(i, j, aug.At(kept[i], m.cols+kept[j]))
		}
	}
	return inv, kept, nil
}

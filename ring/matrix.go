/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ring

import (
	"github.com/fentec-project/gofhe/data"
	"github.com/fentec-project/gofhe/sample"
	"github.com/pkg/errors"
)

// Vector wraps a slice of ring elements.
type Vector []data.Vector

// Matrix wraps a slice of Vector elements. It represents a row-major
// order matrix of ring elements.
type Matrix []Vector

// NewMatrix returns a new rows x cols Matrix of zero ring elements.
func NewMatrix(rq *Ring, rows, cols int) Matrix {
	mat := make(Matrix, rows)
	for i := 0; i < rows; i++ {
		mat[i] = make(Vector, cols)
		for j := 0; j < cols; j++ {
			mat[i][j] = rq.NewPoly()
		}
	}

	return mat
}

// NewRandomMatrix returns a new rows x cols Matrix of ring elements
// whose coefficients are sampled by the provided sampler.
// Returns an error in case of sampling failure.
func NewRandomMatrix(rq *Ring, rows, cols int, sampler sample.Sampler) (Matrix, error) {
	mat := make(Matrix, rows)
	for i := 0; i < rows; i++ {
		mat[i] = make(Vector, cols)
		for j := 0; j < cols; j++ {
			p, err := rq.NewRandomPoly(sampler)
			if err != nil {
				return nil, err
			}
			mat[i][j] = p
		}
	}

	return mat, nil
}

// Rows returns the number of rows of matrix m.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns of matrix m.
func (m Matrix) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}

	return 0
}

// DimsMatch returns a bool indicating whether matrices
// m and other have the same dimensions.
func (m Matrix) DimsMatch(other Matrix) bool {
	return m.Rows() == other.Rows() && m.Cols() == other.Cols()
}

// CheckDims checks whether dimensions of matrix m match
// the provided rows and cols arguments.
func (m Matrix) CheckDims(rows, cols int) bool {
	return m.Rows() == rows && m.Cols() == cols
}

// Add adds matrices m and other entry-wise in the ring.
// Error is returned if m and other have different dimensions.
func (m Matrix) Add(rq *Ring, other Matrix) (Matrix, error) {
	if !m.DimsMatch(other) {
		return nil, errors.New("matrices mismatch in dimensions")
	}

	sum := make(Matrix, m.Rows())
	for i, row := range m {
		sum[i] = make(Vector, len(row))
		for j, p := range row {
			sum[i][j] = rq.Add(p, other[i][j])
		}
	}

	return sum, nil
}

// Sub subtracts matrix other from m entry-wise in the ring.
// Error is returned if m and other have different dimensions.
func (m Matrix) Sub(rq *Ring, other Matrix) (Matrix, error) {
	if !m.DimsMatch(other) {
		return nil, errors.New("matrices mismatch in dimensions")
	}

	sub := make(Matrix, m.Rows())
	for i, row := range m {
		sub[i] = make(Vector, len(row))
		for j, p := range row {
			sub[i][j] = rq.Sub(p, other[i][j])
		}
	}

	return sub, nil
}

// Mul multiplies matrices m and other, with ring multiplication
// of the entries.
// Error is returned if m and other have incompatible dimensions.
func (m Matrix) Mul(rq *Ring, other Matrix) (Matrix, error) {
	if m.Cols() != other.Rows() {
		return nil, errors.New("cannot multiply matrices")
	}

	prod := make(Matrix, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		prod[i] = make(Vector, other.Cols())
		for j := 0; j < other.Cols(); j++ {
			acc := rq.NewPoly()
			for k := 0; k < m.Cols(); k++ {
				p, err := rq.Mul(m[i][k], other[k][j])
				if err != nil {
					return nil, err
				}
				acc = rq.Add(acc, p)
			}
			prod[i][j] = acc
		}
	}

	return prod, nil
}

// MulVec multiplies matrix m and a column vector v of ring elements.
// It returns the resulting vector.
// Error is returned if the number of columns of m differs from the
// number of elements of v.
func (m Matrix) MulVec(rq *Ring, v Vector) (Vector, error) {
	if m.Cols() != len(v) {
		return nil, errors.New("cannot multiply matrix by a vector")
	}

	res := make(Vector, m.Rows())
	for i, row := range m {
		acc := rq.NewPoly()
		for k, p := range row {
			prod, err := rq.Mul(p, v[k])
			if err != nil {
				return nil, err
			}
			acc = rq.Add(acc, prod)
		}
		res[i] = acc
	}

	return res, nil
}

// Decomp produces the columnwise bit decomposition of matrix m with
// respect to l bits: every entry is expanded into the l elements of
// its ring decomposition, laid out in the same column-block order, so
// the result has dimensions rows x (l * cols).
func (m Matrix) Decomp(rq *Ring, l int) Matrix {
	res := make(Matrix, m.Rows())
	for i, row := range m {
		res[i] = make(Vector, l*len(row))
		for j, p := range row {
			for k, d := range rq.Decomp(p, l) {
				res[i][j*l+k] = d
			}
		}
	}

	return res
}

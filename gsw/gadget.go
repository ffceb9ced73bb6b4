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

package gsw

import (
	"math/big"

	"github.com/fentec-project/gofhe/data"
	"github.com/fentec-project/gofhe/ring"
)

// numBits returns the number of bits needed to address [0, q),
// i.e. ⌈log₂(q)⌉.
func numBits(q *big.Int) int {
	return new(big.Int).Sub(q, big.NewInt(1)).BitLen()
}

// GadgetMatrix generates the gadget matrix G for modulus q and
// dimension n: with g = (1, 2, 4, ..., 2^(⌈log₂(q)⌉-1)) as a column,
// G is the Kronecker product of the n x n identity with g, giving
// dimensions (n * ⌈log₂(q)⌉) x n.
func GadgetMatrix(q *big.Int, n int) data.Matrix {
	l := numBits(q)

	g := make(data.Matrix, l)
	for i := 0; i < l; i++ {
		g[i] = data.Vector{new(big.Int).Lsh(big.NewInt(1), uint(i))}
	}

	mat := data.NewConstantMatrix(n*l, n, big.NewInt(0))
	for j := 0; j < n; j++ {
		for i := 0; i < l; i++ {
			mat[j*l+i][j].Set(g[i][0])
		}
	}

	return mat
}

// BitDecomp generates the bit decomposition of matrix m with respect
// to modulus q: every entry, taken as its non-negative residue, is
// expanded into its ⌈log₂(q)⌉ binary digits in little-endian order,
// laid out in the same column-block order. The result is the 0/1
// matrix G⁻¹(m) of dimensions rows x (⌈log₂(q)⌉ * cols), satisfying
// G⁻¹(m) * G = m (mod q).
func BitDecomp(m data.Matrix, q *big.Int) data.Matrix {
	l := numBits(q)
	red := m.Mod(q)

	res := data.NewConstantMatrix(m.Rows(), l*m.Cols(), big.NewInt(0))
	for i := 0; i < red.Rows(); i++ {
		for j := 0; j < red.Cols(); j++ {
			for k := 0; k < l; k++ {
				res[i][j*l+k].SetUint64(uint64(red[i][j].Bit(k)))
			}
		}
	}

	return res
}

// RingGadgetMatrix generates the gadget matrix G over the ring rq for
// l = ⌈log₂(q)⌉: a 2l x 2 matrix of constant polynomials with
// G[i][0] = 2^i for i < l and G[i][1] = 2^(i-l) for l <= i < 2l,
// all remaining entries zero.
func RingGadgetMatrix(rq *ring.Ring, l int) ring.Matrix {
	mat := ring.NewMatrix(rq, 2*l, 2)
	for i := 0; i < l; i++ {
		pow := new(big.Int).Lsh(big.NewInt(1), uint(i))
		mat[i][0] = rq.NewConstant(pow)
		mat[l+i][1] = rq.NewConstant(pow)
	}

	return mat
}

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

// Package ring provides arithmetic in the quotient ring
// R_q = Z_q[x]/(x^N + 1) for N a power of 2, together with vectors
// and matrices of ring elements.
//
// A ring element is represented as a data.Vector of its N coefficients
// in little-endian order: the vector [1, 2, 3] is the polynomial
// 1 + 2x + 3x². All operations reduce coefficients to [0, q).
package ring

import (
	"math/big"

	"github.com/fentec-project/gofhe/data"
	"github.com/fentec-project/gofhe/sample"
	"github.com/pkg/errors"
)

// Ring represents the quotient ring Z_q[x]/(x^N + 1).
// It is immutable after creation.
type Ring struct {
	// N is the degree of the quotient polynomial, a power of 2.
	N int
	// Q is the coefficient modulus.
	Q *big.Int
}

// New configures the ring Z_q[x]/(x^N + 1).
// The degree n must be a power of 2 and the modulus q at least 2,
// otherwise an error is returned.
func New(n int, q *big.Int) (*Ring, error) {
	if n < 1 || n&(n-1) != 0 {
		return nil, errors.New("ring degree must be a power of 2")
	}
	if q.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.New("ring modulus must be at least 2")
	}

	return &Ring{
		N: n,
		Q: new(big.Int).Set(q),
	}, nil
}

// NewPoly returns the zero element of the ring.
func (r *Ring) NewPoly() data.Vector {
	return data.NewConstantVector(r.N, big.NewInt(0))
}

// NewConstant returns the constant polynomial c.
func (r *Ring) NewConstant(c *big.Int) data.Vector {
	p := r.NewPoly()
	p[0].Mod(c, r.Q)

	return p
}

// NewRandomPoly returns a ring element whose coefficients are
// sampled by the provided sampler and reduced modulo q.
// Returns an error in case of sampling failure.
func (r *Ring) NewRandomPoly(sampler sample.Sampler) (data.Vector, error) {
	p, err := data.NewRandomVector(r.N, sampler)
	if err != nil {
		return nil, err
	}

	return p.Mod(r.Q), nil
}

// NewUniformPoly returns a ring element with coefficients uniform
// in [0, q).
func (r *Ring) NewUniformPoly() (data.Vector, error) {
	return r.NewRandomPoly(sample.NewUniform(r.Q))
}

// Add adds ring elements p and t.
func (r *Ring) Add(p, t data.Vector) data.Vector {
	return p.Add(t).Mod(r.Q)
}

// Sub subtracts ring element t from p.
func (r *Ring) Sub(p, t data.Vector) data.Vector {
	return p.Sub(t).Mod(r.Q)
}

// Neg negates ring element p.
func (r *Ring) Neg(p data.Vector) data.Vector {
	return p.Neg().Mod(r.Q)
}

// Mul multiplies ring elements p and t as polynomials modulo
// x^N + 1 and reduces the coefficients.
// If the elements differ in size, error is returned.
func (r *Ring) Mul(p, t data.Vector) (data.Vector, error) {
	prod, err := p.MulAsPolyInRing(t)
	if err != nil {
		return nil, err
	}

	return prod.Mod(r.Q), nil
}

// Decomp produces the bit decomposition of ring element p with
// respect to l bits: a vector of l ring elements p_0, ..., p_{l-1}
// with binary coefficients such that p = sum_i 2^i * p_i.
// Coefficients of p are taken as their non-negative residues.
func (r *Ring) Decomp(p data.Vector, l int) []data.Vector {
	red := p.Mod(r.Q)

	res := make([]data.Vector, l)
	for i := 0; i < l; i++ {
		res[i] = r.NewPoly()
	}
	for k, c := range red {
		for i := 0; i < l; i++ {
			res[i][k].SetUint64(uint64(c.Bit(i)))
		}
	}

	return res
}

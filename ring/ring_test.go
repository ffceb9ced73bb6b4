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

package ring_test

import (
	"math/big"
	"testing"

	"github.com/fentec-project/gofhe/data"
	"github.com/fentec-project/gofhe/ring"
	"github.com/fentec-project/gofhe/sample"
	"github.com/stretchr/testify/assert"
)

func TestRing_New(t *testing.T) {
	_, err := ring.New(3, big.NewInt(17))
	assert.Error(t, err, "degree that is not a power of 2 should be rejected")

	_, err = ring.New(4, big.NewInt(1))
	assert.Error(t, err, "modulus below 2 should be rejected")

	rq, err := ring.New(4, big.NewInt(17))
	assert.NoError(t, err)
	assert.Equal(t, 4, rq.N)
}

func TestRing_Mul(t *testing.T) {
	rq, err := ring.New(4, big.NewInt(17))
	assert.NoError(t, err)

	// (1 + x³) * (x) = x + x⁴ = x - 1 = 16 + x in Z_17[x]/(x⁴+1)
	p := data.Vector{big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(1)}
	x := data.Vector{big.NewInt(0), big.NewInt(1), big.NewInt(0), big.NewInt(0)}

	prod, err := rq.Mul(p, x)
	assert.NoError(t, err)
	expected := []int64{16, 1, 0, 0}
	for i, c := range expected {
		assert.Zero(t, prod[i].Cmp(big.NewInt(c)),
			"wrap-around should negate the overflowing coefficient")
	}

	_, err = rq.Mul(p, data.Vector{big.NewInt(1)})
	assert.Error(t, err, "multiplying elements of different sizes should fail")
}

func TestRing_ConstantAndNeg(t *testing.T) {
	rq, _ := ring.New(4, big.NewInt(17))

	c := rq.NewConstant(big.NewInt(-2))
	neg := rq.Neg(c)
	for i := 0; i < rq.N; i++ {
		expectC, expectNeg := int64(0), int64(0)
		if i == 0 {
			expectC, expectNeg = 15, 2
		}
		assert.Zero(t, c[i].Cmp(big.NewInt(expectC)), "constants should be reduced to the ring")
		assert.Zero(t, neg[i].Cmp(big.NewInt(expectNeg)), "negation should be reduced to the ring")
	}
}

func TestRing_Decomp(t *testing.T) {
	q := big.NewInt(8)
	rq, _ := ring.New(2, q)

	p := data.Vector{big.NewInt(5), big.NewInt(6)}
	decomp := rq.Decomp(p, 3)

	assert.Len(t, decomp, 3)
	expected := [][]int64{{1, 0}, {0, 1}, {1, 1}}
	for i, row := range expected {
		for k, c := range row {
			assert.Zero(t, decomp[i][k].Cmp(big.NewInt(c)),
				"decomposition should hold the binary digits of the coefficients")
		}
	}

	// recomposing sum_i 2^i * p_i should give back p
	sum := rq.NewPoly()
	for i, d := range decomp {
		pow := new(big.Int).Lsh(big.NewInt(1), uint(i))
		sum = sum.Add(d.MulScalar(pow)).Mod(q)
	}
	assert.Equal(t, p, sum, "decomposition should recompose to the original element")
}

func TestRingMatrix_Mul(t *testing.T) {
	rq, _ := ring.New(2, big.NewInt(17))

	a, err := ring.NewRandomMatrix(rq, 2, 3, sample.NewUniform(rq.Q))
	assert.NoError(t, err)
	b, err := ring.NewRandomMatrix(rq, 3, 2, sample.NewUniform(rq.Q))
	assert.NoError(t, err)

	prod, err := a.Mul(rq, b)
	assert.NoError(t, err)
	assert.True(t, prod.CheckDims(2, 2), "matrix product should have the outer dimensions")

	_, err = b.Add(rq, prod)
	assert.Error(t, err, "adding matrices of mismatched dimensions should fail")
	_, err = a.Mul(rq, prod.Decomp(rq, 3))
	assert.Error(t, err, "multiplying matrices of incompatible dimensions should fail")
}

func TestRingMatrix_Decomp(t *testing.T) {
	q := big.NewInt(16)
	rq, _ := ring.New(2, q)
	l := 4

	m, err := ring.NewRandomMatrix(rq, 3, 2, sample.NewUniform(q))
	assert.NoError(t, err)

	decomp := m.Decomp(rq, l)
	assert.True(t, decomp.CheckDims(3, 2*l), "decomposition should expand every column into l columns")

	for i := 0; i < decomp.Rows(); i++ {
		for j := 0; j < decomp.Cols(); j++ {
			for _, c := range decomp[i][j] {
				assert.True(t, c.Cmp(big.NewInt(2)) < 0, "decomposition coefficients should be binary")
			}
		}
	}
}

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

package gsw_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/fentec-project/gofhe/circuit"
	"github.com/fentec-project/gofhe/gsw"
	"github.com/fentec-project/gofhe/ring"
	"github.com/fentec-project/gofhe/sample"
	"github.com/stretchr/testify/assert"
)

// assertRingMatEqual compares matrices of ring elements by value of
// their coefficients.
func assertRingMatEqual(t *testing.T, expected, actual ring.Matrix, msg string) {
	t.Helper()
	assert.True(t, expected.DimsMatch(actual), msg)
	for i := range expected {
		for j := range expected[i] {
			for k := range expected[i][j] {
				assert.Zero(t, expected[i][j][k].Cmp(actual[i][j][k]),
					"%s: entry (%d, %d), coefficient %d mismatch", msg, i, j, k)
			}
		}
	}
}

func newTestRingLWE(t *testing.T) *gsw.RingLWE {
	q := big.NewInt(4096)
	nu := 3
	shift := 1 << nu
	sampler := sample.NewNormalRoundedMod(math.Sqrt(float64(shift)), q)

	s, err := gsw.NewRingLWE(q, nu, sampler)
	if err != nil {
		t.Fatalf("Error during scheme creation: %v", err)
	}

	return s
}

func TestRingLWE_GadgetMatrix(t *testing.T) {
	rq, err := ring.New(4, big.NewInt(16))
	assert.NoError(t, err)
	l := 4

	G := gsw.RingGadgetMatrix(rq, l)
	assert.True(t, G.CheckDims(2*l, 2), "ring gadget matrix should have dimensions 2l x 2")

	for i := 0; i < 2*l; i++ {
		for j := 0; j < 2; j++ {
			expected := big.NewInt(0)
			if j == 0 && i < l {
				expected = new(big.Int).Lsh(big.NewInt(1), uint(i))
			}
			if j == 1 && i >= l {
				expected = new(big.Int).Lsh(big.NewInt(1), uint(i-l))
			}
			assert.Zero(t, G[i][j][0].Cmp(expected),
				"gadget entry (%d, %d) should be the prescribed power of two", i, j)
			for k := 1; k < rq.N; k++ {
				assert.Zero(t, G[i][j][k].Sign(),
					"gadget entries should be constant polynomials")
			}
		}
	}
}

func TestRingLWE_DecompIdentity(t *testing.T) {
	s := newTestRingLWE(t)
	rq := s.Params.RQ
	l := s.Params.L

	for i := 0; i < 10; i++ {
		M, err := ring.NewRandomMatrix(rq, 2*l, 2, sample.NewUniform(s.Params.Q))
		assert.NoError(t, err)

		recomposed, err := M.Decomp(rq, l).Mul(rq, s.Params.G)
		assert.NoError(t, err)
		assertRingMatEqual(t, M, recomposed, "G⁻¹(M) * G should recompose M")
	}
}

func TestRingLWE_KeyGen(t *testing.T) {
	s := newTestRingLWE(t)

	PK, SK, err := s.KeyGen()
	assert.NoError(t, err)
	assert.True(t, PK.CheckDims(1, 2), "public key should be a 1 x 2 matrix")
	assert.Len(t, SK, 2, "secret key should have 2 elements")
	assert.Zero(t, SK[0][0].Cmp(big.NewInt(1)), "secret key should start with the constant 1")
}

func TestRingLWE_EncryptDecrypt(t *testing.T) {
	s := newTestRingLWE(t)

	PK, SK, err := s.KeyGen()
	assert.NoError(t, err)

	for _, bit := range []bool{true, false} {
		for i := 0; i < 100; i++ {
			CT, err := s.Encrypt(PK, bit)
			assert.NoError(t, err)
			assert.True(t, CT.CheckDims(2*s.Params.L, 2),
				"ciphertext should be a 2l x 2 matrix")

			dec, err := s.Decrypt(SK, CT)
			assert.NoError(t, err)
			assert.Equal(t, bit, dec, "decryption should recover the bit")
		}
	}
}

func TestRingLWE_And(t *testing.T) {
	s := newTestRingLWE(t)

	PK, SK, err := s.KeyGen()
	assert.NoError(t, err)

	for i := 0; i < 100; i++ {
		CT1, err := s.Encrypt(PK, true)
		assert.NoError(t, err)
		CT2, err := s.Encrypt(PK, true)
		assert.NoError(t, err)

		res, err := s.Evaluate([][]string{{"and"}}, []ring.Matrix{CT1, CT2})
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.True(t, res[0].CheckDims(2*s.Params.L, 2),
			"homomorphic multiplication should be closed on the ciphertext shape")

		dec, err := s.Decrypt(SK, res[0])
		assert.NoError(t, err)
		assert.True(t, dec, "1 and 1 should decrypt to true")
	}
}

func TestRingLWE_GateTruthTables(t *testing.T) {
	s := newTestRingLWE(t)

	PK, SK, err := s.KeyGen()
	assert.NoError(t, err)

	gates := map[string]func(x, y bool) bool{
		"and":  func(x, y bool) bool { return x && y },
		"nand": func(x, y bool) bool { return !(x && y) },
		"or":   func(x, y bool) bool { return x || y },
		"xor":  func(x, y bool) bool { return x != y },
	}

	for name, fn := range gates {
		for _, row := range [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}} {
			for i := 0; i < 25; i++ {
				CT1, err := s.Encrypt(PK, row[0])
				assert.NoError(t, err)
				CT2, err := s.Encrypt(PK, row[1])
				assert.NoError(t, err)

				res, err := s.Evaluate([][]string{{name}}, []ring.Matrix{CT1, CT2})
				assert.NoError(t, err)

				dec, err := s.Decrypt(SK, res[0])
				assert.NoError(t, err)
				assert.Equal(t, fn(row[0], row[1]), dec,
					"gate %s on input %v", name, row)
			}
		}
	}

	for _, bit := range []bool{false, true} {
		for i := 0; i < 25; i++ {
			CT, err := s.Encrypt(PK, bit)
			assert.NoError(t, err)

			res, err := s.Evaluate([][]string{{"not"}}, []ring.Matrix{CT})
			assert.NoError(t, err)
			dec, err := s.Decrypt(SK, res[0])
			assert.NoError(t, err)
			assert.Equal(t, !bit, dec, "not gate on input %v", bit)

			res, err = s.Evaluate([][]string{{"wire"}}, []ring.Matrix{CT})
			assert.NoError(t, err)
			dec, err = s.Decrypt(SK, res[0])
			assert.NoError(t, err)
			assert.Equal(t, bit, dec, "wire gate on input %v", bit)
		}
	}
}

func TestRingLWE_DepthComposition(t *testing.T) {
	s := newTestRingLWE(t)

	PK, SK, err := s.KeyGen()
	assert.NoError(t, err)

	for _, bits := range [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}} {
		CT1, err := s.Encrypt(PK, bits[0])
		assert.NoError(t, err)
		CT2, err := s.Encrypt(PK, bits[1])
		assert.NoError(t, err)

		res, err := s.Evaluate([][]string{{"wire", "wire"}, {"and"}}, []ring.Matrix{CT1, CT2})
		assert.NoError(t, err)

		dec, err := s.Decrypt(SK, res[0])
		assert.NoError(t, err)
		assert.Equal(t, bits[0] && bits[1], dec, "wires into and on input %v", bits)
	}
}

func TestRingLWE_MalformedInputs(t *testing.T) {
	s := newTestRingLWE(t)

	PK, SK, err := s.KeyGen()
	assert.NoError(t, err)
	CT, err := s.Encrypt(PK, true)
	assert.NoError(t, err)

	emptyMat := ring.Matrix{}
	emptyVec := ring.Vector{}

	_, err = s.Encrypt(emptyMat, true)
	assert.Error(t, err)

	_, err = s.Decrypt(emptyVec, CT)
	assert.Error(t, err)
	_, err = s.Decrypt(SK, emptyMat)
	assert.Error(t, err)

	_, err = s.Mul(CT, emptyMat)
	assert.Error(t, err)

	_, err = s.Evaluate([][]string{{"wire"}}, []ring.Matrix{emptyMat})
	assert.Error(t, err)

	_, err = s.Evaluate([][]string{{"nor"}}, []ring.Matrix{CT})
	assert.ErrorIs(t, err, circuit.ErrUnknownGate)

	_, err = s.Evaluate([][]string{{"and"}}, []ring.Matrix{CT})
	assert.ErrorIs(t, err, circuit.ErrShapeMismatch)
}

func TestRingLWE_Uninitialized(t *testing.T) {
	var s gsw.RingLWE

	_, _, err := s.KeyGen()
	assert.Error(t, err)
	_, err = s.Encrypt(ring.Matrix{}, true)
	assert.Error(t, err)
	_, err = s.Decrypt(ring.Vector{}, ring.Matrix{})
	assert.Error(t, err)
	_, err = s.Evaluate([][]string{{"wire"}}, nil)
	assert.Error(t, err)
}

func TestRingLWE_InvalidParams(t *testing.T) {
	sampler := sample.NewNormalRounded(1)

	_, err := gsw.NewRingLWE(big.NewInt(4096), -1, sampler)
	assert.Error(t, err, "negative ring exponent should be rejected")

	_, err = gsw.NewRingLWE(big.NewInt(1), 3, sampler)
	assert.Error(t, err, "modulus below 2 should be rejected")
}

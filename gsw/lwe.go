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

	"github.com/fentec-project/gofhe/circuit"
	"github.com/fentec-project/gofhe/data"
	gofhe "github.com/fentec-project/gofhe/internal"
	"github.com/fentec-project/gofhe/sample"
	"github.com/pkg/errors"
)

// LWEParams represents parameters for the LWE based GSW scheme.
type LWEParams struct {
	N int // Main security parameter of the scheme, matrix columns

	M int // Number of matrix rows, N * ⌈log₂(Q)⌉

	L int // Number of bits of the modulus, ⌈log₂(Q)⌉

	Q *big.Int // Modulus for keys and ciphertexts

	// Gadget matrix of dimensions M * N, the canonical encryption
	// of the plaintext 1
	G data.Matrix
}

// LWE represents a leveled fully homomorphic encryption scheme in the
// GSW family, instantiated from the LWE assumption, based on the
// construction by Gentry, Sahai, and Waters:
// "Homomorphic Encryption from Learning with Errors:
// Conceptually-Simpler, Asymptotically-Faster, Attribute-Based".
//
// Plaintexts are single bits and ciphertexts are M * N matrices over
// Z_q. The scheme is leveled: homomorphic evaluation is correct only
// up to a circuit depth admitted by the chosen parameters, since every
// multiplication adds a bounded amount of noise and decryption
// requires the accumulated noise to stay below Q/4.
type LWE struct {
	Params *LWEParams

	// Error distribution χ for keys and encryption randomness.
	// The reference choice samples ⌊N(0, √n)⌋ mod q.
	Sampler sample.Sampler
}

// NewLWE configures a new instance of the scheme with modulus q,
// dimension n, and error distribution given by sampler. The derived
// parameters and the gadget matrix are fixed at this point and
// immutable afterwards.
func NewLWE(q *big.Int, n int, sampler sample.Sampler) (*LWE, error) {
	if n < 2 {
		return nil, errors.New("dimension n must be at least 2")
	}
	if q.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.New("modulus q must be at least 2")
	}

	l := numBits(q)

	return &LWE{
		Params: &LWEParams{
			N: n,
			M: n * l,
			L: l,
			Q: new(big.Int).Set(q),
			G: GadgetMatrix(q, n),
		},
		Sampler: sampler,
	}, nil
}

// KeyGen generates a key pair for the scheme. The public key is a
// matrix PK = [b | A] of dimensions M * N, where A is uniform over
// Z_q and b = (-A*s + e) mod q for short secret s and error e drawn
// from the error distribution. The secret key is the vector
// (1, s₁, ..., s_(N-1)) of N elements.
//
// In case the keys could not be generated, it returns an error.
func (s *LWE) KeyGen() (data.Matrix, data.Vector, error) {
	if s.Params == nil {
		return nil, nil, gofhe.ErrUninitialized
	}

	A, err := data.NewRandomMatrix(s.Params.M, s.Params.N-1, sample.NewUniform(s.Params.Q))
	if err != nil {
		return nil, nil, errors.Wrap(err, "error generating key pair")
	}

	sec, err := data.NewRandomVector(s.Params.N-1, s.Sampler)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error generating key pair")
	}
	e, err := data.NewRandomVector(s.Params.M, s.Sampler)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error generating key pair")
	}

	// b = (-A*s + e) mod q
	As, _ := A.MulVec(sec)
	b := As.Neg().Add(e).Mod(s.Params.Q)

	// PK = [b | A]
	bCol, _ := data.NewMatrix([]data.Vector{b})
	PK, _ := bCol.Transpose().JoinCols(A)
	PK = PK.Mod(s.Params.Q)

	// SK = (1, s₁, ..., s_(N-1))
	SK := make(data.Vector, 0, s.Params.N)
	SK = append(SK, big.NewInt(1))
	SK = append(SK, sec...)

	return PK, SK, nil
}

// Encrypt encrypts a single bit using public key PK. The ciphertext
// is the matrix (T*PK + F + bit*G) mod q of dimensions M * N, with T
// and F filled by the error distribution. In case of a malformed
// public key, it returns an error.
func (s *LWE) Encrypt(PK data.Matrix, bit bool) (data.Matrix, error) {
	if s.Params == nil {
		return nil, gofhe.ErrUninitialized
	}
	if !PK.CheckDims(s.Params.M, s.Params.N) {
		return nil, gofhe.ErrMalformedPubKey
	}

	T, err := data.NewRandomMatrix(s.Params.M, s.Params.M, s.Sampler)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}
	F, err := data.NewRandomMatrix(s.Params.M, s.Params.N, s.Sampler)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}

	CT, _ := T.Mul(PK)
	CT, _ = CT.Add(F)
	if bit {
		CT, _ = CT.Add(s.Params.G)
	}

	return CT.Mod(s.Params.Q), nil
}

// Decrypt decrypts a ciphertext using secret key SK. It inspects the
// coordinate of CT * SK paired with the highest power of two in the
// first gadget column block and decodes 1 iff the residue lies in
// (Q/4, 3Q/4). In case of a malformed secret key or ciphertext, it
// returns an error.
//
// Excessive noise is not detected: a ciphertext evaluated beyond the
// depth the parameters admit decrypts to an incorrect bit.
func (s *LWE) Decrypt(SK data.Vector, CT data.Matrix) (bool, error) {
	if s.Params == nil {
		return false, gofhe.ErrUninitialized
	}
	if len(SK) != s.Params.N {
		return false, gofhe.ErrMalformedSecKey
	}
	if !CT.CheckDims(s.Params.M, s.Params.N) {
		return false, gofhe.ErrMalformedCipher
	}

	v, _ := CT.MulVec(SK)
	v = v.Mod(s.Params.Q)

	// v[L-1] carries bit * 2^(L-1) ≈ bit * Q/2 plus noise
	quarter := new(big.Int).Div(s.Params.Q, big.NewInt(4))
	threeQuarters := new(big.Int).Div(new(big.Int).Mul(s.Params.Q, big.NewInt(3)), big.NewInt(4))

	c := v[s.Params.L-1]

	return c.Cmp(quarter) == 1 && c.Cmp(threeQuarters) == -1, nil
}

// Mul homomorphically multiplies ciphertexts CT1 and CT2, returning
// the ciphertext (G⁻¹(CT1) * CT2) mod q of the same dimensions.
// Since G⁻¹(CT1) is a 0/1 matrix, the noise of the product is bounded
// by the noise of CT2 scaled by M plus the noise of CT1, so noise
// grows additively with each multiplication rather than
// multiplicatively. In case of malformed ciphertexts, it returns an
// error.
func (s *LWE) Mul(CT1, CT2 data.Matrix) (data.Matrix, error) {
	if s.Params == nil {
		return nil, gofhe.ErrUninitialized
	}
	if !CT1.CheckDims(s.Params.M, s.Params.N) || !CT2.CheckDims(s.Params.M, s.Params.N) {
		return nil, gofhe.ErrMalformedCipher
	}

	prod, _ := BitDecomp(CT1, s.Params.Q).Mul(CT2)

	return prod.Mod(s.Params.Q), nil
}

// Evaluate evaluates a binary circuit on the given ciphertexts and
// returns the ciphertexts output by the final depth. The circuit is
// given as a list of depths, each a list of gate names among NAND,
// AND, OR, XOR, NOT, and WIRE, matched case-insensitively. In case of
// a malformed circuit or malformed inputs, it returns an error.
func (s *LWE) Evaluate(binaryCircuit [][]string, inputs []data.Matrix) ([]data.Matrix, error) {
	if s.Params == nil {
		return nil, gofhe.ErrUninitialized
	}
	for _, CT := range inputs {
		if !CT.CheckDims(s.Params.M, s.Params.N) {
			return nil, gofhe.ErrMalformedCipher
		}
	}

	q := s.Params.Q
	c := circuit.New(circuit.Ops[data.Matrix]{
		One: s.Params.G,
		Add: func(a, b data.Matrix) data.Matrix {
			sum, _ := a.Add(b)
			return sum.Mod(q)
		},
		Sub: func(a, b data.Matrix) data.Matrix {
			sub, _ := a.Sub(b)
			return sub.Mod(q)
		},
		Mul: func(a, b data.Matrix) data.Matrix {
			prod, _ := s.Mul(a, b)
			return prod
		},
	})

	for _, depth := range binaryCircuit {
		if err := c.AddDepth(depth); err != nil {
			return nil, err
		}
	}

	return c.Evaluate(inputs)
}

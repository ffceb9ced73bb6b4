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
	gofhe "github.com/fentec-project/gofhe/internal"
	"github.com/fentec-project/gofhe/ring"
	"github.com/fentec-project/gofhe/sample"
	"github.com/pkg/errors"
)

// RingLWEParams represents parameters for the ring-LWE based GSW
// scheme.
type RingLWEParams struct {
	N int // Degree of the quotient ring, a power of 2

	L int // Number of bits of the modulus, ⌈log₂(Q)⌉

	Q *big.Int // Modulus for keys and ciphertexts

	// RQ is the quotient ring Z_q[x]/(x^N + 1) keys and ciphertexts
	// live in
	RQ *ring.Ring

	// Gadget matrix of dimensions 2L * 2, the canonical encryption
	// of the plaintext 1
	G ring.Matrix
}

// RingLWE represents a leveled fully homomorphic encryption scheme in
// the GSW family operating in the ring of polynomials
// R_q = Z_q[x]/(x^N + 1), which is much more compact than the LWE
// variant: ciphertexts are 2L * 2 matrices of ring elements.
type RingLWE struct {
	Params *RingLWEParams

	// Error distribution χ for key and encryption noise, applied
	// coefficient-wise.
	Sampler sample.Sampler
}

// NewRingLWE configures a new instance of the scheme with modulus q,
// ring exponent nu giving the ring degree N = 2^nu, and error
// distribution given by sampler. The ring and the gadget matrix are
// fixed at this point and immutable afterwards.
func NewRingLWE(q *big.Int, nu int, sampler sample.Sampler) (*RingLWE, error) {
	if nu < 0 {
		return nil, errors.New("ring exponent must be non-negative")
	}

	n := 1 << nu
	rq, err := ring.New(n, q)
	if err != nil {
		return nil, errors.Wrap(err, "cannot generate public parameters")
	}

	l := numBits(q)

	return &RingLWE{
		Params: &RingLWEParams{
			N:  n,
			L:  l,
			Q:  new(big.Int).Set(q),
			RQ: rq,
			G:  RingGadgetMatrix(rq, l),
		},
		Sampler: sampler,
	}, nil
}

// KeyGen generates a key pair for the scheme. The public key is the
// 1 * 2 matrix (b, a) with a uniform in R_q and b = -a*s + e for
// short ring elements s and e with coefficients drawn from the error
// distribution. The secret key is the pair (1, s).
//
// In case the keys could not be generated, it returns an error.
func (s *RingLWE) KeyGen() (ring.Matrix, ring.Vector, error) {
	if s.Params == nil {
		return nil, nil, gofhe.ErrUninitialized
	}
	rq := s.Params.RQ

	a, err := rq.NewUniformPoly()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error generating key pair")
	}
	sec, err := rq.NewRandomPoly(s.Sampler)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error generating key pair")
	}
	e, err := rq.NewRandomPoly(s.Sampler)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error generating key pair")
	}

	// b = -a*s + e
	as, _ := rq.Mul(a, sec)
	b := rq.Add(rq.Neg(as), e)

	PK := ring.Matrix{{b, a}}
	SK := ring.Vector{rq.NewConstant(big.NewInt(1)), sec}

	return PK, SK, nil
}

// Encrypt encrypts a single bit using public key PK. The ciphertext
// is the 2L * 2 matrix t*PK + f + bit*G over R_q, where t is a column
// of 2L ring elements with binary coefficients and f is filled by the
// error distribution. In case of a malformed public key, it returns
// an error.
//
// Sampling t binary rather than uniform in R_q keeps the noise term
// t*e small, which is what makes fresh ciphertexts decryptable.
func (s *RingLWE) Encrypt(PK ring.Matrix, bit bool) (ring.Matrix, error) {
	if s.Params == nil {
		return nil, gofhe.ErrUninitialized
	}
	if !PK.CheckDims(1, 2) {
		return nil, gofhe.ErrMalformedPubKey
	}
	rq := s.Params.RQ

	t, err := ring.NewRandomMatrix(rq, 2*s.Params.L, 1, sample.NewBit())
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}
	f, err := ring.NewRandomMatrix(rq, 2*s.Params.L, 2, s.Sampler)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}

	CT, _ := t.Mul(rq, PK)
	CT, _ = CT.Add(rq, f)
	if bit {
		CT, _ = CT.Add(rq, s.Params.G)
	}

	return CT, nil
}

// Decrypt decrypts a ciphertext using secret key SK. It takes the
// constant coefficient of row L-1 of CT * SK, the row paired with the
// highest power of two in the first gadget column, and decodes 1 iff
// it lies in [Q/4, 3Q/4]. In case of a malformed secret key or
// ciphertext, it returns an error.
func (s *RingLWE) Decrypt(SK ring.Vector, CT ring.Matrix) (bool, error) {
	if s.Params == nil {
		return false, gofhe.ErrUninitialized
	}
	if len(SK) != 2 {
		return false, gofhe.ErrMalformedSecKey
	}
	if !CT.CheckDims(2*s.Params.L, 2) {
		return false, gofhe.ErrMalformedCipher
	}

	v, err := CT.MulVec(s.Params.RQ, SK)
	if err != nil {
		return false, gofhe.ErrMalformedSecKey
	}

	quarter := new(big.Int).Div(s.Params.Q, big.NewInt(4))
	threeQuarters := new(big.Int).Div(new(big.Int).Mul(s.Params.Q, big.NewInt(3)), big.NewInt(4))

	c := v[s.Params.L-1][0]

	return c.Cmp(quarter) >= 0 && c.Cmp(threeQuarters) <= 0, nil
}

// Mul homomorphically multiplies ciphertexts CT1 and CT2, returning
// the 2L * 2 ciphertext G⁻¹(CT2) * CT1, where G⁻¹ is the columnwise
// polynomial bit decomposition. The decomposed matrix has binary
// coefficients, so as in the LWE variant the noise of the product
// grows additively per multiplication. In case of malformed
// ciphertexts, it returns an error.
func (s *RingLWE) Mul(CT1, CT2 ring.Matrix) (ring.Matrix, error) {
	if s.Params == nil {
		return nil, gofhe.ErrUninitialized
	}
	if !CT1.CheckDims(2*s.Params.L, 2) || !CT2.CheckDims(2*s.Params.L, 2) {
		return nil, gofhe.ErrMalformedCipher
	}
	rq := s.Params.RQ

	return CT2.Decomp(rq, s.Params.L).Mul(rq, CT1)
}

// Evaluate evaluates a binary circuit on the given ciphertexts and
// returns the ciphertexts output by the final depth. The circuit is
// given as a list of depths, each a list of gate names among NAND,
// AND, OR, XOR, NOT, and WIRE, matched case-insensitively. In case of
// a malformed circuit or malformed inputs, it returns an error.
func (s *RingLWE) Evaluate(binaryCircuit [][]string, inputs []ring.Matrix) ([]ring.Matrix, error) {
	if s.Params == nil {
		return nil, gofhe.ErrUninitialized
	}
	for _, CT := range inputs {
		if !CT.CheckDims(2*s.Params.L, 2) {
			return nil, gofhe.ErrMalformedCipher
		}
	}

	rq := s.Params.RQ
	c := circuit.New(circuit.Ops[ring.Matrix]{
		One: s.Params.G,
		Add: func(a, b ring.Matrix) ring.Matrix {
			sum, _ := a.Add(rq, b)
			return sum
		},
		Sub: func(a, b ring.Matrix) ring.Matrix {
			sub, _ := a.Sub(rq, b)
			return sub
		},
		Mul: func(a, b ring.Matrix) ring.Matrix {
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

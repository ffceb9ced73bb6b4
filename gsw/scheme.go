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

// Package gsw implements two leveled fully homomorphic encryption
// schemes in the GSW family: one from the LWE assumption with integer
// matrix ciphertexts, and one from the ring-LWE assumption with
// ciphertexts of polynomials in Z_q[x]/(x^N + 1). Both encrypt single
// bits and evaluate binary circuits of NAND, AND, OR, XOR, NOT, and
// WIRE gates, with noise growing additively per homomorphic
// multiplication thanks to the gadget decomposition.
package gsw

import (
	"github.com/fentec-project/gofhe/data"
	"github.com/fentec-project/gofhe/ring"
)

// Scheme is the common interface of the leveled FHE schemes in this
// package, parameterized by the public key, secret key, and
// ciphertext types.
type Scheme[PK, SK, CT any] interface {
	// KeyGen generates a key pair.
	KeyGen() (PK, SK, error)
	// Encrypt encrypts a single bit under the public key.
	Encrypt(pk PK, bit bool) (CT, error)
	// Decrypt recovers the bit held by a ciphertext.
	Decrypt(sk SK, ct CT) (bool, error)
	// Evaluate runs a binary circuit, given as depths of gate
	// names, over the input ciphertexts and returns the final
	// depth's outputs.
	Evaluate(binaryCircuit [][]string, inputs []CT) ([]CT, error)
}

var _ Scheme[data.Matrix, data.Vector, data.Matrix] = (*LWE)(nil)
var _ Scheme[ring.Matrix, ring.Vector, ring.Matrix] = (*RingLWE)(nil)

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

package circuit

// Ops collects the operations a binary gate needs on the ciphertext
// type T: the encryption One of the constant 1 (for FHE schemes in the
// GSW family this is the gadget matrix), addition, subtraction, and
// homomorphic multiplication. Add and Sub are noise-light; every Mul
// consumes one multiplicative level of the noise budget.
type Ops[T any] struct {
	One T
	Add func(T, T) T
	Sub func(T, T) T
	Mul func(T, T) T
}

// Gate is a binary gate evaluated over ciphertexts of type T.
// Evaluate assumes that exactly Arity inputs are given.
type Gate[T any] interface {
	Arity() int
	Evaluate(inputs []T) T
}

type wireGate[T any] struct{}

func (wireGate[T]) Arity() int { return 1 }

func (wireGate[T]) Evaluate(inputs []T) T {
	return inputs[0]
}

type notGate[T any] struct {
	ops Ops[T]
}

func (notGate[T]) Arity() int { return 1 }

func (g notGate[T]) Evaluate(inputs []T) T {
	return g.ops.Sub(g.ops.One, inputs[0])
}

type andGate[T any] struct {
	ops Ops[T]
}

func (andGate[T]) Arity() int { return 2 }

func (g andGate[T]) Evaluate(inputs []T) T {
	return g.ops.Mul(inputs[0], inputs[1])
}

type nandGate[T any] struct {
	ops Ops[T]
}

func (nandGate[T]) Arity() int { return 2 }

func (g nandGate[T]) Evaluate(inputs []T) T {
	return g.ops.Sub(g.ops.One, g.ops.Mul(inputs[0], inputs[1]))
}

// orGate computes x + y + x*y, which in characteristic 2 equals
// the disjunction: add acts as XOR and the product as AND.
type orGate[T any] struct {
	ops Ops[T]
}

func (orGate[T]) Arity() int { return 2 }

func (g orGate[T]) Evaluate(inputs []T) T {
	return g.ops.Add(g.ops.Add(g.ops.Mul(inputs[0], inputs[1]), inputs[0]), inputs[1])
}

type xorGate[T any] struct {
	ops Ops[T]
}

func (xorGate[T]) Arity() int { return 2 }

func (g xorGate[T]) Evaluate(inputs []T) T {
	return g.ops.Add(inputs[0], inputs[1])
}

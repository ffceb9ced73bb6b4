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

// Package circuit implements a binary circuit evaluated over an
// arbitrary ciphertext type.
//
// A circuit is an ordered sequence of depths, each an ordered sequence
// of gates. Evaluation feeds the outputs of one depth as inputs of the
// next: every gate consumes a contiguous slice of the preceding
// depth's outputs, sized by its arity, and contributes one output.
package circuit

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnknownGate   = errors.New("unrecognized gate")
	ErrEmptyCircuit  = errors.New("cannot evaluate an empty circuit")
	ErrShapeMismatch = errors.New("depths are not compatible")
)

// Circuit represents a binary circuit over ciphertexts of type T.
// Gate instances are created once at construction, bound to the
// scheme's operations, and shared by all depths.
type Circuit[T any] struct {
	gates  map[string]Gate[T]
	depths [][]Gate[T]
}

// New returns an empty circuit with the gate set bound to the
// provided operations.
func New[T any](ops Ops[T]) *Circuit[T] {
	return &Circuit[T]{
		gates: map[string]Gate[T]{
			"nand": nandGate[T]{ops},
			"and":  andGate[T]{ops},
			"or":   orGate[T]{ops},
			"xor":  xorGate[T]{ops},
			"not":  notGate[T]{ops},
			"wire": wireGate[T]{},
		},
	}
}

// AddDepth appends a depth given as a list of gate names.
// The names are matched case-insensitively; an unrecognized name
// fails with ErrUnknownGate. For every depth after the first, the
// total arity of its gates must equal the number of outputs (gates)
// of the preceding depth, otherwise AddDepth fails with
// ErrShapeMismatch and the circuit is left unchanged.
func (c *Circuit[T]) AddDepth(names []string) error {
	depth := make([]Gate[T], len(names))
	for i, name := range names {
		g, ok := c.gates[strings.ToLower(name)]
		if !ok {
			return errors.Wrapf(ErrUnknownGate, "gate %q", name)
		}
		depth[i] = g
	}

	if len(c.depths) > 0 {
		prevOutputs := len(c.depths[len(c.depths)-1])
		if arity(depth) != prevOutputs {
			return errors.Wrapf(ErrShapeMismatch,
				"depth %d takes %d inputs, previous depth has %d outputs",
				len(c.depths), arity(depth), prevOutputs)
		}
	}

	c.depths = append(c.depths, depth)

	return nil
}

// Arity returns the number of inputs the circuit takes, i.e. the
// total arity of its first depth. An empty circuit has arity 0.
func (c *Circuit[T]) Arity() int {
	if len(c.depths) == 0 {
		return 0
	}

	return arity(c.depths[0])
}

// Evaluate runs the circuit on the given inputs and returns the
// outputs of the final depth. It fails with ErrEmptyCircuit if no
// depth was added and with ErrShapeMismatch if the number of inputs
// differs from the circuit's arity.
func (c *Circuit[T]) Evaluate(inputs []T) ([]T, error) {
	if len(c.depths) == 0 {
		return nil, ErrEmptyCircuit
	}
	if len(inputs) != c.Arity() {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"circuit takes %d inputs, got %d", c.Arity(), len(inputs))
	}

	values := inputs
	for _, depth := range c.depths {
		values = evaluateDepth(depth, values)
	}

	return values, nil
}

// arity returns the total number of inputs of the gates in a depth.
func arity[T any](depth []Gate[T]) int {
	total := 0
	for _, g := range depth {
		total += g.Arity()
	}

	return total
}

// evaluateDepth applies every gate of a depth to its slice of the
// current values, in gate order.
func evaluateDepth[T any](depth []Gate[T], values []T) []T {
	res := make([]T, 0, len(depth))

	at := 0
	for _, g := range depth {
		res = append(res, g.Evaluate(values[at:at+g.Arity()]))
		at += g.Arity()
	}

	return res
}

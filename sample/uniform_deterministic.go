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

package sample

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/salsa20"
)

// UniformDet samples deterministic values from the interval [0, max).
// The key determines the pseudo-random stream the values are read
// from, so two samplers built with the same key produce the same
// sequence.
type UniformDet struct {
	key     *[32]byte
	max     *big.Int
	maxBits int
	counter uint64
}

// NewUniformDet returns an instance of the UniformDet sampler.
// It accepts an upper bound on the sampled values and the key of
// the pseudo-random generator.
func NewUniformDet(max *big.Int, key *[32]byte) *UniformDet {
	maxBits := new(big.Int).Sub(max, big.NewInt(1)).BitLen()

	return &UniformDet{
		key:     key,
		max:     max,
		maxBits: maxBits,
	}
}

// Sample samples a deterministic value from the interval [0, max),
// advancing the underlying pseudo-random stream. Out-of-range blocks
// of the stream are rejected.
func (u *UniformDet) Sample() (*big.Int, error) {
	maxBytes := (u.maxBits + 7) / 8
	over := uint((8 * maxBytes) - u.maxBits)

	nonce := make([]byte, 8)
	out := make([]byte, maxBytes)
	for {
		binary.LittleEndian.PutUint64(nonce, u.counter)
		u.counter++

		in := make([]byte, maxBytes)
		salsa20.XORKeyStream(out, in, nonce, u.key)
		out[0] = out[0] >> over

		ret := new(big.Int).SetBytes(out)
		if ret.Cmp(u.max) < 0 {
			return ret, nil
		}
	}
}

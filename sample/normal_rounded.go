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
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/big"
)

// NormalRounded samples random values as ⌊x⌋ for x drawn from the
// continuous normal (Gaussian) distribution with mean 0 and standard
// deviation sigma. If a modulus is set, samples are reduced to [0, q),
// so negative draws land on residues close to q.
//
// This is the usual error distribution for LWE-style encryption, where
// sigma is commonly chosen as the square root of the lattice dimension.
type NormalRounded struct {
	sigma float64
	q     *big.Int
}

// NewNormalRounded returns an instance of the NormalRounded sampler
// producing unreduced (possibly negative) values.
func NewNormalRounded(sigma float64) *NormalRounded {
	return &NormalRounded{
		sigma: sigma,
	}
}

// NewNormalRoundedMod returns an instance of the NormalRounded sampler
// with samples reduced modulo q.
func NewNormalRoundedMod(sigma float64, q *big.Int) *NormalRounded {
	return &NormalRounded{
		sigma: sigma,
		q:     q,
	}
}

// Sample samples a rounded normal value via the Box-Muller transform
// over uniform values read from crypto/rand.
func (n *NormalRounded) Sample() (*big.Int, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	// uniform values in (0, 1], so the logarithm below is finite
	u1 := (float64(binary.LittleEndian.Uint64(buf[:8])>>11) + 1) / (1 << 53)
	u2 := (float64(binary.LittleEndian.Uint64(buf[8:])>>11) + 1) / (1 << 53)

	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

	res := big.NewInt(int64(math.Floor(n.sigma * z)))
	if n.q != nil {
		res.Mod(res, n.q)
	}

	return res, nil
}

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

	"github.com/zeebo/blake3"
)

// KeyedPRNG is a cryptographically secure pseudo-random generator
// keyed by a byte string: two instances with the same key produce the
// same stream. It implements io.Reader and can back a UniformSource
// sampler when sampling must be reproducible.
type KeyedPRNG struct {
	key []byte
	xof *blake3.Digest
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil in which case a random key
// is generated.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	if key == nil {
		key = make([]byte, 64)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}

	h := blake3.New()
	if _, err := h.Write(key); err != nil {
		return nil, err
	}

	return &KeyedPRNG{
		key: key,
		xof: h.Digest(),
	}, nil
}

// Key returns a copy of the key used to seed the PRNG.
func (prng *KeyedPRNG) Key() []byte {
	key := make([]byte, len(prng.key))
	copy(key, prng.key)

	return key
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}

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

package sample_test

import (
	"math/big"
	"testing"

	"github.com/fentec-project/gofhe/sample"
	"github.com/stretchr/testify/assert"
)

func TestUniform(t *testing.T) {
	max := big.NewInt(100)
	sampler := sample.NewUniform(max)

	for i := 0; i < 1000; i++ {
		v, err := sampler.Sample()
		assert.NoError(t, err)
		assert.True(t, v.Sign() >= 0, "samples should be non-negative")
		assert.True(t, v.Cmp(max) < 0, "samples should be below the bound")
	}
}

func TestUniformRange(t *testing.T) {
	min := big.NewInt(-10)
	max := big.NewInt(10)
	sampler := sample.NewUniformRange(min, max)

	for i := 0; i < 1000; i++ {
		v, err := sampler.Sample()
		assert.NoError(t, err)
		assert.True(t, v.Cmp(min) >= 0, "samples should be at least the lower bound")
		assert.True(t, v.Cmp(max) < 0, "samples should be below the upper bound")
	}
}

func TestBit(t *testing.T) {
	sampler := sample.NewBit()

	seen := make(map[int64]int)
	for i := 0; i < 1000; i++ {
		v, err := sampler.Sample()
		assert.NoError(t, err)
		seen[v.Int64()]++
	}

	assert.Len(t, seen, 2, "bit sampler should produce both values")
}

func TestUniformDet(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i * 7)
	}

	s1 := sample.NewUniformDet(big.NewInt(1000), &key)
	s2 := sample.NewUniformDet(big.NewInt(1000), &key)

	for i := 0; i < 100; i++ {
		v1, err := s1.Sample()
		assert.NoError(t, err)
		v2, err := s2.Sample()
		assert.NoError(t, err)
		assert.Zero(t, v1.Cmp(v2), "same key should reproduce the same sequence")
		assert.True(t, v1.Cmp(big.NewInt(1000)) < 0, "samples should be below the bound")
	}
}

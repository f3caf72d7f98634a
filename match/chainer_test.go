// Copyright 2024 the go-textmatch authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-textmatch.v0/plan"
)

func TestChainCarriesSurvivingPairsThroughEachBlock(t *testing.T) {
	require := require.New(t)
	data1, data2 := matcherFixture(t)

	blocks := []plan.ResolvedBlock{
		literalBlock(0, "_data1_col0", "_data2_col0"),
		literalBlock(1, "_data1_col1", "_data2_col1"),
	}

	result, err := Chain(context.Background(), blocks, data1, data2, nil, nil, nil, nil)
	require.NoError(err)
	require.Equal(1, result.Len())
	require.True(result.Schema().Has("_block0_degree"))
	require.True(result.Schema().Has("_block1_degree"))
}

func TestChainStopsEarlyOnEmptyIntermediateResult(t *testing.T) {
	require := require.New(t)
	data1, data2 := matcherFixture(t)

	blocks := []plan.ResolvedBlock{
		literalBlock(0, "_data1_col1", "_data2_col0"),
		literalBlock(1, "_data1_col0", "_data2_col1"),
	}

	result, err := Chain(context.Background(), blocks, data1, data2, nil, nil, nil, nil)
	require.NoError(err)
	require.Equal(0, result.Len())
}

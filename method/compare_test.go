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

package method

import (
	"testing"

	"github.com/stretchr/testify/require"

	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

func pairwiseFixture() (*gotmsql.Table, *gotmsql.Table, map[string]string, map[string]string) {
	data1 := gotmsql.NewTableFromColumns(
		[]string{"_data1_col0", IgnorantColumn(0, "_data1_col0")},
		map[string][]string{
			"_data1_col0":                    {"Will Sheikhspere"},
			IgnorantColumn(0, "_data1_col0"): {"Will Sheikhspere"},
		},
	)
	data2 := gotmsql.NewTableFromColumns(
		[]string{"_data2_col0", IgnorantColumn(0, "_data2_col0")},
		map[string][]string{
			"_data2_col0":                    {"Will Sheikhspere", "Someone Else"},
			IgnorantColumn(0, "_data2_col0"): {"Will Sheikhspere", "Someone Else"},
		},
	)
	return data1, data2, map[string]string{"name": "_data1_col0"}, map[string]string{"name": "_data2_col0"}
}

func TestDamerauLevenshteinKeepsIdenticalStringsAtFullDegree(t *testing.T) {
	require := require.New(t)
	data1, data2, fieldmap1, fieldmap2 := pairwiseFixture()

	joined := DamerauLevenshtein(data1, data2, fieldmap1, fieldmap2, []string{"name"}, 0.6, 0, nil)
	require.Equal(1, joined.Len())
	require.Equal("1", *joined.Column(DegreeColumn(0))[0])
}

func TestDamerauLevenshteinDropsBelowThreshold(t *testing.T) {
	require := require.New(t)
	data1, data2, fieldmap1, fieldmap2 := pairwiseFixture()

	joined := DamerauLevenshtein(data1, data2, fieldmap1, fieldmap2, []string{"name"}, 0.99, 0, nil)
	require.Equal(1, joined.Len())
	require.Equal("Will Sheikhspere", *joined.Column("_data2_col0")[0])
}

func TestJaroWinklerKeepsIdenticalStringsAtFullDegree(t *testing.T) {
	require := require.New(t)
	data1, data2, fieldmap1, fieldmap2 := pairwiseFixture()

	joined := JaroWinkler(data1, data2, fieldmap1, fieldmap2, []string{"name"}, 0.6, 0, nil)
	require.Equal(1, joined.Len())
	require.Equal("1", *joined.Column(DegreeColumn(0))[0])
}

func TestRatcliffObershelpKeepsIdenticalStringsAtFullDegree(t *testing.T) {
	require := require.New(t)
	data1, data2, fieldmap1, fieldmap2 := pairwiseFixture()

	joined := RatcliffObershelp(data1, data2, fieldmap1, fieldmap2, []string{"name"}, 0.6, 0, nil)
	require.Equal(1, joined.Len())
	require.Equal("1", *joined.Column(DegreeColumn(0))[0])
}

func TestCompareCarriesUnmatchedColumnsFromBothSides(t *testing.T) {
	require := require.New(t)
	data1, data2, fieldmap1, fieldmap2 := pairwiseFixture()
	data2 = data2.WithColumn("death", gotmsql.StringType, data2.Column("_data2_col0"))

	joined := DamerauLevenshtein(data1, data2, fieldmap1, fieldmap2, []string{"name"}, 0.99, 0, nil)
	require.True(joined.Schema().Has("death"))
}

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

package output

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-textmatch.v0/plan"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

func supplementFixture(t *testing.T) (final, data1, data2 *gotmsql.Table) {
	t.Helper()
	raw1 := gotmsql.NewTableFromColumns([]string{"name"}, map[string][]string{"name": {"WS", "CM"}})
	raw2 := gotmsql.NewTableFromColumns([]string{"person"}, map[string][]string{"person": {"WS", "AH"}})
	data1, _, err := gotmsql.Disambiguate(raw1, "data1")
	require.NoError(t, err)
	data2, _, err = gotmsql.Disambiguate(raw2, "data2")
	require.NoError(t, err)

	final = gotmsql.NewTableFromColumns(
		[]string{"_data1_col0", "_data1_id", "_data2_col0", "_data2_id"},
		map[string][]string{
			"_data1_col0": {"WS"}, "_data1_id": {"0"},
			"_data2_col0": {"WS"}, "_data2_id": {"0"},
		},
	)
	return final, data1, data2
}

func TestSupplementInnerLeavesTableUntouched(t *testing.T) {
	require := require.New(t)
	final, data1, data2 := supplementFixture(t)

	result := Supplement(final, data1, data2, plan.Inner)
	require.Equal(1, result.Len())
}

func TestSupplementLeftOuterAddsUnmatchedSide1Rows(t *testing.T) {
	require := require.New(t)
	final, data1, data2 := supplementFixture(t)

	result := Supplement(final, data1, data2, plan.LeftOuter)
	require.Equal(2, result.Len())
	require.Equal([]string{"WS", "CM"}, result.Strings("_data1_col0"))
}

func TestSupplementFullOuterAddsUnmatchedRowsFromBothSides(t *testing.T) {
	require := require.New(t)
	final, data1, data2 := supplementFixture(t)

	result := Supplement(final, data1, data2, plan.FullOuter)
	require.Equal(3, result.Len())
}

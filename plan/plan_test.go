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

package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

func columnmaps(t *testing.T) (gotmsql.ColumnMap, gotmsql.ColumnMap) {
	t.Helper()
	table1 := gotmsql.NewTableFromColumns([]string{"surname", "forename"}, map[string][]string{
		"surname": {"Sheikhspere"}, "forename": {"Will"},
	})
	table2 := gotmsql.NewTableFromColumns([]string{"last_name", "first_name"}, map[string][]string{
		"last_name": {"Sheikhspere"}, "first_name": {"Will"},
	})
	_, columnmap1, err := gotmsql.Disambiguate(table1, "data1")
	require.NoError(t, err)
	_, columnmap2, err := gotmsql.Disambiguate(table2, "data2")
	require.NoError(t, err)
	return columnmap1, columnmap2
}

func TestBuildDefaultsToSingleLiteralBlockOverAllFields(t *testing.T) {
	require := require.New(t)
	columnmap1, columnmap2 := columnmaps(t)

	blocks, err := Build(Plan{}, columnmap1, columnmap2)
	require.NoError(err)
	require.Len(blocks, 1)
	require.Equal(Literal, blocks[0].Method)
	require.Equal(0.6, blocks[0].Threshold)
	require.ElementsMatch([]string{"surname", "forename"}, blocks[0].FieldOrder)
}

func TestBuildBroadcastsShorterListsByRepeatingLastElement(t *testing.T) {
	require := require.New(t)
	columnmap1, columnmap2 := columnmaps(t)

	blocks, err := Build(Plan{
		Fields1: [][]string{{"surname"}, {"forename"}},
		Fields2: [][]string{{"last_name"}, {"first_name"}},
		Methods: []Method{JaroWinkler},
	}, columnmap1, columnmap2)
	require.NoError(err)
	require.Len(blocks, 2)
	require.Equal(JaroWinkler, blocks[0].Method)
	require.Equal(JaroWinkler, blocks[1].Method)
}

func TestBuildRejectsMismatchedFieldCounts(t *testing.T) {
	require := require.New(t)
	columnmap1, columnmap2 := columnmaps(t)

	_, err := Build(Plan{
		Fields1: [][]string{{"surname", "forename"}},
		Fields2: [][]string{{"last_name"}},
	}, columnmap1, columnmap2)
	require.True(ErrFieldCountMismatch.Is(err))
}

func TestBuildRejectsUnknownField(t *testing.T) {
	require := require.New(t)
	columnmap1, columnmap2 := columnmaps(t)

	_, err := Build(Plan{
		Fields1: [][]string{{"surnam"}},
		Fields2: [][]string{{"last_name"}},
	}, columnmap1, columnmap2)
	require.True(ErrUnknownField.Is(err))
}

func TestBuildRejectsUnknownMethod(t *testing.T) {
	require := require.New(t)
	columnmap1, columnmap2 := columnmaps(t)

	_, err := Build(Plan{Methods: []Method{"jaro"}}, columnmap1, columnmap2)
	require.True(ErrUnknownMethod.Is(err))
}

func TestBuildRejectsThresholdOutOfRange(t *testing.T) {
	require := require.New(t)
	columnmap1, columnmap2 := columnmaps(t)

	_, err := Build(Plan{Thresholds: []float64{1.5}}, columnmap1, columnmap2)
	require.True(ErrThresholdOutOfRange.Is(err))
}

func TestBuildResolvesFieldMap2BySide1Key(t *testing.T) {
	require := require.New(t)
	columnmap1, columnmap2 := columnmaps(t)

	blocks, err := Build(Plan{
		Fields1: [][]string{{"surname"}},
		Fields2: [][]string{{"last_name"}},
	}, columnmap1, columnmap2)
	require.NoError(err)

	handle2, ok := blocks[0].FieldMap2["surname"]
	require.True(ok)
	name, ok := columnmap2.Name(handle2)
	require.True(ok)
	require.Equal("last_name", name)
}

func TestValidJoinAcceptsOnlyKnownNames(t *testing.T) {
	require := require.New(t)
	require.True(ValidJoin(Inner))
	require.True(ValidJoin(FullOuter))
	require.False(ValidJoin("innr"))
}

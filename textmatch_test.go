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

package textmatch_test

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/require"

	textmatch "gopkg.in/src-d/go-textmatch.v0"
	"gopkg.in/src-d/go-textmatch.v0/plan"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

func TestRunDefaultsMatchesOnSharedLiteralField(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"name": {"WS", "CM"}})
	source2 := gotmsql.FromDict(map[string][]string{"person": {"AH", "WS"}})

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{})
	require.NoError(err)
	require.EqualValues(1, result.NumRows())
	require.Equal([]string{"WS"}, stringColumn(t, result, "name"))
	require.Equal([]string{"WS"}, stringColumn(t, result, "person"))
}

func TestRunDuplicateHeaderDisambiguatesOutputColumns(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"name": {"WS"}})
	source2 := gotmsql.FromDict(map[string][]string{"name": {"WS"}})

	var warnings []string
	alert := func(message string, importance string) {
		if importance == "warning" {
			warnings = append(warnings, message)
		}
	}

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{Alert: alert})
	require.NoError(err)
	names := fieldNames(result)
	require.Contains(names, "name_1")
	require.Contains(names, "name_2")
	require.NotEmpty(warnings)
}

func TestRunIgnoreCaseMatchesAcrossCasing(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"name": {"AH", "CM"}})
	source2 := gotmsql.FromDict(map[string][]string{"person": {"ws", "cm"}})

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{
		Plan: plan.Plan{Ignores: [][]string{{"case"}}},
	})
	require.NoError(err)
	require.EqualValues(1, result.NumRows())
	require.Equal([]string{"CM"}, stringColumn(t, result, "name"))
	require.Equal([]string{"cm"}, stringColumn(t, result, "person"))
}

func TestRunIgnoreNonlatinAndWordsOrderMatchesReorderedAccentedNames(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"name": {"Mary Árden"}})
	source2 := gotmsql.FromDict(map[string][]string{"person": {"Arden, Mary"}})

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{
		Plan: plan.Plan{Ignores: [][]string{{"nonlatin", "nonalpha", "words-order"}}},
	})
	require.NoError(err)
	require.EqualValues(1, result.NumRows())
}

func TestRunLevenshteinCrossMatchesBothPairsAtDefaultThreshold(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"name": {"WS", "AH"}})
	source2 := gotmsql.FromDict(map[string][]string{"person": {"Ann Athawei", "Will Sheikhspere"}})

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{
		Plan: plan.Plan{Methods: []plan.Method{plan.DamerauLevenshtein}},
	})
	require.NoError(err)
	require.EqualValues(2, result.NumRows())

	names := stringColumn(t, result, "name")
	persons := stringColumn(t, result, "person")
	pairs := map[string]string{}
	for i := range names {
		pairs[names[i]] = persons[i]
	}
	require.Equal("Will Sheikhspere", pairs["WS"])
	require.Equal("Ann Athawei", pairs["AH"])
}

func TestRunBlockedPlanFiltersToIntersection(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{
		"surname":  {"Sheikhspere", "Sheikhspere"},
		"forename": {"Will", "William"},
	})
	source2 := gotmsql.FromDict(map[string][]string{
		"last_name":  {"Sheikhspere"},
		"first_name": {"Will"},
	})

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{
		Plan: plan.Plan{
			Fields1: [][]string{{"surname"}, {"forename"}},
			Fields2: [][]string{{"last_name"}, {"first_name"}},
		},
	})
	require.NoError(err)
	require.EqualValues(1, result.NumRows())
	require.Equal([]string{"Will"}, stringColumn(t, result, "forename"))
}

func TestRunOutputSpecSelectsRequestedColumnsInOrder(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"name": {"WS"}})
	source2 := gotmsql.FromDict(map[string][]string{"person": {"Will Sheikhspere"}, "death": {"1616"}})

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{
		Plan: plan.Plan{
			Fields1: [][]string{{"name"}},
			Fields2: [][]string{{"person"}},
			Methods: []plan.Method{plan.DamerauLevenshtein},
		},
		Output: []string{"1*", "2.death", "degree"},
	})
	require.NoError(err)
	require.Equal([]string{"name", "death", "degree"}, fieldNames(result))
}

func TestRunEmptyIntermediateResultTerminatesChainWithSchema(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"surname": {"Sheikhspere"}, "forename": {"Will"}})
	source2 := gotmsql.FromDict(map[string][]string{"last_name": {"Sheikhspere"}, "first_name": {"Nobody"}})

	result, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{
		Plan: plan.Plan{
			Fields1: [][]string{{"surname"}, {"forename"}},
			Fields2: [][]string{{"last_name"}, {"first_name"}},
		},
	})
	require.NoError(err)
	require.EqualValues(0, result.NumRows())
}

func TestRunUnknownJoinSuggestsClosestName(t *testing.T) {
	require := require.New(t)
	source1 := gotmsql.FromDict(map[string][]string{"name": {"WS"}})
	source2 := gotmsql.FromDict(map[string][]string{"name": {"WS"}})

	_, err := textmatch.Run(context.Background(), source1, source2, textmatch.Options{Join: "innr"})
	require.Error(err)
	require.Contains(err.Error(), "maybe you mean inner?")
}

func fieldNames(table arrow.Table) []string {
	schema := table.Schema()
	names := make([]string, schema.NumFields())
	for i := range names {
		names[i] = schema.Field(i).Name
	}
	return names
}

func stringColumn(t *testing.T, table arrow.Table, name string) []string {
	t.Helper()
	schema := table.Schema()
	idx := -1
	for i := 0; i < schema.NumFields(); i++ {
		if schema.Field(i).Name == name {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0, "%s: column not present", name)

	column := table.Column(idx)
	out := make([]string, 0, table.NumRows())
	for _, chunk := range column.Data().Chunks() {
		values, ok := chunk.(interface{ Value(int) string })
		require.True(t, ok, "expected a string-valued arrow array")
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				out = append(out, "")
				continue
			}
			out = append(out, values.Value(i))
		}
	}
	return out
}

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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-textmatch.v0/linker"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

type fakeLinker struct {
	trainCalls int
	trainErr   error
	joined     []linker.Joined
}

func (f *fakeLinker) PrepareTraining(records1, records2 []linker.Record) {}
func (f *fakeLinker) UncertainPairs() []linker.Pair                     { return nil }
func (f *fakeLinker) MarkPairs(labels []linker.Label)                   {}
func (f *fakeLinker) Train() error {
	f.trainCalls++
	return f.trainErr
}
func (f *fakeLinker) Join(records1, records2 []linker.Record, threshold float64) []linker.Joined {
	return f.joined
}

func noLabeler(ctx context.Context, pair linker.Pair) (linker.Response, error) {
	return linker.ResponseFinished, nil
}

func TestBilenkoMaterializesLinkerJoinResults(t *testing.T) {
	require := require.New(t)

	data1 := gotmsql.NewTableFromColumns([]string{"_data1_col0", "_data1_id"}, map[string][]string{
		"_data1_col0": {"Will Sheikhspere"},
		"_data1_id":   {"0"},
	})
	data2 := gotmsql.NewTableFromColumns([]string{"_data2_col0", "_data2_id"}, map[string][]string{
		"_data2_col0": {"Will Sheikhspere"},
		"_data2_id":   {"0"},
	})
	data1 = data1.WithColumn(IgnorantColumn(0, "_data1_col0"), gotmsql.StringType, data1.Column("_data1_col0"))
	data2 = data2.WithColumn(IgnorantColumn(0, "_data2_col0"), gotmsql.StringType, data2.Column("_data2_col0"))

	fieldmap1 := map[string]string{"name": "_data1_col0"}
	fieldmap2 := map[string]string{"name": "_data2_col0"}

	lnk := &fakeLinker{joined: []linker.Joined{{ID1: "0", ID2: "0", Degree: 0.9}}}

	joined, err := Bilenko(context.Background(), data1, data2, fieldmap1, fieldmap2, []string{"name"}, 0.6, 0, nil, nil, noLabeler, lnk)
	require.NoError(err)
	require.Equal(1, joined.Len())
	require.Equal("0.9", *joined.Column(DegreeColumn(0))[0])
}

func TestBilenkoRetrainsOnInsufficientTrainingAndAlerts(t *testing.T) {
	require := require.New(t)

	data1 := gotmsql.NewTableFromColumns([]string{"_data1_col0", "_data1_id"}, map[string][]string{
		"_data1_col0": {"x"}, "_data1_id": {"0"},
	})
	data2 := gotmsql.NewTableFromColumns([]string{"_data2_col0", "_data2_id"}, map[string][]string{
		"_data2_col0": {"x"}, "_data2_id": {"0"},
	})
	data1 = data1.WithColumn(IgnorantColumn(0, "_data1_col0"), gotmsql.StringType, data1.Column("_data1_col0"))
	data2 = data2.WithColumn(IgnorantColumn(0, "_data2_col0"), gotmsql.StringType, data2.Column("_data2_col0"))

	fieldmap1 := map[string]string{"name": "_data1_col0"}
	fieldmap2 := map[string]string{"name": "_data2_col0"}

	attempts := 0
	lnk := &fakeLinker{trainErr: linker.ErrInsufficientTraining.New()}
	var warnings []string
	alert := func(message string, importance string) {
		attempts++
		if importance == "warning" {
			warnings = append(warnings, message)
		}
		lnk.trainErr = nil
	}

	_, err := Bilenko(context.Background(), data1, data2, fieldmap1, fieldmap2, []string{"name"}, 0.6, 0, nil, alert, noLabeler, lnk)
	require.NoError(err)
	require.NotEmpty(warnings)
}

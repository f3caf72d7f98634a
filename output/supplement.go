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

// Package output supplements the final pair table with unmatched rows
// per the requested join mode, then formats it down to the user-visible
// columns (spec §4.6, §4.7).
package output

import (
	"gopkg.in/src-d/go-textmatch.v0/plan"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// Supplement adds unmatched rows from either original table according to
// join (spec §4.6). inner leaves final untouched. An unmatched row gets
// NULL for every column the other side (and the degree columns)
// contributed -- exactly what gotmsql.Concat's diagonal union already
// does for a table missing those columns entirely, so unmatched rows are
// built as bare single-side tables and concatenated in.
func Supplement(final, data1, data2 *gotmsql.Table, join plan.Join) *gotmsql.Table {
	result := final
	if join == plan.LeftOuter || join == plan.FullOuter {
		result = gotmsql.Concat(result, unmatchedRows(final, data1, "_data1_id"))
	}
	if join == plan.RightOuter || join == plan.FullOuter {
		result = gotmsql.Concat(result, unmatchedRows(final, data2, "_data2_id"))
	}
	return result
}

func unmatchedRows(final, data *gotmsql.Table, idColumn string) *gotmsql.Table {
	matched := make(map[string]bool, final.Len())
	if final.Schema().Has(idColumn) {
		for _, id := range final.Strings(idColumn) {
			matched[id] = true
		}
	}
	cells := data.Column(idColumn)
	return gotmsql.Filter(data, func(row int) bool {
		c := cells[row]
		return c == nil || !matched[*c]
	})
}

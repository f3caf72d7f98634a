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
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"

	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// doubleMetaphoneCell splits a cell on spaces, computes the Double
// Metaphone (primary, secondary) code of each word, and reassembles two
// strings -- the space-joined primaries and the space-joined
// secondaries -- matching spec §4.3.
func doubleMetaphoneCell(value string) (primary, secondary string) {
	words := strings.Split(value, " ")
	primaries := make([]string, len(words))
	secondaries := make([]string, len(words))
	for i, word := range words {
		p, s := matchr.DoubleMetaphone(word)
		primaries[i] = p
		secondaries[i] = s
	}
	return strings.Join(primaries, " "), strings.Join(secondaries, " ")
}

// DoubleMetaphone joins data1 and data2 on Double Metaphone codes of
// their ignorant fields. Each cell yields a primary and secondary code;
// the method runs all four cross joins (1x1, 1x2, 2x1, 2x2), diagonally
// concatenates them, and deduplicates by (rid1, rid2) (spec §4.3).
func DoubleMetaphone(data1, data2 *gotmsql.Table, fieldmap1, fieldmap2 map[string]string, fieldOrder []string, index int, ticker Ticker) *gotmsql.Table {
	var tick func()
	if ticker != nil {
		tick = ticker(6)
	}
	step := func() {
		if tick != nil {
			tick()
		}
	}

	primary1 := make([]string, len(fieldOrder))
	secondary1 := make([]string, len(fieldOrder))
	primary2 := make([]string, len(fieldOrder))
	secondary2 := make([]string, len(fieldOrder))
	for i, field := range fieldOrder {
		p1, s1 := fmt.Sprintf("_block%d_%d_primary1", index, i), fmt.Sprintf("_block%d_%d_secondary1", index, i)
		p2, s2 := fmt.Sprintf("_block%d_%d_primary2", index, i), fmt.Sprintf("_block%d_%d_secondary2", index, i)
		primary1[i], secondary1[i], primary2[i], secondary2[i] = p1, s1, p2, s2
		data1 = metaphoneColumns(data1, IgnorantColumn(index, fieldmap1[field]), p1, s1)
		data2 = metaphoneColumns(data2, IgnorantColumn(index, fieldmap2[field]), p2, s2)
	}
	step()

	joined11 := gotmsql.InnerJoin(data2, data1, primary2, primary1)
	step()
	joined12 := gotmsql.InnerJoin(data2, data1, secondary2, primary1)
	step()
	joined21 := gotmsql.InnerJoin(data2, data1, primary2, secondary1)
	step()
	joined22 := gotmsql.InnerJoin(data2, data1, secondary2, secondary1)
	step()

	joined := gotmsql.Concat(joined11, joined12, joined21, joined22)
	joined = gotmsql.Unique(joined, []string{"_data1_id", "_data2_id"})
	joined = withConstantDegree(joined, index, "1.0")
	step()
	return joined
}

func metaphoneColumns(data *gotmsql.Table, ignorant, primaryCol, secondaryCol string) *gotmsql.Table {
	cells := data.Column(ignorant)
	primaries := make([]*string, len(cells))
	secondaries := make([]*string, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		p, s := doubleMetaphoneCell(*c)
		primaries[i] = &p
		secondaries[i] = &s
	}
	data = data.WithColumn(primaryCol, gotmsql.StringType, primaries)
	data = data.WithColumn(secondaryCol, gotmsql.StringType, secondaries)
	return data
}

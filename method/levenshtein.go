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
	"github.com/antzucaro/matchr"

	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// DamerauLevenshtein scores every candidate pair with 1 minus the
// normalized Damerau-Levenshtein edit distance and keeps those scoring
// at or above threshold (spec §4.3).
func DamerauLevenshtein(data1, data2 *gotmsql.Table, fieldmap1, fieldmap2 map[string]string, fieldOrder []string, threshold float64, index int, ticker Ticker) *gotmsql.Table {
	return compare(normalizedDamerauLevenshtein, data1, data2, fieldmap1, fieldmap2, fieldOrder, threshold, index, ticker)
}

func normalizedDamerauLevenshtein(a, b string) float64 {
	distance := matchr.DamerauLevenshtein(a, b)
	longest := len([]rune(a))
	if bl := len([]rune(b)); bl > longest {
		longest = bl
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(distance)/float64(longest)
}

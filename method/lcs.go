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
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// RatcliffObershelp scores every candidate pair with the Ratcliff-Obershelp
// gestalt pattern-matching degree -- 2*|LCS(a,b)| / (|a|+|b|) -- and keeps
// those scoring at or above threshold. Supplemented from
// original_source/src/textmatch/methods/ratcliff_obershelp.py, which
// spec.md's own prose (§1: "string algorithmics (Levenshtein /
// Jaro-Winkler / LCS / Double Metaphone)") references but whose
// enumerated method list (§4.3) drops; see SPEC_FULL.md §11.
func RatcliffObershelp(data1, data2 *gotmsql.Table, fieldmap1, fieldmap2 map[string]string, fieldOrder []string, threshold float64, index int, ticker Ticker) *gotmsql.Table {
	return compare(ratcliffObershelpDegree, data1, data2, fieldmap1, fieldmap2, fieldOrder, threshold, index, ticker)
}

func ratcliffObershelpDegree(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	denominator := len(ra) + len(rb)
	if denominator == 0 {
		return 0
	}
	return 2 * float64(longestCommonSubsequence(ra, rb)) / float64(denominator)
}

// longestCommonSubsequence returns the length of the longest common
// subsequence of a and b (not necessarily contiguous).
func longestCommonSubsequence(a, b []rune) int {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0
	}
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[m]
}

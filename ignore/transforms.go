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

package ignore

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"gopkg.in/src-d/go-textmatch.v0/internal/regex"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

var nonAlphaNumeric = mustGoMatcher(`[^a-zA-Z0-9]+`)

func mustGoMatcher(pattern string) regex.Matcher {
	m, err := regex.New(regex.Default(), []string{pattern}, false)
	if err != nil {
		panic(err)
	}
	return m
}

func applyRegex(data *gotmsql.Table, header string, patterns []string, caseInsensitive bool) (*gotmsql.Table, error) {
	matcher, err := regex.New(regex.Default(), patterns, caseInsensitive)
	if err != nil {
		return nil, err
	}
	cells := data.Column(header)
	out := make([]*string, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		v := matcher.DeleteAll(*c)
		out[i] = &v
	}
	return data.WithColumn(header, gotmsql.StringType, out), nil
}

func stripNonAlpha(s string) string {
	return nonAlphaNumeric.DeleteAll(s)
}

// foldNonLatin ASCII-folds diacritics (the Go equivalent of Python's
// unidecode): decompose to NFD and drop combining marks, leaving the
// base Latin letters behind. Characters with no Latin base (CJK, etc.)
// pass through unchanged, same as unidecode's behavior for scripts it
// has no transliteration table for once stripped to NFD.
func foldNonLatin(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func lastWord(s string) string {
	parts := strings.Split(s, " ")
	return parts[len(parts)-1]
}

func firstWord(s string) string {
	parts := strings.Split(s, " ")
	return parts[0]
}

func sortWords(s string) string {
	parts := strings.Split(s, " ")
	sorted := make([]string, len(parts))
	copy(sorted, parts)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

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

// Package ignore applies the ordered text-normalization stack to working
// "ignorant" columns, used only for comparison and never persisted back
// to the original column.
package ignore

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-textmatch.v0/internal/fuzzyhint"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// ErrUnknownIgnore is returned when a directive name is not recognized.
var ErrUnknownIgnore = errors.NewKind("%s: ignorance property not known%s")

// directiveNames lists every known directive, in the fixed canonical
// application order (spec §4.2). User-supplied order never affects this.
var directiveNames = []string{"case", "regex", "nonlatin", "titles", "words-leading", "words-tailing", "words-order", "nonalpha"}

const regexPrefix = "regex="

// Apply runs the ignorance pipeline for one block/column: it appends a
// `_block{index}{header}_ignorant` column derived from header, and
// applies every directive in ignores whose canonical name is present,
// in the fixed order above -- never the order ignores lists them in.
// At most one regex= directive is honored (the first in ignores); any
// additional ones are silently ignored, matching spec §4.2.
func Apply(data *gotmsql.Table, header string, ignores []string, index int) (*gotmsql.Table, error) {
	caseInsensitive := contains(ignores, "case")
	var regexPattern string
	hasRegex := false
	normalized := make([]string, 0, len(ignores))
	for _, raw := range ignores {
		if strings.HasPrefix(raw, regexPrefix) {
			if !hasRegex {
				regexPattern = strings.TrimPrefix(raw, regexPrefix)
				hasRegex = true
			}
			normalized = append(normalized, "regex")
			continue
		}
		normalized = append(normalized, raw)
	}
	for _, name := range normalized {
		if !knownDirective(name) {
			return nil, ErrUnknownIgnore.New(name, fuzzyhint.Suggest(directiveNames, name))
		}
	}

	ignorantHeader := fmt.Sprintf("_block%d%s_ignorant", index, header)
	data = data.WithColumn(ignorantHeader, gotmsql.StringType, copyColumn(data.Column(header)))

	for _, name := range directiveNames {
		if !contains(normalized, name) {
			continue
		}
		var err error
		switch name {
		case "case":
			data = transformColumn(data, ignorantHeader, strings.ToLower)
		case "regex":
			if !hasRegex {
				continue
			}
			data, err = applyRegex(data, ignorantHeader, []string{regexPattern}, caseInsensitive)
		case "nonlatin":
			data = transformColumn(data, ignorantHeader, foldNonLatin)
		case "titles":
			data, err = applyRegex(data, ignorantHeader, titlesPatterns(), caseInsensitive)
		case "words-leading":
			data = transformColumn(data, ignorantHeader, lastWord)
		case "words-tailing":
			data = transformColumn(data, ignorantHeader, firstWord)
		case "words-order":
			data = transformColumn(data, ignorantHeader, sortWords)
		case "nonalpha":
			data = transformColumn(data, ignorantHeader, stripNonAlpha)
		}
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func knownDirective(name string) bool {
	for _, n := range directiveNames {
		if n == name {
			return true
		}
	}
	return false
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

func copyColumn(cells []*string) []*string {
	out := make([]*string, len(cells))
	copy(out, cells)
	return out
}

func transformColumn(data *gotmsql.Table, header string, f func(string) string) *gotmsql.Table {
	cells := data.Column(header)
	out := make([]*string, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		v := f(*c)
		out[i] = &v
	}
	return data.WithColumn(header, gotmsql.StringType, out)
}

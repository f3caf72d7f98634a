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

// Package fuzzyhint builds "did you mean" suggestions for plan errors
// (unknown field, method, ignore directive, join mode), adapted from the
// teacher's internal/text_distance (closest single name) and
// internal/similartext (formatted, possibly multi-name, hint string)
// packages.
package fuzzyhint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// Closest returns the name in names with the smallest edit distance to
// target, ties broken by original order. Empty names returns "".
func Closest(names []string, target string) string {
	if len(names) == 0 {
		return ""
	}
	best := names[0]
	bestDistance := levenshtein.Distance(names[0], target, nil)
	for _, name := range names[1:] {
		d := levenshtein.Distance(name, target, nil)
		if d < bestDistance {
			best = name
			bestDistance = d
		}
	}
	return best
}

// ClosestFromKeys is Closest over a map's keys.
func ClosestFromKeys[V any](names map[string]V, target string) string {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Closest(keys, target)
}

// Suggest returns a formatted ", maybe you mean X?" (or "X or Y?") hint
// for target among names, or "" if nothing is close enough. "Close
// enough" means the minimum edit distance is at most len(target)/2
// (integer division) -- so an empty target only matches an identical
// empty name, and short near-misses like one-letter typos still surface
// a suggestion.
func Suggest(names []string, target string) string {
	if len(names) == 0 {
		return ""
	}
	threshold := len(target) / 2
	best := -1
	var matches []string
	for _, name := range names {
		d := levenshtein.Distance(name, target, nil)
		switch {
		case best == -1 || d < best:
			best = d
			matches = []string{name}
		case d == best:
			matches = append(matches, name)
		}
	}
	if best > threshold {
		return ""
	}
	return fmt.Sprintf(", maybe you mean %s?", strings.Join(matches, " or "))
}

// SuggestFromKeys is Suggest over a map's keys.
func SuggestFromKeys[V any](names map[string]V, target string) string {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Suggest(keys, target)
}

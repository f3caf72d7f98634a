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

// Package regex is a small pluggable regex-engine registry, adapted from
// the teacher's internal/regex package (there used to let SQL LIKE /
// REGEXP choose between Go's regexp and oniguruma). The ignorance
// pipeline's `regex=` and `titles` directives only ever need one engine
// in this module, but the registry shape is kept so a future,
// locale-aware engine can be registered without touching call sites.
package regex

import (
	"regexp"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrRegexNameEmpty is returned by Register when given an empty name.
var ErrRegexNameEmpty = errors.NewKind("cannot register a regex engine with an empty name")

// ErrRegexNameTaken is returned by Register when the name already exists.
var ErrRegexNameTaken = errors.NewKind("regex engine %q is already registered")

// ErrRegexEngineUnknown is returned by New when asked for an unregistered engine.
var ErrRegexEngineUnknown = errors.NewKind("regex engine %q is not registered")

// Matcher deletes every match of a compiled pattern from a string.
type Matcher interface {
	DeleteAll(s string) string
}

// Constructor builds a Matcher for one or more alternated patterns,
// optionally case-insensitive.
type Constructor func(patterns []string, caseInsensitive bool) (Matcher, error)

var (
	engines = map[string]Constructor{}
	order   []string
)

func init() {
	_ = Register("go", newGoMatcher)
}

// Register adds a named engine constructor.
func Register(name string, construct Constructor) error {
	if name == "" {
		return ErrRegexNameEmpty.New()
	}
	if _, exists := engines[name]; exists {
		return ErrRegexNameTaken.New(name)
	}
	engines[name] = construct
	order = append(order, name)
	return nil
}

// Engines lists the registered engine names, registration order.
func Engines() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Default returns the engine used when none is requested explicitly.
func Default() string { return "go" }

// New builds a Matcher using the named engine.
func New(name string, patterns []string, caseInsensitive bool) (Matcher, error) {
	construct, ok := engines[name]
	if !ok {
		return nil, ErrRegexEngineUnknown.New(name)
	}
	return construct(patterns, caseInsensitive)
}

type goMatcher struct {
	pattern *regexp.Regexp
}

func newGoMatcher(patterns []string, caseInsensitive bool) (Matcher, error) {
	joined := ""
	for i, p := range patterns {
		if i > 0 {
			joined += "|"
		}
		joined += p
	}
	if caseInsensitive {
		joined = "(?i)" + joined
	}
	compiled, err := regexp.Compile(joined)
	if err != nil {
		return nil, err
	}
	return &goMatcher{pattern: compiled}, nil
}

func (m *goMatcher) DeleteAll(s string) string {
	return m.pattern.ReplaceAllLiteralString(s, "")
}

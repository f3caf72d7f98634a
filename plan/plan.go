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

// Package plan holds the MatchingPlan/Block data model, the broadcast
// rule that expands short per-block lists up to the plan's block count,
// and plan validation.
package plan

import (
	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-textmatch.v0/internal/fuzzyhint"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// Method names the engine recognizes.
type Method string

const (
	Literal            Method = "literal"
	DamerauLevenshtein  Method = "damerau-levenshtein"
	JaroWinkler        Method = "jaro-winkler"
	DoubleMetaphone    Method = "double-metaphone"
	RatcliffObershelp  Method = "ratcliff-obershelp"
	Bilenko            Method = "bilenko"
)

// MethodNames lists every recognized method name, used for validation
// error suggestions.
var MethodNames = []string{string(Literal), string(DamerauLevenshtein), string(JaroWinkler), string(DoubleMetaphone), string(RatcliffObershelp), string(Bilenko)}

// Join names the row-supplementation mode.
type Join string

const (
	Inner      Join = "inner"
	LeftOuter  Join = "left-outer"
	RightOuter Join = "right-outer"
	FullOuter  Join = "full-outer"
)

// JoinNames lists every recognized join mode name.
var JoinNames = []string{string(Inner), string(LeftOuter), string(RightOuter), string(FullOuter)}

// FieldPair names one field from each side participating in a block.
type FieldPair struct {
	Field1 string
	Field2 string
}

// Block is a single matching-plan block, still in user-facing field-name
// form (not yet resolved to internal column handles -- that happens in
// Build, once the column maps exist).
type Block struct {
	Fields    []FieldPair
	Ignores   []string
	Method    Method
	Threshold float64
}

// Plan is an ordered list of per-block definitions before defaults and
// broadcast are applied (spec §4.1).
type Plan struct {
	Fields1   [][]string
	Fields2   [][]string
	Ignores   [][]string
	Methods   []Method
	Thresholds []float64
}

// ResolvedBlock is a Block with its field names resolved to internal
// column handles for both sides (spec §3, "Block" data model).
type ResolvedBlock struct {
	Index     int
	FieldMap1 map[string]string // user field name -> internal handle, side 1
	FieldMap2 map[string]string // user field name -> internal handle, side 2
	FieldOrder []string          // user field names, in declaration order (map iteration isn't ordered)
	Ignores   []string
	Method    Method
	Threshold float64
}

var (
	ErrUnknownField        = errors.NewKind("%s: field not found%s")
	ErrNonStringField      = errors.NewKind("%s: field is not a string")
	ErrFieldCountMismatch  = errors.NewKind("both inputs must have the same number of fields specified")
	ErrThresholdOutOfRange = errors.NewKind("threshold must be between 0.0 and 1.0 (inclusive)")
	ErrUnknownMethod       = errors.NewKind("%s: method does not exist%s")
	ErrUnknownJoin         = errors.NewKind("%s: join type not known%s")
)

// fix right-pads items to length by repeating its last element
// (spec §4.1 broadcast rule). items must not be longer than length.
func fix[T any](items []T, length int) []T {
	if len(items) >= length {
		return items
	}
	out := make([]T, length)
	copy(out, items)
	last := items[len(items)-1]
	for i := len(items); i < length; i++ {
		out[i] = last
	}
	return out
}

// Build broadcasts and resolves a Plan against two disambiguated column
// maps, returning the ordered, validated ResolvedBlocks the rest of the
// engine consumes.
func Build(p Plan, columnmap1, columnmap2 gotmsql.ColumnMap) ([]ResolvedBlock, error) {
	fields1 := p.Fields1
	if fields1 == nil {
		fields1 = [][]string{columnmap1.Names}
	}
	fields2 := p.Fields2
	if fields2 == nil {
		fields2 = [][]string{columnmap2.Names}
	}
	ignores := p.Ignores
	if ignores == nil {
		ignores = [][]string{{}}
	}
	methods := p.Methods
	if methods == nil {
		methods = []Method{Literal}
	}
	thresholds := p.Thresholds
	if thresholds == nil {
		thresholds = []float64{0.6}
	}

	blocksNumber := max4(len(fields1), len(fields2), len(ignores), len(methods))
	fields1 = fix(fields1, blocksNumber)
	fields2 = fix(fields2, blocksNumber)
	ignores = fix(ignores, blocksNumber)
	methods = fix(methods, blocksNumber)
	thresholds = fix(thresholds, blocksNumber)

	resolved := make([]ResolvedBlock, blocksNumber)
	for i := 0; i < blocksNumber; i++ {
		if err := validateFields(fields1[i], columnmap1); err != nil {
			return nil, err
		}
		if err := validateFields(fields2[i], columnmap2); err != nil {
			return nil, err
		}
		if len(fields1[i]) != len(fields2[i]) {
			return nil, ErrFieldCountMismatch.New()
		}
		threshold := thresholds[i]
		if threshold < 0 || threshold > 1 {
			return nil, ErrThresholdOutOfRange.New()
		}
		if !validMethod(methods[i]) {
			return nil, ErrUnknownMethod.New(string(methods[i]), fuzzyhint.Suggest(MethodNames, string(methods[i])))
		}

		// FieldMap2 is keyed by the side-1 field name at the same
		// position, not by its own side-2 name: every method dispatch
		// indexes both field maps with the single FieldOrder list, so
		// the two maps must share keys even though the underlying
		// columns differ.
		fieldMap1 := make(map[string]string, len(fields1[i]))
		fieldMap2 := make(map[string]string, len(fields2[i]))
		for idx, f := range fields1[i] {
			handle, _ := columnmap1.Handle(f)
			fieldMap1[f] = handle
			handle2, _ := columnmap2.Handle(fields2[i][idx])
			fieldMap2[f] = handle2
		}
		resolved[i] = ResolvedBlock{
			Index:      i,
			FieldMap1:  fieldMap1,
			FieldMap2:  fieldMap2,
			FieldOrder: fields1[i],
			Ignores:    ignores[i],
			Method:     methods[i],
			Threshold:  threshold,
		}
	}
	return resolved, nil
}

func validateFields(fields []string, columnmap gotmsql.ColumnMap) error {
	for _, field := range fields {
		handle, ok := columnmap.Handle(field)
		if !ok {
			return ErrUnknownField.New(field, fuzzyhint.Suggest(columnmap.Names, field))
		}
		if typ, ok := columnmap.TypeOf(handle); ok && typ != gotmsql.StringType {
			return ErrNonStringField.New(field)
		}
	}
	return nil
}

func validMethod(m Method) bool {
	for _, name := range MethodNames {
		if string(m) == name {
			return true
		}
	}
	return false
}

func ValidJoin(j Join) bool {
	for _, name := range JoinNames {
		if string(j) == name {
			return true
		}
	}
	return false
}

func max4(a, b, c, d int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	if d > m {
		m = d
	}
	return m
}

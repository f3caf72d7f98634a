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

// Package textmatch fuzzily joins two tabular datasets on one or more
// chained matching blocks, each scored by one of six similarity methods,
// and returns the result as an Arrow table (spec §1 overview).
//
// A minimal call looks like:
//
//	result, err := textmatch.Run(ctx, source1, source2, textmatch.Options{})
//
// Options.Plan configures the matching blocks; everything else defaults
// to a single literal-match block that pairs every column of side 1 with
// the column at the same position on side 2, an inner join, and every
// column from both sides (spec §4.1).
package textmatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"gopkg.in/src-d/go-textmatch.v0/internal/fuzzyhint"
	"gopkg.in/src-d/go-textmatch.v0/linker"
	"gopkg.in/src-d/go-textmatch.v0/match"
	"gopkg.in/src-d/go-textmatch.v0/method"
	"gopkg.in/src-d/go-textmatch.v0/output"
	"gopkg.in/src-d/go-textmatch.v0/plan"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// Options configures one Run call. The zero value is the engine's
// default behavior.
type Options struct {
	// Plan describes the matching blocks (spec §4.1). The zero value is
	// a single literal-match block pairing every column of side 1 with
	// the column at the same position on side 2.
	Plan plan.Plan

	// Join controls how unmatched rows are supplemented back in (spec
	// §4.6). The zero value is plan.Inner.
	Join plan.Join

	// Output lists the result columns in "<side>.<field>", "<side>*",
	// or "degree" form (spec §4.7). Nil emits every column of side 1
	// then side 2, with no degree column.
	Output []string

	// Progress, if set, is called once per method dispatch with a
	// human-readable label and how many ticks will follow (spec §6).
	Progress match.Progress

	// Alert, if set, receives non-fatal diagnostics: plan announcements,
	// output-column disambiguation warnings, and bilenko's
	// insufficient-training notices (spec §6). Defaults to LogAlert.
	Alert method.Alert

	// Labeler answers bilenko's active-learning questions (spec §4.3
	// step 3, §9). Required only if Plan uses plan.Bilenko; defaults to
	// nil, which fails immediately if bilenko is reached.
	Labeler linker.Labeler

	// NewLinker builds a fresh linker.Linker for each bilenko block.
	// Defaults to a func returning linker.NewReference(0).
	NewLinker func() linker.Linker
}

// Run ingests both sources, builds and runs the matching plan, and
// returns the formatted result as an Arrow table (spec §1, §4).
func Run(ctx context.Context, source1, source2 gotmsql.Source, opts Options) (arrow.Table, error) {
	raw1, err := gotmsql.Use(source1)
	if err != nil {
		return nil, err
	}
	raw2, err := gotmsql.Use(source2)
	if err != nil {
		return nil, err
	}

	data1, columnmap1, err := gotmsql.Disambiguate(raw1, "data1")
	if err != nil {
		return nil, err
	}
	data2, columnmap2, err := gotmsql.Disambiguate(raw2, "data2")
	if err != nil {
		return nil, err
	}

	blocks, err := plan.Build(opts.Plan, columnmap1, columnmap2)
	if err != nil {
		return nil, err
	}

	alert := opts.Alert
	if alert == nil {
		alert = LogAlert
	}
	announcePlan(blocks, columnmap2, alert)

	join := opts.Join
	if join == "" {
		join = plan.Inner
	}
	if !plan.ValidJoin(join) {
		return nil, plan.ErrUnknownJoin.New(string(join), fuzzyhint.Suggest(plan.JoinNames, string(join)))
	}

	newLinker := opts.NewLinker
	if newLinker == nil {
		newLinker = func() linker.Linker { return linker.NewReference(0) }
	}

	matched, err := match.Chain(ctx, blocks, data1, data2, opts.Progress, alert, opts.Labeler, newLinker)
	if err != nil {
		return nil, err
	}

	supplemented := output.Supplement(matched, data1, data2, join)

	formatted, err := output.Format(supplemented, columnmap1, columnmap2, opts.Output, len(blocks), alert)
	if err != nil {
		return nil, err
	}

	return formatted.ToArrow(), nil
}

// announcePlan alerts a one-line human-readable description of every
// resolved block before matching starts (spec §4.1, supplemented from
// the original's plan announcement): "(2) Jaro-winkler 0.6 match --
// ignoring case: "surname" x "last_name"". The "(N) " prefix and index
// are only shown when there's more than one block.
func announcePlan(blocks []plan.ResolvedBlock, columnmap2 gotmsql.ColumnMap, alert method.Alert) {
	if alert == nil {
		return
	}
	for _, block := range blocks {
		index := ""
		if len(blocks) > 1 {
			index = fmt.Sprintf("(%d) ", block.Index+1)
		}

		methodName := capitalize(string(block.Method))
		threshold := ""
		if block.Method == plan.DamerauLevenshtein || block.Method == plan.JaroWinkler || block.Method == plan.RatcliffObershelp || block.Method == plan.Bilenko {
			threshold = fmt.Sprintf(" %v", block.Threshold)
		}

		ignore := ""
		if len(block.Ignores) > 0 {
			ignore = " -- ignoring " + strings.Join(block.Ignores, ", ")
		}

		pairs := make([]string, len(block.FieldOrder))
		for i, field := range block.FieldOrder {
			pairs[i] = fmt.Sprintf("%q x %q", field, sideFieldName(field, block, columnmap2))
		}

		alert(fmt.Sprintf("%s%s%s match%s: %s", index, methodName, threshold, ignore, strings.Join(pairs, ", ")), "")
	}
}

// sideFieldName recovers the side-2 field name paired with field at the
// same declaration position: ResolvedBlock.FieldMap2 is keyed by the
// side-1 name (plan.Build's dispatch convenience), so the side-2 name
// has to come back through its handle and columnmap2.
func sideFieldName(field string, block plan.ResolvedBlock, columnmap2 gotmsql.ColumnMap) string {
	handle, ok := block.FieldMap2[field]
	if !ok {
		return field
	}
	name, ok := columnmap2.Name(handle)
	if !ok {
		return field
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

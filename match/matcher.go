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

// Package match runs a single matching block and the full block chain
// (spec §4.4, §4.5): pruning by parent, the ignorance pipeline, method
// dispatch, pair-id stamping, and carrying forward prior block degrees.
package match

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-textmatch.v0/ignore"
	"gopkg.in/src-d/go-textmatch.v0/linker"
	"gopkg.in/src-d/go-textmatch.v0/method"
	"gopkg.in/src-d/go-textmatch.v0/plan"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// ErrUnsupportedMethod guards a method name that passed plan validation
// but has no dispatch case here; it should never surface in practice.
var ErrUnsupportedMethod = errors.NewKind("%s: method has no dispatch")

// ErrNoLabeler is returned when a bilenko block is reached without a
// Labeler to answer its questions.
var ErrNoLabeler = errors.NewKind("bilenko method needs a labeler")

// Progress reports coarse per-method milestones (spec §6): label names
// the method about to run, total is how many ticks will follow, and the
// returned closure must be called exactly total times.
type Progress func(label string, total int) func()

// RunBlock executes a single matching block. If parent is non-nil, both sides
// are first restricted to the row-ids parent still carries (the blocking
// prune). The ignorance pipeline runs over every field, the method is
// dispatched, and -- unless it returned zero pairs, which terminates the
// chain -- the pair-id column is stamped and, if parent is non-nil,
// joined against it to carry forward every prior `_block{k}_degree`
// column (spec §4.4).
func RunBlock(ctx context.Context, block plan.ResolvedBlock, data1, data2, parent *gotmsql.Table, progress Progress, alert method.Alert, labeler linker.Labeler, lnk linker.Linker) (*gotmsql.Table, error) {
	if parent != nil {
		data1 = pruneToParent(data1, "_data1_id", parent)
		data2 = pruneToParent(data2, "_data2_id", parent)
	}

	for _, field := range block.FieldOrder {
		var err error
		data1, err = ignore.Apply(data1, block.FieldMap1[field], block.Ignores, block.Index)
		if err != nil {
			return nil, err
		}
		data2, err = ignore.Apply(data2, block.FieldMap2[field], block.Ignores, block.Index)
		if err != nil {
			return nil, err
		}
	}

	ticker := method.Ticker(func(total int) func() {
		if progress == nil {
			return nil
		}
		return progress(string(block.Method), total)
	})

	matched, err := dispatch(ctx, block, data1, data2, ticker, alert, labeler, lnk)
	if err != nil {
		return nil, err
	}
	if matched.Len() == 0 {
		return matched, nil
	}

	idColumn := fmt.Sprintf("_block%d_id", block.Index)
	matched = withPairID(matched, idColumn)

	if parent != nil {
		matched = carryForwardDegrees(matched, parent, idColumn, fmt.Sprintf("_block%d_id", block.Index-1))
	}
	return matched, nil
}

func dispatch(ctx context.Context, block plan.ResolvedBlock, data1, data2 *gotmsql.Table, ticker method.Ticker, alert method.Alert, labeler linker.Labeler, lnk linker.Linker) (*gotmsql.Table, error) {
	switch block.Method {
	case plan.Literal:
		return method.Literal(data1, data2, block.FieldMap1, block.FieldMap2, block.FieldOrder, block.Index, ticker), nil
	case plan.DoubleMetaphone:
		return method.DoubleMetaphone(data1, data2, block.FieldMap1, block.FieldMap2, block.FieldOrder, block.Index, ticker), nil
	case plan.DamerauLevenshtein:
		return method.DamerauLevenshtein(data1, data2, block.FieldMap1, block.FieldMap2, block.FieldOrder, block.Threshold, block.Index, ticker), nil
	case plan.JaroWinkler:
		return method.JaroWinkler(data1, data2, block.FieldMap1, block.FieldMap2, block.FieldOrder, block.Threshold, block.Index, ticker), nil
	case plan.RatcliffObershelp:
		return method.RatcliffObershelp(data1, data2, block.FieldMap1, block.FieldMap2, block.FieldOrder, block.Threshold, block.Index, ticker), nil
	case plan.Bilenko:
		if labeler == nil {
			return nil, ErrNoLabeler.New()
		}
		if lnk == nil {
			lnk = linker.NewReference(0)
		}
		return method.Bilenko(ctx, data1, data2, block.FieldMap1, block.FieldMap2, block.FieldOrder, block.Threshold, block.Index, ticker, alert, labeler, lnk)
	default:
		return nil, ErrUnsupportedMethod.New(string(block.Method))
	}
}

// pruneToParent keeps only the rows of data whose row-id still appears in
// parent's column of the same name (idColumn). parent carries both
// sides' id columns; only the one for data's side is consulted.
func pruneToParent(data *gotmsql.Table, idColumn string, parent *gotmsql.Table) *gotmsql.Table {
	allowed := make(map[string]bool, parent.Len())
	for _, id := range parent.Strings(idColumn) {
		allowed[id] = true
	}
	cells := data.Column(idColumn)
	return gotmsql.Filter(data, func(row int) bool {
		cell := cells[row]
		return cell != nil && allowed[*cell]
	})
}

func withPairID(t *gotmsql.Table, column string) *gotmsql.Table {
	ids1 := t.Strings("_data1_id")
	ids2 := t.Strings("_data2_id")
	values := make([]*string, t.Len())
	for i := range values {
		v := ids1[i] + "-" + ids2[i]
		values[i] = &v
	}
	return t.WithColumn(column, gotmsql.OtherType, values)
}

// carryForwardDegrees joins matched to parent's pair-id column, copying
// over only the degree columns parent has accumulated so far -- not
// parent's data columns, which matched already carries a fresh (pruned)
// copy of under the same handles.
func carryForwardDegrees(matched, parent *gotmsql.Table, idColumn, parentIDColumn string) *gotmsql.Table {
	keep := []string{parentIDColumn}
	for _, c := range parent.Schema() {
		if isDegreeColumn(c.Name) {
			keep = append(keep, c.Name)
		}
	}
	projection := parent.Select(keep...)
	joined := gotmsql.InnerJoin(matched, projection, []string{idColumn}, []string{parentIDColumn})
	return joined.DropColumns(parentIDColumn)
}

func isDegreeColumn(name string) bool {
	return strings.HasPrefix(name, "_block") && strings.HasSuffix(name, "_degree")
}

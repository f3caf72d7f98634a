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

package output

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-textmatch.v0/method"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

var (
	// ErrUnknownOutputSpec is returned for an output token naming an
	// unknown field or malformed shape.
	ErrUnknownOutputSpec = errors.NewKind("%s: output column not known")
	// ErrDuplicateOutput is returned when the same output token is
	// listed twice.
	ErrDuplicateOutput = errors.NewKind("%s: duplicate output column")
)

const degreeWorkingColumn = "_degree"

// item is one resolved output column: which side it came from (0, 1, or
// -1 for the combined degree), its internal handle, and its final
// user-facing name (subject to disambiguation).
type item struct {
	side     int
	handle   string
	userName string
}

// Format builds the user-facing output table (spec §4.7): concatenates
// every `_block{i}_degree` column (i < blocksNumber) present on final
// into one semicolon-joined `degree` column, resolves the output token
// list against both column maps, disambiguates any column name shared by
// both sides when both copies end up emitted (renaming with `_1`/`_2`
// and alerting, not failing), and selects the result in token order.
// output == nil emits every column of side 1 then side 2, in original
// order, without a degree column.
func Format(final *gotmsql.Table, columnmap1, columnmap2 gotmsql.ColumnMap, output []string, blocksNumber int, alert method.Alert) (*gotmsql.Table, error) {
	final = final.WithColumn(degreeWorkingColumn, gotmsql.StringType, combineDegrees(final, blocksNumber))

	tokens := output
	if len(tokens) == 0 {
		tokens = defaultTokens()
	}

	seen := map[string]bool{}
	var items []item
	for _, token := range tokens {
		if seen[token] {
			return nil, ErrDuplicateOutput.New(token)
		}
		seen[token] = true

		resolved, err := resolveToken(token, columnmap1, columnmap2)
		if err != nil {
			return nil, err
		}
		items = append(items, resolved...)
	}

	items = disambiguate(items, alert)

	schema := make(gotmsql.Schema, 0, len(items))
	columns := make(map[string][]*string, len(items))
	for _, it := range items {
		source := it.handle
		if it.side == -1 {
			source = degreeWorkingColumn
		}
		columns[it.userName] = final.Column(source)
		schema = append(schema, gotmsql.ColumnDef{Name: it.userName, Type: gotmsql.StringType})
	}
	return gotmsql.NewTableFromCells(schema, columns, final.Len()), nil
}

func defaultTokens() []string {
	return []string{"1*", "2*"}
}

func resolveToken(token string, columnmap1, columnmap2 gotmsql.ColumnMap) ([]item, error) {
	switch {
	case token == "degree":
		return []item{{side: -1, userName: "degree"}}, nil
	case token == "1*" || token == "2*":
		columnmap, side := columnmap1, 0
		if token == "2*" {
			columnmap, side = columnmap2, 1
		}
		items := make([]item, len(columnmap.Names))
		for i, name := range columnmap.Names {
			handle, _ := columnmap.Handle(name)
			items[i] = item{side: side, handle: handle, userName: name}
		}
		return items, nil
	case strings.HasPrefix(token, "1.") || strings.HasPrefix(token, "2."):
		columnmap, side := columnmap1, 0
		if token[0] == '2' {
			columnmap, side = columnmap2, 1
		}
		field := token[2:]
		handle, ok := columnmap.Handle(field)
		if !ok {
			return nil, ErrUnknownOutputSpec.New(token)
		}
		return []item{{side: side, handle: handle, userName: field}}, nil
	default:
		return nil, ErrUnknownOutputSpec.New(token)
	}
}

// disambiguate renames every column whose user-facing name was selected
// from both sides (spec §4.7): "_1" for side 1's copy, "_2" for side 2's,
// with one warning alert per colliding name.
func disambiguate(items []item, alert method.Alert) []item {
	presentOnSide := map[string][2]bool{}
	for _, it := range items {
		if it.side == -1 {
			continue
		}
		sides := presentOnSide[it.userName]
		sides[it.side] = true
		presentOnSide[it.userName] = sides
	}

	out := make([]item, len(items))
	warned := map[string]bool{}
	for i, it := range items {
		out[i] = it
		if it.side == -1 {
			continue
		}
		sides := presentOnSide[it.userName]
		if !(sides[0] && sides[1]) {
			continue
		}
		suffix := "_1"
		if it.side == 1 {
			suffix = "_2"
		}
		out[i].userName = it.userName + suffix
		if alert != nil && !warned[it.userName] {
			alert(fmt.Sprintf("%s occurs on both sides, renamed to %s_1/%s_2", it.userName, it.userName, it.userName), "warning")
			warned[it.userName] = true
		}
	}
	return out
}

func combineDegrees(t *gotmsql.Table, blocksNumber int) []*string {
	var degreeCols [][]*string
	for i := 0; i < blocksNumber; i++ {
		name := method.DegreeColumn(i)
		if t.Schema().Has(name) {
			degreeCols = append(degreeCols, t.Column(name))
		}
	}
	out := make([]*string, t.Len())
	for row := 0; row < t.Len(); row++ {
		var parts []string
		for _, col := range degreeCols {
			if col[row] != nil {
				parts = append(parts, *col[row])
			}
		}
		if len(parts) == 0 {
			continue
		}
		v := strings.Join(parts, "; ")
		out[row] = &v
	}
	return out
}

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
	"context"

	"gopkg.in/src-d/go-textmatch.v0/linker"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// Bilenko drives the supervised external-linker method shape (spec
// §4.3 step 3, §9 design notes): project both sides down to their
// ignorant match columns, prepare the linker's training pool, loop
// labeler until Train succeeds (re-alerting on ErrInsufficientTraining
// instead of failing), then materialize Join's result back into a
// Table. lnk is the collaborator -- normally a *linker.ReferenceLinker,
// but any Linker works; labeler is normally linker.CLILabeler wired to
// stdin/stdout, but any Labeler works.
func Bilenko(ctx context.Context, data1, data2 *gotmsql.Table, fieldmap1, fieldmap2 map[string]string, fieldOrder []string, threshold float64, index int, ticker Ticker, alert Alert, labeler linker.Labeler, lnk linker.Linker) (*gotmsql.Table, error) {
	headers1 := make([]string, len(fieldOrder))
	headers2 := make([]string, len(fieldOrder))
	for i, field := range fieldOrder {
		headers1[i] = IgnorantColumn(index, fieldmap1[field])
		headers2[i] = IgnorantColumn(index, fieldmap2[field])
	}

	records1 := toLinkerRecords(data1, "_data1_id", headers1)
	records2 := toLinkerRecords(data2, "_data2_id", headers2)
	lnk.PrepareTraining(records1, records2)

	for {
		if err := linker.RunLabelingLoop(ctx, labeler, lnk); err != nil {
			return nil, err
		}
		if err := lnk.Train(); err != nil {
			if alert != nil {
				alert("Not enough training has been completed to run a match", "warning")
			}
			continue
		}
		break
	}

	var tick func()
	if ticker != nil {
		tick = ticker(3)
	}
	step := func() {
		if tick != nil {
			tick()
		}
	}
	step()

	joined := lnk.Join(records1, records2, threshold)
	step()

	schema := append(append(gotmsql.Schema{}, data1.Schema()...), data2.Schema()...)
	columns := make(map[string][]*string, len(schema)+1)
	for _, c := range schema {
		columns[c.Name] = nil
	}
	degreeColumn := DegreeColumn(index)
	columns[degreeColumn] = nil

	index1 := indexByID(data1, "_data1_id")
	index2 := indexByID(data2, "_data2_id")
	length := 0
	for _, pair := range joined {
		i1, ok1 := index1[pair.ID1]
		i2, ok2 := index2[pair.ID2]
		if !ok1 || !ok2 {
			continue
		}
		for _, c := range data1.Schema() {
			columns[c.Name] = append(columns[c.Name], data1.Column(c.Name)[i1])
		}
		for _, c := range data2.Schema() {
			columns[c.Name] = append(columns[c.Name], data2.Column(c.Name)[i2])
		}
		degreeText := FormatDegree(pair.Degree)
		columns[degreeColumn] = append(columns[degreeColumn], &degreeText)
		length++
	}
	step()

	outSchema := append(append(gotmsql.Schema{}, schema...), gotmsql.ColumnDef{Name: degreeColumn, Type: gotmsql.StringType})
	return gotmsql.NewTableFromCells(outSchema, columns, length), nil
}

func toLinkerRecords(data *gotmsql.Table, idColumn string, headers []string) []linker.Record {
	ids := data.Strings(idColumn)
	cols := make([][]*string, len(headers))
	for i, h := range headers {
		cols[i] = data.Column(h)
	}
	records := make([]linker.Record, data.Len())
	for row := 0; row < data.Len(); row++ {
		fields := make([]string, len(headers))
		for i, col := range cols {
			if col[row] != nil {
				fields[i] = *col[row]
			}
		}
		records[row] = linker.Record{ID: ids[row], Fields: fields}
	}
	return records
}

func indexByID(data *gotmsql.Table, idColumn string) map[string]int {
	ids := data.Strings(idColumn)
	out := make(map[string]int, len(ids))
	for i, id := range ids {
		out[id] = i
	}
	return out
}

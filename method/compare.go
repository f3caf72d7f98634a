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
	"math"
	"runtime"
	"strings"
	"sync"

	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// Scorer computes a similarity degree in [0, 1] between two connector
// strings (all of a row's ignorant fields, `|`-joined). NaN is never
// returned by a conforming Scorer; callers of compare already clamp a
// negative/NaN result to 0 defensively (spec §4.3 "Treat null/NaN scores
// as 0").
type Scorer func(a, b string) float64

// compare implements the pairwise-score-with-threshold method shape
// shared by levenshtein, jaro and lcs (spec §4.3): concatenate each
// side's ignorant fields into one connector string, score every
// candidate in the cross product, keep pairs scoring >= threshold, and
// print the degree with the canonical decimal printer.
//
// Scoring is fanned out across a small worker pool -- spec §5 allows
// "the underlying columnar operators [to] internally parallelize across
// CPU cores but expose a strictly sequential API", which is exactly what
// this does: callers never see a goroutine.
func compare(score Scorer, data1, data2 *gotmsql.Table, fieldmap1, fieldmap2 map[string]string, fieldOrder []string, threshold float64, index int, ticker Ticker) *gotmsql.Table {
	var tick func()
	if ticker != nil {
		tick = ticker(4)
	}
	step := func() {
		if tick != nil {
			tick()
		}
	}

	headers1 := make([]string, len(fieldOrder))
	headers2 := make([]string, len(fieldOrder))
	for i, field := range fieldOrder {
		headers1[i] = IgnorantColumn(index, fieldmap1[field])
		headers2[i] = IgnorantColumn(index, fieldmap2[field])
	}
	connectors1 := connectorStrings(data1, headers1)
	connectors2 := connectorStrings(data2, headers2)
	step()

	type candidate struct {
		i, j   int
		degree float64
	}
	total := data1.Len() * data2.Len()
	scored := make([]candidate, total)
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	chunk := (total + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for k := start; k < end; k++ {
				i, j := k/data2.Len(), k%data2.Len()
				degree := score(connectors1[i], connectors2[j])
				if degree < 0 || math.IsNaN(degree) {
					degree = 0
				}
				scored[k] = candidate{i: i, j: j, degree: degree}
			}
		}(start, end)
	}
	wg.Wait()
	step()

	schema := append(append(gotmsql.Schema{}, data1.Schema()...), data2.Schema()...)
	columns := make(map[string][]*string, len(schema))
	for _, c := range schema {
		columns[c.Name] = nil
	}
	degreeColumn := DegreeColumn(index)
	columns[degreeColumn] = nil
	length := 0
	for _, cand := range scored {
		if cand.degree < threshold {
			continue
		}
		for _, c := range data1.Schema() {
			columns[c.Name] = append(columns[c.Name], data1.Column(c.Name)[cand.i])
		}
		for _, c := range data2.Schema() {
			columns[c.Name] = append(columns[c.Name], data2.Column(c.Name)[cand.j])
		}
		degreeText := FormatDegree(cand.degree)
		columns[degreeColumn] = append(columns[degreeColumn], &degreeText)
		length++
	}
	step()
	outSchema := append(append(gotmsql.Schema{}, schema...), gotmsql.ColumnDef{Name: degreeColumn, Type: gotmsql.StringType})
	result := gotmsql.NewTableFromCells(outSchema, columns, length)
	step()
	return result
}

func connectorStrings(data *gotmsql.Table, headers []string) []string {
	out := make([]string, data.Len())
	cols := make([][]*string, len(headers))
	for i, h := range headers {
		cols[i] = data.Column(h)
	}
	for row := 0; row < data.Len(); row++ {
		parts := make([]string, len(headers))
		for i, col := range cols {
			if col[row] != nil {
				parts[i] = *col[row]
			}
		}
		out[row] = strings.Join(parts, "|")
	}
	return out
}

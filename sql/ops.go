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

package sql

import "strings"

// keySeparator joins composite key columns into a single map key. It is
// not expected to appear in ignorant column values, which are derived
// from ASCII text.
const keySeparator = "\x00"

func compositeKey(row []*string) (string, bool) {
	parts := make([]string, len(row))
	for i, c := range row {
		if c == nil {
			return "", false // SQL NULL never matches in an equi-join
		}
		parts[i] = *c
	}
	return strings.Join(parts, keySeparator), true
}

func keysOf(t *Table, columns []string, row int) []*string {
	key := make([]*string, len(columns))
	for i, col := range columns {
		key[i] = t.columns[col][row]
	}
	return key
}

// InnerJoin joins left and right on the given key column lists (equal
// length, paired positionally), concatenating both sides' full column
// sets for every matching row pair. Since every column participating in
// a block carries an internal handle unique to its side, schemas never
// collide and no disambiguation is needed here (disambiguation already
// happened once, at ingestion).
func InnerJoin(left, right *Table, leftKeys, rightKeys []string) *Table {
	index := make(map[string][]int, right.Len())
	for i := 0; i < right.Len(); i++ {
		key, ok := compositeKey(keysOf(right, rightKeys, i))
		if !ok {
			continue
		}
		index[key] = append(index[key], i)
	}

	schema := append(append(Schema{}, left.schema...), right.schema...)
	columns := make(map[string][]*string, len(schema))
	for _, c := range schema {
		columns[c.Name] = nil
	}

	length := 0
	for i := 0; i < left.Len(); i++ {
		key, ok := compositeKey(keysOf(left, leftKeys, i))
		if !ok {
			continue
		}
		for _, j := range index[key] {
			for _, c := range left.schema {
				columns[c.Name] = append(columns[c.Name], left.columns[c.Name][i])
			}
			for _, c := range right.schema {
				columns[c.Name] = append(columns[c.Name], right.columns[c.Name][j])
			}
			length++
		}
	}
	return &Table{schema: schema, columns: columns, length: length}
}

// LeftJoin joins left to right on a single key column pair, keeping every
// left row even when unmatched (right-side cells become NULL).
func LeftJoin(left, right *Table, leftKey, rightKey string) *Table {
	index := make(map[string][]int, right.Len())
	for i := 0; i < right.Len(); i++ {
		if cell := right.columns[rightKey][i]; cell != nil {
			index[*cell] = append(index[*cell], i)
		}
	}

	schema := append(append(Schema{}, left.schema...), right.schema...)
	columns := make(map[string][]*string, len(schema))
	for _, c := range schema {
		columns[c.Name] = nil
	}

	for i := 0; i < left.Len(); i++ {
		cell := left.columns[leftKey][i]
		var matches []int
		if cell != nil {
			matches = index[*cell]
		}
		if len(matches) == 0 {
			for _, c := range left.schema {
				columns[c.Name] = append(columns[c.Name], left.columns[c.Name][i])
			}
			for _, c := range right.schema {
				columns[c.Name] = append(columns[c.Name], nil)
			}
			continue
		}
		for _, j := range matches {
			for _, c := range left.schema {
				columns[c.Name] = append(columns[c.Name], left.columns[c.Name][i])
			}
			for _, c := range right.schema {
				columns[c.Name] = append(columns[c.Name], right.columns[c.Name][j])
			}
		}
	}
	length := 0
	if len(schema) > 0 {
		length = len(columns[schema[0].Name])
	}
	return &Table{schema: schema, columns: columns, length: length}
}

// Filter returns a new Table keeping only the rows for which keep
// returns true.
func Filter(t *Table, keep func(row int) bool) *Table {
	columns := make(map[string][]*string, len(t.schema))
	for _, c := range t.schema {
		columns[c.Name] = nil
	}
	length := 0
	for i := 0; i < t.Len(); i++ {
		if !keep(i) {
			continue
		}
		for _, c := range t.schema {
			columns[c.Name] = append(columns[c.Name], t.columns[c.Name][i])
		}
		length++
	}
	schema := make(Schema, len(t.schema))
	copy(schema, t.schema)
	return &Table{schema: schema, columns: columns, length: length}
}

// Concat unions the schemas of the given tables (diagonal concatenation:
// a table missing a column gets NULL in its place) and stacks their rows
// in argument order.
func Concat(tables ...*Table) *Table {
	var schema Schema
	seen := map[string]bool{}
	for _, t := range tables {
		for _, c := range t.schema {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			schema = append(schema, c)
		}
	}
	columns := make(map[string][]*string, len(schema))
	length := 0
	for _, t := range tables {
		for _, c := range schema {
			cells := t.columns[c.Name]
			if cells == nil {
				cells = make([]*string, t.Len())
			}
			columns[c.Name] = append(columns[c.Name], cells...)
		}
		length += t.Len()
	}
	return &Table{schema: schema, columns: columns, length: length}
}

// Unique keeps only the first row seen for each distinct combination of
// the given key columns.
func Unique(t *Table, keys []string) *Table {
	seen := map[string]bool{}
	return Filter(t, func(i int) bool {
		key, ok := compositeKey(keysOf(t, keys, i))
		if !ok {
			return true
		}
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}

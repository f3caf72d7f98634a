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

// Table holds named, equal-length columns. A nil cell is SQL-style NULL,
// used by an outer join to carry a row that has no partner on the other
// side. Tables are copy-on-write: every mutating method returns a new
// Table and leaves the receiver untouched, so a block can prune its
// working copy of a side without disturbing the table a sibling block
// still holds a reference to.
type Table struct {
	schema  Schema
	columns map[string][]*string
	length  int
}

// NewTableFromColumns builds a Table from fully-populated string columns,
// all the same length, each treated as StringType. order fixes the
// column order of the resulting schema.
func NewTableFromColumns(order []string, data map[string][]string) *Table {
	schema := make(Schema, len(order))
	columns := make(map[string][]*string, len(order))
	length := 0
	for i, name := range order {
		schema[i] = ColumnDef{Name: name, Type: StringType}
		values := data[name]
		length = len(values)
		cells := make([]*string, len(values))
		for j, v := range values {
			v := v
			cells[j] = &v
		}
		columns[name] = cells
	}
	return &Table{schema: schema, columns: columns, length: length}
}

// NewTableFromCells builds a Table directly from a schema, a set of
// nullable columns keyed by name, and a row count. Used by operators
// that already have fully-formed column slices to hand over (joins,
// pairwise scoring) and would gain nothing from going through
// NewTableFromColumns's non-nullable []string inputs.
func NewTableFromCells(schema Schema, columns map[string][]*string, length int) *Table {
	return &Table{schema: schema, columns: columns, length: length}
}

// Schema returns the table's column definitions.
func (t *Table) Schema() Schema { return t.schema }

// Columns returns the column names in schema order.
func (t *Table) Columns() []string { return t.schema.Names() }

// Len returns the number of rows.
func (t *Table) Len() int { return t.length }

// Column returns the raw nullable cells of a column, or nil if absent.
func (t *Table) Column(name string) []*string { return t.columns[name] }

// Strings returns a column as plain strings, treating NULL as "".
func (t *Table) Strings(name string) []string {
	cells := t.columns[name]
	out := make([]string, len(cells))
	for i, c := range cells {
		if c != nil {
			out[i] = *c
		}
	}
	return out
}

// WithColumn returns a new Table with name added (or replaced).
func (t *Table) WithColumn(name string, typ ColumnType, values []*string) *Table {
	next := t.shallowCopy()
	if !next.schema.Has(name) {
		next.schema = append(next.schema, ColumnDef{Name: name, Type: typ})
	}
	next.columns[name] = values
	next.length = len(values)
	return next
}

// DropColumns returns a new Table without the named columns.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	next := t.shallowCopy()
	schema := make(Schema, 0, len(t.schema))
	for _, c := range t.schema {
		if drop[c.Name] {
			delete(next.columns, c.Name)
			continue
		}
		schema = append(schema, c)
	}
	next.schema = schema
	return next
}

// Rename returns a new Table with columns renamed per mapping (old -> new).
func (t *Table) Rename(mapping map[string]string) *Table {
	next := t.shallowCopy()
	schema := make(Schema, len(t.schema))
	for i, c := range t.schema {
		to, renamed := mapping[c.Name]
		if !renamed {
			schema[i] = c
			continue
		}
		schema[i] = ColumnDef{Name: to, Type: c.Type}
		next.columns[to] = t.columns[c.Name]
		if to != c.Name {
			delete(next.columns, c.Name)
		}
	}
	next.schema = schema
	return next
}

// Select returns a new Table with only the named columns, in that order.
func (t *Table) Select(names ...string) *Table {
	schema := make(Schema, 0, len(names))
	columns := make(map[string][]*string, len(names))
	for _, name := range names {
		typ, _ := t.schema.TypeOf(name)
		schema = append(schema, ColumnDef{Name: name, Type: typ})
		columns[name] = t.columns[name]
	}
	return &Table{schema: schema, columns: columns, length: t.length}
}

func (t *Table) shallowCopy() *Table {
	columns := make(map[string][]*string, len(t.columns))
	for k, v := range t.columns {
		columns[k] = v
	}
	schema := make(Schema, len(t.schema))
	copy(schema, t.schema)
	return &Table{schema: schema, columns: columns, length: t.length}
}

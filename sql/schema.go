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

// Package sql is the column-store abstraction the matching engine is
// expressed against: named columns of equal length plus a stable row id,
// and the small set of relational operators (join, filter, concat,
// dedupe) the engine composes to run a matching plan.
package sql

// ColumnType enumerates the column types the engine recognizes. Matching
// only ever happens on StringType columns; anything else may still ride
// along as a carried, output-only column.
type ColumnType int

const (
	StringType ColumnType = iota
	OtherType
)

// ColumnDef names one column of a Table and records its type.
type ColumnDef struct {
	Name string
	Type ColumnType
}

// Schema is the ordered column definition of a Table.
type Schema []ColumnDef

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Has reports whether name is a column of this schema.
func (s Schema) Has(name string) bool {
	for _, c := range s {
		if c.Name == name {
			return true
		}
	}
	return false
}

// TypeOf returns the type of the named column, if present.
func (s Schema) TypeOf(name string) (ColumnType, bool) {
	for _, c := range s {
		if c.Name == name {
			return c.Type, true
		}
	}
	return 0, false
}

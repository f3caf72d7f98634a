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

import (
	"fmt"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrDuplicateHeaders is returned when a side's input table has two
// columns sharing a name.
var ErrDuplicateHeaders = errors.NewKind("%s dataset has duplicate headers")

// ColumnMap records the bijection between a side's user-facing column
// names and the internal opaque handles the engine renames them to.
type ColumnMap struct {
	Side   string // "data1" or "data2"
	Names  []string
	toID   map[string]string
	toName map[string]string
	types  map[string]ColumnType // keyed by internal handle
}

// Handle returns the internal handle for a user-facing column name.
func (m ColumnMap) Handle(name string) (string, bool) {
	id, ok := m.toID[name]
	return id, ok
}

// Name returns the user-facing name for an internal handle.
func (m ColumnMap) Name(handle string) (string, bool) {
	name, ok := m.toName[handle]
	return name, ok
}

// TypeOf returns the column type of an internal handle.
func (m ColumnMap) TypeOf(handle string) (ColumnType, bool) {
	t, ok := m.types[handle]
	return t, ok
}

// RowIDColumn is the internal row-id column handle for this side.
func (m ColumnMap) RowIDColumn() string { return "_" + m.Side + "_id" }

// Disambiguate renames a table's user-facing columns to internal handles
// (`_data{side}_col{k}`), appends a dense 0-based row-id column, and
// returns the resulting ColumnMap. side must be "data1" or "data2".
func Disambiguate(data *Table, side string) (*Table, ColumnMap, error) {
	names := data.Columns()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			number := "first"
			if side == "data2" {
				number = "second"
			}
			return nil, ColumnMap{}, ErrDuplicateHeaders.New(number)
		}
		seen[name] = true
	}

	toID := make(map[string]string, len(names))
	toName := make(map[string]string, len(names))
	types := make(map[string]ColumnType, len(names))
	renamed := data
	for i, name := range names {
		handle := fmt.Sprintf("_%s_col%d", side, i)
		toID[name] = handle
		toName[handle] = name
		typ, _ := data.Schema().TypeOf(name)
		types[handle] = typ
		renamed = renamed.Rename(map[string]string{name: handle})
	}

	rowIDColumn := "_" + side + "_id"
	ids := make([]*string, data.Len())
	for i := range ids {
		v := fmt.Sprintf("%d", i)
		ids[i] = &v
	}
	renamed = renamed.WithColumn(rowIDColumn, OtherType, ids)

	columnmap := ColumnMap{Side: side, Names: names, toID: toID, toName: toName, types: types}
	return renamed, columnmap, nil
}

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
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownSourceFormat is returned when a Source is empty (zero value)
// or was otherwise never populated by one of the From* constructors.
var ErrUnknownSourceFormat = errors.NewKind("unknown data format")

// ColumnarFrame is a columnar dataframe-like ingress shape: columns
// fetched by name. Any third-party dataframe type can satisfy this with
// a thin adapter.
type ColumnarFrame interface {
	Columns() []string
	Column(name string) []string
}

// RowFrame is a row-oriented dataframe-like ingress shape.
type RowFrame interface {
	Columns() []string
	Rows() []map[string]string
}

// Source is a tagged union over the four ingress shapes the engine
// accepts: a plain dict, a columnar frame, an Arrow table, and a
// row-oriented frame. It replaces the dynamic type-shape inspection the
// original implementation needed (source languages without a
// constructor-per-shape variant type have to inspect values at runtime);
// here an unrecognized shape is a compile error, not a runtime one,
// since there is no fifth constructor to call.
type Source struct {
	kind     sourceKind
	dict     map[string][]string
	columnar ColumnarFrame
	arrow    arrow.Table
	rows     RowFrame
}

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceDict
	sourceColumnar
	sourceArrow
	sourceRows
)

// FromDict builds a Source from a column name to values mapping.
func FromDict(data map[string][]string) Source {
	return Source{kind: sourceDict, dict: data}
}

// FromColumnar builds a Source from a columnar dataframe-like value.
func FromColumnar(frame ColumnarFrame) Source {
	return Source{kind: sourceColumnar, columnar: frame}
}

// FromArrow builds a Source from an Arrow table.
func FromArrow(table arrow.Table) Source {
	return Source{kind: sourceArrow, arrow: table}
}

// FromRows builds a Source from a row-oriented dataframe-like value.
func FromRows(frame RowFrame) Source {
	return Source{kind: sourceRows, rows: frame}
}

// Use materializes a Source into a Table of string columns. Non-string
// Arrow columns are stringified; everything else is assumed to already
// be textual, matching spec.md's ingestion contract (fields used for
// matching must be string columns; other columns ride along untouched).
func Use(source Source) (*Table, error) {
	switch source.kind {
	case sourceDict:
		// map[string][]string has no inherent column order; sort names so
		// repeated Run calls over the same dict are deterministic (spec §8
		// Testable Property #3), matching the caller-chosen order
		// FromColumnar/FromRows already provide.
		order := make([]string, 0, len(source.dict))
		for name := range source.dict {
			order = append(order, name)
		}
		sort.Strings(order)
		return NewTableFromColumns(order, source.dict), nil
	case sourceColumnar:
		names := source.columnar.Columns()
		data := make(map[string][]string, len(names))
		for _, name := range names {
			data[name] = source.columnar.Column(name)
		}
		return NewTableFromColumns(names, data), nil
	case sourceArrow:
		return useArrow(source.arrow)
	case sourceRows:
		names := source.rows.Columns()
		rows := source.rows.Rows()
		data := make(map[string][]string, len(names))
		for _, name := range names {
			values := make([]string, len(rows))
			for i, row := range rows {
				values[i] = row[name]
			}
			data[name] = values
		}
		return NewTableFromColumns(names, data), nil
	default:
		return nil, ErrUnknownSourceFormat.New()
	}
}

func useArrow(table arrow.Table) (*Table, error) {
	order := make([]string, table.NumCols())
	data := make(map[string][]string, table.NumCols())
	for i := 0; i < int(table.NumCols()); i++ {
		field := table.Schema().Field(i)
		order[i] = field.Name
		column := table.Column(i)
		values := make([]string, 0, table.NumRows())
		for _, chunk := range column.Data().Chunks() {
			values = append(values, stringifyArrowArray(chunk)...)
		}
		data[field.Name] = values
	}
	return NewTableFromColumns(order, data), nil
}

func stringifyArrowArray(chunk arrow.Array) []string {
	if str, ok := chunk.(*array.String); ok {
		out := make([]string, str.Len())
		for i := 0; i < str.Len(); i++ {
			if str.IsNull(i) {
				continue
			}
			out[i] = str.Value(i)
		}
		return out
	}
	out := make([]string, chunk.Len())
	for i := 0; i < chunk.Len(); i++ {
		if chunk.IsNull(i) {
			continue
		}
		out[i] = chunk.ValueStr(i)
	}
	return out
}

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
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ToArrow converts a Table into an Arrow table, the engine's egress
// format (spec §6). Every column is emitted as a nullable Arrow string
// column, in schema order.
func (t *Table) ToArrow() arrow.Table {
	pool := memory.NewGoAllocator()
	fields := make([]arrow.Field, len(t.schema))
	arrays := make([]arrow.Array, len(t.schema))
	for i, c := range t.schema {
		fields[i] = arrow.Field{Name: c.Name, Type: arrow.BinaryTypes.String, Nullable: true}
		builder := array.NewStringBuilder(pool)
		for _, cell := range t.columns[c.Name] {
			if cell == nil {
				builder.AppendNull()
				continue
			}
			builder.Append(*cell)
		}
		arrays[i] = builder.NewArray()
		builder.Release()
	}
	schema := arrow.NewSchema(fields, nil)
	columns := make([]arrow.Column, len(fields))
	for i, field := range fields {
		chunked := arrow.NewChunked(field.Type, []arrow.Array{arrays[i]})
		columns[i] = *arrow.NewColumn(field, chunked)
		chunked.Release()
		arrays[i].Release()
	}
	return array.NewTable(schema, columns, int64(t.Len()))
}

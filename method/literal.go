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
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// Literal is an inner equi-join on the tuple of ignorant columns across
// both sides. Every surviving pair gets degree "1.0" (spec §4.3).
func Literal(data1, data2 *gotmsql.Table, fieldmap1, fieldmap2 map[string]string, fieldOrder []string, index int, ticker Ticker) *gotmsql.Table {
	// There is no way to report literal-join progress live, so -- like
	// the original -- report just two ticks: before and after the join.
	var tick func()
	if ticker != nil {
		tick = ticker(2)
	}

	leftKeys := make([]string, len(fieldOrder))
	rightKeys := make([]string, len(fieldOrder))
	for i, field := range fieldOrder {
		leftKeys[i] = IgnorantColumn(index, fieldmap1[field])
		rightKeys[i] = IgnorantColumn(index, fieldmap2[field])
	}
	if tick != nil {
		tick()
	}

	joined := gotmsql.InnerJoin(data2, data1, rightKeys, leftKeys)
	joined = withConstantDegree(joined, index, "1.0")
	if tick != nil {
		tick()
	}
	return joined
}

func withConstantDegree(t *gotmsql.Table, index int, value string) *gotmsql.Table {
	values := make([]*string, t.Len())
	for i := range values {
		v := value
		values[i] = &v
	}
	return t.WithColumn(DegreeColumn(index), gotmsql.StringType, values)
}

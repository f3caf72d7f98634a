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

package match

import (
	"context"

	"gopkg.in/src-d/go-textmatch.v0/linker"
	"gopkg.in/src-d/go-textmatch.v0/method"
	"gopkg.in/src-d/go-textmatch.v0/plan"
	gotmsql "gopkg.in/src-d/go-textmatch.v0/sql"
)

// Chain runs the full ordered list of resolved blocks (spec §4.5): block
// 0 against the full tables, block i (>0) against block i-1's surviving
// pairs. If any block returns zero pairs the chain stops immediately --
// remaining blocks never run, and the empty table is the final result
// (spec §4.4 step 4, §8 "empty intermediate result terminates the
// chain"). newLinker builds a fresh Linker for each bilenko block; a nil
// factory falls back to linker.NewReference(0).
func Chain(ctx context.Context, blocks []plan.ResolvedBlock, data1, data2 *gotmsql.Table, progress Progress, alert method.Alert, labeler linker.Labeler, newLinker func() linker.Linker) (*gotmsql.Table, error) {
	var parent *gotmsql.Table
	for _, block := range blocks {
		var lnk linker.Linker
		if block.Method == plan.Bilenko && newLinker != nil {
			lnk = newLinker()
		}
		result, err := RunBlock(ctx, block, data1, data2, parent, progress, alert, labeler, lnk)
		if err != nil {
			return nil, err
		}
		if result.Len() == 0 {
			return result, nil
		}
		parent = result
	}
	return parent, nil
}

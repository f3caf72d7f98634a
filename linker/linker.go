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

// Package linker models the supervised active-learning collaborator the
// bilenko method delegates to (spec §9: "modeled as an external
// collaborator with an interface {prepareTraining, uncertainPairs,
// markPairs, train, join}; the engine owns only the labeling UI loop and
// result materialization"). ReferenceLinker is an in-memory
// implementation built on the kernels already wired for levenshtein/jaro,
// not a new dependency.
package linker

import (
	"context"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrInsufficientTraining is returned by Train when neither class (match
// or distinct) has received a label yet.
var ErrInsufficientTraining = errors.NewKind("not enough training has been completed to run a match")

// Record is one row projected down to the match-column values the linker
// classifies on, in field declaration order.
type Record struct {
	ID     string
	Fields []string
}

// Pair references one candidate record from each side.
type Pair struct {
	Record1 Record
	Record2 Record
}

// Response is a human verdict on an uncertain Pair.
type Response string

const (
	ResponseMatch    Response = "y"
	ResponseDistinct Response = "n"
	ResponseSkip     Response = "s"
	ResponseFinished Response = "f"
)

// Label attaches a verdict to a Pair for MarkPairs.
type Label struct {
	Pair  Pair
	Match bool
}

// Labeler asks a human whether a Pair refers to the same thing, returning
// one of the four Response values (spec §6 "label(pair) -> {y,n,s,f}").
// ctx carries cancellation for a blocking implementation (e.g. the CLI
// one reading stdin) to observe.
type Labeler func(ctx context.Context, pair Pair) (Response, error)

// Joined is one matched pair out of Join, with its computed degree.
type Joined struct {
	ID1, ID2 string
	Degree   float64
}

// Linker is the supervised-linking collaborator. PrepareTraining seeds
// the candidate pool; UncertainPairs returns the next batch worth
// labeling; MarkPairs records verdicts; Train fits the classifier,
// failing with ErrInsufficientTraining until both classes have at least
// one label; Join scores every candidate pair and returns those at or
// above threshold.
type Linker interface {
	PrepareTraining(records1, records2 []Record)
	UncertainPairs() []Pair
	MarkPairs(labels []Label)
	Train() error
	Join(records1, records2 []Record, threshold float64) []Joined
}

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

package linker

import (
	"sort"

	"github.com/antzucaro/matchr"
)

// defaultSampleSize mirrors the Dedupe-docs sample size the original used
// for prepare_training.
const defaultSampleSize = 15000

// ReferenceLinker is an in-memory Linker. It classifies a candidate pair
// by the mean Jaro-Winkler similarity of its match columns and learns a
// decision boundary from labeled examples: the midpoint between the mean
// similarity of labeled matches and the mean similarity of labeled
// distinct pairs. Uncertain pairs are those whose similarity sits closest
// to that boundary (margin sampling).
type ReferenceLinker struct {
	sampleSize int
	candidates []Pair
	labeled    map[pairKey]bool
	matched    []Pair
	distinct   []Pair
	bias       float64
}

// NewReference builds a ReferenceLinker. sampleSize caps how many
// candidate pairs PrepareTraining keeps for labeling; 0 uses
// defaultSampleSize.
func NewReference(sampleSize int) *ReferenceLinker {
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}
	return &ReferenceLinker{sampleSize: sampleSize, labeled: map[pairKey]bool{}}
}

type pairKey string

func keyOf(p Pair) pairKey { return pairKey(p.Record1.ID + "\x00" + p.Record2.ID) }

// PrepareTraining builds the candidate pool from the full cross product,
// evenly subsampled down to sampleSize when the cross product is larger.
func (l *ReferenceLinker) PrepareTraining(records1, records2 []Record) {
	total := len(records1) * len(records2)
	if total == 0 || len(records2) == 0 {
		return
	}
	stride := 1
	if total > l.sampleSize {
		stride = (total + l.sampleSize - 1) / l.sampleSize
		if stride < 1 {
			stride = 1
		}
	}
	for k := 0; k < total; k += stride {
		i, j := k/len(records2), k%len(records2)
		l.candidates = append(l.candidates, Pair{Record1: records1[i], Record2: records2[j]})
	}
}

func (l *ReferenceLinker) similarity(p Pair) float64 {
	n := len(p.Record1.Fields)
	if len(p.Record2.Fields) < n {
		n = len(p.Record2.Fields)
	}
	if n == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += matchr.JaroWinkler(p.Record1.Fields[i], p.Record2.Fields[i])
	}
	return total / float64(n)
}

// UncertainPairs returns up to ten unlabeled candidates whose similarity
// is closest to the current decision boundary.
func (l *ReferenceLinker) UncertainPairs() []Pair {
	const batch = 10
	type scored struct {
		pair   Pair
		margin float64
	}
	var ranked []scored
	for _, p := range l.candidates {
		if l.labeled[keyOf(p)] {
			continue
		}
		margin := l.similarity(p) - l.bias
		if margin < 0 {
			margin = -margin
		}
		ranked = append(ranked, scored{pair: p, margin: margin})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].margin < ranked[j].margin })
	if len(ranked) > batch {
		ranked = ranked[:batch]
	}
	out := make([]Pair, len(ranked))
	for i, r := range ranked {
		out[i] = r.pair
	}
	return out
}

// MarkPairs records verdicts against the candidate pool.
func (l *ReferenceLinker) MarkPairs(labels []Label) {
	for _, label := range labels {
		l.labeled[keyOf(label.Pair)] = true
		if label.Match {
			l.matched = append(l.matched, label.Pair)
		} else {
			l.distinct = append(l.distinct, label.Pair)
		}
	}
}

// Train fits the decision boundary. It fails with ErrInsufficientTraining
// until at least one match and one distinct label have been recorded.
func (l *ReferenceLinker) Train() error {
	if len(l.matched) == 0 || len(l.distinct) == 0 {
		return ErrInsufficientTraining.New()
	}
	l.bias = (l.meanSimilarity(l.matched) + l.meanSimilarity(l.distinct)) / 2
	return nil
}

func (l *ReferenceLinker) meanSimilarity(pairs []Pair) float64 {
	total := 0.0
	for _, p := range pairs {
		total += l.similarity(p)
	}
	return total / float64(len(pairs))
}

// Join scores every pair in the full cross product and keeps those at or
// above threshold ("many-to-many", matching the original's join mode).
func (l *ReferenceLinker) Join(records1, records2 []Record, threshold float64) []Joined {
	var out []Joined
	for _, r1 := range records1 {
		for _, r2 := range records2 {
			degree := l.similarity(Pair{Record1: r1, Record2: r2})
			if degree >= threshold {
				out = append(out, Joined{ID1: r1.ID, ID2: r2.ID, Degree: degree})
			}
		}
	}
	return out
}

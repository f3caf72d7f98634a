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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrLabelingCancelled is returned when ctx is cancelled mid-prompt, or
// the input stream closes before a "finished" response arrives -- the
// Go-idiomatic equivalent of the original's SIGINT handling during
// bilenko labeling (spec §5 cancellation, §7 LabelingCancelled).
var ErrLabelingCancelled = errors.NewKind("labeling cancelled")

var (
	instruction = color.New(color.Bold, color.FgBlue)
	prompt      = color.New(color.Bold, color.FgBlue)
	fieldName   = color.New(color.Bold)
)

// CLILabeler builds a Labeler that prints each pair's fields to writer
// and reads a y/n/s/f response from reader, reprompting on anything
// else -- the Go port of bilenko.py's label(). fields1/fields2 are the
// user-facing field names to print alongside each side's values, in
// declaration order.
func CLILabeler(reader io.Reader, writer io.Writer, fields1, fields2 []string) Labeler {
	fieldWidth := 0
	for _, f := range append(append([]string{}, fields1...), fields2...) {
		if len(f) > fieldWidth {
			fieldWidth = len(f)
		}
	}

	lines := make(chan string)
	var startOnce sync.Once
	start := func() {
		scanner := bufio.NewScanner(reader)
		go func() {
			for scanner.Scan() {
				lines <- scanner.Text()
			}
			close(lines)
		}()
	}

	instructed := false
	return func(ctx context.Context, pair Pair) (Response, error) {
		startOnce.Do(start)
		if !instructed {
			instruction.Fprintln(writer, "\nTo answer questions:\n y - yes\n n - no\n s - skip\n f - finished")
			instructed = true
		}

		fmt.Fprintln(writer)
		printRecord(writer, fieldWidth, fields1, pair.Record1)
		printRecord(writer, fieldWidth, fields2, pair.Record2)
		fmt.Fprintln(writer)

		for {
			prompt.Fprint(writer, "Do these records refer to the same thing? [y/n/s/f] ")
			select {
			case <-ctx.Done():
				return "", ErrLabelingCancelled.New()
			case line, ok := <-lines:
				if !ok {
					return "", ErrLabelingCancelled.New()
				}
				switch response := Response(strings.TrimSpace(line)); response {
				case ResponseMatch, ResponseDistinct, ResponseSkip, ResponseFinished:
					fmt.Fprintln(writer)
					return response, nil
				}
			}
		}
	}
}

func printRecord(writer io.Writer, fieldWidth int, fields []string, record Record) {
	fmt.Fprintln(writer)
	for i, field := range fields {
		value := ""
		if i < len(record.Fields) {
			value = record.Fields[i]
		}
		spacer := strings.Repeat(" ", fieldWidth-len(field))
		fmt.Fprint(writer, spacer)
		fieldName.Fprintf(writer, "%s: ", field)
		fmt.Fprintln(writer, value)
	}
}

// RunLabelingLoop drives one round of active-learning labeling: ask
// labeler about every pair lnk.UncertainPairs() currently returns,
// accumulating match/distinct verdicts (skip contributes neither), and
// reports them to lnk.MarkPairs once a "finished" response arrives or
// the batch is exhausted (spec §4.3 step 3).
func RunLabelingLoop(ctx context.Context, labeler Labeler, lnk Linker) error {
	var labels []Label
	for _, pair := range lnk.UncertainPairs() {
		response, err := labeler(ctx, pair)
		if err != nil {
			return err
		}
		switch response {
		case ResponseMatch:
			labels = append(labels, Label{Pair: pair, Match: true})
		case ResponseDistinct:
			labels = append(labels, Label{Pair: pair, Match: false})
		case ResponseFinished:
			lnk.MarkPairs(labels)
			return nil
		}
	}
	lnk.MarkPairs(labels)
	return nil
}

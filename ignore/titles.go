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

package ignore

import (
	_ "embed"
	"strings"
)

//go:embed titles.txt
var titlesResource string

// titlesPatterns returns the built-in honorifics/post-nominals
// vocabulary, one regex alternation atom per line (spec §6).
func titlesPatterns() []string {
	lines := strings.Split(strings.TrimRight(titlesResource, "\n"), "\n")
	patterns := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

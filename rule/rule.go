/*
 * Copyright 2019 The Kythe Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package rule implements the regex matcher wrapper and the ordered rule
// set that drive word classification: an ordered list of named patterns,
// the first of which to match a given sub-word wins.
//
// Patterns rely on \p{...}/\P{...} Unicode property classes and on both
// \A and \Z anchors. Go's standard library regexp (RE2) has \z but not
// \Z, so the matcher is instead built on github.com/dlclark/regexp2, a
// backtracking engine that supports both.
package rule

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Rule pairs a unique id with its compiled pattern.
type Rule struct {
	ID      string
	Pattern string
	re      *regexp2.Regexp
}

// Compile builds a Rule, returning an error naming the pattern text on
// failure.
func Compile(id, pattern string) (*Rule, error) {
	re, err := regexp2.Compile(pattern, regexp2.Unicode)
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid pattern %q: %w", id, pattern, err)
	}
	return &Rule{ID: id, Pattern: pattern, re: re}, nil
}

// MatchAll reports whether the pattern matches anywhere in input and, if so,
// the unmatched prefix and suffix plus the match's captures in order (or the
// whole match if the pattern defines no capturing groups).
func (r *Rule) MatchAll(input string) (ok bool, prefix, suffix string, captures []string, err error) {
	m, err := r.re.FindStringMatch(input)
	if err != nil {
		return false, "", "", nil, err
	}
	if m == nil {
		return false, "", "", nil, nil
	}
	runes := []rune(input)
	prefix = string(runes[:m.Index])
	suffix = string(runes[m.Index+m.Length:])

	groups := m.Groups()
	if len(groups) > 1 {
		for _, g := range groups[1:] {
			if len(g.Captures) == 0 {
				continue
			}
			captures = append(captures, g.String())
		}
	} else {
		captures = []string{m.String()}
	}
	return true, prefix, suffix, captures, nil
}

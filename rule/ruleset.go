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

package rule

import (
	"fmt"
	"log"

	"bitbucket.org/creachadair/stringset"
)

// Set is an ordered collection of named rules. Order is significant: the
// first rule whose pattern matches a given sub-word wins (spec.md §3, §4.4).
type Set struct {
	rules []*Rule
	ids   stringset.Set
}

// NewSet returns an empty rule Set.
func NewSet() *Set {
	return &Set{ids: stringset.New()}
}

// Add appends a rule, returning an error if its id is already present
// (spec.md §3: "rule ids are unique within a configuration").
func (s *Set) Add(r *Rule) error {
	if s.ids.Contains(r.ID) {
		return fmt.Errorf("duplicate rule id %q", r.ID)
	}
	s.ids.Add(r.ID)
	s.rules = append(s.rules, r)
	return nil
}

// Rules returns the rules in their current order.
func (s *Set) Rules() []*Rule { return s.rules }

// Reorder applies a [RULE-ORDER] directive: rules are reordered to match
// order, and any user rule whose id is absent from order keeps its relative
// position, appended after the ordered ones, with a logged diagnostic
// (spec.md §4.4). Ids in order that name no configured rule are likewise
// logged and ignored, matching the original tool's own RULE-ORDER warning.
func (s *Set) Reorder(order []string) {
	byID := make(map[string]*Rule, len(s.rules))
	for _, r := range s.rules {
		byID[r.ID] = r
	}

	seen := stringset.New()
	reordered := make([]*Rule, 0, len(s.rules))
	for _, id := range order {
		r, ok := byID[id]
		if !ok {
			log.Printf("RULE-ORDER specified for undefined rule %q", id)
			continue
		}
		reordered = append(reordered, r)
		seen.Add(id)
	}
	for _, r := range s.rules {
		if !seen.Contains(r.ID) {
			log.Printf("rule %q not present in RULE-ORDER, appending in declaration order", r.ID)
			reordered = append(reordered, r)
		}
	}
	s.rules = reordered
}

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

// Package quote implements the configured quote-pair registry and the
// runtime stack of unresolved opening quotes used by sentence and quote
// bound detection.
package quote

import "strings"

// Pair is a configured (open, close) alternative-character set. A single
// pair may register several alternative open or close characters, e.g.
// open="“„‟" close="”".
type Pair struct {
	Open  string
	Close string
}

// Registry holds the configured quote Pairs and answers membership queries
// against them. It is immutable after configuration loading.
type Registry struct {
	pairs []Pair
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a pair of open/close alternative-character strings.
func (r *Registry) Add(openAlts, closeAlts string) {
	r.pairs = append(r.pairs, Pair{Open: openAlts, Close: closeAlts})
}

// Pairs returns the configured pairs in registration order.
func (r *Registry) Pairs() []Pair { return r.pairs }

// LookupClose returns the open-alternatives string of the pair whose close
// set contains c, and true, or ("", false) if c closes no configured pair.
func (r *Registry) LookupClose(c rune) (string, bool) {
	for _, p := range r.pairs {
		if strings.ContainsRune(p.Close, c) {
			return p.Open, true
		}
	}
	return "", false
}

// LookupOpen returns the close-alternatives string of the pair whose open
// set contains c, and true, or ("", false) if c opens no configured pair.
func (r *Registry) LookupOpen(c rune) (string, bool) {
	for _, p := range r.pairs {
		if strings.ContainsRune(p.Open, c) {
			return p.Close, true
		}
	}
	return "", false
}

// IsQuote reports whether c is ASCII apostrophe, ASCII double-quote,
// full-width double-quote, or appears in the open or close set of any
// configured pair.
func (r *Registry) IsQuote(c rune) bool {
	switch c {
	case '\'', '"', '＂':
		return true
	}
	for _, p := range r.pairs {
		if strings.ContainsRune(p.Open, c) || strings.ContainsRune(p.Close, c) {
			return true
		}
	}
	return false
}

// DefaultRegistry returns a registry preloaded with the common quote pairs:
// ("\"","\""), ('‘','’'), ("“„‟","”").
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Add(`"`, `"`)
	r.Add("‘", "’")
	r.Add("“„‟", "”")
	return r
}

// entry is one unresolved opening quote recorded on the Stack.
type entry struct {
	Index int  // buffer index of the opening quote token
	Char  rune // the actual opening character matched
}

// Stack is the runtime stack of unresolved opening quotes, indexed by
// token-buffer position. Re-indexed whenever the buffer is flushed.
type Stack struct {
	entries []entry
}

// NewStack returns an empty Stack.
func NewStack() *Stack { return &Stack{} }

// Push records an unresolved opening quote at buffer index idx.
func (s *Stack) Push(idx int, c rune) {
	s.entries = append(s.entries, entry{idx, c})
}

// EraseAt removes the stack entry at stackIndex (not a buffer index).
func (s *Stack) EraseAt(stackIndex int) {
	s.entries = append(s.entries[:stackIndex], s.entries[stackIndex+1:]...)
}

// Lookup searches the stack top-down for the most recent entry whose
// character appears in openAlts. It returns the entry's buffer index and,
// as stackIdx, its position in the stack slice. It returns (-1, -1) if no
// entry matches.
func (s *Stack) Lookup(openAlts string) (bufIdx, stackIdx int) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if strings.ContainsRune(openAlts, s.entries[i].Char) {
			return s.entries[i].Index, i
		}
	}
	return -1, -1
}

// Empty reports whether the stack holds no unresolved opens.
func (s *Stack) Empty() bool { return len(s.entries) == 0 }

// Len returns the number of unresolved opens currently on the stack.
func (s *Stack) Len() int { return len(s.entries) }

// Reset discards every unresolved entry, as happens at a paragraph break.
func (s *Stack) Reset() { s.entries = nil }

// FlushStack subtracts n from every stored buffer index (the buffer's front
// n tokens were just flushed) and drops any entry whose index becomes
// negative.
func (s *Stack) FlushStack(n int) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		e.Index -= n
		if e.Index >= 0 {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

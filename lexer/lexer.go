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

// Package lexer implements the tokenizer line engine: whitespace and
// explicit-end-of-sentence-marker splitting, plus the recursive per-word
// rule dispatch that classifies each resulting word. It walks a
// normalized line code point by code point and recursively re-applies a
// configured, ordered rule.Set to each unmatched remainder.
package lexer

import (
	"log"
	"unicode"
	"unicode/utf8"

	"github.com/corpuskit/tokenize/normalize"
	"github.com/corpuskit/tokenize/rule"
	"github.com/corpuskit/tokenize/token"
)

// DefaultExplicitEOS is the default explicit-end-of-sentence marker.
const DefaultExplicitEOS = "<utt>"

// Engine turns normalized, filtered input lines into tokens appended to a
// shared token.Buffer. It holds no per-line state, so a single Engine may
// be reused across every line of a run.
type Engine struct {
	Rules       *rule.Set
	Form        normalize.Form
	Filter      *normalize.Filter
	ExplicitEOS string
}

// NewEngine returns an Engine with NFC normalization and the default
// explicit-EOS marker; callers may override either field before first use.
func NewEngine(rules *rule.Set) *Engine {
	return &Engine{
		Rules:       rules,
		Form:        normalize.NFC,
		ExplicitEOS: DefaultExplicitEOS,
	}
}

// TokenizeLine normalizes and filters line, then splits it on whitespace
// into candidate words and dispatches each, appending the resulting
// tokens to buf. It returns the number of tokens appended.
//
// A line that fails UTF-8 decoding is never tokenized: it is logged and
// skipped entirely, mirroring the original tokenizer's isBogus() guard on
// the decoded input string.
func (e *Engine) TokenizeLine(buf *token.Buffer, line string) int {
	before := buf.Len()

	if !utf8.ValidString(line) {
		log.Print(token.NewCodingError("invalid UTF-8 in input line, skipping: %q", line))
		return 0
	}

	normalized := normalize.String(e.Form, line)
	if e.Filter != nil {
		normalized = e.Filter.Apply(normalized)
	}

	runes := []rune(normalized)
	var word []rune
	needsRules := false

	flush := func() {
		if len(word) == 0 {
			return
		}
		w := string(word)
		word = word[:0]
		n := needsRules
		needsRules = false
		e.dispatchWord(buf, w, n)
	}

	for _, r := range runes {
		if unicode.IsSpace(r) {
			flush()
			continue
		}
		word = append(word, r)
		if unicode.IsPunct(r) || unicode.IsDigit(r) {
			needsRules = true
		}
	}
	flush()

	return buf.Len() - before
}

// dispatchWord implements the per-word-boundary decision: explicit-EOS
// splitting, then either the no-further-tokenization fast path or a full
// descent into the rule-based word tokenizer.
func (e *Engine) dispatchWord(buf *token.Buffer, word string, needsRules bool) {
	if marker := e.ExplicitEOS; marker != "" && runeLen(word) >= runeLen(marker) {
		if idx := lastRuneIndex(word, marker); idx != -1 {
			wr := []rune(word)
			mr := []rune(marker)
			prefix := string(wr[:idx])
			suffix := string(wr[idx+len(mr):])
			if prefix != "" {
				e.tokenizeWord(buf, prefix, false)
			}
			if last := buf.Last(); last != nil {
				last.Role = last.Role.Set(token.EndOfSentence)
			} else {
				log.Printf("lexer: explicit EOS marker found with an empty token buffer, ignoring")
			}
			if suffix != "" {
				suffixStart := buf.Len()
				e.tokenizeWord(buf, suffix, true)
				if buf.Len() > suffixStart {
					head := buf.At(suffixStart)
					head.Role = head.Role.Set(token.BeginOfSentence)
				}
			}
			return
		}
	}

	if !needsRules {
		// Single word with no punctuation or digit code points: no need
		// for further tokenization.
		buf.Append(token.Token{Type: token.Word, Text: word})
		return
	}
	e.tokenizeWord(buf, word, true)
}

// tokenizeWord is the recursive rule-dispatch word tokenizer. space
// reports whether the fragment is followed by whitespace (or is at a
// line boundary that behaves as if it were); it is threaded through
// recursive calls so every emitted token gets the correct NoSpace role.
func (e *Engine) tokenizeWord(buf *token.Buffer, input string, space bool) {
	if input == e.ExplicitEOS {
		if last := buf.Last(); last != nil {
			last.Role = last.Role.Set(token.EndOfSentence)
		} else {
			log.Printf("lexer: explicit EOS marker found by itself, this has no effect")
		}
		return
	}

	runes := []rune(input)
	if len(runes) == 1 {
		e.tokenizeSingle(buf, runes[0], space)
		return
	}

	if e.Rules != nil {
		for _, r := range e.Rules.Rules() {
			ok, prefix, suffix, captures, err := r.MatchAll(input)
			if err != nil {
				log.Printf("lexer: rule %q failed on %q: %v", r.ID, input, err)
				continue
			}
			if !ok {
				continue
			}
			if prefix != "" {
				e.tokenizeWord(buf, prefix, false)
			}
			matchSpace := space
			if suffix != "" {
				matchSpace = false
			}
			for _, m := range captures {
				buf.Append(token.Token{Type: r.ID, Text: m, Role: spaceRole(matchSpace)})
			}
			if suffix != "" {
				e.tokenizeWord(buf, suffix, space)
			}
			return
		}
	}

	// No rule matched: emit the whole fragment as a single WORD token
	// rather than dropping it.
	buf.Append(token.Token{Type: token.Word, Text: input, Role: spaceRole(space)})
}

// tokenizeSingle classifies a lone code point without running the rule
// table, matching the fast path for one-character fragments.
func (e *Engine) tokenizeSingle(buf *token.Buffer, c rune, space bool) {
	var typ string
	switch {
	case unicode.IsPunct(c):
		if unicode.Is(unicode.Sc, c) {
			typ = token.Currency
		} else {
			typ = token.Punctuation
		}
	case unicode.IsLetter(c):
		typ = token.Word
	case unicode.IsDigit(c):
		typ = token.Number
	case unicode.IsSpace(c):
		return
	case unicode.Is(unicode.Sc, c):
		typ = token.Currency
	default:
		typ = token.Unknown
	}
	buf.Append(token.Token{Type: typ, Text: string(c), Role: spaceRole(space)})
}

func spaceRole(space bool) token.Role {
	if space {
		return 0
	}
	return token.NoSpace
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// lastRuneIndex returns the rune index of the last occurrence of sub in s,
// or -1.
func lastRuneIndex(s, sub string) int {
	sr := []rune(s)
	subr := []rune(sub)
	for i := len(sr) - len(subr); i >= 0; i-- {
		if runesEqual(sr[i:i+len(subr)], subr) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

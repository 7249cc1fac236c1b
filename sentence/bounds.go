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

// Package sentence implements sentence- and quote-bound detection over a
// token buffer, plus extraction and flushing of completed sentences.
package sentence

import (
	"strings"
	"unicode"

	"github.com/corpuskit/tokenize/quote"
	"github.com/corpuskit/tokenize/token"
)

// DefaultEOSMarkers is the default end-of-sentence marker set, used when no
// [EOSMARKERS] section is configured.
const DefaultEOSMarkers = "!?"

// caseDistinguishingScripts holds the scripts in which upper/title case is
// meaningful for end-of-sentence and begin-of-sentence detection. Basic
// Latin is approximated by the ASCII range, since Go's unicode package
// exposes scripts rather than the finer-grained Unicode blocks.
var caseDistinguishingScripts = []*unicode.RangeTable{
	unicode.Greek,
	unicode.Cyrillic,
	unicode.Georgian,
	unicode.Armenian,
	unicode.Deseret,
}

func isCaseDistinguishing(c rune) bool {
	if c < 0x80 {
		return true
	}
	for _, rt := range caseDistinguishingScripts {
		if unicode.Is(rt, c) {
			return true
		}
	}
	return false
}

// isBOS reports whether c, as the first code point of some token, can start
// a new sentence: it lies in a case-distinguishing script and is upper or
// title case.
func isBOS(c rune) bool {
	return isCaseDistinguishing(c) && (unicode.IsUpper(c) || unicode.IsTitle(c))
}

// Detector runs the single forward pass described by the sentence- and
// quote-bound algorithm over newly appended tokens.
type Detector struct {
	Registry     *quote.Registry
	EOSMarkers   string
	DetectQuotes bool
}

// NewDetector returns a Detector with the default EOS marker set and quote
// detection enabled.
func NewDetector(registry *quote.Registry) *Detector {
	return &Detector{
		Registry:     registry,
		EOSMarkers:   DefaultEOSMarkers,
		DetectQuotes: true,
	}
}

func (d *Detector) eosMarkers() string {
	if d.EOSMarkers == "" {
		return DefaultEOSMarkers
	}
	return d.EOSMarkers
}

// detectEOS applies the EOS test to the token at index i in buf.
func (d *Detector) detectEOS(buf *token.Buffer, i int) bool {
	t := buf.At(i)
	c := t.FirstRune()
	if c == '.' {
		if i+1 == buf.Len() {
			return true
		}
		next := buf.At(i + 1).FirstRune()
		if isCaseDistinguishing(next) {
			return unicode.IsUpper(next) || unicode.IsTitle(next) || unicode.IsPunct(next)
		}
		return true
	}
	return strings.ContainsRune(d.eosMarkers(), c)
}

// DetectSentenceBounds runs the forward pass over buf[offset:], marking
// ENDOFSENTENCE/BEGINOFSENTENCE/TEMPENDOFSENTENCE and, if quote detection
// is enabled, BEGINQUOTE/ENDQUOTE, consulting and mutating stack as it
// goes. A NEWPARAGRAPH-marked token discards any quotes left open from a
// previous paragraph.
func (d *Detector) DetectSentenceBounds(buf *token.Buffer, stack *quote.Stack, offset int) {
	size := buf.Len()
	for i := offset; i < size; i++ {
		t := buf.At(i)
		if t.Role.Has(token.NewParagraph) {
			stack.Reset()
		}
		if !t.IsPunctuation() {
			continue
		}

		if d.detectEOS(buf, i) {
			if d.DetectQuotes && !stack.Empty() {
				t.Role = t.Role.Set(token.TempEndOfSentence)
				if i > 0 {
					prev := buf.At(i - 1)
					if prev.Role.Has(token.TempEndOfSentence) {
						prev.Role = prev.Role.Clear(token.TempEndOfSentence)
					}
				}
			} else {
				t.Role = t.Role.Set(token.EndOfSentence)
				if i+1 < size {
					next := buf.At(i + 1)
					if !next.Role.Has(token.BeginOfSentence) {
						next.Role = next.Role.Set(token.BeginOfSentence)
					}
				}
				if i > 0 {
					prev := buf.At(i - 1)
					if prev.Role.Has(token.EndOfSentence) && !prev.Role.Has(token.BeginOfSentence) {
						prev.Role = prev.Role.Clear(token.EndOfSentence)
						if t.Role.Has(token.BeginOfSentence) {
							t.Role = t.Role.Clear(token.BeginOfSentence)
						}
					}
				}
			}
		}

		if d.DetectQuotes {
			d.detectQuoteBounds(buf, stack, i)
		}
	}
}

// detectQuoteBounds implements one step of quote detection for the token
// at index i.
func (d *Detector) detectQuoteBounds(buf *token.Buffer, stack *quote.Stack, i int) {
	c := buf.At(i).FirstRune()
	switch c {
	case '\'', '"', '＂':
		if !d.resolveQuote(buf, stack, i, string(c)) {
			stack.Push(i, c)
		}
		return
	}
	if _, ok := d.Registry.LookupOpen(c); ok {
		stack.Push(i, c)
		return
	}
	if open, ok := d.Registry.LookupClose(c); ok {
		d.resolveQuote(buf, stack, i, open)
	}
}

// resolveQuote implements resolveQuote(end_idx, open_alts): it searches
// stack for the most recent unresolved open matching openAlts and, if
// found, decides whether the span between it and endIdx is a balanced
// quoted span. It returns false only when no matching open is found on
// the stack (so the caller should instead treat the character at endIdx
// as a new open).
func (d *Detector) resolveQuote(buf *token.Buffer, stack *quote.Stack, endIdx int, openAlts string) bool {
	beginIdx, stackIdx := stack.Lookup(openAlts)
	if beginIdx < 0 {
		return false
	}

	beginSentence := beginIdx + 1
	expectingEnd := 0
	subQuote := 0
	for i := beginSentence; i < endIdx; i++ {
		t := buf.At(i)
		if t.Role.Has(token.BeginQuote) {
			subQuote++
		}
		if subQuote == 0 {
			if t.Role.Has(token.BeginOfSentence) {
				expectingEnd++
			}
			if t.Role.Has(token.EndOfSentence) {
				expectingEnd--
			}
			if t.Role.Has(token.TempEndOfSentence) {
				t.Role = t.Role.Clear(token.TempEndOfSentence).Set(token.EndOfSentence)
				begin := buf.At(beginSentence)
				begin.Role = begin.Role.Set(token.BeginOfSentence)
				beginSentence = i + 1
			}
		} else if t.Role.Has(token.EndQuote) && t.Role.Has(token.EndOfSentence) {
			begin := buf.At(beginSentence)
			begin.Role = begin.Role.Set(token.BeginOfSentence)
			beginSentence = i + 1
		}
		if t.Role.Has(token.EndQuote) {
			subQuote--
		}
	}

	marked := false
	switch {
	case expectingEnd == 0 && subQuote == 0:
		buf.At(beginIdx).Role = buf.At(beginIdx).Role.Set(token.BeginQuote)
		buf.At(endIdx).Role = buf.At(endIdx).Role.Set(token.EndQuote)
		marked = true
	case expectingEnd == 1 && subQuote == 0 && !buf.At(endIdx-1).Role.Has(token.EndOfSentence):
		buf.At(endIdx - 1).Role = buf.At(endIdx - 1).Role.Set(token.EndOfSentence)
		buf.At(beginIdx).Role = buf.At(beginIdx).Role.Set(token.BeginQuote)
		buf.At(endIdx).Role = buf.At(endIdx).Role.Set(token.EndQuote)
		marked = true
	}
	stack.EraseAt(stackIdx)

	if marked && buf.At(endIdx-1).Role.Has(token.EndOfSentence) {
		size := buf.Len()
		switch {
		case endIdx+1 == size:
			buf.At(endIdx).Role = buf.At(endIdx).Role.Set(token.EndOfSentence)
		case endIdx+1 < size && isBOS(buf.At(endIdx+1).FirstRune()):
			buf.At(endIdx).Role = buf.At(endIdx).Role.Set(token.EndOfSentence)
		case endIdx+2 < size && d.Registry.IsQuote(buf.At(endIdx+1).FirstRune()) && isBOS(buf.At(endIdx+2).FirstRune()):
			buf.At(endIdx).Role = buf.At(endIdx).Role.Set(token.EndOfSentence)
		case endIdx+2 == size && d.Registry.IsQuote(buf.At(endIdx+1).FirstRune()):
			buf.At(endIdx).Role = buf.At(endIdx).Role.Set(token.EndOfSentence)
		}
	}
	return true
}

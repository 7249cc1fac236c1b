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

package sentence

import (
	"github.com/corpuskit/tokenize/quote"
	"github.com/corpuskit/tokenize/token"
)

// CountSentences counts the quote-level-0 ENDOFSENTENCE markers currently
// buffered. If force is set, every unpaired TEMPENDOFSENTENCE is first
// promoted to ENDOFSENTENCE (with BEGINOFSENTENCE set on its associated
// sentence start), and if the final buffered token still lacks
// ENDOFSENTENCE it is forcibly marked, so that every buffered token ends
// up inside exactly one sentence.
func CountSentences(buf *token.Buffer, force bool) int {
	if force {
		promoteUnpaired(buf)
	}

	count := 0
	quoteLevel := 0
	for i := 0; i < buf.Len(); i++ {
		t := buf.At(i)
		if t.Role.Has(token.EndQuote) {
			quoteLevel--
		}
		if quoteLevel == 0 && t.Role.Has(token.EndOfSentence) {
			count++
		}
		if t.Role.Has(token.BeginQuote) {
			quoteLevel++
		}
	}

	if force && buf.Len() > 0 {
		last := buf.Last()
		if !last.Role.Has(token.EndOfSentence) {
			last.Role = last.Role.Set(token.EndOfSentence)
			count++
		}
	}
	return count
}

// promoteUnpaired converts every TEMPENDOFSENTENCE still standing into a
// real ENDOFSENTENCE, assigning BEGINOFSENTENCE to the token that starts
// the sentence it closes.
func promoteUnpaired(buf *token.Buffer) {
	begin := 0
	for i := 0; i < buf.Len(); i++ {
		t := buf.At(i)
		switch {
		case t.Role.Has(token.TempEndOfSentence):
			t.Role = t.Role.Clear(token.TempEndOfSentence).Set(token.EndOfSentence)
			b := buf.At(begin)
			b.Role = b.Role.Set(token.BeginOfSentence)
			begin = i + 1
		case t.Role.Has(token.EndOfSentence):
			begin = i + 1
		}
	}
}

// GetSentence returns the tokens of the k-th (zero-based) quote-level-0
// sentence: from its BEGINOFSENTENCE token through its matching
// ENDOFSENTENCE token, inclusive. It returns a RangeError if fewer than
// k+1 complete sentences are buffered, or a LogicError if the buffered
// quote roles are unbalanced (an EndQuote with no prior BeginQuote).
func GetSentence(buf *token.Buffer, k int) ([]token.Token, error) {
	quoteLevel := 0
	sentenceIdx := -1
	start := -1

	for i := 0; i < buf.Len(); i++ {
		t := buf.At(i)
		if t.Role.Has(token.EndQuote) {
			quoteLevel--
			if quoteLevel < 0 {
				return nil, token.NewLogicError("quote level went negative at buffered token %d: unmatched end-quote", i)
			}
		}
		if quoteLevel == 0 && t.Role.Has(token.BeginOfSentence) {
			sentenceIdx++
			if sentenceIdx == k {
				start = i
			}
		}
		if quoteLevel == 0 && sentenceIdx == k && start >= 0 && t.Role.Has(token.EndOfSentence) {
			result := make([]token.Token, i-start+1)
			copy(result, buf.Slice(start, i+1))
			return result, nil
		}
		if t.Role.Has(token.BeginQuote) {
			quoteLevel++
		}
	}
	return nil, token.NewRangeError("sentence %d requested, only %d complete sentences buffered", k, sentenceIdx+1)
}

// FlushSentences removes every buffered token up to and including the
// n-th (one-based count) quote-level-0 ENDOFSENTENCE, sets BEGINOFSENTENCE
// on the new head token, and re-indexes stack to match. It returns a
// RangeError if fewer than n sentences are buffered, or a LogicError if
// the buffered quote roles are unbalanced (an EndQuote with no prior
// BeginQuote).
func FlushSentences(buf *token.Buffer, stack *quote.Stack, n int) error {
	quoteLevel := 0
	count := 0
	cut := -1

	for i := 0; i < buf.Len(); i++ {
		t := buf.At(i)
		if t.Role.Has(token.EndQuote) {
			quoteLevel--
			if quoteLevel < 0 {
				return token.NewLogicError("quote level went negative at buffered token %d: unmatched end-quote", i)
			}
		}
		if quoteLevel == 0 && t.Role.Has(token.EndOfSentence) {
			count++
			if count == n {
				cut = i
				break
			}
		}
		if t.Role.Has(token.BeginQuote) {
			quoteLevel++
		}
	}
	if cut < 0 {
		return token.NewRangeError("cannot flush %d sentences, only %d buffered", n, count)
	}

	removed := cut + 1
	buf.Flush(removed)
	if buf.Len() > 0 {
		head := buf.At(0)
		head.Role = head.Role.Set(token.BeginOfSentence)
	}
	stack.FlushStack(removed)
	return nil
}

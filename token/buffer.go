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

package token

// Buffer is the shared, ordered sequence of tokens the tokenizer appends to
// and flushes from. It is owned exclusively by a single tokenizer instance
// and is not safe for concurrent mutation.
type Buffer struct {
	toks []Token
}

// Len returns the number of buffered tokens.
func (b *Buffer) Len() int { return len(b.toks) }

// At returns a pointer to the i-th buffered token, for in-place role edits.
func (b *Buffer) At(i int) *Token { return &b.toks[i] }

// Last returns a pointer to the final buffered token, or nil if empty.
func (b *Buffer) Last() *Token {
	if len(b.toks) == 0 {
		return nil
	}
	return &b.toks[len(b.toks)-1]
}

// Append adds a token to the back of the buffer and returns its index.
func (b *Buffer) Append(t Token) int {
	b.toks = append(b.toks, t)
	return len(b.toks) - 1
}

// Slice returns the buffered tokens from lo (inclusive) to hi (exclusive).
func (b *Buffer) Slice(lo, hi int) []Token {
	return b.toks[lo:hi]
}

// All returns every buffered token.
func (b *Buffer) All() []Token {
	return b.toks
}

// Flush removes the first n tokens from the buffer and returns them.
func (b *Buffer) Flush(n int) []Token {
	if n <= 0 {
		return nil
	}
	if n > len(b.toks) {
		n = len(b.toks)
	}
	flushed := make([]Token, n)
	copy(flushed, b.toks[:n])
	b.toks = append([]Token(nil), b.toks[n:]...)
	return flushed
}

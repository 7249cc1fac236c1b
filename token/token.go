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

// Package token implements the shared token data model: the Token tuple of
// (type, text, role), the Role bitset, and the mutable Buffer that the
// tokenizer appends to and flushes from.
//
// Role is a bitset rather than a single enum value, since a token must
// carry several independent flags at once (for example ENDQUOTE and
// ENDOFSENTENCE on the same closing-quote token).
package token

import "strings"

// Closed set of built-in token types. Rule-matched tokens instead carry the
// matching rule's id as their Type.
const (
	Word        = "WORD"
	Number      = "NUMBER"
	Punctuation = "PUNCTUATION"
	Currency    = "CURRENCY"
	Unknown     = "UNKNOWN"
)

// Role is a bitset of per-token flags.
type Role uint16

const (
	NoSpace Role = 1 << iota
	BeginOfSentence
	EndOfSentence
	TempEndOfSentence
	NewParagraph
	BeginQuote
	EndQuote
)

var roleNames = []struct {
	bit  Role
	name string
}{
	{NoSpace, "NOSPACE"},
	{BeginOfSentence, "BEGINOFSENTENCE"},
	{EndOfSentence, "ENDOFSENTENCE"},
	{TempEndOfSentence, "TEMPENDOFSENTENCE"},
	{NewParagraph, "NEWPARAGRAPH"},
	{BeginQuote, "BEGINQUOTE"},
	{EndQuote, "ENDQUOTE"},
}

// Has reports whether r contains every bit in mask.
func (r Role) Has(mask Role) bool { return r&mask == mask }

// Set returns r with mask's bits set.
func (r Role) Set(mask Role) Role { return r | mask }

// Clear returns r with mask's bits cleared.
func (r Role) Clear(mask Role) Role { return r &^ mask }

// String renders the set flags in the fixed order of the glossary, for
// verbose-mode output and test failure messages.
func (r Role) String() string {
	var names []string
	for _, rn := range roleNames {
		if r.Has(rn.bit) {
			names = append(names, rn.name)
		}
	}
	return strings.Join(names, " ")
}

// Token is a single classified unit of text.
type Token struct {
	// Type is one of the built-in constants above or a configured rule id.
	Type string
	Text string
	Role Role
}

// IsPunctuation reports whether t's Type begins with "PUNCTUATION" (a rule
// id such as "PUNCTUATION-EM-DASH" still counts).
func (t Token) IsPunctuation() bool {
	return strings.HasPrefix(t.Type, Punctuation)
}

// FirstRune returns the first code point of t.Text, or 0 for an empty
// token.
func (t Token) FirstRune() rune {
	for _, r := range t.Text {
		return r
	}
	return 0
}

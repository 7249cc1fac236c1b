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

package main

import (
	"strings"
	"testing"

	"github.com/corpuskit/tokenize/token"
)

func TestSplitParagraphs(t *testing.T) {
	tokens := []token.Token{
		{Type: token.Word, Text: "One", Role: token.NewParagraph | token.BeginOfSentence},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence},
		{Type: token.Word, Text: "Two", Role: token.NewParagraph | token.BeginOfSentence},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence},
	}
	got := splitParagraphs(tokens)
	if len(got) != 2 {
		t.Fatalf("splitParagraphs returned %d paragraphs, want 2", len(got))
	}
	if len(got[0]) != 2 || len(got[1]) != 2 {
		t.Fatalf("splitParagraphs sizes = %d, %d, want 2, 2", len(got[0]), len(got[1]))
	}
}

func TestSplitSentences(t *testing.T) {
	tokens := []token.Token{
		{Type: token.Word, Text: "One", Role: token.BeginOfSentence},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence},
		{Type: token.Word, Text: "Two", Role: token.BeginOfSentence},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence},
	}
	got := splitSentences(tokens)
	if len(got) != 2 {
		t.Fatalf("splitSentences returned %d sentences, want 2", len(got))
	}
	for i, s := range got {
		if len(s) != 2 {
			t.Errorf("sentence %d has %d tokens, want 2", i, len(s))
		}
	}
}

func TestNewDriverLoadsConfig(t *testing.T) {
	var b strings.Builder
	d, err := newDriver(&b, WithConfig("main.cfg", t.TempDir()))
	if err == nil {
		t.Fatalf("newDriver with a nonexistent config file should fail, got driver %+v", d)
	}
}

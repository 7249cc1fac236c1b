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

package writer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/corpuskit/tokenize/token"
)

func TestWriteSentencePlain(t *testing.T) {
	var b strings.Builder
	w := New(&b)

	sentence := []token.Token{
		{Type: token.Word, Text: "Hello", Role: token.NoSpace},
		{Type: token.Punctuation, Text: ",", Role: 0},
		{Type: token.Word, Text: "world", Role: token.NoSpace},
		{Type: token.Punctuation, Text: "!", Role: token.EndOfSentence | token.NoSpace},
	}
	if err := w.WriteSentence(sentence, false); err != nil {
		t.Fatalf("WriteSentence: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if diff := cmp.Diff("Hello, world!", b.String()); diff != "" {
		t.Error("unexpected output:\n", diff)
	}
}

func TestWriteSentenceParagraphEnd(t *testing.T) {
	var b strings.Builder
	w := New(&b)

	sentence := []token.Token{
		{Type: token.Word, Text: "Done", Role: token.NoSpace},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence | token.NoSpace},
	}
	if err := w.WriteSentence(sentence, true); err != nil {
		t.Fatalf("WriteSentence: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "Done.<utt>\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Error("unexpected output:\n", diff)
	}
}

func TestWriteSentencePerLine(t *testing.T) {
	var b strings.Builder
	w := New(&b)
	w.PerLine = true

	sentence := []token.Token{
		{Type: token.Word, Text: "Hi", Role: token.NoSpace},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence | token.NoSpace},
	}
	if err := w.WriteSentence(sentence, false); err != nil {
		t.Fatalf("WriteSentence: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if diff := cmp.Diff("Hi.\n", b.String()); diff != "" {
		t.Error("unexpected output:\n", diff)
	}
}

func TestWriteSentenceCaseFolding(t *testing.T) {
	var b strings.Builder
	w := New(&b)
	w.Case = Upper

	sentence := []token.Token{
		{Type: token.Word, Text: "shout", Role: 0},
	}
	if err := w.WriteSentence(sentence, false); err != nil {
		t.Fatalf("WriteSentence: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if diff := cmp.Diff("SHOUT ", b.String()); diff != "" {
		t.Error("unexpected output:\n", diff)
	}
}

func TestWriteParagraphBreak(t *testing.T) {
	var b strings.Builder
	w := New(&b)

	first := []token.Token{
		{Type: token.Word, Text: "One", Role: token.NoSpace},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence | token.NoSpace},
	}
	second := []token.Token{
		{Type: token.Word, Text: "Two", Role: token.NewParagraph | token.BeginOfSentence | token.NoSpace},
		{Type: token.Punctuation, Text: ".", Role: token.EndOfSentence | token.NoSpace},
	}
	if err := w.WriteSentence(first, true); err != nil {
		t.Fatalf("WriteSentence: %v", err)
	}
	if err := w.WriteParagraphBreak(); err != nil {
		t.Fatalf("WriteParagraphBreak: %v", err)
	}
	if err := w.WriteSentence(second, true); err != nil {
		t.Fatalf("WriteSentence: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "One.<utt>\n\nTwo.<utt>\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Error("unexpected output:\n", diff)
	}
}

func TestWriteTokenVerbose(t *testing.T) {
	var b strings.Builder
	w := New(&b)
	w.Verbose = true

	tok := token.Token{Type: token.Word, Text: "Quoted", Role: token.BeginOfSentence | token.BeginQuote}
	if err := w.WriteToken(tok, false); err != nil {
		t.Fatalf("WriteToken: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if diff := cmp.Diff("Quoted\tWORD\tBEGINOFSENTENCE BEGINQUOTE\n", b.String()); diff != "" {
		t.Error("unexpected output:\n", diff)
	}
}

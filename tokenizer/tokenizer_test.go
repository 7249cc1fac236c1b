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

package tokenizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corpuskit/tokenize/config"
	"github.com/corpuskit/tokenize/token"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

// newTestTokenizer builds a Tokenizer from a configuration carrying a
// single generic punctuation-splitting rule, standing in for the kind of
// default rule set a real deployment ships (the distilled section-only
// templates alone cover abbreviations/tokens/affixes, not plain trailing
// punctuation).
func newTestTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "main.cfg", "[RULES]\nPUNCTUATION-GENERIC=\\p{P}\n")
	cfg, err := config.Load("main.cfg", dir)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return New(cfg)
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tk := range toks {
		out[i] = tk.Text
	}
	return out
}

func TestTokenizeLineHelloWorld(t *testing.T) {
	tz := newTestTokenizer(t)
	if _, err := tz.TokenizeLine("Hello world."); err != nil {
		t.Fatalf("TokenizeLine: %v", err)
	}
	if n := tz.CountSentences(false); n != 1 {
		t.Fatalf("CountSentences = %d, want 1", n)
	}
	s, err := tz.GetSentence(0)
	if err != nil {
		t.Fatalf("GetSentence: %v", err)
	}
	if diff := strings.Join(texts(s), "|"); diff != "Hello|world|." {
		t.Errorf("sentence = %q, want %q", diff, "Hello|world|.")
	}
	if !s[0].Role.Has(token.BeginOfSentence) {
		t.Error("first token should carry BEGINOFSENTENCE")
	}
	if !s[2].Role.Has(token.EndOfSentence) {
		t.Error("last token should carry ENDOFSENTENCE")
	}
}

func TestTokenizeLineQuotedExclamation(t *testing.T) {
	tz := newTestTokenizer(t)
	if _, err := tz.TokenizeLine(`"Hi!", he said.`); err != nil {
		t.Fatalf("TokenizeLine: %v", err)
	}
	s, err := tz.GetSentence(0)
	if err != nil {
		t.Fatalf("GetSentence: %v", err)
	}
	for _, tk := range s {
		if tk.Role.Has(token.TempEndOfSentence) {
			t.Errorf("token %q still carries TEMPENDOFSENTENCE", tk.Text)
		}
	}
	begins, ends := 0, 0
	for _, tk := range s {
		if tk.Role.Has(token.BeginQuote) {
			begins++
		}
		if tk.Role.Has(token.EndQuote) {
			ends++
		}
	}
	if begins != ends {
		t.Errorf("BEGINQUOTE count %d != ENDQUOTE count %d", begins, ends)
	}
	if !s[len(s)-1].Role.Has(token.EndOfSentence) {
		t.Error("final token should carry ENDOFSENTENCE")
	}
}

func TestTokenizeLineExplicitEOS(t *testing.T) {
	tz := newTestTokenizer(t)
	if _, err := tz.TokenizeLine("ok<utt>next"); err != nil {
		t.Fatalf("TokenizeLine: %v", err)
	}
	if n := tz.CountSentences(true); n != 2 {
		t.Fatalf("CountSentences(true) = %d, want 2", n)
	}
	first, err := tz.GetSentence(0)
	if err != nil {
		t.Fatalf("GetSentence(0): %v", err)
	}
	if diff := strings.Join(texts(first), "|"); diff != "ok" {
		t.Errorf("first sentence = %q, want %q", diff, "ok")
	}
	if !first[0].Role.Has(token.EndOfSentence) {
		t.Error("ok should carry ENDOFSENTENCE")
	}
}

func TestTokenizeLineParagraphBreakFlushes(t *testing.T) {
	tz := newTestTokenizer(t)
	if _, err := tz.TokenizeLine("foo"); err != nil {
		t.Fatalf("TokenizeLine(foo): %v", err)
	}
	flushed, err := tz.TokenizeLine("")
	if err != nil {
		t.Fatalf("TokenizeLine(\"\"): %v", err)
	}
	if len(flushed) != 1 || flushed[0].Text != "foo" {
		t.Fatalf("flushed = %+v, want a single forced-EOS foo token", flushed)
	}
	if !flushed[0].Role.Has(token.EndOfSentence) {
		t.Error("force-flushed foo should carry ENDOFSENTENCE")
	}

	if _, err := tz.TokenizeLine("bar"); err != nil {
		t.Fatalf("TokenizeLine(bar): %v", err)
	}
	tz.CountSentences(true)
	s, err := tz.GetSentence(0)
	if err != nil {
		t.Fatalf("GetSentence: %v", err)
	}
	if !s[0].Role.Has(token.NewParagraph) {
		t.Error("bar should carry NEWPARAGRAPH after the blank line")
	}
	if !s[0].Role.Has(token.BeginOfSentence) {
		t.Error("bar should carry BEGINOFSENTENCE")
	}
}

func TestTokenizeStream(t *testing.T) {
	tz := newTestTokenizer(t)
	toks, err := tz.TokenizeStream(strings.NewReader("foo\n\nbar\n"))
	if err != nil {
		t.Fatalf("TokenizeStream: %v", err)
	}
	got := texts(toks)
	want := []string{"foo", "bar"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("TokenizeStream texts = %v, want %v", got, want)
	}
	for _, tk := range toks {
		if !tk.Role.Has(token.EndOfSentence) {
			t.Errorf("token %q should carry ENDOFSENTENCE", tk.Text)
		}
	}
}

func TestFlushSentencesHeadGetsBeginOfSentence(t *testing.T) {
	tz := newTestTokenizer(t)
	if _, err := tz.TokenizeLine("One. Two."); err != nil {
		t.Fatalf("TokenizeLine: %v", err)
	}
	if err := tz.FlushSentences(1); err != nil {
		t.Fatalf("FlushSentences: %v", err)
	}
	s, err := tz.GetSentence(0)
	if err != nil {
		t.Fatalf("GetSentence: %v", err)
	}
	if !s[0].Role.Has(token.BeginOfSentence) {
		t.Error("new head token should carry BEGINOFSENTENCE after flush")
	}
}

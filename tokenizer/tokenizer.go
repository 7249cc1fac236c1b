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

// Package tokenizer assembles the line engine, the sentence/quote-bound
// detector, and the shared token buffer and quote stack into a single
// stateful engine with the external interface described by a configuration:
// tokenize a line, count, fetch and flush completed sentences, and drive an
// entire stream.
package tokenizer

import (
	"bufio"
	"io"
	"strings"

	"github.com/corpuskit/tokenize/config"
	"github.com/corpuskit/tokenize/lexer"
	"github.com/corpuskit/tokenize/quote"
	"github.com/corpuskit/tokenize/sentence"
	"github.com/corpuskit/tokenize/token"
)

// Tokenizer owns the token buffer, the quote stack, and the line and
// detection engines built from a loaded Config. Every method runs to
// completion before returning; no method may be called concurrently on the
// same instance.
type Tokenizer struct {
	buf      *token.Buffer
	stack    *quote.Stack
	lex      *lexer.Engine
	detector *sentence.Detector

	DetectBounds    bool // run the sentence/quote detector after each line
	SentencePerLine bool // tokenizeStream appends " <utt>" to every non-blank line

	paragraphSignal bool
}

// New builds a Tokenizer from a loaded configuration.
func New(cfg *config.Config) *Tokenizer {
	lex := lexer.NewEngine(cfg.Rules)
	lex.Form = cfg.Form
	lex.Filter = cfg.Filter
	if cfg.ExplicitEOS != "" {
		lex.ExplicitEOS = cfg.ExplicitEOS
	}

	detector := sentence.NewDetector(cfg.Registry)
	detector.EOSMarkers = cfg.EOSMarkers

	return &Tokenizer{
		buf:             &token.Buffer{},
		stack:           quote.NewStack(),
		lex:             lex,
		detector:        detector,
		DetectBounds:    true,
		paragraphSignal: true,
	}
}

// TokenizeLine tokenizes one line of input, appending to the internal
// buffer. It applies the pending paragraph signal to the first newly
// appended token, then (if enabled) runs sentence/quote-bound detection over
// the newly appended region. A blank line (after trimming) instead sets the
// paragraph signal and force-flushes every pending sentence; it returns the
// force-flushed tokens in that case.
func (t *Tokenizer) TokenizeLine(line string) ([]token.Token, error) {
	if strings.TrimSpace(line) == "" {
		t.paragraphSignal = true
		return t.forceFlush()
	}

	before := t.buf.Len()
	t.lex.TokenizeLine(t.buf, line)
	after := t.buf.Len()
	if after == before {
		return nil, nil
	}

	if t.paragraphSignal {
		head := t.buf.At(before)
		head.Role = head.Role.Set(token.NewParagraph | token.BeginOfSentence)
		t.paragraphSignal = false
	}

	if t.DetectBounds {
		t.detector.DetectSentenceBounds(t.buf, t.stack, before)
	}
	return nil, nil
}

// forceFlush promotes every unpaired TEMPENDOFSENTENCE and the final
// buffered token to ENDOFSENTENCE, then flushes every completed sentence.
func (t *Tokenizer) forceFlush() ([]token.Token, error) {
	n := sentence.CountSentences(t.buf, true)
	if n == 0 {
		return nil, nil
	}
	var flushed []token.Token
	for i := 0; i < n; i++ {
		s, err := sentence.GetSentence(t.buf, 0)
		if err != nil {
			return flushed, err
		}
		if err := sentence.FlushSentences(t.buf, t.stack, 1); err != nil {
			return flushed, err
		}
		flushed = append(flushed, s...)
	}
	return flushed, nil
}

// CountSentences reports the number of complete (quote-level-0) sentences
// currently buffered. If force is set, every unpaired TEMPENDOFSENTENCE and
// the final buffered token are first promoted to ENDOFSENTENCE.
func (t *Tokenizer) CountSentences(force bool) int {
	return sentence.CountSentences(t.buf, force)
}

// GetSentence returns the tokens of the k-th (zero-based) complete sentence
// without removing them from the buffer.
func (t *Tokenizer) GetSentence(k int) ([]token.Token, error) {
	return sentence.GetSentence(t.buf, k)
}

// FlushSentences removes the first n complete sentences from the buffer.
func (t *Tokenizer) FlushSentences(n int) error {
	return sentence.FlushSentences(t.buf, t.stack, n)
}

// TokenizeStream consumes r line by line, stripping a trailing "\r" from
// each line and, if SentencePerLine is set, appending " <utt>" to every
// non-blank line before tokenizing. Blank lines and EOF each trigger a paragraph break and a
// forced flush. It returns every completed sentence's tokens, concatenated
// in order.
func (t *Tokenizer) TokenizeStream(r io.Reader) ([]token.Token, error) {
	var all []token.Token
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if t.SentencePerLine && strings.TrimSpace(line) != "" {
			line += " " + t.lex.ExplicitEOS
		}
		flushed, err := t.TokenizeLine(line)
		if err != nil {
			return all, err
		}
		all = append(all, flushed...)
	}
	if err := scanner.Err(); err != nil {
		return all, err
	}
	flushed, err := t.forceFlush()
	all = append(all, flushed...)
	return all, err
}

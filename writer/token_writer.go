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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/corpuskit/tokenize/token"
)

// Case selects how a token's literal text is folded before being written.
type Case int

const (
	AsIs Case = iota
	Lower
	Upper
)

// DefaultEOSMark is written in place of a paragraph-ending ENDOFSENTENCE
// token's trailing space when not in per-line mode.
const DefaultEOSMark = "<utt>"

// TokenWriter formats a token stream as plain or verbose text.
type TokenWriter struct {
	w       *bufio.Writer
	Verbose bool
	Case    Case
	PerLine bool
	EOSMark string
}

// New creates a TokenWriter writing to w.
func New(w io.Writer) *TokenWriter {
	return &TokenWriter{w: bufio.NewWriter(w), EOSMark: DefaultEOSMark}
}

func (tw *TokenWriter) eosMark() string {
	if tw.EOSMark == "" {
		return DefaultEOSMark
	}
	return tw.EOSMark
}

func (tw *TokenWriter) fold(s string) string {
	switch tw.Case {
	case Lower:
		return strings.ToLower(s)
	case Upper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// WriteToken writes a single token. endsParagraph is true when t is the
// last token of a sentence that itself ends a paragraph (the caller, which
// knows whether the next appended token will carry NEWPARAGRAPH, supplies
// this; the writer never looks ahead on its own).
func (tw *TokenWriter) WriteToken(t token.Token, endsParagraph bool) error {
	text := tw.fold(t.Text)
	if tw.Verbose {
		_, err := fmt.Fprintf(tw.w, "%s\t%s\t%s\n", text, t.Type, t.Role.String())
		return err
	}
	if err := tw.writeString(text); err != nil {
		return err
	}
	switch {
	case t.Role.Has(token.EndOfSentence) && endsParagraph:
		if tw.PerLine {
			return tw.writeString("\n")
		}
		if err := tw.writeString(tw.eosMark()); err != nil {
			return err
		}
		return tw.writeString("\n")
	case t.Role.Has(token.EndOfSentence) && tw.PerLine:
		return tw.writeString("\n")
	case t.Role.Has(token.NoSpace):
		return nil
	default:
		return tw.writeString(" ")
	}
}

// WriteSentence writes every token of a sentence in order, then a trailing
// separator appropriate to whether the sentence ends its paragraph.
func (tw *TokenWriter) WriteSentence(tokens []token.Token, endsParagraph bool) error {
	for i, t := range tokens {
		if err := tw.WriteToken(t, endsParagraph && i == len(tokens)-1); err != nil {
			return err
		}
	}
	return nil
}

// WriteParagraphBreak writes the blank line that separates two consecutive
// paragraphs; callers emit it between paragraphs, never after the last one.
func (tw *TokenWriter) WriteParagraphBreak() error {
	return tw.writeString("\n")
}

func (tw *TokenWriter) writeString(s string) error {
	_, err := tw.w.WriteString(s)
	return err
}

// Flush flushes any buffered output to the underlying writer.
func (tw *TokenWriter) Flush() error {
	return tw.w.Flush()
}

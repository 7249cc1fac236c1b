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

// Command tokenize reads lines of text from stdin or a named file,
// tokenizes and sentence-splits them against a configured rule and quote
// set, and writes the result as plain or verbose text.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/corpuskit/tokenize/config"
	"github.com/corpuskit/tokenize/token"
	"github.com/corpuskit/tokenize/tokenizer"
	"github.com/corpuskit/tokenize/writer"
)

type options struct {
	configName string
	configDir  string
	perLine    bool
	verbose    bool
	caseFold   writer.Case
	eosMark    string
}

type driver struct {
	o options
	t *tokenizer.Tokenizer
	w *writer.TokenWriter
}

// Option configures a driver at construction time.
type Option func(*options)

// WithConfig names the configuration file and the directory a plain
// (slash-free) name resolves against.
func WithConfig(name, dir string) Option {
	return func(o *options) {
		o.configName = name
		o.configDir = dir
	}
}

// SentencePerLine treats every input line as exactly one sentence,
// appending the explicit end-of-sentence marker before tokenizing it.
func SentencePerLine(v bool) Option {
	return func(o *options) { o.perLine = v }
}

// Verbose switches output to the one-token-per-line
// `<text>\t<type>\t<roles>` form.
func Verbose(v bool) Option {
	return func(o *options) { o.verbose = v }
}

// Fold lower- or upper-cases every token's text on output.
func Fold(c writer.Case) Option {
	return func(o *options) { o.caseFold = c }
}

// EOSMark overrides the default "<utt>" end-of-sentence marker printed
// in non-verbose, non-per-line output.
func EOSMark(mark string) Option {
	return func(o *options) { o.eosMark = mark }
}

func newDriver(w io.Writer, opts ...Option) (*driver, error) {
	o := options{configName: "main.cfg", configDir: config.DefaultConfigDir}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := config.Load(o.configName, o.configDir)
	if err != nil {
		return nil, err
	}

	tw := writer.New(w)
	tw.Verbose = o.verbose
	tw.Case = o.caseFold
	tw.PerLine = o.perLine
	if o.eosMark != "" {
		tw.EOSMark = o.eosMark
	}

	tz := tokenizer.New(cfg)
	tz.SentencePerLine = o.perLine

	return &driver{o: o, t: tz, w: tw}, nil
}

// run tokenizes every line of r and writes every completed sentence to the
// driver's writer, splitting the flat token stream back into paragraphs and
// sentences by their NEWPARAGRAPH/ENDOFSENTENCE roles so a blank line
// separates consecutive paragraphs.
func (d *driver) run(r io.Reader) error {
	tokens, err := d.t.TokenizeStream(r)
	if err != nil {
		return err
	}
	for pi, paragraph := range splitParagraphs(tokens) {
		if pi > 0 {
			if err := d.w.WriteParagraphBreak(); err != nil {
				return err
			}
		}
		sentences := splitSentences(paragraph)
		for si, s := range sentences {
			if err := d.w.WriteSentence(s, si == len(sentences)-1); err != nil {
				return err
			}
		}
	}
	return d.w.Flush()
}

// splitParagraphs splits a flat token stream at every NEWPARAGRAPH-marked
// token.
func splitParagraphs(tokens []token.Token) [][]token.Token {
	var paragraphs [][]token.Token
	start := 0
	for i, t := range tokens {
		if i > 0 && t.Role.Has(token.NewParagraph) {
			paragraphs = append(paragraphs, tokens[start:i])
			start = i
		}
	}
	if start < len(tokens) {
		paragraphs = append(paragraphs, tokens[start:])
	}
	return paragraphs
}

// splitSentences splits a single paragraph's tokens at every ENDOFSENTENCE-
// marked token (inclusive).
func splitSentences(tokens []token.Token) [][]token.Token {
	var sentences [][]token.Token
	start := 0
	for i, t := range tokens {
		if t.Role.Has(token.EndOfSentence) {
			sentences = append(sentences, tokens[start:i+1])
			start = i + 1
		}
	}
	if start < len(tokens) {
		sentences = append(sentences, tokens[start:])
	}
	return sentences
}

func main() {
	configPath := flag.String("config", "main.cfg", "configuration file to load")
	configDir := flag.String("configdir", config.DefaultConfigDir, "directory a plain -config name resolves against")
	perLine := flag.Bool("sentenceperline", false, "treat every input line as exactly one sentence")
	verbose := flag.Bool("verbose", false, "write one token per output line, tagged with its type and roles")
	lower := flag.Bool("lowercase", false, "lowercase every token's text on output")
	upper := flag.Bool("uppercase", false, "uppercase every token's text on output")
	eosMark := flag.String("eosmark", "", "end-of-sentence marker to print (default \"<utt>\")")
	flag.Parse()

	fold := writer.AsIs
	switch {
	case *lower && *upper:
		log.Fatal("-lowercase and -uppercase are mutually exclusive")
	case *lower:
		fold = writer.Lower
	case *upper:
		fold = writer.Upper
	}

	d, err := newDriver(os.Stdout,
		WithConfig(*configPath, *configDir),
		SentencePerLine(*perLine),
		Verbose(*verbose),
		Fold(fold),
		EOSMark(*eosMark),
	)
	if err != nil {
		log.Fatal(err)
	}

	var in io.Reader = os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	if err := d.run(in); err != nil {
		log.Fatal(err)
	}
}

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

// Package config loads the sectioned, %include-capable configuration
// format described by the tokenizer's rule, quote, filter and
// end-of-sentence-marker sections into a ready-to-use Config.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/lexer"
	"github.com/creachadair/ini"

	"github.com/corpuskit/tokenize/normalize"
	"github.com/corpuskit/tokenize/quote"
	"github.com/corpuskit/tokenize/rule"
)

// DefaultConfigDir is used to resolve a plain (slash-free) configuration
// name when no other default directory is given.
const DefaultConfigDir = "."

// Config is the fully assembled result of loading a configuration: the
// ordered rule set, the quote-pair registry, the configured end-of-sentence
// marker set, and the character filter.
type Config struct {
	Rules       *rule.Set
	Registry    *quote.Registry
	EOSMarkers  string
	Filter      *normalize.Filter
	Form        normalize.Form
	ExplicitEOS string
}

type mode int

const (
	modeNone mode = iota
	modeRules
	modeRuleOrder
	modeAbbreviations
	modeAttachedPrefixes
	modeAttachedSuffixes
	modePrefixes
	modeSuffixes
	modeTokens
	modeUnits
	modeOrdinals
	modeEOSMarkers
	modeQuotes
	modeFilter
)

var sectionModes = map[string]mode{
	"[RULES]":            modeRules,
	"[RULE-ORDER]":       modeRuleOrder,
	"[ABBREVIATIONS]":    modeAbbreviations,
	"[ATTACHEDPREFIXES]": modeAttachedPrefixes,
	"[ATTACHEDSUFFIXES]": modeAttachedSuffixes,
	"[PREFIXES]":         modePrefixes,
	"[SUFFIXES]":         modeSuffixes,
	"[TOKENS]":           modeTokens,
	"[UNITS]":            modeUnits,
	"[ORDINALS]":         modeOrdinals,
	"[EOSMARKERS]":       modeEOSMarkers,
	"[QUOTES]":           modeQuotes,
	"[FILTER]":           modeFilter,
}

type ruleEntry struct {
	id, pattern string
	pos         lexer.Position
}

type loadState struct {
	includeRoot string
	sections    rule.StandardSections
	ruleEntries []ruleEntry
	ruleOrder   []string
	eosMarkers  strings.Builder
	registry    *quote.Registry
	filter      *normalize.Filter
}

// Load reads the named configuration and assembles a Config. name may be a
// plain name (resolved against defaultDir) or contain a "/", in which case
// it is used as given and its containing directory becomes the include
// root for any %include directives within it.
func Load(name, defaultDir string) (*Config, error) {
	path, includeRoot := resolveConfigPath(name, defaultDir)

	st := &loadState{
		includeRoot: includeRoot,
		registry:    quote.NewRegistry(),
		filter:      normalize.NewFilter(),
	}
	if err := parseMainFile(path, st); err != nil {
		return nil, err
	}

	eosMarkers := st.eosMarkers.String()
	if eosMarkers == "" {
		eosMarkers = "!?"
	}
	if len(st.registry.Pairs()) == 0 {
		st.registry = quote.DefaultRegistry()
	}

	set := rule.NewSet()
	standard, err := rule.BuildStandardRules(st.sections)
	if err != nil {
		return nil, err
	}
	for _, r := range standard {
		if err := set.Add(r); err != nil {
			return nil, err
		}
	}
	for _, e := range st.ruleEntries {
		r, err := rule.Compile(e.id, e.pattern)
		if err != nil {
			return nil, newError(e.pos, "%v", err)
		}
		if err := set.Add(r); err != nil {
			return nil, newError(e.pos, "%v", err)
		}
	}
	if len(st.ruleOrder) > 0 {
		set.Reorder(st.ruleOrder)
	}

	return &Config{
		Rules:      set,
		Registry:   st.registry,
		EOSMarkers: eosMarkers,
		Filter:     st.filter,
		Form:       normalize.NFC,
	}, nil
}

// resolveConfigPath implements the plain-name-vs-path rule: a name
// containing "/" is used as-is, with its containing directory as the
// include root; a plain name resolves against defaultDir.
func resolveConfigPath(name, defaultDir string) (file, includeRoot string) {
	if strings.Contains(name, "/") {
		p := filepath.Clean(name)
		return p, filepath.Dir(p)
	}
	if defaultDir == "" {
		defaultDir = DefaultConfigDir
	}
	return filepath.Join(defaultDir, name), defaultDir
}

// parseMainFile scans the top-level section markers and %include
// directives of path by hand, since neither is part of the generic INI
// grammar creachadair/ini speaks. Everything inside a [RULES] section,
// where the grammar genuinely is "id = pattern", is handed to ini.Parse
// instead of being split by hand; the other sections are heterogeneous
// (bare fragments, "open close" pairs, escape codes) and stay custom.
func parseMainFile(path string, st *loadState) error {
	f, err := os.Open(path)
	if err != nil {
		return newError(lexer.Position{Filename: path}, "cannot open configuration: %v", err)
	}
	defer f.Close()

	cur := modeNone
	var rules rulesAccumulator

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		pos := lexer.Position{Filename: path, Line: line}
		raw := scanner.Text()
		if !utf8.ValidString(raw) {
			return NewCodingError(pos, "invalid UTF-8 in configuration line")
		}
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if m, ok := sectionModes[text]; ok {
			if err := rules.flush(st); err != nil {
				return err
			}
			cur = m
			continue
		}
		if strings.HasPrefix(text, "%include ") {
			if err := rules.flush(st); err != nil {
				return err
			}
			if err := handleInclude(cur, strings.TrimSpace(text[len("%include "):]), st, pos); err != nil {
				return err
			}
			continue
		}
		if cur == modeRules {
			rules.add(pos, text)
			continue
		}
		if err := dispatchLine(cur, text, st, pos); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return newError(lexer.Position{Filename: path}, "reading configuration: %v", err)
	}
	return rules.flush(st)
}

func handleInclude(cur mode, name string, st *loadState, pos lexer.Position) error {
	switch cur {
	case modeRules:
		return includeRules(filepath.Join(st.includeRoot, name+".rule"), st)
	case modeFilter:
		return parseIncludeFile(filepath.Join(st.includeRoot, name+".filter"), cur, st)
	case modeQuotes:
		return parseIncludeFile(filepath.Join(st.includeRoot, name+".quote"), cur, st)
	case modeEOSMarkers:
		return parseIncludeFile(filepath.Join(st.includeRoot, name+".eos"), cur, st)
	default:
		return newError(pos, "%%include not valid outside [RULES], [FILTER], [QUOTES], or [EOSMARKERS]")
	}
}

func parseIncludeFile(path string, cur mode, st *loadState) error {
	f, err := os.Open(path)
	if err != nil {
		return newError(lexer.Position{Filename: path}, "cannot open included file: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		pos := lexer.Position{Filename: path, Line: line}
		raw := scanner.Text()
		if !utf8.ValidString(raw) {
			return NewCodingError(pos, "invalid UTF-8 in included configuration line")
		}
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := dispatchLine(cur, text, st, pos); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// includeRules reads an entire %include'd .rule file as a [RULES] body
// and parses it through the same rulesAccumulator.flush path as the main
// file's own [RULES] section.
func includeRules(path string, st *loadState) error {
	f, err := os.Open(path)
	if err != nil {
		return newError(lexer.Position{Filename: path}, "cannot open included file: %v", err)
	}
	defer f.Close()

	var rules rulesAccumulator
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		pos := lexer.Position{Filename: path, Line: line}
		raw := scanner.Text()
		if !utf8.ValidString(raw) {
			return NewCodingError(pos, "invalid UTF-8 in included configuration line")
		}
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rules.add(pos, text)
	}
	if err := scanner.Err(); err != nil {
		return newError(lexer.Position{Filename: path}, "reading included file: %v", err)
	}
	return rules.flush(st)
}

// rulesAccumulator buffers a run of [RULES]-section body lines (the raw
// "id=pattern" text, plus each line's own position) until the section
// ends, then hands them to ini.Parse in one batch rather than
// hand-splitting each line on its first "=".
type rulesAccumulator struct {
	lines []string
	pos   []lexer.Position
}

func (r *rulesAccumulator) add(pos lexer.Position, text string) {
	r.lines = append(r.lines, text)
	r.pos = append(r.pos, pos)
}

// flush parses the buffered lines, if any, and appends the resulting
// rule entries to st.ruleEntries, then resets the accumulator.
func (r *rulesAccumulator) flush(st *loadState) error {
	if len(r.lines) == 0 {
		return nil
	}
	lines, pos := r.lines, r.pos
	r.lines, r.pos = nil, nil

	idx := 0
	err := ini.Parse(strings.NewReader("[RULES]\n"+strings.Join(lines, "\n")), ini.Handler{
		Section: func(loc ini.Location, name string) error { return nil },
		KeyValue: func(loc ini.Location, key string, values []string) error {
			p := lexer.Position{}
			if idx < len(pos) {
				p = pos[idx]
			}
			idx++
			// ini splits a multi-value right-hand side on commas; rejoin
			// with the same delimiter, since regexp patterns routinely
			// contain literal commas (e.g. a "{2,4}" quantifier) that
			// must not be mistaken for a value-list separator.
			pattern := strings.Join(values, ",")
			if key == "" || pattern == "" {
				return newError(p, "invalid RULES entry: %s", key)
			}
			st.ruleEntries = append(st.ruleEntries, ruleEntry{id: key, pattern: pattern, pos: p})
			return nil
		},
	})
	if err != nil {
		p := lexer.Position{}
		if len(pos) > 0 {
			p = pos[0]
		}
		return newError(p, "parsing [RULES] section: %v", err)
	}
	return nil
}

func dispatchLine(cur mode, text string, st *loadState, pos lexer.Position) error {
	switch cur {
	case modeRuleOrder:
		st.ruleOrder = append(st.ruleOrder, strings.Fields(text)...)
	case modeAbbreviations:
		appendFragment(&st.sections.Abbreviations, text)
	case modeAttachedPrefixes:
		appendFragment(&st.sections.AttachedPrefixes, text)
	case modeAttachedSuffixes:
		appendFragment(&st.sections.AttachedSuffixes, text)
	case modePrefixes:
		appendFragment(&st.sections.Prefixes, text)
	case modeSuffixes:
		appendFragment(&st.sections.Suffixes, text)
	case modeTokens:
		appendFragment(&st.sections.Tokens, text)
	case modeUnits:
		appendFragment(&st.sections.Units, text)
	case modeOrdinals:
		appendFragment(&st.sections.Ordinals, text)
	case modeEOSMarkers:
		if !isUnicodeEscape(text) {
			return newError(pos, "invalid EOSMARKERS entry: %s", text)
		}
		esc := unescape(text)
		if esc == "" {
			return newError(pos, "invalid EOSMARKERS entry: %s", text)
		}
		st.eosMarkers.WriteString(esc)
	case modeQuotes:
		open, close, ok := splitWhitespace(text)
		if !ok || open == "" || close == "" {
			return newError(pos, "invalid QUOTES entry: %s", text)
		}
		st.registry.Add(unescape(open), unescape(close))
	case modeFilter:
		open, close, _ := splitWhitespace(text)
		if open == "" {
			open = text
			close = ""
		}
		open = unescape(open)
		close = unescape(close)
		if len([]rune(open)) != 1 {
			return newError(pos, "invalid FILTER entry: %s", text)
		}
		st.filter.Add([]rune(open)[0], close)
	case modeNone:
		// body text outside any section is ignored.
	default:
		return newError(pos, "unhandled configuration section")
	}
	return nil
}

func appendFragment(dst *string, fragment string) {
	if *dst != "" {
		*dst += "|"
	}
	*dst += fragment
}

func isUnicodeEscape(s string) bool {
	return (strings.HasPrefix(s, `\u`) && len(s) == 6) ||
		(strings.HasPrefix(s, `\U`) && len(s) == 10)
}

// splitWhitespace splits s at its first run of space or tab, trimming both
// halves.
func splitWhitespace(s string) (first, second string, ok bool) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), true
}

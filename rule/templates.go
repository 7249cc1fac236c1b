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

package rule

import (
	"fmt"
	"strings"
)

// StandardSections carries the aggregated, already-`|`-joined alternations
// for each configuration section that backs a fixed-template rule. An empty
// string means the section was absent from configuration, in which case the
// corresponding standard rule is omitted entirely.
type StandardSections struct {
	Abbreviations    string
	AttachedPrefixes string
	AttachedSuffixes string
	Prefixes         string
	Suffixes         string
	Tokens           string
	Ordinals         string

	// Units is parsed from [UNITS] but intentionally produces no rule: no
	// standard template consumes it, the same as upstream, where the
	// analogous UNIT rule template is present only in a comment.
	Units string
}

// standardTemplate names one of the seven fixed rule templates and the
// format string used to expand it against its aggregated section.
type standardTemplate struct {
	id   string
	fmt  string
	body func(StandardSections) string
}

var standardTemplates = []standardTemplate{
	{
		id:  "NUMBER-ORDINAL",
		fmt: `\p{N}+-?(?:%s)(?:\Z|\P{Lu}|\P{Ll})`,
		body: func(s StandardSections) string { return s.Ordinals },
	},
	{
		id:  "ABBREVIATION-KNOWN",
		fmt: `(?:\p{P}*)?(?:\A|[^\p{L}\.])((?:%s)\.)(?:\Z|\P{L})`,
		body: func(s StandardSections) string { return s.Abbreviations },
	},
	{
		id:  "WORD-TOKEN",
		fmt: `(%s)(?:\p{P}*)?$`,
		body: func(s StandardSections) string { return s.Tokens },
	},
	{
		id:  "WORD-WITHPREFIX",
		fmt: `(?:\A|[^\p{Lu}\.]|[^\p{Ll}\.])(?:%s)\p{L}+`,
		body: func(s StandardSections) string { return s.AttachedPrefixes },
	},
	{
		id:  "WORD-WITHSUFFIX",
		fmt: `((?:\p{Lu}|\p{Ll})+(?:%s))(?:\Z|\P{Lu}|\P{Ll})`,
		body: func(s StandardSections) string { return s.AttachedSuffixes },
	},
	{
		id:  "PREFIX",
		fmt: `(?:\A|[^\p{Lu}\.]|[^\p{Ll}\.])(%s)(\p{L}+)`,
		body: func(s StandardSections) string { return s.Prefixes },
	},
	{
		id:  "SUFFIX",
		fmt: `(\p{Lu}|\p{Ll}+)(%s)(?:\Z|\P{L})`,
		body: func(s StandardSections) string { return s.Suffixes },
	},
}

// BuildStandardRules compiles the seven fixed-precedence rules from the
// aggregated section bodies, skipping any whose section is empty. The
// result is always in the fixed precedence order; callers must insert it
// at the front of a Set before any user-declared rules.
func BuildStandardRules(sections StandardSections) ([]*Rule, error) {
	var rules []*Rule
	for _, t := range standardTemplates {
		body := strings.TrimSpace(t.body(sections))
		if body == "" {
			continue
		}
		pat := fmt.Sprintf(t.fmt, body)
		r, err := Compile(t.id, pat)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

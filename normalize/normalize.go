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

// Package normalize applies Unicode normalization and point-wise character
// substitution to input lines, ahead of tokenization (spec.md §4.3). Both
// are pure functions on strings; the owning tokenizer applies them in
// sequence before splitting a line into words.
package normalize

import "golang.org/x/text/unicode/norm"

// Form selects a Unicode normalization form, mirroring norm.Form's four
// variants under the names spec.md uses.
type Form int

const (
	NFC Form = iota
	NFD
	NFKC
	NFKD
)

func (f Form) form() norm.Form {
	switch f {
	case NFD:
		return norm.NFD
	case NFKC:
		return norm.NFKC
	case NFKD:
		return norm.NFKD
	default:
		return norm.NFC
	}
}

// String normalizes s to the given form. Normalization is idempotent:
// String(f, String(f, s)) == String(f, s).
func String(f Form, s string) string {
	return f.form().String(s)
}

// Filter is a point-wise character substitution table: each configured
// source code point maps to a (possibly empty, meaning deletion)
// replacement string.
type Filter struct {
	subs map[rune]string
}

// NewFilter returns an empty Filter (the identity transform).
func NewFilter() *Filter {
	return &Filter{subs: make(map[rune]string)}
}

// Add registers a substitution: src is replaced by dst wherever it occurs.
// An empty dst deletes src.
func (f *Filter) Add(src rune, dst string) {
	f.subs[src] = dst
}

// Apply runs the filter over s, replacing every configured source code
// point with its destination string.
func (f *Filter) Apply(s string) string {
	if len(f.subs) == 0 {
		return s
	}
	var b []byte
	changed := false
	for _, r := range s {
		if dst, ok := f.subs[r]; ok {
			b = append(b, dst...)
			changed = true
		} else {
			b = append(b, string(r)...)
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

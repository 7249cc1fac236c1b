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

package config

import (
	"strconv"
	"strings"
)

// unescape expands backslash escapes in a configuration fragment: \n, \t,
// \r, \\, and \uXXXX / \UXXXXXXXX Unicode code point escapes. Any other
// backslash sequence is passed through with the backslash dropped.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' || i == len(r)-1 {
			b.WriteRune(r[i])
			continue
		}
		i++
		switch r[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '\\':
			b.WriteRune('\\')
		case 'u':
			if i+4 < len(r) {
				if cp, err := strconv.ParseInt(string(r[i+1:i+5]), 16, 32); err == nil {
					b.WriteRune(rune(cp))
					i += 4
					continue
				}
			}
			b.WriteRune(r[i])
		case 'U':
			if i+8 < len(r) {
				if cp, err := strconv.ParseInt(string(r[i+1:i+9]), 16, 32); err == nil {
					b.WriteRune(rune(cp))
					i += 8
					continue
				}
			}
			b.WriteRune(r[i])
		default:
			b.WriteRune(r[i])
		}
	}
	return b.String()
}

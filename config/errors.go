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
	"fmt"

	"github.com/alecthomas/participle/lexer"
)

// Error reports a malformed configuration: bad section syntax, an invalid
// regex pattern, an unresolvable %include, or an unreadable file.
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.Filename == "" && e.Pos.Line == 0 {
		return "config error: " + e.Msg
	}
	return fmt.Sprintf("config error: %s: %s", e.Pos, e.Msg)
}

func newError(pos lexer.Position, format string, args ...interface{}) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// CodingError reports invalid bytes found under the declared input
// encoding while a configuration file was being decoded. Invalid
// tokenizer input lines are reported with token.CodingError instead.
type CodingError struct {
	Pos lexer.Position
	Msg string
}

func (e *CodingError) Error() string {
	if e.Pos.Filename == "" && e.Pos.Line == 0 {
		return "coding error: " + e.Msg
	}
	return fmt.Sprintf("coding error: %s: %s", e.Pos, e.Msg)
}

// NewCodingError builds a CodingError at the given position.
func NewCodingError(pos lexer.Position, format string, args ...interface{}) error {
	return &CodingError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

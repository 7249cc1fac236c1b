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

package token

import (
	"fmt"

	"github.com/alecthomas/participle/lexer"
)

// RangeError reports an out-of-range sentence index: requesting getSentence
// beyond the buffered count, or flushing more sentences than are available.
type RangeError struct {
	Pos lexer.Position
	Msg string
}

func (e *RangeError) Error() string {
	if e.Pos.Line == 0 {
		return "range error: " + e.Msg
	}
	return fmt.Sprintf("range error: %s: %s", e.Pos, e.Msg)
}

// NewRangeError builds a RangeError without position context.
func NewRangeError(format string, args ...interface{}) error {
	return &RangeError{Msg: fmt.Sprintf(format, args...)}
}

// LogicError reports violation of an internal invariant: an unreachable
// branch, or a buffer/quote-stack state the detector never expects to see.
type LogicError struct {
	Msg string
}

func (e *LogicError) Error() string {
	return "logic error: " + e.Msg
}

// NewLogicError builds a LogicError.
func NewLogicError(format string, args ...interface{}) error {
	return &LogicError{Msg: fmt.Sprintf(format, args...)}
}

// CodingError reports invalid bytes found in a line handed to the lexer:
// text that fails UTF-8 decoding under the declared input encoding.
type CodingError struct {
	Msg string
}

func (e *CodingError) Error() string {
	return "coding error: " + e.Msg
}

// NewCodingError builds a CodingError.
func NewCodingError(format string, args ...interface{}) error {
	return &CodingError{Msg: fmt.Sprintf(format, args...)}
}

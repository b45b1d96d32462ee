/*
Copyright 2011-2025 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package huffman

import "github.com/pkg/errors"

// Kind categorizes a failure so callers can branch without string matching.
type Kind int

const (
	// SourceReadFailed means the underlying source returned an error
	// distinct from a clean EOF.
	SourceReadFailed Kind = iota
	// SinkWriteFailed means the underlying sink returned an error.
	SinkWriteFailed
	// BadMagic means the bit-stream header's magic field didn't match.
	BadMagic
	// UnsupportedVersion means the codec header's version field is
	// unrecognized.
	UnsupportedVersion
	// InvalidParameter means a caller-supplied configuration value (L_max,
	// chunk size, ...) was out of range.
	InvalidParameter
	// CorruptStream means a structural check (Kraft sum, table bounds,
	// truncated payload) failed while decoding.
	CorruptStream
	// LengthLimitingFailed means the length-limiting algorithm could not
	// bring the Kraft sum within bounds.
	LengthLimitingFailed
)

func (k Kind) String() string {
	switch k {
	case SourceReadFailed:
		return "SourceReadFailed"
	case SinkWriteFailed:
		return "SinkWriteFailed"
	case BadMagic:
		return "BadMagic"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case InvalidParameter:
		return "InvalidParameter"
	case CorruptStream:
		return "CorruptStream"
	case LengthLimitingFailed:
		return "LengthLimitingFailed"
	default:
		return "Unknown"
	}
}

// Error is the error type returned across every exported boundary of this
// package. It carries a Kind alongside the usual wrapped cause chain.
type Error struct {
	Kind Kind
	msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

func wrapError(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, msg: msg, Err: errors.WithStack(cause)}
}

// KindOf extracts the Kind carried by err, if any was attached by this
// package. The second return is false for an error this package didn't
// produce.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

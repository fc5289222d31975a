// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buid

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is wrapped by every error NewLayout returns.
var ErrInvalidLayout = errors.New("buid: invalid layout")

// LengthMismatchError reports that a byte sequence handed to
// [Layout.Parse] does not have the layout's total length. Callers use
// errors.As to recover the two lengths for diagnostics.
type LengthMismatchError struct {
	// Expected is the layout's total length N.
	Expected int
	// Actual is the length of the rejected input.
	Actual int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("buid: expected %d bytes, got %d", e.Expected, e.Actual)
}

// SegmentLengthError reports that one of the parts passed to
// [Layout.Compose] has the wrong length for its segment.
type SegmentLengthError struct {
	// Segment is "prefix", "content" or "suffix".
	Segment  string
	Expected int
	Actual   int
}

func (e *SegmentLengthError) Error() string {
	return fmt.Sprintf("buid: %s segment expected %d bytes, got %d", e.Segment, e.Expected, e.Actual)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buid

import "fmt"

// Layout describes how an identifier kind partitions its fixed-length
// buffer. The zero Layout is not valid; use NewLayout or MustLayout.
//
// Layout is a small comparable value. Copy it freely.
type Layout struct {
	// contentEnd is N-E, precomputed so accessors never recompute it.
	prefix     int
	contentEnd int
	size       int
}

// NewLayout validates and returns the layout of a kind with a
// prefixLen-byte prefix, a suffixLen-byte suffix and a total length of
// size bytes. It fails when any length is negative, when size is zero,
// or when prefixLen+suffixLen exceeds size (the prefix and suffix would
// overlap and the content segment would have negative length).
func NewLayout(prefixLen, suffixLen, size int) (Layout, error) {
	switch {
	case prefixLen < 0:
		return Layout{}, fmt.Errorf("%w: negative prefix length %d", ErrInvalidLayout, prefixLen)
	case suffixLen < 0:
		return Layout{}, fmt.Errorf("%w: negative suffix length %d", ErrInvalidLayout, suffixLen)
	case size <= 0:
		return Layout{}, fmt.Errorf("%w: total length must be positive, got %d", ErrInvalidLayout, size)
	case prefixLen > size-suffixLen:
		return Layout{}, fmt.Errorf("%w: prefix %d + suffix %d exceeds total length %d",
			ErrInvalidLayout, prefixLen, suffixLen, size)
	}
	return Layout{
		prefix:     prefixLen,
		contentEnd: size - suffixLen,
		size:       size,
	}, nil
}

// MustLayout is like NewLayout but panics on error. Use it for
// package-level kind declarations where the lengths are constants.
func MustLayout(prefixLen, suffixLen, size int) Layout {
	layout, err := NewLayout(prefixLen, suffixLen, size)
	if err != nil {
		panic(fmt.Sprintf("buid.MustLayout(%d, %d, %d): %v", prefixLen, suffixLen, size, err))
	}
	return layout
}

// PrefixLen returns P.
func (l Layout) PrefixLen() int { return l.prefix }

// SuffixLen returns E.
func (l Layout) SuffixLen() int { return l.size - l.contentEnd }

// ContentLen returns N-P-E.
func (l Layout) ContentLen() int { return l.contentEnd - l.prefix }

// Len returns the total length N.
func (l Layout) Len() int { return l.size }

// IsZero reports whether l is the zero Layout.
func (l Layout) IsZero() bool { return l.size == 0 }

func (l Layout) String() string {
	return fmt.Sprintf("buid.Layout{P=%d E=%d N=%d}", l.PrefixLen(), l.SuffixLen(), l.Len())
}

// Build constructs an identifier without any runtime length check. It
// allocates exactly N bytes and calls fill with the three segment
// buffers, which are pre-sized to P, N-P-E and E bytes and arrive
// zeroed. The segments are copied into the identifier when fill
// returns, so writes made through a retained slice are not visible.
//
// A nil fill produces the all-zero identifier of this layout.
//
// Build panics on the zero Layout.
func (l Layout) Build(fill func(prefix, content, suffix []byte)) ID {
	if l.IsZero() {
		panic("buid: Build on zero Layout")
	}
	buffer := make([]byte, l.size)
	if fill != nil {
		// Full slice expressions cap each segment so an append inside
		// fill cannot spill into the next one.
		fill(
			buffer[:l.prefix:l.prefix],
			buffer[l.prefix:l.contentEnd:l.contentEnd],
			buffer[l.contentEnd:l.size:l.size],
		)
	}
	return ID{layout: l, raw: string(buffer)}
}

// Compose constructs an identifier from its three parts. Each part must
// have exactly its segment's length; otherwise Compose returns a
// [*SegmentLengthError] naming the first offending segment.
func (l Layout) Compose(prefix, content, suffix []byte) (ID, error) {
	if len(prefix) != l.PrefixLen() {
		return ID{}, &SegmentLengthError{Segment: "prefix", Expected: l.PrefixLen(), Actual: len(prefix)}
	}
	if len(content) != l.ContentLen() {
		return ID{}, &SegmentLengthError{Segment: "content", Expected: l.ContentLen(), Actual: len(content)}
	}
	if len(suffix) != l.SuffixLen() {
		return ID{}, &SegmentLengthError{Segment: "suffix", Expected: l.SuffixLen(), Actual: len(suffix)}
	}
	return l.Build(func(p, c, s []byte) {
		copy(p, prefix)
		copy(c, content)
		copy(s, suffix)
	}), nil
}

// Parse constructs an identifier from a byte sequence of unknown
// length. It returns a [*LengthMismatchError] unless len(data) is
// exactly N. Byte values are not inspected. The input is copied, so
// the caller may reuse data afterwards.
func (l Layout) Parse(data []byte) (ID, error) {
	if len(data) != l.size {
		return ID{}, &LengthMismatchError{Expected: l.size, Actual: len(data)}
	}
	return ID{layout: l, raw: string(data)}, nil
}

// ParseString is like Parse for raw bytes held in a string. No copy is
// made.
func (l Layout) ParseString(data string) (ID, error) {
	if len(data) != l.size {
		return ID{}, &LengthMismatchError{Expected: l.size, Actual: len(data)}
	}
	return ID{layout: l, raw: data}, nil
}

// MustParse is like Parse but panics on error. Use it in tests and for
// kinds whose raw bytes come from a Go array of length N, where the
// length check cannot fail.
func (l Layout) MustParse(data []byte) ID {
	id, err := l.Parse(data)
	if err != nil {
		panic(fmt.Sprintf("%s.MustParse: %v", l, err))
	}
	return id
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buid

import (
	"cmp"
	"encoding/hex"
	"log/slog"
	"slices"
	"strings"
)

// ID is an immutable fixed-width identifier. Its bytes are held in a
// string, so an ID can be copied, compared with == and used as a map
// key without aliasing concerns.
//
// The zero ID has no layout and is never returned by a successful
// constructor; use IsZero to check.
type ID struct {
	layout Layout
	raw    string
}

// Layout returns the layout the identifier was constructed with.
func (id ID) Layout() Layout { return id.layout }

// Len returns the identifier's total length in bytes.
func (id ID) Len() int { return len(id.raw) }

// IsZero reports whether id is the zero value (uninitialized).
func (id ID) IsZero() bool { return id.layout.IsZero() }

// Prefix returns a copy of bytes [0, P).
func (id ID) Prefix() []byte { return []byte(id.PrefixString()) }

// Content returns a copy of bytes [P, N-E).
func (id ID) Content() []byte { return []byte(id.ContentString()) }

// Suffix returns a copy of bytes [N-E, N).
func (id ID) Suffix() []byte { return []byte(id.SuffixString()) }

// Bytes returns a copy of the full N-byte buffer.
func (id ID) Bytes() []byte { return []byte(id.raw) }

// PrefixString returns the prefix segment without copying.
func (id ID) PrefixString() string { return id.raw[:id.layout.prefix] }

// ContentString returns the content segment without copying.
func (id ID) ContentString() string { return id.raw[id.layout.prefix:id.layout.contentEnd] }

// SuffixString returns the suffix segment without copying.
func (id ID) SuffixString() string { return id.raw[id.layout.contentEnd:] }

// RawString returns the full buffer without copying.
func (id ID) RawString() string { return id.raw }

// HasPrefix reports whether the prefix segment equals tag.
func (id ID) HasPrefix(tag []byte) bool { return id.PrefixString() == string(tag) }

// Equal reports whether id and other have the same layout and bytes.
func (id ID) Equal(other ID) bool { return id == other }

// Compare returns -1, 0 or +1 as id sorts before, equal to, or after
// other. See the package-level Compare.
func (id ID) Compare(other ID) int { return Compare(id, other) }

// Less reports whether id sorts before other.
func (id ID) Less(other ID) bool { return Compare(id, other) < 0 }

// String returns the lowercase hex encoding of the full buffer. It is
// meant for logs and debugging; display encodings live in lib/idtext.
func (id ID) String() string { return hex.EncodeToString([]byte(id.raw)) }

// MarshalBinary implements encoding.BinaryMarshaler. The encoding is
// the raw buffer, so binary encoders (CBOR, gob) emit it as a byte
// string.
func (id ID) MarshalBinary() ([]byte, error) { return id.Bytes(), nil }

// LogValue implements slog.LogValuer, grouping the three segments as
// hex so structured logs show the layout at a glance.
func (id ID) LogValue() slog.Value {
	if id.IsZero() {
		return slog.StringValue("")
	}
	return slog.GroupValue(
		slog.String("prefix", hex.EncodeToString(id.Prefix())),
		slog.String("content", hex.EncodeToString(id.Content())),
		slog.String("suffix", hex.EncodeToString(id.Suffix())),
	)
}

// Compare orders identifiers by the lexicographic (big-endian,
// byte-wise) order of their buffers. A buffer that is a proper prefix
// of another sorts first. Identifiers with equal bytes but different
// layouts are ordered by prefix length and then suffix length, which
// keeps the order total and consistent with ==.
func Compare(a, b ID) int {
	if c := strings.Compare(a.raw, b.raw); c != 0 {
		return c
	}
	if c := cmp.Compare(a.layout.prefix, b.layout.prefix); c != 0 {
		return c
	}
	return cmp.Compare(a.layout.contentEnd, b.layout.contentEnd)
}

// Sort sorts ids in place in Compare order.
func Sort(ids []ID) { slices.SortFunc(ids, Compare) }

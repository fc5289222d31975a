// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package buid implements fixed-width binary identifiers made of three
// segments: a prefix tag, an opaque content payload, and a suffix
// extension.
//
// A [Layout] describes one identifier kind: the prefix length P, the
// suffix length E and the total length N. NewLayout rejects any
// combination where the prefix and suffix would overlap (P + E > N), so
// once a Layout exists every segment offset derived from it is in
// bounds. The buffer of an N-byte identifier is partitioned as:
//
//	[0, P)     prefix
//	[P, N-E)   content
//	[N-E, N)   suffix
//
// An [ID] is an immutable value. It is constructed either infallibly by
// [Layout.Build], which hands the caller pre-sized segment buffers, or
// by [Layout.Parse], which accepts bytes of unknown length and fails
// with a [*LengthMismatchError] when the length is not exactly N.
// Nothing is ever padded or truncated.
//
// IDs compare equal when their layouts and bytes are equal, and sort in
// lexicographic byte order (see [Compare]), so they can be used directly
// as map keys and as keys in sorted storage.
//
// This package does not interpret segment contents. Display encodings
// (lib/idtext), content hashing (lib/idhash), timestamp suffixes
// (lib/idstamp) and the registry of known prefixes (lib/kind) are
// separate packages built on top of it.
package buid

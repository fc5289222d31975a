// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by buid
// packages.
//
// CBOR is used for identifier set files (lib/idset) and for the CLI's
// --cbor output. JSON remains the format for human-facing CLI output
// (--json). The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items, so the same set of identifiers always
// produces the same file bytes.
//
// [buid.ID] implements encoding.BinaryMarshaler, so identifiers inside
// encoded values become CBOR byte strings holding the raw buffer.
// Decoding goes the other way through []byte fields followed by
// Layout.Parse, since a byte string alone does not say which layout it
// belongs to.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types serialized only as CBOR use `cbor` struct tags. Types that are
// also emitted as JSON use `json` tags, which fxamacker/cbor reads as
// a fallback. Never put both on one field.
package codec

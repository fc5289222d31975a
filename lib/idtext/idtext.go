// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package idtext converts identifiers to and from display strings.
//
// Base58 (Bitcoin alphabet) is the default display form: it avoids the
// visually ambiguous characters 0, O, I and l and needs no escaping in
// URLs or file names. Leading zero bytes encode as leading '1'
// characters, so identifiers whose prefix starts with zero bytes still
// round-trip exactly. Hex is available for debugging and for matching
// against hex dumps.
//
// Decoding always goes through [buid.Layout.Parse], so a string whose
// decoded length is wrong fails with the core's
// [*buid.LengthMismatchError].
package idtext

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/bureau-foundation/buid/lib/buid"
)

// Format selects a display encoding.
type Format uint8

const (
	// Base58 is the Bitcoin-alphabet base58 encoding.
	Base58 Format = iota
	// Hex is lowercase hexadecimal. Decoding accepts either case.
	Hex
)

// ErrEmpty is returned when decoding an empty string.
var ErrEmpty = errors.New("idtext: empty identifier string")

func (f Format) String() string {
	switch f {
	case Base58:
		return "base58"
	case Hex:
		return "hex"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFormat parses a format name as printed by Format.String.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "base58", "b58":
		return Base58, nil
	case "hex":
		return Hex, nil
	default:
		return 0, fmt.Errorf("unknown identifier format %q (want base58 or hex)", name)
	}
}

// MarshalText implements encoding.TextMarshaler so formats can appear
// in config files and JSON output by name.
func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case Base58, Hex:
		return []byte(f.String()), nil
	default:
		return nil, fmt.Errorf("unknown identifier format %d", uint8(f))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(data []byte) error {
	parsed, err := ParseFormat(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Encode returns the display string of id in the given format. The
// zero ID encodes as the empty string.
func Encode(id buid.ID, format Format) string {
	if id.IsZero() {
		return ""
	}
	switch format {
	case Hex:
		return hex.EncodeToString(id.Bytes())
	default:
		return base58.Encode(id.Bytes())
	}
}

// Decode parses a display string produced by Encode into an identifier
// of the given layout.
func Decode(layout buid.Layout, text string, format Format) (buid.ID, error) {
	raw, err := DecodeBytes(text, format)
	if err != nil {
		return buid.ID{}, err
	}
	id, err := layout.Parse(raw)
	if err != nil {
		return buid.ID{}, fmt.Errorf("decoding %s identifier %q: %w", format, text, err)
	}
	return id, nil
}

// DecodeBytes decodes a display string without applying any layout.
// Callers that do not yet know the kind (see kind.Registry.Detect) use
// this and parse the result once the layout is known.
func DecodeBytes(text string, format Format) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmpty
	}
	switch format {
	case Base58:
		raw, err := base58.Decode(text)
		if err != nil {
			return nil, fmt.Errorf("decoding base58 identifier %q: %w", text, err)
		}
		return raw, nil
	case Hex:
		raw, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("decoding hex identifier %q: %w", text, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown identifier format %d", uint8(format))
	}
}

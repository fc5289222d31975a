// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package kind names identifier families.
//
// A [Kind] binds a human-readable name ("user") and a prefix tag
// ("usr") to a [buid.Layout], and records how the content and suffix
// of new identifiers of that kind are produced. The core buid package
// never validates prefixes; this package is where known prefixes live.
//
// A [Registry] holds the kinds a program knows about and can detect
// the kind of raw identifier bytes from their prefix and length.
package kind

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/idhash"
	"github.com/bureau-foundation/buid/lib/idstamp"
)

// ContentSource says how the content segment of a new identifier is
// filled.
type ContentSource uint8

const (
	// Hashed content is a digest of caller-supplied data, so the same
	// data always maps to the same content.
	Hashed ContentSource = iota
	// Random content is read from a cryptographic random source.
	Random
	// UUIDv7 content is a version 7 UUID. Its leading 48 bits are a
	// millisecond timestamp, so identifiers sort roughly by creation
	// time even without a suffix. Requires a 16-byte content segment.
	UUIDv7
)

func (s ContentSource) String() string {
	switch s {
	case Hashed:
		return "hashed"
	case Random:
		return "random"
	case UUIDv7:
		return "uuidv7"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseContentSource parses a name as printed by String.
func ParseContentSource(name string) (ContentSource, error) {
	switch strings.ToLower(name) {
	case "hashed", "hash":
		return Hashed, nil
	case "random":
		return Random, nil
	case "uuidv7", "uuid":
		return UUIDv7, nil
	default:
		return 0, fmt.Errorf("unknown content source %q (want hashed, random or uuidv7)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ContentSource) MarshalText() ([]byte, error) {
	if s > UUIDv7 {
		return nil, fmt.Errorf("unknown content source %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ContentSource) UnmarshalText(data []byte) error {
	parsed, err := ParseContentSource(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// stampHorizon is the latest time every kind's suffix must be able to
// hold. A suffix too narrow for it would start failing to mint within
// the lifetime of the data.
var stampHorizon = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

// Kind describes one identifier family.
type Kind struct {
	// Name is the registry key, e.g. "user".
	Name string `json:"name"`

	// Tag is the prefix segment every identifier of this kind starts
	// with. Its length must equal the layout's prefix length.
	Tag string `json:"tag"`

	Layout buid.Layout `json:"-"`

	// Content selects how new content segments are produced.
	Content ContentSource `json:"content"`

	// Hash is the algorithm for Hashed content. Ignored otherwise.
	Hash idhash.Algorithm `json:"hash"`

	// Stamp is the precision of the timestamp written into the
	// suffix. Ignored when the layout has no suffix.
	Stamp idstamp.Precision `json:"stamp"`
}

// Validate reports every inconsistency in k.
func (k Kind) Validate() error {
	var errs []error

	if k.Name == "" {
		errs = append(errs, errors.New("name is required"))
	} else if strings.ContainsAny(k.Name, " \t\n") {
		errs = append(errs, fmt.Errorf("name %q contains whitespace", k.Name))
	}
	if k.Layout.IsZero() {
		errs = append(errs, errors.New("layout is required"))
	} else {
		if len(k.Tag) != k.Layout.PrefixLen() {
			errs = append(errs, fmt.Errorf("tag %q is %d bytes, layout prefix is %d",
				k.Tag, len(k.Tag), k.Layout.PrefixLen()))
		}
		if k.Content == UUIDv7 && k.Layout.ContentLen() != 16 {
			errs = append(errs, fmt.Errorf("uuidv7 content needs a 16-byte content segment, layout has %d",
				k.Layout.ContentLen()))
		}
		if k.Content == Hashed || k.Content == Random {
			if k.Layout.ContentLen() == 0 {
				errs = append(errs, fmt.Errorf("%s content needs a non-empty content segment", k.Content))
			}
		}
		if size := k.Layout.SuffixLen(); size > 8 {
			errs = append(errs, fmt.Errorf("suffix of %d bytes is wider than the 8-byte stamp", size))
		} else if size > 0 {
			if err := idstamp.Put(make([]byte, size), stampHorizon, k.Stamp); err != nil {
				errs = append(errs, fmt.Errorf("%d-byte %s stamp cannot reach %d: %w",
					size, k.Stamp, stampHorizon.Year(), err))
			}
		}
	}
	if k.Content > UUIDv7 {
		errs = append(errs, fmt.Errorf("unknown content source %d", uint8(k.Content)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("kind %q: %w", k.Name, errors.Join(errs...))
	}
	return nil
}

// HasStamp reports whether identifiers of this kind carry a timestamp
// suffix.
func (k Kind) HasStamp() bool { return k.Layout.SuffixLen() > 0 }

// Matches reports whether raw has this kind's length and tag.
func (k Kind) Matches(raw []byte) bool {
	return len(raw) == k.Layout.Len() && string(raw[:len(k.Tag)]) == k.Tag
}

// Time decodes the timestamp suffix of id. It fails when the kind has
// no suffix or id belongs to a different layout.
func (k Kind) Time(id buid.ID) (time.Time, error) {
	if id.Layout() != k.Layout {
		return time.Time{}, fmt.Errorf("identifier layout %s does not match kind %q (%s)", id.Layout(), k.Name, k.Layout)
	}
	if !k.HasStamp() {
		return time.Time{}, fmt.Errorf("kind %q has no timestamp suffix", k.Name)
	}
	return idstamp.Get(id.Suffix(), k.Stamp)
}

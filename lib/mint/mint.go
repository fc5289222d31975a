// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mint creates new identifiers of a kind.
//
// A [Minter] fills the three segments of a [buid.Layout]: the prefix
// with the kind's tag, the content according to the kind's content
// source, and the suffix with a timestamp from an injected clock.
//
//	minter := mint.New(kind.User, mint.WithLogger(logger))
//	id, err := minter.Mint(profileBytes)
package mint

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/clock"
	"github.com/bureau-foundation/buid/lib/idhash"
	"github.com/bureau-foundation/buid/lib/idstamp"
	"github.com/bureau-foundation/buid/lib/kind"
)

// ErrNoData is returned when a hashed kind is minted without data.
var ErrNoData = errors.New("mint: hashed kinds need input data")

// Minter creates identifiers of one kind. It is safe for concurrent
// use when its clock and random source are.
type Minter struct {
	kind   kind.Kind
	clock  clock.Clock
	random io.Reader
	logger *slog.Logger
}

// Option configures a Minter.
type Option func(*Minter)

// WithClock sets the clock used for suffix stamps. The default is
// clock.Real().
func WithClock(c clock.Clock) Option {
	return func(m *Minter) { m.clock = c }
}

// WithRandom sets the source for Random and UUIDv7 content. The default
// is crypto/rand.Reader.
func WithRandom(r io.Reader) Option {
	return func(m *Minter) { m.random = r }
}

// WithLogger sets the logger for minted-identifier debug records. The
// default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Minter) { m.logger = logger }
}

// New returns a Minter for k. k should come from a registry (or
// otherwise have passed Validate); Mint reports any inconsistency as an
// error rather than producing a malformed identifier.
func New(k kind.Kind, options ...Option) *Minter {
	minter := &Minter{
		kind:   k,
		clock:  clock.Real(),
		random: rand.Reader,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(minter)
	}
	return minter
}

// Kind returns the kind this Minter produces.
func (m *Minter) Kind() kind.Kind { return m.kind }

// Mint creates an identifier stamped with the clock's current time.
// data is hashed into the content for Hashed kinds and ignored
// otherwise.
func (m *Minter) Mint(data []byte) (buid.ID, error) {
	return m.MintAt(m.clock.Now(), data)
}

// MintReader is like Mint for Hashed kinds, streaming the content
// input from reader.
func (m *Minter) MintReader(reader io.Reader) (buid.ID, error) {
	if m.kind.Content != kind.Hashed {
		return m.Mint(nil)
	}
	digest, err := idhash.SumReader(m.kind.Hash, reader, m.kind.Layout.ContentLen())
	if err != nil {
		return buid.ID{}, fmt.Errorf("minting %s: %w", m.kind.Name, err)
	}
	return m.build(m.clock.Now(), func(content []byte) error {
		copy(content, digest)
		return nil
	})
}

// MintAt creates an identifier stamped with at instead of the clock's
// time.
func (m *Minter) MintAt(at time.Time, data []byte) (buid.ID, error) {
	var fill func(content []byte) error
	switch m.kind.Content {
	case kind.Hashed:
		if data == nil {
			return buid.ID{}, ErrNoData
		}
		fill = func(content []byte) error {
			return idhash.SumInto(m.kind.Hash, content, data)
		}
	case kind.Random:
		fill = func(content []byte) error {
			if _, err := io.ReadFull(m.random, content); err != nil {
				return fmt.Errorf("reading random content: %w", err)
			}
			return nil
		}
	case kind.UUIDv7:
		fill = func(content []byte) error {
			if len(content) != 16 {
				return fmt.Errorf("uuidv7 content needs 16 bytes, layout has %d", len(content))
			}
			generated, err := uuid.NewV7FromReader(m.random)
			if err != nil {
				return fmt.Errorf("generating uuidv7: %w", err)
			}
			copy(content, generated[:])
			return nil
		}
	default:
		return buid.ID{}, fmt.Errorf("minting %s: unknown content source %s", m.kind.Name, m.kind.Content)
	}
	return m.build(at, fill)
}

// build fills a fresh identifier of the Minter's layout. Errors from
// fill or the stamp abort the mint; Build itself cannot fail.
func (m *Minter) build(at time.Time, fill func(content []byte) error) (buid.ID, error) {
	if m.kind.Layout.IsZero() {
		return buid.ID{}, fmt.Errorf("minting %s: kind has no layout", m.kind.Name)
	}
	if len(m.kind.Tag) != m.kind.Layout.PrefixLen() {
		return buid.ID{}, fmt.Errorf("minting %s: tag %q does not fill the %d-byte prefix",
			m.kind.Name, m.kind.Tag, m.kind.Layout.PrefixLen())
	}

	var fillErr error
	id := m.kind.Layout.Build(func(prefix, content, suffix []byte) {
		copy(prefix, m.kind.Tag)
		if fillErr = fill(content); fillErr != nil {
			return
		}
		if len(suffix) > 0 {
			fillErr = idstamp.Put(suffix, at, m.kind.Stamp)
		}
	})
	if fillErr != nil {
		return buid.ID{}, fmt.Errorf("minting %s: %w", m.kind.Name, fillErr)
	}

	m.logger.Debug("minted identifier",
		"kind", m.kind.Name,
		"id", id,
	)
	return id, nil
}

// Verify reports whether id is the identifier a Hashed kind would mint
// for data, ignoring the suffix. It lets a holder of the original data
// check an identifier without knowing when it was minted.
func (m *Minter) Verify(id buid.ID, data []byte) (bool, error) {
	if m.kind.Content != kind.Hashed {
		return false, fmt.Errorf("kind %q content is %s, not hashed", m.kind.Name, m.kind.Content)
	}
	if id.Layout() != m.kind.Layout || id.PrefixString() != m.kind.Tag {
		return false, nil
	}
	digest, err := idhash.Sum(m.kind.Hash, data, m.kind.Layout.ContentLen())
	if err != nil {
		return false, err
	}
	return bytes.Equal(digest, id.Content()), nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package idset stores sorted, deduplicated sets of identifiers.
//
// A [Set] holds identifiers of a single [buid.Layout] in the
// lexicographic byte order defined by [buid.Compare], which makes
// membership a binary search and range scans a contiguous slice. Sets
// persist to a compact file format (see [Write]) whose payload is
// deterministic CBOR, optionally compressed with LZ4 or zstd.
//
// Set is not safe for concurrent mutation. Guard it with a mutex when
// shared, as with a Go map.
package idset

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/bureau-foundation/buid/lib/buid"
)

// ErrLayoutMismatch is returned when an identifier's layout differs
// from the set's.
var ErrLayoutMismatch = errors.New("idset: identifier layout does not match set")

// Set is a sorted set of identifiers sharing one layout.
type Set struct {
	layout buid.Layout
	ids    []buid.ID
}

// New returns an empty set for identifiers of layout.
func New(layout buid.Layout) *Set {
	return &Set{layout: layout}
}

// Layout returns the layout every member shares.
func (s *Set) Layout() buid.Layout { return s.layout }

// Len returns the number of members.
func (s *Set) Len() int { return len(s.ids) }

func (s *Set) check(id buid.ID) error {
	if id.Layout() != s.layout {
		return fmt.Errorf("%w: %s, set is %s", ErrLayoutMismatch, id.Layout(), s.layout)
	}
	return nil
}

// Add inserts id and reports whether it was not already present.
func (s *Set) Add(id buid.ID) (bool, error) {
	if err := s.check(id); err != nil {
		return false, err
	}
	index, found := slices.BinarySearchFunc(s.ids, id, buid.Compare)
	if found {
		return false, nil
	}
	s.ids = slices.Insert(s.ids, index, id)
	return true, nil
}

// Remove deletes id and reports whether it was present.
func (s *Set) Remove(id buid.ID) bool {
	index, found := slices.BinarySearchFunc(s.ids, id, buid.Compare)
	if !found {
		return false
	}
	s.ids = slices.Delete(s.ids, index, index+1)
	return true
}

// Contains reports whether id is a member.
func (s *Set) Contains(id buid.ID) bool {
	_, found := slices.BinarySearchFunc(s.ids, id, buid.Compare)
	return found
}

// All iterates over the members in ascending order.
func (s *Set) All() iter.Seq[buid.ID] {
	return slices.Values(s.ids)
}

// IDs returns a copy of the members in ascending order.
func (s *Set) IDs() []buid.ID {
	return slices.Clone(s.ids)
}

// Range iterates over members in the half-open interval [low, high).
// A zero low starts at the first member; a zero high runs to the end.
func (s *Set) Range(low, high buid.ID) iter.Seq[buid.ID] {
	start := 0
	if !low.IsZero() {
		start, _ = slices.BinarySearchFunc(s.ids, low, buid.Compare)
	}
	end := len(s.ids)
	if !high.IsZero() {
		end, _ = slices.BinarySearchFunc(s.ids, high, buid.Compare)
	}
	if end < start {
		end = start
	}
	return slices.Values(s.ids[start:end])
}

// Merge adds every member of other and returns how many were new.
func (s *Set) Merge(other *Set) (int, error) {
	if other.layout != s.layout {
		return 0, fmt.Errorf("%w: merging %s into %s", ErrLayoutMismatch, other.layout, s.layout)
	}
	merged := make([]buid.ID, 0, len(s.ids)+len(other.ids))
	added := 0
	i, j := 0, 0
	for i < len(s.ids) && j < len(other.ids) {
		switch c := buid.Compare(s.ids[i], other.ids[j]); {
		case c < 0:
			merged = append(merged, s.ids[i])
			i++
		case c > 0:
			merged = append(merged, other.ids[j])
			j++
			added++
		default:
			merged = append(merged, s.ids[i])
			i++
			j++
		}
	}
	merged = append(merged, s.ids[i:]...)
	added += len(other.ids) - j
	merged = append(merged, other.ids[j:]...)
	s.ids = merged
	return added, nil
}

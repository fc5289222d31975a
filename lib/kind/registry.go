// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kind

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/idhash"
	"github.com/bureau-foundation/buid/lib/idstamp"
)

// ErrUnknownKind is returned by Lookup and Detect when no registered
// kind matches.
var ErrUnknownKind = errors.New("unknown identifier kind")

// Built-in kinds. User and Order share the 3/8/43 layout: a 3-byte tag,
// a 256-bit content and an 8-byte millisecond stamp.
var (
	User = Kind{
		Name:    "user",
		Tag:     "usr",
		Layout:  buid.MustLayout(3, 8, 43),
		Content: Hashed,
		Hash:    idhash.BLAKE3,
		Stamp:   idstamp.Milliseconds,
	}
	Order = Kind{
		Name:    "order",
		Tag:     "ord",
		Layout:  buid.MustLayout(3, 8, 43),
		Content: Random,
		Stamp:   idstamp.Milliseconds,
	}
	UUID = Kind{
		Name:    "uuid",
		Layout:  buid.MustLayout(0, 0, 16),
		Content: UUIDv7,
	}
)

// Registry is a set of kinds indexed by name and by (tag, length).
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Kind
	// byShape detects kinds from raw bytes; the key is tag and total
	// length, which Register keeps unique.
	byShape map[shape]Kind
}

type shape struct {
	tag  string
	size int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Kind),
		byShape: make(map[shape]Kind),
	}
}

// Builtin returns a new registry holding the built-in kinds.
func Builtin() *Registry {
	registry := NewRegistry()
	for _, k := range []Kind{User, Order, UUID} {
		if err := registry.Register(k); err != nil {
			panic(fmt.Sprintf("kind.Builtin: %v", err))
		}
	}
	return registry
}

// Register validates k and adds it. It fails when the name is taken or
// another kind already claims the same tag at the same total length,
// since Detect could not tell the two apart.
func (r *Registry) Register(k Kind) error {
	if err := k.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[k.Name]; exists {
		return fmt.Errorf("kind %q is already registered", k.Name)
	}
	key := shape{tag: k.Tag, size: k.Layout.Len()}
	if existing, exists := r.byShape[key]; exists {
		return fmt.Errorf("kind %q: tag %q with length %d is already used by kind %q",
			k.Name, k.Tag, k.Layout.Len(), existing.Name)
	}
	r.byName[k.Name] = k
	r.byShape[key] = k
	return nil
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byName[name]
	if !ok {
		return Kind{}, fmt.Errorf("%w %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Detect returns the kind of raw identifier bytes: the kind whose total
// length equals len(raw) and whose tag is a prefix of raw. When several
// tags match (for example "u" and "usr" at the same length), the
// longest tag wins. A kind with an empty tag matches any input of its
// length and is only chosen when nothing more specific does.
func (r *Registry) Detect(raw []byte) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best Kind
	found := false
	for _, k := range r.byName {
		if !k.Matches(raw) {
			continue
		}
		if !found || len(k.Tag) > len(best.Tag) {
			best = k
			found = true
		}
	}
	if !found {
		return Kind{}, fmt.Errorf("%w: no kind matches %d bytes with prefix %q",
			ErrUnknownKind, len(raw), printablePrefix(raw))
	}
	return best, nil
}

// Kinds returns all registered kinds sorted by name.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.byName))
	for _, k := range r.byName {
		kinds = append(kinds, k)
	}
	slices.SortFunc(kinds, func(a, b Kind) int { return cmp.Compare(a.Name, b.Name) })
	return kinds
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// printablePrefix returns up to the first four bytes of raw for error
// messages.
func printablePrefix(raw []byte) string {
	return string(raw[:min(len(raw), 4)])
}

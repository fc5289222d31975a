// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package idhash derives identifier content segments from arbitrary
// input.
//
// Both supported algorithms are extendable-output functions, so a
// digest of exactly the layout's content length is produced directly
// rather than by truncating or padding a fixed-size digest.
//
// BLAKE3 runs in keyed mode with a fixed domain key. The same input
// hashed with plain BLAKE3 elsewhere (for example as an artifact
// address) produces unrelated bytes, so a content segment never
// accidentally equals some other system's digest of the same data.
package idhash

import (
	"fmt"
	"io"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Algorithm selects the content hash function.
type Algorithm uint8

const (
	// BLAKE3 is keyed BLAKE3 with the buid content domain key.
	BLAKE3 Algorithm = iota
	// SHAKE256 is the SHA-3 extendable-output function.
	SHAKE256
)

// contentDomainKey is the BLAKE3 key for content hashing. The bytes
// are the ASCII name of the domain zero-padded to 32 bytes. Changing
// it changes every hashed identifier.
var contentDomainKey = [32]byte{
	'b', 'u', 'i', 'd', '.', 'c', 'o', 'n', 't', 'e', 'n', 't',
}

func (a Algorithm) String() string {
	switch a {
	case BLAKE3:
		return "blake3"
	case SHAKE256:
		return "shake256"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// ParseAlgorithm parses an algorithm name as printed by String.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "blake3":
		return BLAKE3, nil
	case "shake256", "sha3":
		return SHAKE256, nil
	default:
		return 0, fmt.Errorf("unknown content hash algorithm %q (want blake3 or shake256)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	switch a {
	case BLAKE3, SHAKE256:
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("unknown content hash algorithm %d", uint8(a))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(data []byte) error {
	parsed, err := ParseAlgorithm(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// xof is the subset of BLAKE3 and SHAKE hashers Sum needs.
type xof interface {
	io.Writer
	output() io.Reader
}

type blake3XOF struct{ *blake3.Hasher }

func (h blake3XOF) output() io.Reader { return h.Digest() }

type shakeXOF struct{ sha3.ShakeHash }

func (h shakeXOF) output() io.Reader { return h.ShakeHash }

func newXOF(algorithm Algorithm) (xof, error) {
	switch algorithm {
	case BLAKE3:
		hasher, err := blake3.NewKeyed(contentDomainKey[:])
		if err != nil {
			return nil, fmt.Errorf("creating keyed blake3 hasher: %w", err)
		}
		return blake3XOF{hasher}, nil
	case SHAKE256:
		return shakeXOF{sha3.NewShake256()}, nil
	default:
		return nil, fmt.Errorf("unknown content hash algorithm %d", uint8(algorithm))
	}
}

// Sum returns exactly size bytes of digest of data. A size of zero
// returns an empty, non-nil slice.
func Sum(algorithm Algorithm, data []byte, size int) ([]byte, error) {
	hasher, err := newXOF(algorithm)
	if err != nil {
		return nil, err
	}
	// Hash writers never return errors.
	hasher.Write(data)
	return readDigest(hasher, size)
}

// SumReader is like Sum but streams the input from reader, keeping
// memory usage constant regardless of input size.
func SumReader(algorithm Algorithm, reader io.Reader, size int) ([]byte, error) {
	hasher, err := newXOF(algorithm)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(hasher, reader); err != nil {
		return nil, fmt.Errorf("hashing content: %w", err)
	}
	return readDigest(hasher, size)
}

// SumInto writes len(dst) bytes of digest of data into dst. It is the
// allocation-light form used when filling a content segment in place.
func SumInto(algorithm Algorithm, dst, data []byte) error {
	hasher, err := newXOF(algorithm)
	if err != nil {
		return err
	}
	hasher.Write(data)
	if _, err := io.ReadFull(hasher.output(), dst); err != nil {
		return fmt.Errorf("reading %s output: %w", algorithm, err)
	}
	return nil
}

func readDigest(hasher xof, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative digest size %d", size)
	}
	digest := make([]byte, size)
	if _, err := io.ReadFull(hasher.output(), digest); err != nil {
		return nil, fmt.Errorf("reading digest output: %w", err)
	}
	return digest, nil
}

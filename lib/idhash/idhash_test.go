// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package idhash

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zeebo/blake3"
)

var algorithms = []Algorithm{BLAKE3, SHAKE256}

func TestSumLength(t *testing.T) {
	for _, algorithm := range algorithms {
		for _, size := range []int{0, 1, 16, 32, 33, 64, 200} {
			digest, err := Sum(algorithm, []byte("hello, buid"), size)
			if err != nil {
				t.Fatalf("Sum(%s, %d): %v", algorithm, size, err)
			}
			if len(digest) != size {
				t.Errorf("Sum(%s, %d) returned %d bytes", algorithm, size, len(digest))
			}
		}
	}
}

func TestSumDeterministic(t *testing.T) {
	for _, algorithm := range algorithms {
		first, err := Sum(algorithm, []byte("determinism"), 32)
		if err != nil {
			t.Fatal(err)
		}
		second, err := Sum(algorithm, []byte("determinism"), 32)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("%s: %x != %x", algorithm, first, second)
		}
	}
}

func TestShorterDigestIsPrefix(t *testing.T) {
	// Extendable output: asking for fewer bytes yields a prefix of the
	// longer output, so kinds with different content lengths agree on
	// their common leading bytes.
	for _, algorithm := range algorithms {
		long, err := Sum(algorithm, []byte("xof"), 64)
		if err != nil {
			t.Fatal(err)
		}
		short, err := Sum(algorithm, []byte("xof"), 20)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(long[:20], short) {
			t.Errorf("%s: 20-byte digest is not a prefix of the 64-byte digest", algorithm)
		}
	}
}

func TestAlgorithmsDiffer(t *testing.T) {
	a, _ := Sum(BLAKE3, []byte("same input"), 32)
	b, _ := Sum(SHAKE256, []byte("same input"), 32)
	if bytes.Equal(a, b) {
		t.Error("BLAKE3 and SHAKE256 produced identical digests")
	}
}

func TestKeyedDiffersFromPlainBLAKE3(t *testing.T) {
	data := []byte("artifact bytes")
	keyed, err := Sum(BLAKE3, data, 32)
	if err != nil {
		t.Fatal(err)
	}
	plain := blake3.Sum256(data)
	if bytes.Equal(keyed, plain[:]) {
		t.Error("keyed content hash equals plain BLAKE3 digest")
	}
}

func TestSumReaderMatchesSum(t *testing.T) {
	data := bytes.Repeat([]byte("stream me "), 10000)
	for _, algorithm := range algorithms {
		want, err := Sum(algorithm, data, 32)
		if err != nil {
			t.Fatal(err)
		}
		got, err := SumReader(algorithm, bytes.NewReader(data), 32)
		if err != nil {
			t.Fatalf("SumReader(%s): %v", algorithm, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s: SumReader = %x, Sum = %x", algorithm, got, want)
		}

		into := make([]byte, 32)
		if err := SumInto(algorithm, into, data); err != nil {
			t.Fatalf("SumInto(%s): %v", algorithm, err)
		}
		if !bytes.Equal(into, want) {
			t.Errorf("%s: SumInto = %x, Sum = %x", algorithm, into, want)
		}
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := Sum(Algorithm(9), nil, 8); err == nil {
		t.Error("Sum with unknown algorithm should fail")
	}
	if _, err := Sum(BLAKE3, nil, -1); err == nil {
		t.Error("Sum with negative size should fail")
	}
	if _, err := SumReader(SHAKE256, failingReader{}, 8); err == nil || !strings.Contains(err.Error(), "hashing content") {
		t.Errorf("SumReader error = %v, want wrapped read error", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, algorithm := range algorithms {
		parsed, err := ParseAlgorithm(algorithm.String())
		if err != nil || parsed != algorithm {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", algorithm.String(), parsed, err)
		}
	}
	if _, err := ParseAlgorithm("md5"); err == nil {
		t.Error("ParseAlgorithm(md5) should fail")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, bytes.ErrTooLarge }

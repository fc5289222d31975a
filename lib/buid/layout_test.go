// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buid

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name                 string
		prefix, suffix, size int
		wantErr              bool
		wantContent          int
	}{
		{"prefixed timestamped", 3, 8, 43, false, 32},
		{"bare", 0, 0, 16, false, 16},
		{"all prefix", 4, 0, 4, false, 0},
		{"all suffix", 0, 4, 4, false, 0},
		{"prefix and suffix only", 2, 2, 4, false, 0},
		{"overlap", 3, 8, 10, true, 0},
		{"suffix longer than total", 0, 17, 16, true, 0},
		{"prefix longer than total", 17, 0, 16, true, 0},
		{"negative prefix", -1, 0, 16, true, 0},
		{"negative suffix", 0, -1, 16, true, 0},
		{"zero size", 0, 0, 0, true, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			layout, err := NewLayout(test.prefix, test.suffix, test.size)
			if test.wantErr {
				if err == nil {
					t.Fatalf("NewLayout(%d, %d, %d) = %v, want error", test.prefix, test.suffix, test.size, layout)
				}
				if !errors.Is(err, ErrInvalidLayout) {
					t.Errorf("error %v does not wrap ErrInvalidLayout", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLayout(%d, %d, %d): %v", test.prefix, test.suffix, test.size, err)
			}
			if layout.PrefixLen() != test.prefix {
				t.Errorf("PrefixLen() = %d, want %d", layout.PrefixLen(), test.prefix)
			}
			if layout.SuffixLen() != test.suffix {
				t.Errorf("SuffixLen() = %d, want %d", layout.SuffixLen(), test.suffix)
			}
			if layout.ContentLen() != test.wantContent {
				t.Errorf("ContentLen() = %d, want %d", layout.ContentLen(), test.wantContent)
			}
			if layout.Len() != test.size {
				t.Errorf("Len() = %d, want %d", layout.Len(), test.size)
			}
		})
	}
}

func TestMustLayoutPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustLayout should panic when prefix and suffix overlap")
		}
	}()
	MustLayout(8, 8, 15)
}

func TestLayoutString(t *testing.T) {
	got := MustLayout(3, 8, 43).String()
	if want := "buid.Layout{P=3 E=8 N=43}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLayoutZero(t *testing.T) {
	var zero Layout
	if !zero.IsZero() {
		t.Error("zero Layout should be IsZero()")
	}
	if MustLayout(0, 0, 1).IsZero() {
		t.Error("valid Layout reported IsZero()")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Build on zero Layout should panic")
		}
	}()
	zero.Build(nil)
}

func TestParseLengthMismatch(t *testing.T) {
	layout := MustLayout(3, 8, 43)

	for length := 0; length <= 64; length++ {
		if length == 43 {
			continue
		}
		_, err := layout.Parse(make([]byte, length))
		var mismatch *LengthMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Parse(len %d) error = %v, want *LengthMismatchError", length, err)
		}
		if mismatch.Expected != 43 || mismatch.Actual != length {
			t.Errorf("Parse(len %d) = {Expected: %d, Actual: %d}, want {43, %d}",
				length, mismatch.Expected, mismatch.Actual, length)
		}

		_, err = layout.ParseString(string(make([]byte, length)))
		if !errors.As(err, &mismatch) || mismatch.Actual != length {
			t.Errorf("ParseString(len %d) error = %v", length, err)
		}
	}
}

func TestParseLengthMismatchMessage(t *testing.T) {
	_, err := MustLayout(3, 8, 43).Parse(make([]byte, 40))
	if err == nil {
		t.Fatal("Parse of 40 bytes succeeded")
	}
	if want := "buid: expected 43 bytes, got 40"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseCopiesInput(t *testing.T) {
	layout := MustLayout(1, 1, 4)
	input := []byte{1, 2, 3, 4}
	id, err := layout.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	input[0] = 99
	if id.Bytes()[0] != 1 {
		t.Error("mutating the parse input changed the identifier")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse should panic on wrong length")
		}
	}()
	MustLayout(0, 0, 16).MustParse(make([]byte, 15))
}

func TestBuild(t *testing.T) {
	layout := MustLayout(3, 8, 43)
	id := layout.Build(func(prefix, content, suffix []byte) {
		if len(prefix) != 3 || len(content) != 32 || len(suffix) != 8 {
			t.Fatalf("segment lengths = %d/%d/%d, want 3/32/8", len(prefix), len(content), len(suffix))
		}
		copy(prefix, "usr")
		for i := range content {
			content[i] = byte(i)
		}
		suffix[7] = 0xff
		// Appending to a capped segment must reallocate rather than
		// overwrite the neighbouring segment.
		_ = append(prefix, 'X')
	})

	if id.Len() != 43 {
		t.Fatalf("Len() = %d, want 43", id.Len())
	}
	if got := string(id.Prefix()); got != "usr" {
		t.Errorf("Prefix() = %q, want %q", got, "usr")
	}
	if id.Content()[0] != 0 {
		t.Errorf("Content()[0] = %d, want 0 (append leaked into content)", id.Content()[0])
	}
	if id.Suffix()[7] != 0xff {
		t.Errorf("Suffix()[7] = %#x, want 0xff", id.Suffix()[7])
	}
}

func TestBuildRetainedSliceDoesNotMutate(t *testing.T) {
	var retained []byte
	id := MustLayout(0, 0, 4).Build(func(_, content, _ []byte) {
		retained = content
	})
	retained[0] = 7
	if !bytes.Equal(id.Bytes(), make([]byte, 4)) {
		t.Errorf("identifier changed through a retained segment: %x", id.Bytes())
	}
}

func TestBuildNilFill(t *testing.T) {
	id := MustLayout(2, 2, 8).Build(nil)
	if !bytes.Equal(id.Bytes(), make([]byte, 8)) {
		t.Errorf("Build(nil) = %x, want all zero", id.Bytes())
	}
}

func TestCompose(t *testing.T) {
	layout := MustLayout(2, 1, 6)

	id, err := layout.Compose([]byte("ab"), []byte{1, 2, 3}, []byte{9})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if want := []byte{'a', 'b', 1, 2, 3, 9}; !bytes.Equal(id.Bytes(), want) {
		t.Errorf("Bytes() = %x, want %x", id.Bytes(), want)
	}

	tests := []struct {
		prefix, content, suffix []byte
		wantSegment             string
	}{
		{[]byte("a"), []byte{1, 2, 3}, []byte{9}, "prefix"},
		{[]byte("ab"), []byte{1, 2}, []byte{9}, "content"},
		{[]byte("ab"), []byte{1, 2, 3}, nil, "suffix"},
	}
	for _, test := range tests {
		_, err := layout.Compose(test.prefix, test.content, test.suffix)
		var segmentErr *SegmentLengthError
		if !errors.As(err, &segmentErr) {
			t.Fatalf("Compose error = %v, want *SegmentLengthError", err)
		}
		if segmentErr.Segment != test.wantSegment {
			t.Errorf("Segment = %q, want %q", segmentErr.Segment, test.wantSegment)
		}
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/buid/lib/buid"
)

type sampleRecord struct {
	Kind  string `cbor:"kind"`
	Raw   []byte `cbor:"raw"`
	Count int    `cbor:"count,omitempty"`
}

type sampleOutput struct {
	Kind string  `json:"kind"`
	ID   buid.ID `json:"id"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRecord{Kind: "user", Raw: []byte("usr-content"), Count: 3}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Kind != original.Kind || !bytes.Equal(decoded.Raw, original.Raw) || decoded.Count != original.Count {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"zeta": 1, "alpha": []byte{1, 2}, "mid": "x"}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestIDEncodesAsByteString(t *testing.T) {
	raw := []byte{'u', 's', 'r', 0xde, 0xad, 0xbe, 0xef, 0x01}
	id := buid.MustLayout(3, 1, 8).MustParse(raw)

	data, err := Marshal(id)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// Major type 2 (byte string), length 8.
	want := append([]byte{0x48}, raw...)
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal(id) = %x, want %x", data, want)
	}

	var decoded []byte
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	parsed, err := id.Layout().Parse(decoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != id {
		t.Errorf("decoded id = %s, want %s", parsed, id)
	}
}

func TestJSONTagFallback(t *testing.T) {
	id := buid.MustLayout(0, 0, 4).MustParse([]byte{1, 2, 3, 4})
	data, err := Marshal(sampleOutput{Kind: "uuid", ID: id})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	for _, want := range []string{`"kind": "uuid"`, `"id": h'01020304'`} {
		if !strings.Contains(diagnostic, want) {
			t.Errorf("diagnostic %s missing %s", diagnostic, want)
		}
	}
}

func TestUnmarshalAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"kind": "user"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := decoded.(map[string]any); !ok {
		t.Errorf("decoded type = %T, want map[string]any", decoded)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var record sampleRecord
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &record); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

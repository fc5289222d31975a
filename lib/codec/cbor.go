// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding. Binary marshalers (buid.ID) encode as byte strings.
var encMode cbor.EncMode

// decMode accepts standard CBOR. Unknown fields are ignored so older
// readers can open files written by newer writers.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.BinaryMarshaler = cbor.BinaryMarshalerByteString
	// Timestamps keep their full precision as tagged RFC 3339 text.
	encOptions.Time = cbor.TimeRFC3339Nano
	encOptions.TimeTag = cbor.EncTagRequired
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// any-typed targets decode maps as map[string]any so decoded
		// values can be re-emitted as JSON by the CLI.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Set files can hold millions of identifiers.
		MaxArrayElements: 1 << 27,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

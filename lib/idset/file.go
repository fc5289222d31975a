// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package idset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/codec"
)

// Set file layout:
//
//	magic     8 bytes  "BUIDSET\x00"
//	version   1 byte   fileVersion
//	compress  1 byte   Compression actually used
//	length    4 bytes  big-endian uncompressed payload length
//	payload   rest     CBOR filePayload, compressed per the header
const (
	fileMagic   = "BUIDSET\x00"
	fileVersion = 1
	headerSize  = len(fileMagic) + 1 + 1 + 4

	// maxPayloadSize bounds the allocation a corrupt header can cause.
	maxPayloadSize = 1 << 30
)

// filePayload is the CBOR body of a set file. Members are raw byte
// strings in ascending order.
type filePayload struct {
	PrefixLen int      `cbor:"prefix_len"`
	SuffixLen int      `cbor:"suffix_len"`
	Size      int      `cbor:"size"`
	IDs       [][]byte `cbor:"ids"`
}

// Write encodes set to w. When the payload does not shrink under the
// requested compression it is stored uncompressed; the header records
// what was actually used.
func Write(w io.Writer, set *Set, compression Compression) error {
	payload := filePayload{
		PrefixLen: set.layout.PrefixLen(),
		SuffixLen: set.layout.SuffixLen(),
		Size:      set.layout.Len(),
		IDs:       make([][]byte, len(set.ids)),
	}
	for i, id := range set.ids {
		payload.IDs[i] = id.Bytes()
	}

	encoded, err := codec.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding set payload: %w", err)
	}
	if len(encoded) > maxPayloadSize {
		return fmt.Errorf("set payload of %d bytes exceeds the %d byte limit", len(encoded), maxPayloadSize)
	}

	body, err := compress(encoded, compression)
	if errors.Is(err, errIncompressible) {
		body, compression = encoded, CompressionNone
	} else if err != nil {
		return fmt.Errorf("compressing set payload: %w", err)
	}

	header := make([]byte, headerSize)
	copy(header, fileMagic)
	header[len(fileMagic)] = fileVersion
	header[len(fileMagic)+1] = byte(compression)
	binary.BigEndian.PutUint32(header[len(fileMagic)+2:], uint32(len(encoded)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing set header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing set payload: %w", err)
	}
	return nil
}

// Read decodes a set written by Write. It validates the header, the
// layout, every member's length and that members are strictly
// ascending, so a Set returned by Read upholds the same invariants as
// one built with Add.
func Read(r io.Reader) (*Set, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading set header: %w", err)
	}
	if !bytes.Equal(header[:len(fileMagic)], []byte(fileMagic)) {
		return nil, fmt.Errorf("not a buid set file (magic %q)", header[:len(fileMagic)])
	}
	if version := header[len(fileMagic)]; version != fileVersion {
		return nil, fmt.Errorf("unsupported set file version %d (want %d)", version, fileVersion)
	}
	compression := Compression(header[len(fileMagic)+1])
	size := binary.BigEndian.Uint32(header[len(fileMagic)+2:])
	if size > maxPayloadSize {
		return nil, fmt.Errorf("set payload of %d bytes exceeds the %d byte limit", size, maxPayloadSize)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading set payload: %w", err)
	}
	encoded, err := decompress(body, compression, int(size))
	if err != nil {
		return nil, fmt.Errorf("decompressing set payload: %w", err)
	}

	var payload filePayload
	if err := codec.Unmarshal(encoded, &payload); err != nil {
		return nil, fmt.Errorf("decoding set payload: %w", err)
	}
	layout, err := buid.NewLayout(payload.PrefixLen, payload.SuffixLen, payload.Size)
	if err != nil {
		return nil, fmt.Errorf("set file layout: %w", err)
	}

	set := &Set{layout: layout, ids: make([]buid.ID, 0, len(payload.IDs))}
	for i, raw := range payload.IDs {
		id, err := layout.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("set member %d: %w", i, err)
		}
		if i > 0 && buid.Compare(set.ids[i-1], id) >= 0 {
			return nil, fmt.Errorf("set member %d is not in ascending order", i)
		}
		set.ids = append(set.ids, id)
	}
	return set, nil
}

// Save writes set to path atomically: the data goes to a temporary file
// in the same directory, which is synced and renamed over path.
func Save(path string, set *Set, compression Compression) error {
	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary set file in %s: %w", directory, err)
	}
	temporaryPath := temporary.Name()
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(temporaryPath)

	if err := Write(temporary, set, compression); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("syncing %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("renaming set file into place: %w", err)
	}
	return nil
}

// Load reads the set file at path.
func Load(path string) (*Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening set file: %w", err)
	}
	defer file.Close()

	set, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

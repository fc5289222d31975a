// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/config"
	"github.com/bureau-foundation/buid/lib/idtext"
	"github.com/bureau-foundation/buid/lib/kind"
)

// configParams adds --config to a command's parameters.
type configParams struct {
	ConfigFile string `json:"-" flag:"config" desc:"config file (default: $BUID_CONFIG, else built-in kinds only)"`
}

// loaded is a validated configuration and the registry it describes.
type loaded struct {
	config   *config.Config
	registry *kind.Registry
}

func (p *configParams) load() (*loaded, error) {
	var (
		cfg *config.Config
		err error
	)
	if p.ConfigFile != "" {
		cfg, err = config.LoadFile(p.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return &loaded{config: cfg, registry: registry}, nil
}

// formatParams adds --format to a command's parameters. The zero value
// defers to the configured default_format.
type formatParams struct {
	Format string `json:"format" flag:"format,f" desc:"identifier text format: base58 or hex (default from config)"`
}

func (p *formatParams) format(cfg *config.Config) (idtext.Format, error) {
	if p.Format == "" {
		return cfg.DefaultFormat, nil
	}
	return idtext.ParseFormat(p.Format)
}

// resolveID decodes an identifier's text form and finds its kind:
// kindName when set, otherwise the kind detected from the decoded
// bytes.
func (l *loaded) resolveID(text string, format idtext.Format, kindName string) (kind.Kind, buid.ID, error) {
	raw, err := idtext.DecodeBytes(text, format)
	if err != nil {
		return kind.Kind{}, buid.ID{}, err
	}

	var k kind.Kind
	if kindName != "" {
		k, err = l.registry.Lookup(kindName)
	} else {
		k, err = l.registry.Detect(raw)
	}
	if err != nil {
		return kind.Kind{}, buid.ID{}, err
	}

	id, err := k.Layout.Parse(raw)
	if err != nil {
		return kind.Kind{}, buid.ID{}, fmt.Errorf("%s identifier %q: %w", k.Name, text, err)
	}
	if id.PrefixString() != k.Tag {
		return kind.Kind{}, buid.ID{}, fmt.Errorf("%s identifier %q: prefix %q is not the kind's tag %q",
			k.Name, text, id.PrefixString(), k.Tag)
	}
	return k, id, nil
}

// openInput returns the named file, or stdin when path is empty or "-".
func (e *env) openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(e.stdin), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return file, nil
}

// readInput reads the whole of the named file or stdin. With hexMode
// the input is hex with optional whitespace between digits.
func (e *env) readInput(path string, hexMode bool) ([]byte, error) {
	input, err := e.openInput(path)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	data, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// readLines returns the non-blank lines of the named file or stdin,
// trimmed of surrounding whitespace.
func (e *env) readLines(path string) ([]string, error) {
	input, err := e.openInput(path)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	var lines []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it, so both "757372 01ff" and "75737201ff" are accepted.
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// kindInfo is the JSON form of a kind, with the layout flattened.
type kindInfo struct {
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	PrefixLen int    `json:"prefix_len"`
	SuffixLen int    `json:"suffix_len"`
	Size      int    `json:"size"`
	Content   string `json:"content"`
	Hash      string `json:"hash,omitempty"`
	Stamp     string `json:"stamp,omitempty"`
}

func describeKind(k kind.Kind) kindInfo {
	info := kindInfo{
		Name:      k.Name,
		Tag:       k.Tag,
		PrefixLen: k.Layout.PrefixLen(),
		SuffixLen: k.Layout.SuffixLen(),
		Size:      k.Layout.Len(),
		Content:   k.Content.String(),
	}
	if k.Content == kind.Hashed {
		info.Hash = k.Hash.String()
	}
	if k.HasStamp() {
		info.Stamp = k.Stamp.String()
	}
	return info
}

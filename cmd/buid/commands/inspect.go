// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/codec"
	"github.com/bureau-foundation/buid/lib/idtext"
	"github.com/bureau-foundation/buid/lib/kind"
)

type inspectParams struct {
	configParams
	formatParams
	cli.JSONOutput
	Kind string `json:"kind" flag:"kind,k" desc:"kind of the identifier (default: detect from its prefix and length)"`
	CBOR bool   `json:"cbor" flag:"cbor"   desc:"write the inspection as deterministic CBOR to stdout"`
	Diag bool   `json:"diag" flag:"diag"   desc:"print the CBOR inspection in diagnostic notation"`
}

// inspection is the JSON form of an inspected identifier. Segments
// are hex.
type inspection struct {
	Kind      string     `json:"kind"`
	Text      string     `json:"text"`
	PrefixLen int        `json:"prefix_len"`
	SuffixLen int        `json:"suffix_len"`
	Size      int        `json:"size"`
	Prefix    string     `json:"prefix"`
	Content   string     `json:"content"`
	Suffix    string     `json:"suffix"`
	Time      *time.Time `json:"time,omitempty"`
}

// cborInspection is the CBOR form: the identifier and its segments
// are byte strings.
type cborInspection struct {
	Kind    string     `cbor:"kind"`
	ID      buid.ID    `cbor:"id"`
	Prefix  []byte     `cbor:"prefix"`
	Content []byte     `cbor:"content"`
	Suffix  []byte     `cbor:"suffix"`
	Time    *time.Time `cbor:"time,omitempty"`
}

func inspectCommand(e *env) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Decode an identifier and show its segments",
		Description: `Decode an identifier's text form, determine its kind and print the
layout and each segment in hex. When the kind stamps a time into the
suffix, the decoded time is shown too.

The kind is detected from the decoded length and prefix tag unless
--kind names it.`,
		Usage: "buid inspect <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Inspect a freshly minted user id",
				Command:     "buid inspect $(printf alice | buid new user)",
			},
			{
				Description: "Inspect a hex identifier as JSON",
				Command:     "buid inspect --format hex --json 75737201...",
			},
			{
				Description: "Show the CBOR form in diagnostic notation",
				Command:     "buid inspect --diag <id>",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: buid inspect <id>")
			}
			outputs := 0
			for _, set := range []bool{params.CBOR, params.Diag, params.OutputJSON} {
				if set {
					outputs++
				}
			}
			if outputs > 1 {
				return fmt.Errorf("--cbor, --diag and --json are mutually exclusive")
			}

			state, err := params.load()
			if err != nil {
				return err
			}
			format, err := params.format(state.config)
			if err != nil {
				return err
			}
			k, id, err := state.resolveID(args[0], format, params.Kind)
			if err != nil {
				return err
			}

			var stamp *time.Time
			if k.HasStamp() {
				decoded, err := k.Time(id)
				if err != nil {
					return err
				}
				stamp = &decoded
			}

			if params.CBOR || params.Diag {
				encoded, err := codec.Marshal(cborInspection{
					Kind:    k.Name,
					ID:      id,
					Prefix:  id.Prefix(),
					Content: id.Content(),
					Suffix:  id.Suffix(),
					Time:    stamp,
				})
				if err != nil {
					return fmt.Errorf("encoding inspection: %w", err)
				}
				if params.Diag {
					diagnostic, err := codec.Diagnose(encoded)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(e.stdout, diagnostic)
					return err
				}
				_, err = e.stdout.Write(encoded)
				return err
			}

			result := inspection{
				Kind:      k.Name,
				Text:      idtext.Encode(id, format),
				PrefixLen: id.Layout().PrefixLen(),
				SuffixLen: id.Layout().SuffixLen(),
				Size:      id.Layout().Len(),
				Prefix:    hex.EncodeToString(id.Prefix()),
				Content:   hex.EncodeToString(id.Content()),
				Suffix:    hex.EncodeToString(id.Suffix()),
				Time:      stamp,
			}
			if done, err := params.EmitJSON(e.stdout, result); done {
				return err
			}
			return writeInspection(e, k, id, result)
		},
	}
}

func writeInspection(e *env, k kind.Kind, id buid.ID, result inspection) error {
	renderer := newFieldRenderer(e.stdout)

	prefix := renderer.prefix.Render(result.Prefix)
	if result.Prefix != "" {
		prefix += " " + strconv.Quote(id.PrefixString())
	}
	rows := []field{
		{"kind", k.Name},
		{"layout", id.Layout().String()},
		{"prefix", prefix},
		{"content", renderer.content.Render(result.Content)},
		{"suffix", renderer.suffix.Render(result.Suffix)},
	}
	if result.Time != nil {
		rows = append(rows, field{"time", fmt.Sprintf("%s (%s)", result.Time.Format(time.RFC3339Nano), k.Stamp)})
	}
	return renderer.write(e.stdout, rows)
}

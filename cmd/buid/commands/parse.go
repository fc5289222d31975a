// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
	"github.com/bureau-foundation/buid/lib/idtext"
)

type parseParams struct {
	configParams
	formatParams
	cli.JSONOutput
	Kind     string `json:"kind" flag:"kind,k" desc:"kind whose layout the bytes must match (required)"`
	HexInput bool   `json:"hex"  flag:"hex,x"  desc:"treat input as hex; whitespace between digits is ignored"`
}

func parseCommand(e *env) *cli.Command {
	var params parseParams

	return &cli.Command{
		Name:    "parse",
		Summary: "Turn raw identifier bytes into text",
		Description: `Read the raw bytes of one identifier from the file argument or stdin,
check them against the layout of --kind and print the text form.

The input must be exactly the kind's total length. Anything else is
rejected with the expected and actual byte counts.`,
		Usage: "buid parse --kind <kind> [--hex] [file]",
		Examples: []cli.Example{
			{
				Description: "Parse a 16-byte binary UUID",
				Command:     "buid parse --kind uuid uuid.bin",
			},
			{
				Description: "Parse hex from a debugger dump",
				Command:     "echo '757372 ...' | buid parse --kind user --hex",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("usage: buid parse --kind <kind> [--hex] [file]")
			}
			if params.Kind == "" {
				return fmt.Errorf("--kind is required")
			}

			state, err := params.load()
			if err != nil {
				return err
			}
			format, err := params.format(state.config)
			if err != nil {
				return err
			}
			k, err := state.registry.Lookup(params.Kind)
			if err != nil {
				return err
			}

			var file string
			if len(args) == 1 {
				file = args[0]
			}
			raw, err := e.readInput(file, params.HexInput)
			if err != nil {
				return err
			}
			id, err := k.Layout.Parse(raw)
			if err != nil {
				return err
			}

			text := idtext.Encode(id, format)
			if done, err := params.EmitJSON(e.stdout, minted{Kind: k.Name, ID: text, Hex: id.String()}); done {
				return err
			}
			_, err = fmt.Fprintln(e.stdout, text)
			return err
		},
	}
}

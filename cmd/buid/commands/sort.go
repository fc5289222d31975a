// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/idtext"
)

type sortParams struct {
	configParams
	formatParams
	Kind   string `json:"kind"   flag:"kind,k"   desc:"kind of every input identifier (default: detect per line)"`
	Unique bool   `json:"unique" flag:"unique,u" desc:"drop repeated identifiers"`
}

func sortCommand(e *env) *cli.Command {
	var params sortParams

	return &cli.Command{
		Name:    "sort",
		Summary: "Sort identifiers in byte order",
		Description: `Read text identifiers one per line from the file argument or stdin and
print them sorted by their raw bytes, which is the order a database
index over the binary form would use. Base58 text need not sort the
same way, so sorting the text lines directly gives a different order.

Identifiers of different kinds may be mixed; equal bytes of different
lengths order the shorter first.`,
		Usage:  "buid sort [--kind <kind>] [--unique] [file]",
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("usage: buid sort [--kind <kind>] [--unique] [file]")
			}
			state, err := params.load()
			if err != nil {
				return err
			}
			format, err := params.format(state.config)
			if err != nil {
				return err
			}

			var file string
			if len(args) == 1 {
				file = args[0]
			}
			lines, err := e.readLines(file)
			if err != nil {
				return err
			}

			ids := make([]buid.ID, len(lines))
			for i, line := range lines {
				_, id, err := state.resolveID(line, format, params.Kind)
				if err != nil {
					return fmt.Errorf("line %d: %w", i+1, err)
				}
				ids[i] = id
			}

			buid.Sort(ids)
			if params.Unique {
				ids = slices.Compact(ids)
			}
			for _, id := range ids {
				if _, err := fmt.Fprintln(e.stdout, idtext.Encode(id, format)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

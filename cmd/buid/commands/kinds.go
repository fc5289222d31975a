// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
)

type kindsParams struct {
	configParams
	cli.JSONOutput
}

func kindsCommand(e *env) *cli.Command {
	var params kindsParams

	return &cli.Command{
		Name:    "kinds",
		Summary: "List registered identifier kinds",
		Description: `List the built-in kinds and any declared in the config file, with
their prefix tag, layout and how content and suffix are produced.`,
		Usage:  "buid kinds [flags]",
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("kinds takes no arguments, got %q", args[0])
			}
			state, err := params.load()
			if err != nil {
				return err
			}

			kinds := state.registry.Kinds()
			infos := make([]kindInfo, len(kinds))
			for i, k := range kinds {
				infos[i] = describeKind(k)
			}
			if done, err := params.EmitJSON(e.stdout, infos); done {
				return err
			}

			tw := tabwriter.NewWriter(e.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTAG\tPREFIX\tCONTENT\tSUFFIX\tSIZE\tSOURCE\tSTAMP")
			for _, info := range infos {
				source := info.Content
				if info.Hash != "" {
					source += "/" + info.Hash
				}
				stamp := info.Stamp
				if stamp == "" {
					stamp = "-"
				}
				tag := strconv.Quote(info.Tag)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
					info.Name, tag, info.PrefixLen, info.Size-info.PrefixLen-info.SuffixLen,
					info.SuffixLen, info.Size, source, stamp)
			}
			return tw.Flush()
		},
	}
}

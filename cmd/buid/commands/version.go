// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
	"github.com/bureau-foundation/buid/lib/version"
)

func versionCommand(e *env) *cli.Command {
	var params cli.JSONOutput

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if done, err := params.EmitJSON(e.stdout, version.Current()); done {
				return err
			}
			_, err := fmt.Fprintf(e.stdout, "buid %s\n", version.Full())
			return err
		},
	}
}

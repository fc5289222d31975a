// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command buid mints, inspects and stores fixed-width binary
// identifiers. Run "buid --help" for the command list.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/buid/cmd/buid/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands whose non-zero exit is an answer (set has) return
		// an error carrying the code and have nothing more to print.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}

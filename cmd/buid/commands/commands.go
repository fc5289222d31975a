// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the buid CLI command tree.
//
// Every command reads and writes through an [env] instead of the
// process's standard streams directly, so tests drive the real tree
// with buffers and a fake clock.
package commands

import (
	"io"
	"os"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
	"github.com/bureau-foundation/buid/lib/clock"
)

// env is what a command may touch outside its arguments.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	clock  clock.Clock
}

func processEnv() *env {
	return &env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  clock.Real(),
	}
}

// Root builds and returns the complete buid command tree bound to the
// process's standard streams and the real clock.
func Root() *cli.Command {
	return newRoot(processEnv())
}

func newRoot(e *env) *cli.Command {
	return &cli.Command{
		Name: "buid",
		Description: `buid: fixed-width binary identifiers.

An identifier is a prefix tag, a content segment and a suffix of fixed
sizes. Kinds name a layout together with how content is produced
(hashed data, random bytes or a UUIDv7) and how the suffix stamps the
creation time. Built-in kinds are user, order and uuid; more can be
declared in a config file named by --config or BUID_CONFIG.`,
		HelpOutput: e.stderr,
		Subcommands: []*cli.Command{
			newCommand(e),
			inspectCommand(e),
			parseCommand(e),
			kindsCommand(e),
			sortCommand(e),
			setCommand(e),
			versionCommand(e),
		},
	}
}

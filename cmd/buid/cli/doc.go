// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the buid CLI.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a flag source and a Run
// function. Flags come either from a [pflag.FlagSet] factory or from a
// tagged parameter struct returned by [Command.Params], which
// [BindFlags] turns into flags. Commands are assembled into a tree in
// cmd/buid/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing and help output.
//
// When a user types an unknown subcommand or flag, the framework
// computes the Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// Output helpers: [JSONOutput] adds a --json flag to a parameter
// struct, [NewCommandLogger] builds the slog logger commands use, and
// [ExitError] carries a deliberate non-zero exit status.
package cli

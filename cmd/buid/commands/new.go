// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"time"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/idtext"
	"github.com/bureau-foundation/buid/lib/kind"
	"github.com/bureau-foundation/buid/lib/mint"
)

type newParams struct {
	configParams
	formatParams
	cli.JSONOutput
	At      string `json:"at"      flag:"at"        desc:"stamp this RFC 3339 time instead of now"`
	Count   int    `json:"count"   flag:"count,n"   desc:"number of identifiers to mint (random and uuidv7 kinds)" default:"1"`
	Verbose bool   `json:"verbose" flag:"verbose,v" desc:"log each minted identifier to stderr"`
}

// minted is the JSON form of a new identifier.
type minted struct {
	Kind string     `json:"kind"`
	ID   string     `json:"id"`
	Hex  string     `json:"hex"`
	Time *time.Time `json:"time,omitempty"`
}

func newCommand(e *env) *cli.Command {
	var params newParams

	return &cli.Command{
		Name:    "new",
		Summary: "Mint a new identifier of a kind",
		Description: `Mint a new identifier of the named kind and print its text form.

Hashed kinds (such as user) derive their content from data read from
the file argument or stdin, so the same data always yields the same
content; only the timestamp suffix differs between mints. Random and
uuidv7 kinds (such as order and uuid) take no input.`,
		Usage: "buid new <kind> [file] [flags]",
		Examples: []cli.Example{
			{
				Description: "Mint a user id from an email address",
				Command:     "printf alice@example.com | buid new user",
			},
			{
				Description: "Mint five order ids in hex",
				Command:     "buid new order -n 5 --format hex",
			},
			{
				Description: "Mint with a fixed timestamp, as JSON",
				Command:     "buid new user --at 2026-01-01T00:00:00Z --json profile.json",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return fmt.Errorf("usage: buid new <kind> [file]")
			}
			if params.Count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", params.Count)
			}

			state, err := params.load()
			if err != nil {
				return err
			}
			format, err := params.format(state.config)
			if err != nil {
				return err
			}
			k, err := state.registry.Lookup(args[0])
			if err != nil {
				return err
			}
			if k.Content == kind.Hashed && params.Count > 1 {
				return fmt.Errorf("kind %q hashes its input; --count would repeat the same content", k.Name)
			}
			if k.Content != kind.Hashed && len(args) == 2 {
				return fmt.Errorf("kind %q has %s content and takes no input file", k.Name, k.Content)
			}

			logger := cli.NewLogger(e.stderr, params.Verbose).With("command", "new", "kind", k.Name)
			minter := mint.New(k, mint.WithClock(e.clock), mint.WithLogger(logger))

			var file string
			if len(args) == 2 {
				file = args[1]
			}
			ids, err := e.mintIDs(minter, file, params.At, params.Count)
			if err != nil {
				return err
			}

			results := make([]minted, len(ids))
			for i, id := range ids {
				results[i] = minted{Kind: k.Name, ID: idtext.Encode(id, format), Hex: id.String()}
				if k.HasStamp() {
					if stamp, err := k.Time(id); err == nil {
						results[i].Time = &stamp
					}
				}
			}
			if done, err := params.EmitJSON(e.stdout, results); done {
				return err
			}
			for _, result := range results {
				fmt.Fprintln(e.stdout, result.ID)
			}
			return nil
		},
	}
}

// mintIDs mints count identifiers. Hashed kinds read their input from
// file or stdin; a non-empty at replaces the clock.
func (e *env) mintIDs(minter *mint.Minter, file, at string, count int) ([]buid.ID, error) {
	var stamp time.Time
	if at != "" {
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("--at: %w", err)
		}
		stamp = parsed
	}

	if minter.Kind().Content == kind.Hashed {
		if stamp.IsZero() {
			input, err := e.openInput(file)
			if err != nil {
				return nil, err
			}
			defer input.Close()
			id, err := minter.MintReader(input)
			if err != nil {
				return nil, err
			}
			return []buid.ID{id}, nil
		}
		data, err := e.readInput(file, false)
		if err != nil {
			return nil, err
		}
		id, err := minter.MintAt(stamp, data)
		if err != nil {
			return nil, err
		}
		return []buid.ID{id}, nil
	}

	ids := make([]buid.ID, 0, count)
	for range count {
		var (
			id  buid.ID
			err error
		)
		if stamp.IsZero() {
			id, err = minter.Mint(nil)
		} else {
			id, err = minter.MintAt(stamp, nil)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

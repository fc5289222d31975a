// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/idset"
	"github.com/bureau-foundation/buid/lib/idtext"
)

// setParams are shared by the set subcommands.
type setParams struct {
	configParams
	formatParams
	Kind string `json:"kind" flag:"kind,k" desc:"kind of the identifiers (default: detect from each)"`
}

// setWriteParams add the compression choice for commands that save.
type setWriteParams struct {
	setParams
	Compression string `json:"compression" flag:"compression,c" desc:"set file compression: none, lz4 or zstd (default from config)"`
}

func (p *setWriteParams) compression(state *loaded) (idset.Compression, error) {
	if p.Compression == "" {
		return state.config.Compression, nil
	}
	return idset.ParseCompression(p.Compression)
}

func setCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:    "set",
		Summary: "Manage identifier set files",
		Description: `An identifier set file holds sorted, distinct identifiers of a single
layout, compressed on disk. A set named without a directory lives in
the configured set_dir with a .buidset extension; any path containing
a slash is used as given.`,
		Subcommands: []*cli.Command{
			setAddCommand(e),
			setRemoveCommand(e),
			setListCommand(e),
			setHasCommand(e),
			setMergeCommand(e),
		},
	}
}

// idsFromArgs decodes identifiers given as arguments, or read one per
// line from stdin when there are none.
func (e *env) idsFromArgs(state *loaded, params *setParams, args []string) ([]buid.ID, error) {
	format, err := params.format(state.config)
	if err != nil {
		return nil, err
	}
	texts := args
	if len(texts) == 0 {
		if texts, err = e.readLines(""); err != nil {
			return nil, err
		}
	}
	ids := make([]buid.ID, len(texts))
	for i, text := range texts {
		_, id, err := state.resolveID(text, format, params.Kind)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// missingSet is the error for updating a set file that does not exist.
func missingSet(path string) error {
	return fmt.Errorf("set %s does not exist", path)
}

func setAddCommand(e *env) *cli.Command {
	var params setWriteParams

	return &cli.Command{
		Name:    "add",
		Summary: "Add identifiers to a set, creating it if needed",
		Usage:   "buid set add <set> [id...] [flags]",
		Examples: []cli.Example{
			{
				Description: "Record a new order in the shipped set",
				Command:     "buid set add shipped $(buid new order)",
			},
			{
				Description: "Bulk-load identifiers from a file",
				Command:     "buid set add ./users.buidset < users.txt",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("usage: buid set add <set> [id...]")
			}
			state, err := params.load()
			if err != nil {
				return err
			}
			compression, err := params.compression(state)
			if err != nil {
				return err
			}
			ids, err := e.idsFromArgs(state, &params.setParams, args[1:])
			if err != nil {
				return err
			}

			path := state.config.SetPath(args[0])
			if filepath.Dir(path) == filepath.Clean(state.config.SetDir) {
				if err := state.config.EnsureSetDir(); err != nil {
					return err
				}
			}

			var added, size int
			err = idset.Update(path, compression, func(set *idset.Set) (*idset.Set, error) {
				if set == nil {
					if len(ids) == 0 {
						return nil, fmt.Errorf("%w and no identifiers were given to create it", missingSet(path))
					}
					set = idset.New(ids[0].Layout())
				}
				for _, id := range ids {
					isNew, err := set.Add(id)
					if err != nil {
						return nil, err
					}
					if isNew {
						added++
					}
				}
				size = set.Len()
				return set, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stderr, "added %d of %d identifiers; %s holds %d\n", added, len(ids), path, size)
			return nil
		},
	}
}

func setRemoveCommand(e *env) *cli.Command {
	var params setWriteParams

	return &cli.Command{
		Name:    "remove",
		Summary: "Remove identifiers from a set",
		Usage:   "buid set remove <set> [id...] [flags]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("usage: buid set remove <set> [id...]")
			}
			state, err := params.load()
			if err != nil {
				return err
			}
			compression, err := params.compression(state)
			if err != nil {
				return err
			}
			ids, err := e.idsFromArgs(state, &params.setParams, args[1:])
			if err != nil {
				return err
			}

			path := state.config.SetPath(args[0])
			var removed, size int
			err = idset.Update(path, compression, func(set *idset.Set) (*idset.Set, error) {
				if set == nil {
					return nil, missingSet(path)
				}
				for _, id := range ids {
					if set.Remove(id) {
						removed++
					}
				}
				size = set.Len()
				return set, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stderr, "removed %d of %d identifiers; %s holds %d\n", removed, len(ids), path, size)
			return nil
		},
	}
}

type setListParams struct {
	setParams
	cli.JSONOutput
	From string `json:"from" flag:"from" desc:"first identifier to list (inclusive)"`
	To   string `json:"to"   flag:"to"   desc:"identifier to stop before (exclusive)"`
}

func setListCommand(e *env) *cli.Command {
	var params setListParams

	return &cli.Command{
		Name:    "list",
		Summary: "Print the identifiers in a set in byte order",
		Usage:   "buid set list <set> [--from <id>] [--to <id>] [flags]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: buid set list <set>")
			}
			state, err := params.load()
			if err != nil {
				return err
			}
			format, err := params.format(state.config)
			if err != nil {
				return err
			}
			set, err := idset.Load(state.config.SetPath(args[0]))
			if err != nil {
				return err
			}

			var low, high buid.ID
			if params.From != "" {
				if low, err = idtext.Decode(set.Layout(), params.From, format); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			if params.To != "" {
				if high, err = idtext.Decode(set.Layout(), params.To, format); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
			}

			var texts []string
			for id := range set.Range(low, high) {
				texts = append(texts, idtext.Encode(id, format))
			}
			if done, err := params.EmitJSON(e.stdout, texts); done {
				return err
			}
			for _, text := range texts {
				if _, err := fmt.Fprintln(e.stdout, text); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func setHasCommand(e *env) *cli.Command {
	var params setParams

	return &cli.Command{
		Name:    "has",
		Summary: "Exit 0 if a set contains an identifier, 1 if not",
		Usage:   "buid set has <set> <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Branch on membership in a script",
				Command:     "if buid set has shipped \"$order\"; then echo shipped; fi",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: buid set has <set> <id>")
			}
			state, err := params.load()
			if err != nil {
				return err
			}
			set, err := idset.Load(state.config.SetPath(args[0]))
			if err != nil {
				return err
			}
			ids, err := e.idsFromArgs(state, &params, args[1:])
			if err != nil {
				return err
			}
			if !set.Contains(ids[0]) {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func setMergeCommand(e *env) *cli.Command {
	var params setWriteParams

	return &cli.Command{
		Name:    "merge",
		Summary: "Add every identifier of other sets into a set",
		Usage:   "buid set merge <set> <other>... [flags]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: buid set merge <set> <other>...")
			}
			state, err := params.load()
			if err != nil {
				return err
			}
			compression, err := params.compression(state)
			if err != nil {
				return err
			}

			others := make([]*idset.Set, len(args)-1)
			for i, name := range args[1:] {
				if others[i], err = idset.Load(state.config.SetPath(name)); err != nil {
					return err
				}
			}

			path := state.config.SetPath(args[0])
			var added, size int
			err = idset.Update(path, compression, func(set *idset.Set) (*idset.Set, error) {
				if set == nil {
					return nil, missingSet(path)
				}
				for i, other := range others {
					count, err := set.Merge(other)
					if err != nil {
						return nil, fmt.Errorf("merging %s: %w", args[i+1], err)
					}
					added += count
				}
				size = set.Len()
				return set, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stderr, "merged %d new identifiers; %s holds %d\n", added, path, size)
			return nil
		},
	}
}

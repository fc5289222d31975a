// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "buid",
		Subcommands: []*Command{
			{Name: "kinds", Run: func(args []string) error { called = "kinds"; return nil }},
			{Name: "version", Run: func(args []string) error { called = "version"; return nil }},
		},
	}

	if err := root.Execute([]string{"version"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "version" {
		t.Errorf("dispatched to %q, want %q", called, "version")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "buid",
		Subcommands: []*Command{
			{
				Name: "set",
				Subcommands: []*Command{
					{
						Name: "add",
						Run: func(args []string) error {
							called = "set add"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"set", "add", "users"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "set add" {
		t.Errorf("dispatched to %q, want %q", called, "set add")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "users" {
		t.Errorf("args = %v, want [users]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var kindName string
	var target string

	command := &Command{
		Name: "inspect",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.StringVar(&kindName, "kind", "", "kind name")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--kind", "user", "3mJr7AoUXx2Wqd"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if kindName != "user" {
		t.Errorf("kindName = %q, want %q", kindName, "user")
	}
	if target != "3mJr7AoUXx2Wqd" {
		t.Errorf("target = %q, want %q", target, "3mJr7AoUXx2Wqd")
	}
}

func TestCommand_Execute_Params(t *testing.T) {
	type sortParams struct {
		Kind   string `flag:"kind,k" desc:"kind name"`
		Unique bool   `flag:"unique,u" desc:"drop duplicates"`
	}
	var params sortParams
	var receivedArgs []string

	command := &Command{
		Name:   "sort",
		Params: func() any { return &params },
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"-k", "order", "--unique", "ids.txt"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Kind != "order" || !params.Unique {
		t.Errorf("params = %+v, want kind=order unique=true", params)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "ids.txt" {
		t.Errorf("args = %v, want [ids.txt]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "sort",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("sort", pflag.ContinueOnError)
			flagSet.Bool("unique", false, "drop duplicates")
			flagSet.String("kind", "", "kind name")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--uniqe"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --unique") {
		t.Errorf("error = %q, want suggestion for '--unique'", errStr)
	}
	if !strings.Contains(errStr, "uniqe") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "sort",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("sort", pflag.ContinueOnError)
			flagSet.Bool("unique", false, "drop duplicates")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "buid",
		Subcommands: []*Command{
			{Name: "inspect"},
			{Name: "kinds"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"inspcet"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "inspect"`) {
		t.Errorf("error = %q, want suggestion for 'inspect'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name:        "buid",
		Subcommands: []*Command{{Name: "inspect"}, {Name: "kinds"}},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_RunWithSubcommandsTakesPositionals(t *testing.T) {
	var received []string
	command := &Command{
		Name:        "set",
		Subcommands: []*Command{{Name: "add", Run: func([]string) error { return nil }}},
		Run: func(args []string) error {
			received = args
			return nil
		},
	}

	if err := command.Execute([]string{"users"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(received) != 1 || received[0] != "users" {
		t.Errorf("Run args = %v, want [users]", received)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var help bytes.Buffer
			ran := false
			command := &Command{
				Name:       "kinds",
				Summary:    "List identifier kinds",
				HelpOutput: &help,
				Run:        func([]string) error { ran = true; return nil },
			}
			if err := command.Execute([]string{helpArg}); err != nil {
				t.Fatalf("Execute(%q) error: %v", helpArg, err)
			}
			if ran {
				t.Error("Run was called for a help request")
			}
			if !strings.Contains(help.String(), "List identifier kinds") {
				t.Errorf("help output = %q, want the summary", help.String())
			}
		})
	}
}

func TestCommand_Execute_HelpAfterFlags(t *testing.T) {
	var help bytes.Buffer
	var params struct {
		Kind string `flag:"kind" desc:"kind name"`
	}
	command := &Command{
		Name:       "parse",
		HelpOutput: &help,
		Params:     func() any { return &params },
		Run:        func([]string) error { t.Error("Run called"); return nil },
	}
	if err := command.Execute([]string{"--kind", "user", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(help.String(), "--kind") {
		t.Errorf("help output = %q, want the --kind flag", help.String())
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "set",
		HelpOutput:  &help,
		Subcommands: []*Command{{Name: "add", Summary: "Add identifiers"}},
	}
	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute(nil) error = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "Add identifiers") {
		t.Errorf("help output = %q, want the subcommand listing", help.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var params struct {
		JSONOutput
		Kind string `flag:"kind,k" desc:"kind name"`
	}
	root := &Command{Name: "buid"}
	command := &Command{
		Name:        "inspect",
		Description: "Decode an identifier and show its segments.",
		Params:      func() any { return &params },
		Examples: []Example{
			{Description: "Inspect a user id", Command: "buid inspect --kind user 3mJr7"},
		},
		parent: root,
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{
		"Decode an identifier and show its segments.",
		"Usage:\n  buid inspect [flags]",
		"-k, --kind string",
		"--json",
		"# Inspect a user id",
		"buid inspect --kind user 3mJr7",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// mode is a text-marshalled enum like the formats and compression
// modes commands bind.
type mode uint8

const (
	modeFast mode = iota
	modeSmall
)

func (m mode) MarshalText() ([]byte, error) {
	switch m {
	case modeFast:
		return []byte("fast"), nil
	case modeSmall:
		return []byte("small"), nil
	}
	return nil, fmt.Errorf("unknown mode %d", m)
}

func (m *mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fast":
		*m = modeFast
	case "small":
		*m = modeSmall
	default:
		return fmt.Errorf("unknown mode %q", text)
	}
	return nil
}

func TestBindFlags_Types(t *testing.T) {
	type allTypes struct {
		Name     string        `flag:"name,n" desc:"a name" default:"anon"`
		Verbose  bool          `flag:"verbose,v" desc:"verbose"`
		Count    int           `flag:"count" desc:"count" default:"3"`
		Offset   int64         `flag:"offset" desc:"offset" default:"-9"`
		Ratio    float64       `flag:"ratio" desc:"ratio" default:"0.5"`
		Timeout  time.Duration `flag:"timeout" desc:"timeout" default:"2s"`
		Tags     []string      `flag:"tag" desc:"tags" default:"a,b"`
		Mode     mode          `flag:"mode" desc:"mode" default:"small"`
		Untagged string
	}

	var params allTypes
	flagSet := FlagsFromParams("test", &params)

	if params.Name != "anon" || params.Count != 3 || params.Offset != -9 || params.Ratio != 0.5 ||
		params.Timeout != 2*time.Second || len(params.Tags) != 2 || params.Mode != modeSmall {
		t.Errorf("defaults not applied: %+v", params)
	}

	err := flagSet.Parse([]string{
		"-n", "alice", "-v", "--count=7", "--offset", "12", "--ratio", "1.5",
		"--timeout", "1m", "--tag", "x", "--mode", "fast",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Name != "alice" || !params.Verbose || params.Count != 7 || params.Offset != 12 ||
		params.Ratio != 1.5 || params.Timeout != time.Minute || params.Mode != modeFast {
		t.Errorf("parsed values wrong: %+v", params)
	}
	if len(params.Tags) != 1 || params.Tags[0] != "x" {
		t.Errorf("Tags = %v, want [x]", params.Tags)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_TextValueRejectsBadInput(t *testing.T) {
	var params struct {
		Mode mode `flag:"mode" desc:"mode"`
	}
	flagSet := FlagsFromParams("test", &params)
	err := flagSet.Parse([]string{"--mode", "medium"})
	if err == nil || !strings.Contains(err.Error(), `unknown mode "medium"`) {
		t.Errorf("Parse error = %v, want unknown mode", err)
	}

	flag := flagSet.Lookup("mode")
	if flag.Value.Type() != "mode" {
		t.Errorf("Type() = %q, want mode", flag.Value.Type())
	}
	if flag.DefValue != "fast" {
		t.Errorf("DefValue = %q, want fast", flag.DefValue)
	}
}

func TestBindFlags_EmbeddedStructs(t *testing.T) {
	type common struct {
		Config string `flag:"config" desc:"config file"`
	}
	var params struct {
		common
		JSONOutput
		Kind string `flag:"kind" desc:"kind"`
	}

	flagSet := FlagsFromParams("test", &params)
	for _, name := range []string{"config", "json", "kind"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("flag --%s not bound", name)
		}
	}
	if err := flagSet.Parse([]string{"--config", "/etc/buid.yaml", "--json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Config != "/etc/buid.yaml" || !params.OutputJSON {
		t.Errorf("params = %+v", params)
	}
}

type customBinder struct {
	value string
}

func (c *customBinder) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.value, "custom", "preset", "bound by AddFlags")
}

func TestBindFlags_FlagBinder(t *testing.T) {
	var params struct {
		Custom customBinder
	}
	flagSet := FlagsFromParams("test", &params)
	if params.Custom.value != "preset" {
		t.Errorf("value = %q, want preset", params.Custom.value)
	}
	if err := flagSet.Parse([]string{"--custom", "set"}); err != nil {
		t.Fatal(err)
	}
	if params.Custom.value != "set" {
		t.Errorf("value = %q, want set", params.Custom.value)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		params  any
		wantErr string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"pointer to non-struct", new(int), "pointer to a struct"},
		{"unsupported type", &struct {
			Values map[string]int `flag:"values"`
		}{}, "unsupported type"},
		{"bad default", &struct {
			Count int `flag:"count" default:"many"`
		}{}, "default for --count"},
		{"bad text default", &struct {
			Mode mode `flag:"mode" default:"medium"`
		}{}, "default for --mode"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("BindFlags error = %v, want %q", err, test.wantErr)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic for a non-pointer")
		}
	}()
	FlagsFromParams("test", struct{}{})
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/buid/lib/buid"
	"github.com/bureau-foundation/buid/lib/idhash"
	"github.com/bureau-foundation/buid/lib/idset"
	"github.com/bureau-foundation/buid/lib/idstamp"
	"github.com/bureau-foundation/buid/lib/idtext"
	"github.com/bureau-foundation/buid/lib/kind"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "BUID_CONFIG"

// SetFileExtension is appended to bare set names by [Config.SetPath].
const SetFileExtension = ".buidset"

// Config is the buid configuration.
type Config struct {
	// DefaultFormat is the display encoding used when a command is not
	// given --format.
	DefaultFormat idtext.Format `yaml:"default_format" json:"default_format"`

	// DefaultHash is the content hash for configured hashed kinds that
	// do not name one.
	DefaultHash idhash.Algorithm `yaml:"default_hash" json:"default_hash"`

	// SetDir is where set files named without a directory are kept.
	// Default: ~/.local/share/buid/sets
	SetDir string `yaml:"set_dir" json:"set_dir"`

	// Compression is used when writing set files.
	// Default: zstd
	Compression idset.Compression `yaml:"compression" json:"compression"`

	// Kinds are registered after the built-in kinds.
	Kinds []KindConfig `yaml:"kinds" json:"kinds"`
}

// KindConfig declares one identifier kind. The prefix length is the
// length of Tag.
type KindConfig struct {
	Name      string             `yaml:"name" json:"name"`
	Tag       string             `yaml:"tag" json:"tag"`
	SuffixLen int                `yaml:"suffix_len" json:"suffix_len"`
	Size      int                `yaml:"size" json:"size"`
	Content   kind.ContentSource `yaml:"content" json:"content"`
	Hash      *idhash.Algorithm  `yaml:"hash,omitempty" json:"hash,omitempty"`
	Stamp     idstamp.Precision  `yaml:"stamp" json:"stamp"`
}

// Kind converts the declaration, taking the hash from defaultHash when
// none is set.
func (k KindConfig) Kind(defaultHash idhash.Algorithm) (kind.Kind, error) {
	layout, err := buid.NewLayout(len(k.Tag), k.SuffixLen, k.Size)
	if err != nil {
		return kind.Kind{}, fmt.Errorf("kind %q: %w", k.Name, err)
	}
	hash := defaultHash
	if k.Hash != nil {
		hash = *k.Hash
	}
	return kind.Kind{
		Name:    k.Name,
		Tag:     k.Tag,
		Layout:  layout,
		Content: k.Content,
		Hash:    hash,
		Stamp:   k.Stamp,
	}, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		DefaultFormat: idtext.Base58,
		DefaultHash:   idhash.BLAKE3,
		SetDir:        filepath.Join(homeDir, ".local", "share", "buid", "sets"),
		Compression:   idset.CompressionZstd,
	}
}

// Load loads configuration from the file named by BUID_CONFIG, or
// returns [Default] when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads and validates configuration from path. Fields the
// file leaves out keep their [Default] values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := cfg.decode(path, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	configDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.expandVariables(configDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decode unmarshals data into c according to the extension of path.
func (c *Config) decode(path string, data []byte) error {
	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config file extension %q (want .yaml, .yml, .json or .jsonc)", extension)
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables(configDir string) {
	vars := map[string]string{
		"BUID_CONFIG_DIR": configDir,
		"HOME":            os.Getenv("HOME"),
	}
	c.SetDir = expandVars(c.SetDir, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.DefaultFormat.MarshalText(); err != nil {
		errs = append(errs, fmt.Errorf("default_format: %w", err))
	}
	if _, err := c.DefaultHash.MarshalText(); err != nil {
		errs = append(errs, fmt.Errorf("default_hash: %w", err))
	}
	if _, err := c.Compression.MarshalText(); err != nil {
		errs = append(errs, fmt.Errorf("compression: %w", err))
	}
	if c.SetDir == "" {
		errs = append(errs, errors.New("set_dir is required"))
	}

	// Registering into a scratch registry catches duplicate names and
	// tags as well as per-kind problems.
	if _, err := c.Registry(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Registry returns a registry holding the built-in kinds followed by
// the configured ones. Every configured kind is checked; the error
// joins all failures.
func (c *Config) Registry() (*kind.Registry, error) {
	registry := kind.Builtin()
	var errs []error
	for i, declared := range c.Kinds {
		k, err := declared.Kind(c.DefaultHash)
		if err != nil {
			errs = append(errs, fmt.Errorf("kinds[%d]: %w", i, err))
			continue
		}
		if err := registry.Register(k); err != nil {
			errs = append(errs, fmt.Errorf("kinds[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return registry, nil
}

// SetPath resolves a set name given on the command line. A name with
// no directory component refers to SetDir, with [SetFileExtension]
// added when it has no extension; anything else is used as given.
func (c *Config) SetPath(name string) string {
	if filepath.Base(name) != name {
		return name
	}
	if filepath.Ext(name) == "" {
		name += SetFileExtension
	}
	return filepath.Join(c.SetDir, name)
}

// EnsureSetDir creates SetDir if it does not exist.
func (c *Config) EnsureSetDir() error {
	if err := os.MkdirAll(c.SetDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", c.SetDir, err)
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads buid configuration: display defaults, where set
// files live, and the identifier kinds registered alongside the
// built-in ones.
//
// Configuration comes from a single file named by either the
// BUID_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no search
// path. When neither is given, [Load] returns [Default], which carries
// only the built-in kinds.
//
// The file format follows the extension: .yaml and .yml are YAML,
// .json and .jsonc are JSON with comments and trailing commas allowed.
// Unknown fields are errors in both, so a misspelled key never passes
// silently.
//
// Variable expansion is performed on set_dir after loading: ${HOME},
// ${BUID_CONFIG_DIR} (the directory holding the config file) and
// ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- defaults, set directory, and [KindConfig] entries
//   - [Default] -- a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Registry] -- the kind registry the configuration describes
package config

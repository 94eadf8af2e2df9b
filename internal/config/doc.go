// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for dbba's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/dbba.yaml or $HOME/.config/dbba.yaml
//   - macOS: $HOME/Library/Application Support/dbba.yaml
//   - Windows: %APPDATA%/dbba.yaml
//
// DBBA_CFG_FILE overrides the location. Keys are looked up by dotted path and
// may be namespaced by command, e.g. "run.format" wins over "format" while the
// run command executes.
package config

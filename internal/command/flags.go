// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/iwazzer/dbba/internal/meta"
	"github.com/iwazzer/dbba/internal/source"
)

// DefaultSuffix names html reports. Other formats swap the extension.
const DefaultSuffix = "db_diff.html"

// NewConnectionFlags returns the database connection flags. Each flag reads
// its environment variable, then "<ns>.<flag>" and "<flag>" from the config
// file.
func NewConnectionFlags(m meta.Meta, ns string) []cli.Flag {
	cfg := m.Config.Source
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Aliases: []string{"h"},
			Usage:   "database host",
			Value:   "127.0.0.1",
			Sources: valueSources(ns, "host", cfg, "DB_HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"P"},
			Usage:   "database port (0 for the driver default)",
			Sources: valueSources(ns, "port", cfg, "DB_PORT"),
		},
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "database username",
			Sources: valueSources(ns, "username", cfg, "DB_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "database password, prompted for on a terminal when unset",
			Sources: valueSources(ns, "password", cfg, "DB_PASSWORD"),
		},
		&cli.StringFlag{
			Name:    "database",
			Aliases: []string{"d"},
			Usage:   "database name (file path for sqlite)",
			Sources: valueSources(ns, "database", cfg, "DB_DATABASE"),
		},
		&cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Usage:   "connection character set",
			Value:   "utf8",
			Sources: valueSources(ns, "encoding", cfg, "DB_ENCODING"),
		},
		&cli.StringFlag{
			Name:    "driver",
			Usage:   "database driver",
			Value:   source.DriverMySQL,
			Sources: valueSources(ns, "driver", cfg, "DB_DRIVER"),
			Validator: func(value string) error {
				return FlagValidators(value, DriverValidator)
			},
		},
		&cli.StringFlag{
			Name:    "dsn",
			Usage:   "full data source name. Overrides the other connection flags",
			Sources: valueSources(ns, "dsn", cfg, "DB_DSN"),
		},
	}
}

// NewSelectionFlags returns the flags choosing what is snapshotted and
// compared.
func NewSelectionFlags(m meta.Meta, ns string) []cli.Flag {
	cfg := m.Config.Source
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "tables",
			Aliases: []string{"t"},
			Usage:   "comma-separated list of tables to read instead of all",
			Sources: valueSources(ns, "tables", cfg),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters on table names",
			Sources: valueSources(ns, "filter", cfg),
		},
		&cli.IntFlag{
			Name:    "parallel",
			Usage:   "tables read concurrently",
			Value:   1,
			Sources: valueSources(ns, "parallel", cfg, "DBBA_PARALLEL"),
		},
	}
}

// NewIgnoreFlag returns the flag listing columns left out of comparisons.
func NewIgnoreFlag(m meta.Meta, ns string) cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "ignore",
		Aliases: []string{"i"},
		Usage:   "columns to ignore, as column or table.column",
		Sources: valueSources(ns, "ignore", m.Config.Source),
	}
}

// NewOutputFlags returns the report flags.
func NewOutputFlags(m meta.Meta, ns string) []cli.Flag {
	cfg := m.Config.Source
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "suffix",
			Aliases: []string{"s"},
			Usage:   "output file suffix",
			Value:   DefaultSuffix,
			Sources: valueSources(ns, "suffix", cfg),
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "report format",
			Value:   "html",
			Sources: valueSources(ns, "format", cfg, "DBBA_FORMAT"),
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "explicit output path, - for stdout",
		},
		&cli.StringFlag{
			Name:    "dir",
			Usage:   "directory for generated output files",
			Value:   "/tmp",
			Sources: valueSources(ns, "dir", cfg, "RAILS_ROOT"),
		},
		&cli.BoolFlag{
			Name:    "no-clipboard",
			Usage:   "do not copy the open command to the clipboard",
			Sources: valueSources(ns, "no-clipboard", cfg, "DBBA_NO_CLIPBOARD"),
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
	}
}

// NewTriggerFlags returns the flags choosing how the run waits between
// snapshots.
func NewTriggerFlags(m meta.Meta, ns string) []cli.Flag {
	cfg := m.Config.Source
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "wait",
			Aliases: []string{"w"},
			Usage:   "how to wait for the operation: enter, tui, exec or sleep",
			Value:   "enter",
			Sources: valueSources(ns, "wait", cfg, "DBBA_WAIT"),
			Validator: func(value string) error {
				return FlagValidators(value, WaitValidator)
			},
		},
		&cli.StringFlag{
			Name:    "exec",
			Usage:   "shell command to run between snapshots (implies --wait exec)",
			Sources: valueSources(ns, "exec", cfg),
		},
		&cli.DurationFlag{
			Name:    "sleep",
			Usage:   "time to wait between snapshots (implies --wait sleep)",
			Sources: valueSources(ns, "sleep", cfg),
		},
	}
}

// NewStoreFlags returns the flags for reading and writing snapshots. When
// save is set, --save-before and --save-after are included.
func NewStoreFlags(m meta.Meta, ns string, save bool) []cli.Flag {
	cfg := m.Config.Source
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS profile for s3:// locations",
			Sources: valueSources(ns, "profile", cfg, "AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// locations",
			Sources: valueSources(ns, "region", cfg, "AWS_REGION"),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3 compatible endpoint URL",
			Sources: valueSources(ns, "endpoint", cfg, "DBBA_S3_ENDPOINT"),
		},
	}
	if save {
		flags = append(flags,
			&cli.StringFlag{
				Name:  "save-before",
				Usage: "store the before snapshot at this path or s3:// location",
			},
			&cli.StringFlag{
				Name:  "save-after",
				Usage: "store the after snapshot at this path or s3:// location",
			},
		)
	}
	return flags
}

// valueSources chains the environment variables and, when a config file is
// in use, the namespaced and global config keys for name.
func valueSources(ns, name, path string, envs ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, env := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
	}
	if path == "" {
		return chain
	}

	if ns != "" {
		src := yaml.YAML(ns+"."+name, altsrc.StringSourcer(path))
		chain.Chain = append(chain.Chain, src)
	}
	src := yaml.YAML(name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)

	return chain
}


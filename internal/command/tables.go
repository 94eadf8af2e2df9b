// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/iwazzer/dbba/internal/filters"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/meta"
)

// tablesCommandAction prints the tables a run would read, one per line.
func tablesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	_, conn, err := Connect(ctx, cmd, m)
	if err != nil {
		return err
	}
	defer conn.Close() //nolint:errcheck

	tables := cmd.StringSlice("tables")
	if len(tables) == 0 {
		if tables, err = conn.ListTables(ctx); err != nil {
			return err
		}
	}

	for _, t := range filters.FilterTables(tables, cmd.String("filter")) {
		fmt.Fprintln(m.Stdout, t)
	}
	return nil
}

// tablesCommandBuilder constructs the cli.Command for "tables".
func tablesCommandBuilder(m meta.Meta) *cli.Command {
	flags := NewConnectionFlags(m, "tables")
	flags = append(flags, NewSelectionFlags(m, "tables")...)

	return &cli.Command{
		Name:      "tables",
		Usage:     "list the tables a run would read",
		UsageText: "dbba tables [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  flags,
		Action: tablesCommandAction,
	}
}

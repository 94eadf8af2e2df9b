// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/iwazzer/dbba/internal/dbdiff"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/meta"
)

// runCommandAction is the action handler for the "run" subcommand. It takes
// a before snapshot, waits for the trigger, takes an after snapshot and
// writes the report.
func runCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	trig, err := NewTrigger(cmd, m)
	if err != nil {
		return err
	}

	connector, conn, err := Connect(ctx, cmd, m)
	if err != nil {
		return err
	}
	defer conn.Close() //nolint:errcheck

	path, err := OutputPath(cmd, cmd.String("suffix"))
	if err != nil {
		return err
	}
	out, err := createReport(path, m)
	if err != nil {
		return err
	}
	sink, err := NewSink(cmd, out.Writer())
	if err != nil {
		return out.Close(err)
	}

	opts := append(SelectionOptions(cmd),
		dbdiff.WithDatabase(connector.Database()),
		dbdiff.WithProgress(m.Stderr),
		dbdiff.WithSnapshotHook(SaveHook(cmd)),
	)
	changes, err := dbdiff.Run(ctx, conn, trig, sink, opts...)
	if err := out.Close(err); err != nil {
		return err
	}

	removed, added, modified := changes.Totals()
	log.Debugf("run: removed=%d added=%d modified=%d", removed, added, modified)

	AnnounceOutput(cmd, m, path)
	return nil
}

// runCommandBuilder constructs the cli.Command for "run", wiring metadata,
// flags, and action handlers.
func runCommandBuilder(m meta.Meta) *cli.Command {
	flags := NewConnectionFlags(m, "run")
	flags = append(flags, NewSelectionFlags(m, "run")...)
	flags = append(flags, NewIgnoreFlag(m, "run"))
	flags = append(flags, NewOutputFlags(m, "run")...)
	flags = append(flags, NewTriggerFlags(m, "run")...)
	flags = append(flags, NewStoreFlags(m, "run", true)...)

	return &cli.Command{
		Name:      "run",
		Usage:     "snapshot, wait for the operation, snapshot again and report",
		UsageText: "dbba run [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  flags,
		Action: runCommandAction,
	}
}

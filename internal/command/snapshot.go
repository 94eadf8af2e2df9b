// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/iwazzer/dbba/internal/dbdiff"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/meta"
	"github.com/iwazzer/dbba/internal/store"
)

// snapshotCommandAction captures one snapshot to the location given as the
// first argument, or to "<dir>/<uuid v7>_snapshot.json".
func snapshotCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	location := cmd.Args().First()
	if location == "" {
		var err error
		if location, err = OutputPath(cmd, SnapshotSuffix); err != nil {
			return err
		}
	}

	st, err := store.Open(ctx, location, AWSOptions(cmd)...)
	if err != nil {
		return err
	}

	_, conn, err := Connect(ctx, cmd, m)
	if err != nil {
		return err
	}
	defer conn.Close() //nolint:errcheck

	opts := append(SelectionOptions(cmd), dbdiff.WithProgress(m.Stderr))
	snap, err := dbdiff.Take(ctx, conn, opts...)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, st, snap); err != nil {
		return err
	}

	fmt.Fprintf(m.Stderr, "%s rows in %d tables\n", humanize.Comma(int64(snap.RowCount())), len(snap.Tables()))
	fmt.Fprintf(m.Stdout, "output: %s\n", st)
	return nil
}

// snapshotCommandBuilder constructs the cli.Command for "snapshot".
func snapshotCommandBuilder(m meta.Meta) *cli.Command {
	flags := NewConnectionFlags(m, "snapshot")
	flags = append(flags, NewSelectionFlags(m, "snapshot")...)
	flags = append(flags, NewStoreFlags(m, "snapshot", false)...)
	flags = append(flags, &cli.StringFlag{
		Name:    "dir",
		Usage:   "directory for generated snapshot files",
		Value:   "/tmp",
		Sources: valueSources("snapshot", "dir", m.Config.Source, "RAILS_ROOT"),
	})

	return &cli.Command{
		Name:      "snapshot",
		Usage:     "capture one snapshot to a file or s3:// location",
		UsageText: "dbba snapshot [LOCATION] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  flags,
		Action: snapshotCommandAction,
	}
}

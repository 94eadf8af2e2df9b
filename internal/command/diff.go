// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/iwazzer/dbba/internal/dbdiff"
	"github.com/iwazzer/dbba/internal/differ"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/meta"
	"github.com/iwazzer/dbba/internal/snapshot"
	"github.com/iwazzer/dbba/internal/store"
)

// selectSnapshots is replaced in tests.
var selectSnapshots = differ.SelectSnapshots

// diffCommandAction compares two stored snapshots. Without arguments the
// user picks two of the snapshot files in --dir.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	locations := cmd.Args().Slice()
	switch len(locations) {
	case 0:
		picked, err := pickSnapshots(cmd, m)
		if err != nil {
			return err
		}
		if picked == nil {
			return nil
		}
		locations = picked
	case 2:
	default:
		return fmt.Errorf("diff takes BEFORE and AFTER locations, got %d", len(locations))
	}

	before, err := loadSnapshot(ctx, cmd, locations[0])
	if err != nil {
		return err
	}
	after, err := loadSnapshot(ctx, cmd, locations[1])
	if err != nil {
		return err
	}

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

	var opts []dbdiff.Option
	if ignore := cmd.StringSlice("ignore"); len(ignore) > 0 {
		opts = append(opts, dbdiff.WithIgnore(ignore...))
	}
	_, err = dbdiff.Compare(before, after, sink, opts...)
	if err := out.Close(err); err != nil {
		return err
	}

	AnnounceOutput(cmd, m, path)
	return nil
}

func loadSnapshot(ctx context.Context, cmd *cli.Command, location string) (*snapshot.Snapshot, error) {
	st, err := store.Open(ctx, location, AWSOptions(cmd)...)
	if err != nil {
		return nil, err
	}
	return store.Load(ctx, st)
}

// pickSnapshots offers the snapshot files in --dir, oldest first. It returns
// nil when the user quits without choosing two.
func pickSnapshots(cmd *cli.Command, m meta.Meta) ([]string, error) {
	if !isTerminal(m.Stdin) {
		return nil, errors.New("diff needs BEFORE and AFTER locations when not on a terminal")
	}

	refs, err := snapshotRefs(cmd.String("dir"))
	if err != nil {
		return nil, err
	}
	if len(refs) < 2 {
		return nil, fmt.Errorf("need at least two *_%s files in %s", SnapshotSuffix, cmd.String("dir"))
	}

	picked, err := selectSnapshots(refs, tea.WithInput(m.Stdin), tea.WithOutput(m.Stderr))
	if err != nil {
		return nil, err
	}
	if len(picked) != 2 {
		return nil, nil
	}
	return []string{picked[0].Path, picked[1].Path}, nil
}

// snapshotRefs lists "*_snapshot.json" files in dir, oldest first.
func snapshotRefs(dir string) ([]differ.SnapshotRef, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_"+SnapshotSuffix))
	if err != nil {
		return nil, err
	}

	refs := make([]differ.SnapshotRef, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		refs = append(refs, differ.SnapshotRef{
			Path:    p,
			Name:    filepath.Base(p),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// uuid v7 names sort by creation time.
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Name < refs[j].Name
	})
	return refs, nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(m meta.Meta) *cli.Command {
	flags := []cli.Flag{NewIgnoreFlag(m, "diff")}
	flags = append(flags, NewOutputFlags(m, "diff")...)
	flags = append(flags, NewStoreFlags(m, "diff", false)...)

	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two stored snapshots",
		UsageText: "dbba diff [BEFORE AFTER] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  flags,
		Action: diffCommandAction,
	}
}

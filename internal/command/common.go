// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/iwazzer/dbba/internal/aws"
	"github.com/iwazzer/dbba/internal/dbdiff"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/meta"
	"github.com/iwazzer/dbba/internal/report"
	"github.com/iwazzer/dbba/internal/snapshot"
	"github.com/iwazzer/dbba/internal/source"
	"github.com/iwazzer/dbba/internal/store"
	"github.com/iwazzer/dbba/internal/trigger"
)

// SnapshotSuffix names snapshot files written without an explicit location.
const SnapshotSuffix = "snapshot.json"

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value with the process
// streams.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd != nil && cmd.Metadata != nil {
		if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// NewConnector builds a source.Connector from the connection flags, asking
// for the password when none was given and stdin is a terminal.
func NewConnector(cmd *cli.Command, m meta.Meta) (*source.Connector, error) {
	password := cmd.String("password")
	if !cmd.IsSet("password") && cmd.String("dsn") == "" && needsPassword(cmd.String("driver")) {
		if p, ok := promptPassword(m); ok {
			password = p
		}
	}

	return source.NewConnector(
		source.WithDriver(cmd.String("driver")),
		source.WithHost(cmd.String("host")),
		source.WithPort(cmd.Int("port")),
		source.WithCredentials(cmd.String("username"), password),
		source.WithDatabase(cmd.String("database")),
		source.WithEncoding(cmd.String("encoding")),
		source.WithDSN(cmd.String("dsn")),
	)
}

// Connect builds the connector and opens the database.
func Connect(ctx context.Context, cmd *cli.Command, m meta.Meta) (*source.Connector, *source.Conn, error) {
	connector, err := NewConnector(cmd, m)
	if err != nil {
		return nil, nil, err
	}
	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	return connector, conn, nil
}

func needsPassword(driver string) bool {
	return source.CheckDriver(driver) == nil && !strings.HasPrefix(strings.ToLower(driver), "sqlite")
}

// promptPassword reads a password without echo. It reports false when stdin
// is not a terminal.
func promptPassword(m meta.Meta) (string, bool) {
	f, ok := m.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", false
	}
	fmt.Fprint(m.Stderr, "password: ")
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(m.Stderr)
	if err != nil {
		log.Debugf("password prompt failed: %v", err)
		return "", false
	}
	return string(b), true
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// AWSOptions maps the store flags onto aws options.
func AWSOptions(cmd *cli.Command) []aws.Option {
	var opts []aws.Option
	if v := cmd.String("profile"); v != "" {
		opts = append(opts, aws.WithProfile(v))
	}
	if v := cmd.String("region"); v != "" {
		opts = append(opts, aws.WithRegion(v))
	}
	if v := cmd.String("endpoint"); v != "" {
		opts = append(opts, aws.WithEndpoint(v))
	}
	return opts
}

// NewTrigger picks the trigger from --wait, --exec and --sleep. --exec and
// --sleep imply their kind when --wait was left at its default.
func NewTrigger(cmd *cli.Command, m meta.Meta) (trigger.Trigger, error) {
	kind := strings.ToLower(cmd.String("wait"))
	if !cmd.IsSet("wait") {
		switch {
		case cmd.String("exec") != "":
			kind = "exec"
		case cmd.Duration("sleep") > 0:
			kind = "sleep"
		}
	}
	log.Debugf("trigger: %s", kind)

	switch kind {
	case "enter":
		t := trigger.NewEnter()
		t.In, t.Out = m.Stdin, m.Stderr
		return t, nil
	case "tui":
		if !isTerminal(m.Stdin) {
			log.Debugf("stdin is not a terminal, falling back to enter")
			t := trigger.NewEnter()
			t.In, t.Out = m.Stdin, m.Stderr
			return t, nil
		}
		t := trigger.NewTUI()
		t.In, t.Out = m.Stdin, m.Stderr
		return t, nil
	case "exec":
		command := cmd.String("exec")
		if command == "" {
			return nil, errors.New("--wait exec needs --exec")
		}
		t := trigger.NewExec(command)
		t.Stdout, t.Stderr = m.Stderr, m.Stderr
		return t, nil
	case "sleep":
		d := cmd.Duration("sleep")
		if d <= 0 {
			return nil, errors.New("--wait sleep needs a positive --sleep")
		}
		return trigger.Sleep{Duration: d}, nil
	}
	return nil, fmt.Errorf("unknown wait kind %q", kind)
}

// SelectionOptions maps the selection flags onto dbdiff options.
func SelectionOptions(cmd *cli.Command) []dbdiff.Option {
	opts := []dbdiff.Option{
		dbdiff.WithFilter(cmd.String("filter")),
		dbdiff.WithParallel(cmd.Int("parallel")),
	}
	if tables := cmd.StringSlice("tables"); len(tables) > 0 {
		opts = append(opts, dbdiff.WithTables(tables...))
	}
	if ignore := cmd.StringSlice("ignore"); len(ignore) > 0 {
		opts = append(opts, dbdiff.WithIgnore(ignore...))
	}
	return opts
}

// SaveHook stores the snapshots named by --save-before and --save-after.
func SaveHook(cmd *cli.Command) dbdiff.SnapshotHook {
	locations := map[dbdiff.Phase]string{
		dbdiff.Before: cmd.String("save-before"),
		dbdiff.After:  cmd.String("save-after"),
	}
	awsOpts := AWSOptions(cmd)

	return func(ctx context.Context, phase dbdiff.Phase, snap *snapshot.Snapshot) error {
		loc := locations[phase]
		if loc == "" {
			return nil
		}
		st, err := store.Open(ctx, loc, awsOpts...)
		if err != nil {
			return err
		}
		if err := store.Save(ctx, st, snap); err != nil {
			return err
		}
		log.Infof("%s snapshot saved to %s", phase, st)
		return nil
	}
}

// OutputPath returns --out or a fresh "<dir>/<uuid v7>_<suffix>" path. A
// default html suffix follows --format.
func OutputPath(cmd *cli.Command, suffix string) (string, error) {
	if out := cmd.String("out"); out != "" {
		return out, nil
	}
	if suffix == DefaultSuffix && !cmd.IsSet("suffix") {
		if ext := report.Extension(cmd.String("format")); ext != "html" {
			suffix = strings.TrimSuffix(DefaultSuffix, ".html") + "." + ext
		}
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate output name: %w", err)
	}
	return filepath.Join(cmd.String("dir"), id.String()+"_"+suffix), nil
}

// reportFile is a buffered report destination. Path "-" writes to stdout.
type reportFile struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// createReport opens path for writing a report.
func createReport(path string, m meta.Meta) (*reportFile, error) {
	if path == "-" {
		return &reportFile{path: path, w: bufio.NewWriter(m.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &reportFile{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

func (r *reportFile) Writer() io.Writer { return r.w }

// Close flushes the report. On a failed run (runErr non-nil) the partial file
// is removed and runErr is returned.
func (r *reportFile) Close(runErr error) error {
	flushErr := r.w.Flush()
	if r.f == nil {
		return errors.Join(runErr, flushErr)
	}

	closeErr := r.f.Close()
	if runErr != nil {
		_ = os.Remove(r.path)
		return runErr
	}
	return errors.Join(flushErr, closeErr)
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// AnnounceOutput copies "open <path>" to the clipboard and prints the path.
// Clipboard failures only warn.
func AnnounceOutput(cmd *cli.Command, m meta.Meta, path string) {
	if path == "-" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if cmd.Bool("no-clipboard") {
		fmt.Fprintf(m.Stdout, "output: %s\n", path)
		return
	}
	if err := copyToClipboard("open " + path); err != nil {
		fmt.Fprintf(m.Stderr, "Warning: Failed to copy to clipboard: %v\n", err)
		fmt.Fprintf(m.Stdout, "output: %s\n", path)
		return
	}
	fmt.Fprintf(m.Stdout, "output: %s (Copied to clipboard)\n", path)
}

// NewSink returns the report sink for --format writing to w.
func NewSink(cmd *cli.Command, w io.Writer) (report.Sink, error) {
	return report.New(cmd.String("format"), w, report.WithColor(cmd.Bool("color")))
}

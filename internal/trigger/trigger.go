// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/iwazzer/dbba/internal/log"
)

// ErrAborted is returned when the user cancels instead of continuing.
var ErrAborted = errors.New("aborted by user")

// Trigger blocks until the audited operation is done.
type Trigger interface {
	Wait(ctx context.Context) error
}

// Kinds lists the accepted --wait values.
var Kinds = []string{"enter", "tui", "exec", "sleep"}

// Enter waits for one line on its input.
type Enter struct {
	In     io.Reader
	Out    io.Writer
	Prompt string
}

// NewEnter returns an Enter trigger reading stdin.
func NewEnter() *Enter {
	return &Enter{In: os.Stdin, Out: os.Stderr, Prompt: "run usecase now. then press enter when done."}
}

func (e *Enter) Wait(ctx context.Context) error {
	if e.Prompt != "" && e.Out != nil {
		fmt.Fprintln(e.Out, e.Prompt)
	}

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(e.In).ReadString('\n')
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		// EOF without a newline still means the user is done.
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		return nil
	}
}

// Exec runs a shell command and returns when it exits.
type Exec struct {
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewExec returns an Exec trigger passing output through to the terminal.
func NewExec(command string) *Exec {
	return &Exec{Command: command, Stdout: os.Stderr, Stderr: os.Stderr}
}

func (e *Exec) Wait(ctx context.Context) error {
	if strings.TrimSpace(e.Command) == "" {
		return fmt.Errorf("no command given to exec")
	}
	log.Debugf("exec: %s", e.Command)

	cmd := exec.CommandContext(ctx, "sh", "-c", e.Command)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("command %q failed: %w", e.Command, err)
	}
	return nil
}

// Sleep waits a fixed duration.
type Sleep struct {
	Duration time.Duration
}

func (s Sleep) Wait(ctx context.Context) error {
	log.Debugf("sleep: %s", s.Duration)
	t := time.NewTimer(s.Duration)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

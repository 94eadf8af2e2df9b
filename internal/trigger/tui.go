// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI shows a spinner with the elapsed time until Enter or Space is pressed.
// q, Esc and Ctrl+C abort with ErrAborted.
type TUI struct {
	In      io.Reader
	Out     io.Writer
	Message string
}

// NewTUI returns a TUI trigger on the process terminal.
func NewTUI() *TUI {
	return &TUI{In: os.Stdin, Out: os.Stderr, Message: "run usecase now."}
}

func (t *TUI) Wait(ctx context.Context) error {
	p := tea.NewProgram(newWaitModel(t.Message, time.Now),
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	)
	m, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			return ErrAborted
		}
		return fmt.Errorf("wait prompt failed: %w", err)
	}
	if m.(waitModel).aborted {
		return ErrAborted
	}
	return nil
}

type waitModel struct {
	spinner spinner.Model
	message string
	started time.Time
	now     func() time.Time
	done    bool
	aborted bool
}

func newWaitModel(message string, now func() time.Time) waitModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return waitModel{spinner: s, message: message, started: now(), now: now}
}

func (m waitModel) Init() tea.Cmd { return m.spinner.Tick }

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			m.done = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m waitModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	elapsed := m.now().Sub(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s %s (%s)\n%s\n", m.spinner.View(), m.message, elapsed,
		hintStyle.Render("ENTER/SPACE: done, Q/ESCAPE: abort"))
}

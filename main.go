// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/iwazzer/dbba/internal/command"
	"github.com/iwazzer/dbba/internal/config"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/trigger"
	"github.com/iwazzer/dbba/internal/version"
)

// defaultCommand runs when no command is given.
const defaultCommand = "run"

var commands = []string{"run", "snapshot", "diff", "tables", "completion", "help"}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand inserts the default command when args[1] is not one.
// A bare --help is left for the root command.
func handleNakedCommand(args []string) []string {
	if len(args) > 1 && (slices.Contains(commands, args[1]) || args[1] == "--help") {
		return args
	}
	if len(args) <= 1 {
		return append(args, defaultCommand)
	}
	return append([]string{args[0], defaultCommand}, args[1:]...)
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// processSetOnly expands the named argument set at the position of an @set
// argument. Without one, the "<command>.defaults" set, if configured, is
// inserted right after the command so that explicit arguments win.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			idx := i + 2
			args = append(args[:idx:idx], args[idx+1:]...)
			return injectConfigSet(args, args[1]+"."+a[1:], idx)
		}
	}
	return injectConfigSet(args, args[1]+".defaults", 2)
}

// injectConfigSet splits the config list at key into fields and inserts them
// at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil || len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, splitFields(entry)...)
	}
	log.Debugf("set %s: %v", key, expanded)

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

func splitFields(s string) []string {
	return strings.Fields(s)
}

// deduplicateFlags drops all but the last occurrence of each flag after the
// command, so a flag repeated by an expanded set and the command line takes
// the command line value. A flag consumes the following token as its value
// unless it uses --flag=value or the next token is itself a flag.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		key    string
		tokens []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "-" || !strings.HasPrefix(a, "-") {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		key, _, hasValue := strings.Cut(a, "=")
		g := group{key: key, tokens: []string{a}}
		if !hasValue && i+1 < len(args) {
			if next := args[i+1]; next == "-" || !strings.HasPrefix(next, "-") {
				g.tokens = append(g.tokens, next)
				i++
			}
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.key != "" {
			last[g.key] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.key != "" && last[g.key] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, trigger.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted.")
			return 130
		}
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI
	// handle it. -h is the database host.
	if !slices.Contains(args, "--help") {
		args = processCommandArgs(args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return initAndRunApp(ctx, args)
}

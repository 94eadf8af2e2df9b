// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/iwazzer/dbba/internal/command"
)

type Subcommand struct {
	ID      string
	Short   string
	Usage   string
	Flags   []Flag
	Date    string
	Version string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

const markdownTemplate = `# dbba {{ .ID }}

{{ .Short }}

## Usage

` + "```" + `
{{ .Usage }}
` + "```" + `
{{ if .Flags }}
## Flags

| Flag | Description | Default |
|---|---|---|
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} | {{ .Default }} |
{{- end }}
{{ end }}
_dbba {{ .Version }}, generated {{ .Date }}_
`

func main() {
	docs := "docs"
	if len(os.Args) > 1 {
		docs = os.Args[1]
	}

	app, err := command.InitApp(context.Background(), []string{"dbba"})
	if err != nil {
		panic(err)
	}

	folder := filepath.Join(docs, "commands")
	if err := os.MkdirAll(folder, 0755); err != nil {
		panic(err)
	}

	for _, sub := range subcommands(app, getVersion(), time.Now()) {
		path := filepath.Join(folder, sub.ID+".md")
		fmt.Println("Generating", path)

		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		if err := render(file, sub); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// render writes the markdown page for sub.
func render(w io.Writer, sub Subcommand) error {
	tmpl, err := template.New("md").Parse(markdownTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, sub)
}

// subcommands describes every visible command of app.
func subcommands(app *cli.Command, version string, now time.Time) []Subcommand {
	var subs []Subcommand
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}
		sub := Subcommand{
			ID:      cmd.Name,
			Short:   cmd.Usage,
			Usage:   cmd.UsageText,
			Date:    now.Format("January 2, 2006"),
			Version: version,
		}
		for _, f := range cmd.Flags {
			sub.Flags = append(sub.Flags, describeFlag(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	return subs
}

func describeFlag(f cli.Flag) Flag {
	names := f.Names()
	syntax := make([]string, len(names))
	for i, n := range names {
		if len(n) == 1 {
			syntax[i] = "-" + n
		} else {
			syntax[i] = "--" + n
		}
	}

	out := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
	if df, ok := f.(cli.DocGenerationFlag); ok {
		out.Description = df.GetUsage()
		if df.TakesValue() {
			out.Default = strings.Trim(df.GetValue(), `"`)
		}
	}
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}

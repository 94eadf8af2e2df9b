// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/iwazzer/dbba/internal/meta"
)

const bashCompletionScript = `# bash completion for dbba
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_dbba()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "run snapshot diff tables completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local conn="--host -h --port -P --username -u --password -p --database -d --encoding -e --driver --dsn"
    local sel="--tables -t --filter -f --parallel"
    local out="--suffix -s --format --out -o --dir --no-clipboard --color -c"
    local aws="--profile --region --endpoint"

    case "$cmd" in
        run)
            local opts="$conn $sel $out $aws --ignore -i --wait -w --exec --sleep --save-before --save-after"
            ;;
        snapshot)
            local opts="$conn $sel $aws --dir"
            ;;
        diff)
            local opts="$out $aws --ignore -i"
            ;;
        tables)
            local opts="$conn $sel"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="--help"
            ;;
    esac

    case "$prev" in
        --format)
            COMPREPLY=( $(compgen -W "html text json yaml" -- "$cur") )
            return 0
            ;;
        --wait|-w)
            COMPREPLY=( $(compgen -W "enter tui exec sleep" -- "$cur") )
            return 0
            ;;
        --driver)
            COMPREPLY=( $(compgen -W "mysql postgres sqlite" -- "$cur") )
            return 0
            ;;
        --dir|--out|-o)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* || "$cmd" != "diff" && "$cmd" != "snapshot" ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # snapshot and diff take file locations.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _dbba dbba
`

const zshCompletionScript = `#compdef dbba

_dbba() {
  local -a cmds
  cmds=(
    'run:snapshot, wait for the operation, snapshot again and report'
    'snapshot:capture one snapshot'
    'diff:compare two stored snapshots'
    'tables:list the tables a run would read'
    'completion:generate shell completion script'
  )

  local -a conn sel out aws
  conn=(
  '(-h --host)'{-h,--host}'[database host]:host'
  '(-P --port)'{-P,--port}'[database port]:port'
  '(-u --username)'{-u,--username}'[database username]:username'
  '(-p --password)'{-p,--password}'[database password]:password'
  '(-d --database)'{-d,--database}'[database name]:database'
  '(-e --encoding)'{-e,--encoding}'[connection character set]:encoding'
  '--driver[database driver]:driver:(mysql postgres sqlite)'
  '--dsn[full data source name]:dsn'
  )
  sel=(
  '(-t --tables)'{-t,--tables}'[tables to read]:tables'
  '(-f --filter)'{-f,--filter}'[filters on table names]:filters'
  '--parallel[tables read concurrently]:n'
  )
  out=(
  '(-s --suffix)'{-s,--suffix}'[output file suffix]:suffix'
  '--format[report format]:format:(html text json yaml)'
  '(-o --out)'{-o,--out}'[output path]:path:_files'
  '--dir[output directory]:dir:_directories'
  '--no-clipboard[do not touch the clipboard]'
  '(-c --color)'{-c,--color}'[enable colored text]'
  )
  aws=(
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '--endpoint[S3 endpoint]:url'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'dbba commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    run)
      _arguments -C \
        $conn $sel $out $aws \
        '(-i --ignore)'{-i,--ignore}'[columns to ignore]:columns' \
        '(-w --wait)'{-w,--wait}'[how to wait]:kind:(enter tui exec sleep)' \
        '--exec[command to run between snapshots]:command' \
        '--sleep[time to wait between snapshots]:duration' \
        '--save-before[store the before snapshot]:location:_files' \
        '--save-after[store the after snapshot]:location:_files'
      ;;
    snapshot)
      _arguments -C \
        $conn $sel $aws \
        '--dir[output directory]:dir:_directories' \
        '::LOCATION:_files'
      ;;
    diff)
      _arguments -C \
        $out $aws \
        '(-i --ignore)'{-i,--ignore}'[columns to ignore]:columns' \
        '::BEFORE:_files' \
        '::AFTER:_files'
      ;;
    tables)
      _arguments -C $conn $sel
      ;;
    completion)
      _arguments '1:shell:(bash zsh)'
      ;;
  esac
}

compdef _dbba dbba
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(m.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(m.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(m.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(m.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(m.Stderr, "usage: dbba completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "dbba completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: completionCommandAction,
	}
}

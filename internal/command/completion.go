// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/meta"
)

const bashCompletionScript = `# bash completion for alsctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_alsctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff snap svq tq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --padding --sort -s --titles -t"
    local parse="--gate --max-anomalies --strict"

    case "$cmd" in
        diff)
            local opts="--color -c --output -o --raw --record $parse"
            ;;
        snap)
            local opts="$common $parse --schema"
            ;;
        svq)
            local opts="$common $parse --schema --limit -l"
            ;;
        tq)
            local opts="$common $parse --schema --tree"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--gate" ]]; then
        COMPREPLY=( $(compgen -W "strict permissive" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -f -X '!*.@(als|json|yaml|yml)' -- "$cur") $(compgen -d -- "$cur") )
    return 0
}

complete -F _alsctl alsctl
`

const zshCompletionScript = `#compdef alsctl

_alsctl() {
  local -a cmds
  cmds=(
    'diff:compare two versions of a live set'
    'snap:record a snapshot of a live set'
    'svq:snapshot version query'
    'tq:track query'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a parse
  parse=(
  '--gate[name gate policy]:gate:(strict permissive)'
  '--max-anomalies[anomaly ceiling]:count'
  '--strict[fail on anomalies]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'alsctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $parse \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)' \
        '--raw[show the structural JSON delta]' \
        '--record[record the new side]' \
        '1:old:_files -g "*.(als|json|yaml|yml)"' \
        '2::new:_files -g "*.(als|json|yaml|yml)"'
      ;;
    snap)
      _arguments -C \
        $common \
        $parse \
        '--schema[dump schema]' \
        '1:live set:_files -g "*.als"' \
        '2::out:_files'
      ;;
    svq)
      _arguments -C \
        $common \
        $parse \
        '--schema[dump schema]' \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '1:live set:_files -g "*.als"'
      ;;
    tq)
      _arguments -C \
        $common \
        $parse \
        '--schema[dump schema]' \
        '--tree[show branch tree]' \
        '1:input:_files -g "*.(als|json|yaml|yml)"'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _alsctl alsctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := Stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print usage.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: alsctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "alsctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}

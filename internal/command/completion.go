// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/talksgo/internal/meta"
)

const bashCompletionScript = `# bash completion for talks
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_talks()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "browse cache home random search serve talk completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--api --attrs -a --color -c --filter -f --local -l --output -o --schema --sort -s --titles -t --tldr"

    case "$cmd" in
    home|random|search)
        local opts="$common"
        ;;
    talk)
        local opts="$common --related -r"
        ;;
    browse)
        local opts="--api --title --timeout"
        ;;
    serve)
        local opts="--addr --upstream -u --token --home-limit --timeout --cache --cache-ttl --cache-bucket --cache-region --cache-profile --cache-endpoint --catalog --tldr"
        ;;
    cache)
        local opts="purge --hours"
        ;;
    completion)
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
        ;;
    *)
        local opts="$common"
        ;;
    esac

    case "$prev" in
    --output|-o)
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
        ;;
    --cache)
        COMPREPLY=( $(compgen -W "memory disk s3 none" -- "$cur") )
        return 0
        ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _talks talks
`

const zshCompletionScript = `#compdef talks

_talks() {
  local -a cmds
  cmds=(
    'browse:browse talks in the terminal'
    'cache:manage the disk cache'
    'home:featured talks'
    'random:a random talk'
    'search:search talks'
    'serve:run the talks API'
    'talk:talk query'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--api[talks API URL]:url'
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-l --local)'{-l,--local}'[local timestamps]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--schema[dump schema]'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'talks commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    home|random)
      _arguments -C $common
      ;;
    search)
      _arguments -C $common '*:query'
      ;;
    talk)
      _arguments -C $common \
        '(-r --related)'{-r,--related}'[list related talks]' \
        '1:slug'
      ;;
    browse)
      _arguments -C \
        '--api[talks API URL]:url' \
        '--title[site title]:title' \
        '--timeout[page load timeout]:duration' \
        '1::location'
      ;;
    serve)
      _arguments -C \
        '--addr[listen address]:addr' \
        '(-u --upstream)'{-u,--upstream}'[upstream URL]:url' \
        '--token[upstream token]:token' \
        '--home-limit[home page size]:n' \
        '--timeout[request timeout]:duration' \
        '--cache[cache backend]:backend:(memory disk s3 none)' \
        '--cache-ttl[cache lifetime]:duration' \
        '--cache-bucket[S3 bucket]:bucket' \
        '--cache-region[AWS region]:region' \
        '--cache-profile[AWS profile]:profile' \
        '--cache-endpoint[S3 endpoint]:url' \
        '--catalog[catalog path]:file:_files'
      ;;
    cache)
      _arguments '1: :((purge))' '--hours[age in hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _talks talks
`

func CompletionCommandAction(_ context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		// Fall back to the login shell.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: talks completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "talks completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/talksgo/internal/command"
)

// docgen walks the talks command tree and generates:
//   - docs/man/share/man1/talks-<cmd>.1 via md2man
//   - docs/tldr/talks-<cmd>.md from the command examples

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	if err := os.MkdirAll(manOutDir, 0o755); err != nil {
		fatalf("creating man output dir: %v", err)
	}
	if err := os.MkdirAll(tldrOutDir, 0o755); err != nil {
		fatalf("creating tldr output dir: %v", err)
	}

	app, err := command.InitApp(context.Background(), []string{"talks"})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	for _, cmd := range app.Commands {
		md := buildMarkdown(cmd)

		manPath := filepath.Join(manOutDir, fmt.Sprintf("talks-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render([]byte(md)), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		tldr := buildTLDR(cmd.Name, cmd.Usage, command.Examples[cmd.Name])
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("talks-%s.md", cmd.Name))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// buildMarkdown renders a command as the markdown md2man expects: a title
// line with the man section, then NAME, SYNOPSIS, OPTIONS and EXAMPLES.
func buildMarkdown(cmd *cli.Command) string {
	var b strings.Builder

	fmt.Fprintf(&b, "talks-%s 1 \"\" \"\" \"talks\"\n", cmd.Name)
	b.WriteString("=======================================\n\n")

	b.WriteString("# NAME\n\n")
	fmt.Fprintf(&b, "talks-%s - %s\n\n", cmd.Name, cmd.Usage)

	if cmd.UsageText != "" {
		b.WriteString("# SYNOPSIS\n\n")
		fmt.Fprintf(&b, "**%s**\n\n", cmd.UsageText)
	}

	if len(cmd.Flags) > 0 {
		b.WriteString("# OPTIONS\n\n")
		for _, f := range cmd.Flags {
			names := make([]string, 0, len(f.Names()))
			for _, n := range f.Names() {
				if len(n) == 1 {
					names = append(names, "-"+n)
				} else {
					names = append(names, "--"+n)
				}
			}
			fmt.Fprintf(&b, "**%s**\n", strings.Join(names, ", "))
			if u, ok := f.(interface{ GetUsage() string }); ok {
				fmt.Fprintf(&b, ": %s\n", u.GetUsage())
			}
			b.WriteString("\n")
		}
	}

	if len(cmd.Commands) > 0 {
		b.WriteString("# COMMANDS\n\n")
		for _, sub := range cmd.Commands {
			fmt.Fprintf(&b, "**%s**\n: %s\n\n", sub.Name, sub.Usage)
		}
	}

	if exs := command.Examples[cmd.Name]; len(exs) > 0 {
		b.WriteString("# EXAMPLES\n\n")
		for _, ex := range exs {
			fmt.Fprintf(&b, "%s:\n\n    %s\n\n", ex[1], ex[0])
		}
	}

	return b.String()
}

func buildTLDR(cmd, short string, exs [][2]string) string {
	var b strings.Builder
	b.WriteString("# talks-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + strings.ToUpper(short[:1]) + short[1:] + ".\n")
	} else {
		b.WriteString("> talks " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/talksgo.\n\n")

	if len(exs) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`talks " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex[1]) + ":\n\n")
		b.WriteString("`" + strings.Join(strings.Fields(ex[0]), " ") + "`\n")
	}
	return b.String()
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/talksgo/internal/config"
	"github.com/staranto/talksgo/internal/meta"
)

// InitApp builds the talks command tree. args[1], the subcommand, is also the
// namespace used for config lookups.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// args[1] could be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:  "talks",
		Usage: "browse and serve conference talks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "talks version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		BrowseCommandBuilder(meta),
		CacheCommandBuilder(meta),
		CompletionCommandBuilder(meta),
		HomeCommandBuilder(meta),
		RandomCommandBuilder(meta),
		SearchCommandBuilder(meta),
		ServeCommandBuilder(meta),
		TalkCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

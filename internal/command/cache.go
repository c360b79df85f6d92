// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/talksgo/internal/cacheutil"
	"github.com/staranto/talksgo/internal/meta"
)

// CachePurgeCommandAction removes disk cache entries older than --hours.
func CachePurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "cache") {
		return nil
	}

	base, ok := cacheutil.Dir()
	if !ok {
		return nil
	}
	if err := cacheutil.Purge(cmd.Int("hours")); err != nil {
		return err
	}
	fmt.Fprintf(writer(cmd), "purged entries older than %dh from %s\n", cmd.Int("hours"), base)
	return nil
}

// CacheCommandBuilder constructs "cache" and its subcommands.
func CacheCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "manage the disk cache",
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "purge",
				Usage:     "remove stale cache entries",
				UsageText: `talks cache purge [--hours N]`,
				Flags: []cli.Flag{
					newTldrFlag(),
					&cli.IntFlag{
						Name:    "hours",
						Usage:   "remove entries older than this many hours (0 disables)",
						Sources: configSources("TALKS_CACHE_PURGE_HOURS", "cache", "purge-hours"),
						Value:   24, //nolint:mnd
					},
				},
				Action: CachePurgeCommandAction,
			},
		},
	}
}

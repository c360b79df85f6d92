// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/talksgo/internal/config"
	mylog "github.com/staranto/talksgo/internal/log"
	"github.com/staranto/talksgo/internal/meta"
	"github.com/staranto/talksgo/internal/navigator"
	"github.com/staranto/talksgo/internal/route"
	"github.com/staranto/talksgo/internal/tui"
)

// BrowseCommandAction starts the terminal front end at the location given as
// the first argument, or the home page.
func BrowseCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "browse") {
		return nil
	}

	start := cmd.Args().First()
	if start == "" {
		start = route.Home().Location()
	}

	c, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal from here on.
	closer, err := mylog.OpenLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	defer closer.Close()

	log.Debugf("browsing %s from %s", cmd.String("api"), start)

	nav := navigator.New(c,
		navigator.WithSiteTitle(cmd.String("title")),
		navigator.WithTimeout(cmd.Duration("timeout")),
	)

	var opts []tui.Option
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts = append(opts, tui.WithWidth(w))
	}

	return tui.Run(ctx, nav, start, opts, programOptions()...)
}

// programOptions reads browse.altscreen from the config; the alternate
// screen is on unless it is set to false.
func programOptions() []tea.ProgramOption {
	alt, err := config.GetBool("altscreen", true)
	if err != nil {
		log.Warnf("ignoring altscreen: %v", err)
		alt = true
	}
	if !alt {
		return nil
	}
	return []tea.ProgramOption{tea.WithAltScreen()}
}

// BrowseCommandBuilder constructs the cli.Command for "browse".
func BrowseCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "browse talks in the terminal",
		UsageText: `talks browse [location] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			newTldrFlag(),
			NewAPIFlag("browse", meta.Config.Source),
			&cli.StringFlag{
				Name:    "title",
				Usage:   "site title shown in the window title",
				Sources: configSources("TALKS_TITLE", "browse", "title"),
				Value:   "Talks",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "page load timeout",
				Sources: configSources("TALKS_TIMEOUT", "browse", "timeout"),
				Value:   30 * time.Second, //nolint:mnd
			},
		},
		Action: BrowseCommandAction,
	}
}

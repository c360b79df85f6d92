// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/talksgo/internal/meta"
	"github.com/staranto/talksgo/internal/talk"
)

var (
	summarySchema = reflect.TypeOf(talk.Summary{})

	defaultTalkAttrs = []string{"slug", "title", "speaker", "views::h"}
)

// HomeCommandAction lists the featured talks.
func HomeCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[talk.Summary]{
		CommandName:  "home",
		SchemaType:   summarySchema,
		DefaultAttrs: defaultTalkAttrs,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]talk.Summary, error) {
			c, err := NewAPIClient(cmd)
			if err != nil {
				return nil, err
			}
			home, err := c.Home(ctx)
			if err != nil {
				return nil, err
			}
			return home.Featured, nil
		},
	}
	return runner.Run(ctx, cmd)
}

func HomeCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "home",
		Usage:     "featured talks",
		UsageText: `talks home [options]`,
		Action:    HomeCommandAction,
		Meta:      meta,
	}).Build()
}

// TalkCommandAction shows one talk, or with --related the talks related to
// it.
func TalkCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[talk.Summary]{
		CommandName:  "talk",
		SchemaType:   summarySchema,
		DefaultAttrs: defaultTalkAttrs,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]talk.Summary, error) {
			slug := strings.TrimSpace(cmd.Args().First())
			if slug == "" {
				return nil, errors.New("talk slug required")
			}
			c, err := NewAPIClient(cmd)
			if err != nil {
				return nil, err
			}
			t, err := c.Talk(ctx, slug)
			if err != nil {
				return nil, err
			}
			if cmd.Bool("related") {
				return t.Related, nil
			}
			return []talk.Summary{t.Summary}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

func TalkCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "talk",
		Usage:     "talk query",
		UsageText: `talks talk <slug> [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "related",
				Aliases: []string{"r"},
				Usage:   "list the related talks instead",
			},
		},
		Action: TalkCommandAction,
		Meta:   meta,
	}).Build()
}

// SearchCommandAction lists the talks matching the literal query formed by
// the remaining arguments.
func SearchCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[talk.Summary]{
		CommandName:  "search",
		SchemaType:   summarySchema,
		DefaultAttrs: defaultTalkAttrs,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]talk.Summary, error) {
			q := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if q == "" {
				return nil, errors.New("search query required")
			}
			c, err := NewAPIClient(cmd)
			if err != nil {
				return nil, err
			}
			results, err := c.Search(ctx, q)
			if err != nil {
				return nil, err
			}
			return results.Results, nil
		},
	}
	return runner.Run(ctx, cmd)
}

func SearchCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "search",
		Usage:     "search talks",
		UsageText: `talks search <query> [options]`,
		Action:    SearchCommandAction,
		Meta:      meta,
	}).Build()
}

// RandomCommandAction shows one talk picked by the API.
func RandomCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[talk.Summary]{
		CommandName:  "random",
		SchemaType:   summarySchema,
		DefaultAttrs: defaultTalkAttrs,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]talk.Summary, error) {
			c, err := NewAPIClient(cmd)
			if err != nil {
				return nil, err
			}
			s, err := c.Random(ctx)
			if err != nil {
				return nil, err
			}
			return []talk.Summary{s}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

func RandomCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "random",
		Usage:     "a random talk",
		UsageText: `talks random [options]`,
		Action:    RandomCommandAction,
		Meta:      meta,
	}).Build()
}

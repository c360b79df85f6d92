// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/talksgo/internal/api"
	"github.com/staranto/talksgo/internal/cache"
	"github.com/staranto/talksgo/internal/cacheutil"
	"github.com/staranto/talksgo/internal/catalog"
	"github.com/staranto/talksgo/internal/meta"
	"github.com/staranto/talksgo/internal/upstream"
)

const shutdownGrace = 10 * time.Second

// ServeCommandAction runs the talks API until interrupted.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "serve") {
		return nil
	}

	handler, closer, err := NewServeHandler(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	srv := &http.Server{
		Addr:              cmd.String("addr"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, //nolint:mnd
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	log.Infof("talks API listening on %s", srv.Addr)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("talks API stopped")
	return nil
}

// NewServeHandler assembles the API from the serve flags: cache, upstream
// client, catalog and router. The returned func releases the catalog.
func NewServeHandler(ctx context.Context, cmd *cli.Command) (http.Handler, func(), error) {
	base := cmd.String("upstream")
	if base == "" {
		return nil, nil, errors.New("--upstream is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid upstream %q: %w", base, err)
	}

	store, err := cache.Open(ctx, cache.Settings{
		Backend:   cmd.String("cache"),
		TTL:       cmd.Duration("cache-ttl"),
		Size:      cmd.Int("cache-size"),
		Namespace: u.Host,
		Bucket:    cmd.String("cache-bucket"),
		Region:    cmd.String("cache-region"),
		Profile:   cmd.String("cache-profile"),
		Endpoint:  cmd.String("cache-endpoint"),
	})
	if err != nil {
		return nil, nil, err
	}

	up, err := upstream.New(base, store,
		upstream.WithToken(cmd.String("token")),
		upstream.WithHomeLimit(cmd.Int("home-limit")),
		upstream.WithHTTPClient(&http.Client{Timeout: cmd.Duration("timeout")}),
	)
	if err != nil {
		return nil, nil, err
	}

	path := cmd.String("catalog")
	if path == "" {
		path = defaultCatalogPath()
	}
	cat, err := catalog.Open(path)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("catalog: %s", path)

	router := api.NewRouter(api.NewTalkService(up, cat), api.WithTimeout(cmd.Duration("timeout")))

	return router, func() {
		if err := cat.Close(); err != nil {
			log.WithError(err).Warn("failed to close catalog")
		}
	}, nil
}

// defaultCatalogPath keeps the catalog next to the disk cache, or in memory
// when there is no cache directory.
func defaultCatalogPath() string {
	if base, ok, _ := cacheutil.EnsureBaseDir(); ok {
		return filepath.Join(base, "catalog.db")
	}
	return ":memory:"
}

// ServeCommandBuilder constructs the cli.Command for "serve".
func ServeCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "run the talks API",
		UsageText: `talks serve --upstream <url> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			newTldrFlag(),
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				Sources: configSources("TALKS_ADDR", "serve", "addr"),
				Value:   ":8080",
			},
			&cli.StringFlag{
				Name:    "upstream",
				Aliases: []string{"u"},
				Usage:   "base URL of the upstream talks API",
				Sources: configSources("TALKS_UPSTREAM", "serve", "upstream"),
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator, URLValidator)
				},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token for the upstream API",
				Sources: cli.NewValueSourceChain(cli.EnvVar("TALKS_UPSTREAM_TOKEN")),
			},
			&cli.IntFlag{
				Name:    "home-limit",
				Usage:   "talks fetched for the home page",
				Sources: configSources("TALKS_HOME_LIMIT", "serve", "home-limit"),
				Value:   24, //nolint:mnd
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "upstream and request timeout",
				Sources: configSources("TALKS_TIMEOUT", "serve", "timeout"),
				Value:   30 * time.Second, //nolint:mnd
			},
			&cli.StringFlag{
				Name:    "cache",
				Usage:   "cache backend (memory, disk, s3, none)",
				Sources: configSources("TALKS_CACHE_BACKEND", "serve", "cache.backend"),
				Value:   "memory",
				Validator: func(value string) error {
					return FlagValidators(value, CacheBackendValidator)
				},
			},
			&cli.DurationFlag{
				Name:    "cache-ttl",
				Usage:   "cache entry lifetime (0 keeps entries forever)",
				Sources: configSources("TALKS_CACHE_TTL", "serve", "cache.ttl"),
				Value:   10 * time.Minute, //nolint:mnd
			},
			&cli.IntFlag{
				Name:    "cache-size",
				Usage:   "maximum entries held by --cache=memory",
				Sources: configSources("TALKS_CACHE_SIZE", "serve", "cache.size"),
				Value:   cache.DefaultMemorySize,
			},
			&cli.StringFlag{
				Name:    "cache-bucket",
				Usage:   "S3 bucket for --cache=s3",
				Sources: configSources("TALKS_CACHE_BUCKET", "serve", "cache.bucket"),
			},
			&cli.StringFlag{
				Name:    "cache-region",
				Usage:   "AWS region for --cache=s3",
				Sources: configSources("TALKS_CACHE_REGION", "serve", "cache.region"),
			},
			&cli.StringFlag{
				Name:    "cache-profile",
				Usage:   "AWS shared config profile for --cache=s3",
				Sources: configSources("TALKS_CACHE_PROFILE", "serve", "cache.profile"),
			},
			&cli.StringFlag{
				Name:    "cache-endpoint",
				Usage:   "S3-compatible endpoint for --cache=s3",
				Sources: configSources("TALKS_CACHE_ENDPOINT", "serve", "cache.endpoint"),
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "SQLite catalog path (default: cache dir, or :memory:)",
				Sources: configSources("TALKS_CATALOG", "serve", "catalog"),
			},
		},
		Action: ServeCommandAction,
	}
}

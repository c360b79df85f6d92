// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/talksgo/internal/talk"
)

func open(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRandom_Empty(t *testing.T) {
	c := open(t)

	_, ok, err := c.Random(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecord_Upsert(t *testing.T) {
	c := open(t)
	ctx := context.Background()
	published := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.Record(ctx,
		talk.Summary{ID: 1, Slug: "a", Title: "A", Seconds: 60, Tags: []string{"x", "y"}, PublishedAt: published},
		talk.Summary{ID: 2, Slug: "b", Title: "B"},
	))
	require.NoError(t, c.Record(ctx, talk.Summary{ID: 1, Slug: "a", Title: "A, revised", Views: 99}))

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A, revised", got.Title)
	assert.Equal(t, int64(99), got.Views)
	assert.Empty(t, got.Tags)
	assert.True(t, got.PublishedAt.IsZero())

	_, ok, err = c.Get(ctx, "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecord_RoundTrip(t *testing.T) {
	c := open(t)
	ctx := context.Background()
	want := talk.Summary{
		ID: 5, Slug: "only", Title: "Only", Speaker: "Ada", Seconds: 720, Views: 10,
		PublishedAt: time.Date(2019, 1, 2, 3, 4, 5, 0, time.UTC),
		Tags:        []string{"science", "space"},
	}
	require.NoError(t, c.Record(ctx, want))

	got, ok, err := c.Random(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRandom_CoversCatalog(t *testing.T) {
	c := open(t)
	ctx := context.Background()
	require.NoError(t, c.Record(ctx,
		talk.Summary{Slug: "a"}, talk.Summary{Slug: "b"}, talk.Summary{Slug: "c"},
	))

	seen := map[string]bool{}
	for i := 0; i < 200 && len(seen) < 3; i++ {
		s, ok, err := c.Random(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		seen[s.Slug] = true
	}
	assert.Len(t, seen, 3)
}

func TestRecord_Nothing(t *testing.T) {
	c := open(t)
	assert.NoError(t, c.Record(context.Background()))
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package catalog keeps a SQLite table of every talk summary the proxy has
// served. It backs random-talk selection.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/staranto/talksgo/internal/talk"
)

const schema = `CREATE TABLE IF NOT EXISTS talks (
	slug         TEXT NOT NULL PRIMARY KEY,
	id           INTEGER NOT NULL DEFAULT 0,
	title        TEXT NOT NULL DEFAULT '',
	speaker      TEXT NOT NULL DEFAULT '',
	duration     INTEGER NOT NULL DEFAULT 0,
	views        INTEGER NOT NULL DEFAULT 0,
	published_at TEXT NOT NULL DEFAULT '',
	tags         TEXT NOT NULL DEFAULT '',
	seen_at      TEXT NOT NULL
)`

const upsert = `INSERT INTO talks
	(slug, id, title, speaker, duration, views, published_at, tags, seen_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(slug) DO UPDATE SET
		id = excluded.id,
		title = excluded.title,
		speaker = excluded.speaker,
		duration = excluded.duration,
		views = excluded.views,
		published_at = excluded.published_at,
		tags = excluded.tags,
		seen_at = excluded.seen_at`

const columns = `slug, id, title, speaker, duration, views, published_at, tags`

// Catalog is safe for concurrent use.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the catalog database at path. ":memory:"
// gives a private in-memory catalog.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}

	// An in-memory database lives and dies with its connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}

	log.Debugf("catalog opened: %s", path)
	return &Catalog{db: db, now: time.Now}, nil
}

// Record upserts the summaries, keyed by slug.
func (c *Catalog) Record(ctx context.Context, talks ...talk.Summary) error {
	if len(talks) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("failed to prepare: %w", err)
	}
	defer stmt.Close()

	seen := c.now().UTC().Format(time.RFC3339)
	for _, t := range talks {
		var published string
		if !t.PublishedAt.IsZero() {
			published = t.PublishedAt.UTC().Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			t.Slug, t.ID, t.Title, t.Speaker, t.Seconds, t.Views,
			published, strings.Join(t.Tags, ","), seen,
		); err != nil {
			return fmt.Errorf("failed to record %s: %w", t.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Random picks one recorded talk uniformly. ok is false when the catalog is
// empty.
func (c *Catalog) Random(ctx context.Context) (talk.Summary, bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+columns+` FROM talks ORDER BY RANDOM() LIMIT 1`)
	s, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return talk.Summary{}, false, nil
	}
	if err != nil {
		return talk.Summary{}, false, fmt.Errorf("failed to pick a random talk: %w", err)
	}
	return s, true, nil
}

// Get looks a talk up by slug.
func (c *Catalog) Get(ctx context.Context, slug string) (talk.Summary, bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+columns+` FROM talks WHERE slug = ?`, slug)
	s, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return talk.Summary{}, false, nil
	}
	if err != nil {
		return talk.Summary{}, false, fmt.Errorf("failed to get %s: %w", slug, err)
	}
	return s, true, nil
}

// Count is the number of recorded talks.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM talks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func scan(row *sql.Row) (talk.Summary, error) {
	var (
		s         talk.Summary
		published string
		tags      string
	)
	if err := row.Scan(&s.Slug, &s.ID, &s.Title, &s.Speaker, &s.Seconds, &s.Views, &published, &tags); err != nil {
		return talk.Summary{}, err
	}

	if published != "" {
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			s.PublishedAt = t
		}
	}
	if tags != "" {
		s.Tags = strings.Split(tags, ",")
	}
	return s, nil
}

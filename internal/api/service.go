// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"math/rand/v2"

	"github.com/apex/log"

	"github.com/staranto/talksgo/internal/talk"
)

// Service is what the handlers need from the data access layer.
type Service interface {
	Home(ctx context.Context) (talk.Home, error)
	Talk(ctx context.Context, slug string) (talk.Talk, error)
	Search(ctx context.Context, query string) (talk.SearchResults, error)
	Random(ctx context.Context) (talk.Summary, error)
}

// Upstream fetches decoded records from the third-party API.
type Upstream interface {
	Home(ctx context.Context) (talk.Home, error)
	Talk(ctx context.Context, slug string) (talk.Talk, error)
	Search(ctx context.Context, query string) (talk.SearchResults, error)
}

// Catalog remembers served talks.
type Catalog interface {
	Record(ctx context.Context, talks ...talk.Summary) error
	Random(ctx context.Context) (talk.Summary, bool, error)
}

// TalkService is the Service backed by an Upstream (which does its own
// caching) and an optional Catalog.
type TalkService struct {
	upstream Upstream
	catalog  Catalog
	pick     func(n int) int
}

// NewTalkService builds a TalkService. catalog may be nil.
func NewTalkService(up Upstream, catalog Catalog) *TalkService {
	return &TalkService{upstream: up, catalog: catalog, pick: rand.IntN}
}

func (s *TalkService) Home(ctx context.Context) (talk.Home, error) {
	home, err := s.upstream.Home(ctx)
	if err != nil {
		return talk.Home{}, err
	}
	s.record(ctx, home.Featured...)
	return home, nil
}

func (s *TalkService) Talk(ctx context.Context, slug string) (talk.Talk, error) {
	t, err := s.upstream.Talk(ctx, slug)
	if err != nil {
		return talk.Talk{}, err
	}
	s.record(ctx, t.Summaries()...)
	return t, nil
}

func (s *TalkService) Search(ctx context.Context, query string) (talk.SearchResults, error) {
	res, err := s.upstream.Search(ctx, query)
	if err != nil {
		return talk.SearchResults{}, err
	}
	s.record(ctx, res.Results...)
	return res, nil
}

// Random picks from the catalog, falling back to the upstream home listing
// while the catalog is empty.
func (s *TalkService) Random(ctx context.Context) (talk.Summary, error) {
	if s.catalog != nil {
		t, ok, err := s.catalog.Random(ctx)
		switch {
		case err != nil:
			log.WithError(err).Warn("catalog random failed, using home listing")
		case ok:
			return t, nil
		}
	}

	home, err := s.Home(ctx)
	if err != nil {
		return talk.Summary{}, err
	}
	if len(home.Featured) == 0 {
		return talk.Summary{}, ErrNoTalks
	}
	return home.Featured[s.pick(len(home.Featured))], nil
}

// record is best effort; a catalog failure never fails a request.
func (s *TalkService) record(ctx context.Context, talks ...talk.Summary) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.Record(ctx, talks...); err != nil {
		log.WithError(err).Warn("failed to record talks in catalog")
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/talksgo/internal/talk"
	"github.com/staranto/talksgo/internal/upstream"
)

type fakeUpstream struct {
	home    talk.Home
	talks   map[string]talk.Talk
	homeErr error
	err     error
}

func (f *fakeUpstream) Home(context.Context) (talk.Home, error) {
	return f.home, f.homeErr
}

func (f *fakeUpstream) Talk(_ context.Context, slug string) (talk.Talk, error) {
	if f.err != nil {
		return talk.Talk{}, f.err
	}
	t, ok := f.talks[slug]
	if !ok {
		return talk.Talk{}, &upstream.StatusError{URL: slug, Code: http.StatusNotFound}
	}
	return t, nil
}

func (f *fakeUpstream) Search(_ context.Context, q string) (talk.SearchResults, error) {
	if f.err != nil {
		return talk.SearchResults{}, f.err
	}
	return talk.SearchResults{Query: q, Results: []talk.Summary{{Slug: "hit"}}}, nil
}

type fakeCatalog struct {
	recorded []string
	random   *talk.Summary
	err      error
}

func (f *fakeCatalog) Record(_ context.Context, talks ...talk.Summary) error {
	for _, t := range talks {
		f.recorded = append(f.recorded, t.Slug)
	}
	return f.err
}

func (f *fakeCatalog) Random(context.Context) (talk.Summary, bool, error) {
	if f.err != nil {
		return talk.Summary{}, false, f.err
	}
	if f.random == nil {
		return talk.Summary{}, false, nil
	}
	return *f.random, true, nil
}

func do(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestRoutes(t *testing.T) {
	up := &fakeUpstream{
		home: talk.Home{Featured: []talk.Summary{{Slug: "a"}, {Slug: "b"}}, Total: 2},
		talks: map[string]talk.Talk{
			"foo": {Summary: talk.Summary{Slug: "foo", Title: "Foo"}, Related: []talk.Summary{{Slug: "bar"}}},
		},
	}
	cat := &fakeCatalog{}
	r := NewRouter(NewTalkService(up, cat))

	rec, body := do(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, body = do(t, r, "/api/home")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Len(t, body["featured"], 2)

	rec, body = do(t, r, "/api/talks/foo")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Foo", body["title"])

	rec, body = do(t, r, "/api/search?q=space")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "space", body["query"])

	assert.Equal(t, []string{"a", "b", "foo", "bar", "hit"}, cat.recorded)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target string
		status int
		code   string
	}{
		{"missing talk", nil, "/api/talks/nope", http.StatusNotFound, "not_found"},
		{"decode", fmt.Errorf("wrapped: %w", talk.ErrDecode), "/api/talks/foo", http.StatusBadGateway, "bad_upstream_payload"},
		{"transport", errors.New("connection refused"), "/api/talks/foo", http.StatusBadGateway, "upstream_unavailable"},
		{"upstream 500", &upstream.StatusError{Code: 500}, "/api/search?q=x", http.StatusBadGateway, "upstream_unavailable"},
		{"blank query", nil, "/api/search?q=%20", http.StatusBadRequest, "invalid_query"},
		{"no query", nil, "/api/search", http.StatusBadRequest, "invalid_query"},
		{"unknown route", nil, "/api/nothing", http.StatusNotFound, "route_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(NewTalkService(&fakeUpstream{err: tt.err}, nil))
			rec, body := do(t, r, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["error"])
			assert.EqualValues(t, tt.status, body["status"])
			assert.NotEmpty(t, body["request_id"])
		})
	}
}

func TestRandom(t *testing.T) {
	t.Run("from catalog", func(t *testing.T) {
		cat := &fakeCatalog{random: &talk.Summary{Slug: "cataloged"}}
		r := NewRouter(NewTalkService(&fakeUpstream{}, cat))
		rec, body := do(t, r, "/api/talks/random")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cataloged", body["slug"])
	})

	t.Run("falls back to home", func(t *testing.T) {
		up := &fakeUpstream{home: talk.Home{Featured: []talk.Summary{{Slug: "a"}, {Slug: "b"}}}}
		svc := NewTalkService(up, &fakeCatalog{})
		svc.pick = func(int) int { return 1 }
		rec, body := do(t, NewRouter(svc), "/api/talks/random")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "b", body["slug"])
	})

	t.Run("catalog failure falls back", func(t *testing.T) {
		up := &fakeUpstream{home: talk.Home{Featured: []talk.Summary{{Slug: "a"}}}}
		svc := NewTalkService(up, &fakeCatalog{err: errors.New("disk full")})
		rec, body := do(t, NewRouter(svc), "/api/talks/random")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a", body["slug"])
	})

	t.Run("nothing available", func(t *testing.T) {
		r := NewRouter(NewTalkService(&fakeUpstream{}, nil))
		rec, body := do(t, r, "/api/talks/random")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", body["error"])
	})

	t.Run("home failure", func(t *testing.T) {
		r := NewRouter(NewTalkService(&fakeUpstream{homeErr: errors.New("boom")}, nil))
		rec, _ := do(t, r, "/api/talks/random")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestTalkSlugUnescaped(t *testing.T) {
	up := &fakeUpstream{talks: map[string]talk.Talk{
		"café": {Summary: talk.Summary{Slug: "café", Title: "Cafe"}},
		"a/b":  {Summary: talk.Summary{Slug: "a/b", Title: "Slash"}},
	}}
	r := NewRouter(NewTalkService(up, &fakeCatalog{}))

	rec, body := do(t, r, "/api/talks/caf%C3%A9")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cafe", body["title"])

	rec, body = do(t, r, "/api/talks/a%2Fb")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Slash", body["title"])
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a b", sanitize(" a\nb\r", 10))
	assert.Equal(t, "abc", sanitize("abcdef", 3))

	got := sanitize("héllo", 2)
	assert.Equal(t, "h", got, "é is not split")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "hé", sanitize("héllo", 3))
}

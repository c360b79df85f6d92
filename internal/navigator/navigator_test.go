// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package navigator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/page/talkpage"
	"github.com/staranto/talksgo/internal/talk"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

type fakeLoader struct {
	talkErrs map[string]error
	searches []string
	random   talk.Summary
	randErr  error
}

func (f *fakeLoader) Home(context.Context) (talk.Home, error) {
	return talk.Home{Featured: []talk.Summary{{Slug: "a", Title: "A"}, {Slug: "b", Title: "B"}}, Total: 2}, nil
}

func (f *fakeLoader) Talk(_ context.Context, slug string) (talk.Talk, error) {
	if err := f.talkErrs[slug]; err != nil {
		return talk.Talk{}, err
	}
	return talk.Talk{Summary: talk.Summary{Slug: slug, Title: "Talk " + slug, Seconds: 60}}, nil
}

func (f *fakeLoader) Search(_ context.Context, q string) (talk.SearchResults, error) {
	f.searches = append(f.searches, q)
	return talk.SearchResults{Query: q, Results: []talk.Summary{{Slug: "hit", Title: "Hit"}}}, nil
}

func (f *fakeLoader) Random(context.Context) (talk.Summary, error) {
	return f.random, f.randErr
}

func goTo(n *Navigator, m Model, location string) (Model, tea.Cmd) {
	return n.Update(m, LocationChangedMsg{Location: location})
}

// settled navigates to location and resolves the load.
func settled(t *testing.T, n *Navigator, m Model, location string) Model {
	t.Helper()
	m, cmd := goTo(n, m, location)
	require.NotNil(t, cmd)
	require.True(t, m.Status.Redirecting)
	m, _ = n.Update(m, cmd())
	require.True(t, m.Status.Loaded())
	return m
}

func TestInit(t *testing.T) {
	n := New(&fakeLoader{})
	m, cmd := n.Init("/talks/x")

	assert.True(t, m.Status.Loaded())
	assert.Equal(t, Blank, m.Status.Page.Kind)
	assert.Equal(t, "Talks", n.Title(m))
	assert.Equal(t, LocationChangedMsg{Location: "/talks/x"}, cmd())
}

func TestLoadKeepsPreviousPageUntilSettled(t *testing.T) {
	n := New(&fakeLoader{})
	m := settled(t, n, Model{}, "/")
	assert.Equal(t, Home, m.Status.Page.Kind)

	m, cmd := goTo(n, m, "/talks/foo")
	assert.True(t, m.Status.Redirecting)
	assert.Equal(t, Home, m.Status.Page.Kind, "old page stays visible while loading")
	assert.Equal(t, "Talks", n.Title(m))

	m, _ = n.Update(m, cmd())
	assert.True(t, m.Status.Loaded())
	assert.Equal(t, Talk, m.Status.Page.Kind)
	assert.Equal(t, "foo", m.Status.Page.Talk.Talk().Slug)
	assert.Equal(t, "Talk foo | Talks", n.Title(m))
	assert.True(t, m.Status.Page.Talk.Playing(), "talk page is initialised on settle")
}

func TestLastNavigationWins(t *testing.T) {
	t.Run("older resolves last", func(t *testing.T) {
		n := New(&fakeLoader{})
		m, cmdA := goTo(n, Model{}, "/talks/a")
		m, cmdB := goTo(n, m, "/talks/b")

		m, _ = n.Update(m, cmdB())
		require.Equal(t, Talk, m.Status.Page.Kind)

		m, cmd := n.Update(m, cmdA())
		assert.Nil(t, cmd)
		assert.Equal(t, "b", m.Status.Page.Talk.Talk().Slug)
	})

	t.Run("older resolves first", func(t *testing.T) {
		n := New(&fakeLoader{})
		m, cmdA := goTo(n, Model{}, "/talks/a")
		m, cmdB := goTo(n, m, "/talks/b")

		m, cmd := n.Update(m, cmdA())
		assert.Nil(t, cmd)
		assert.True(t, m.Status.Redirecting, "superseded load must not settle")
		assert.Equal(t, Blank, m.Status.Page.Kind)

		m, _ = n.Update(m, cmdB())
		assert.Equal(t, "b", m.Status.Page.Talk.Talk().Slug)
	})

	t.Run("immediate settle supersedes in-flight load", func(t *testing.T) {
		n := New(&fakeLoader{})
		m, cmdA := goTo(n, Model{}, "/talks/a")
		m, _ = goTo(n, m, "/nowhere")
		require.Equal(t, NotFound, m.Status.Page.Kind)

		m, cmd := n.Update(m, cmdA())
		assert.Nil(t, cmd)
		assert.Equal(t, NotFound, m.Status.Page.Kind)
	})
}

func TestLoadFailures(t *testing.T) {
	loader := &fakeLoader{talkErrs: map[string]error{
		"gone":   fmt.Errorf("wrapped: %w", statusErr(http.StatusNotFound)),
		"broken": statusErr(http.StatusInternalServerError),
		"bad":    errors.New("invalid character '<' looking for beginning of value"),
		"down":   context.DeadlineExceeded,
	}}
	n := New(loader)

	tests := []struct {
		slug  string
		want  PageKind
		title string
	}{
		{"gone", NotFound, "Not found | Talks"},
		{"broken", Errored, "Something went wrong | Talks"},
		{"bad", Errored, "Something went wrong | Talks"},
		{"down", Errored, "Something went wrong | Talks"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			m, cmd := goTo(n, Model{}, "/talks/"+tt.slug)
			m, title := n.Update(m, cmd())
			assert.True(t, m.Status.Loaded())
			assert.Equal(t, tt.want, m.Status.Page.Kind)
			assert.Equal(t, tt.title, n.Title(m))
			assert.NotNil(t, title)
		})
	}
}

func TestNoRoute(t *testing.T) {
	n := New(&fakeLoader{})
	for _, loc := range []string{"/nowhere", "/talks/", "/search", "/search?q=", "/search?q=%20%20"} {
		m, cmd := goTo(n, Model{}, loc)
		assert.True(t, m.Status.Loaded(), loc)
		assert.Equal(t, NotFound, m.Status.Page.Kind, loc)
		assert.NotNil(t, cmd, "title is set for %s", loc)
	}
}

func TestSearch(t *testing.T) {
	t.Run("literal query loads results", func(t *testing.T) {
		loader := &fakeLoader{}
		n := New(loader)
		m := settled(t, n, Model{}, "/search?q=dark+matter")

		assert.Equal(t, []string{"dark matter"}, loader.searches)
		assert.Equal(t, Search, m.Status.Page.Kind)
		assert.Equal(t, "Search: dark matter | Talks", n.Title(m))
	})

	t.Run("permalink redirects to the talk", func(t *testing.T) {
		loader := &fakeLoader{}
		n := New(loader)
		loc := "/search?" + url.Values{"q": {" https://www.ted.com/talks/foo_bar "}}.Encode()

		m, cmd := goTo(n, Model{}, loc)
		assert.False(t, m.Status.Redirecting)
		assert.Equal(t, ReplaceMsg{Location: "/talks/foo_bar"}, cmd())
		assert.Empty(t, loader.searches, "no search request for a permalink")
	})
}

func TestStaleSubPageMessagesDiscarded(t *testing.T) {
	n := New(&fakeLoader{})
	m := settled(t, n, Model{}, "/talks/a")
	id := m.Status.Page.Talk.ID()

	m = settled(t, n, m, "/search?q=x")
	require.Equal(t, Search, m.Status.Page.Kind)

	got, cmd := n.Update(m, TalkMsg{talkpage.TickMsg{ID: id}})
	assert.Nil(t, cmd)
	assert.Equal(t, m, got)

	got, cmd = n.Update(m, HomeMsg{tea.KeyMsg{Type: tea.KeyEnter}})
	assert.Nil(t, cmd)
	assert.Equal(t, m, got)
}

func TestSubPageMessagesIgnoredWhileLoading(t *testing.T) {
	n := New(&fakeLoader{})
	m := settled(t, n, Model{}, "/")
	m, _ = goTo(n, m, "/talks/a")

	_, cmd := n.Update(m, HomeMsg{tea.KeyMsg{Type: tea.KeyEnter}})
	assert.Nil(t, cmd)
	_, cmd = n.Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestKeysReachLoadedPage(t *testing.T) {
	n := New(&fakeLoader{})
	m := settled(t, n, Model{}, "/")

	m, _ = n.Update(m, tea.KeyMsg{Type: tea.KeyDown})
	s, ok := m.Status.Page.Home.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", s.Slug)

	m, cmd := n.Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, page.NavigateMsg{Location: "/talks/b"}, msg)

	got, cmd := n.Update(m, msg)
	assert.Equal(t, m, got, "navigate requests never change the page")
	assert.Equal(t, PushMsg{Location: "/talks/b"}, cmd())
}

func TestHeaderNavigate(t *testing.T) {
	n := New(&fakeLoader{})
	m, cmd := n.Update(Model{}, HeaderNavigateMsg{Location: "/search?q=x"})
	assert.Equal(t, Model{}, m)
	assert.Equal(t, PushMsg{Location: "/search?q=x"}, cmd())
}

func TestRandom(t *testing.T) {
	t.Run("success pushes the talk", func(t *testing.T) {
		n := New(&fakeLoader{random: talk.Summary{Slug: "lucky"}})
		m := settled(t, n, Model{}, "/")

		m, cmd := n.Update(m, RandomRequestedMsg{})
		assert.True(t, m.Status.Redirecting)

		m, cmd = n.Update(m, cmd())
		assert.True(t, m.Status.Redirecting, "stays loading until the talk arrives")
		assert.Equal(t, PushMsg{Location: "/talks/lucky"}, cmd())
	})

	t.Run("not found", func(t *testing.T) {
		n := New(&fakeLoader{randErr: statusErr(http.StatusNotFound)})
		m, cmd := n.Update(Model{}, RandomRequestedMsg{})
		m, _ = n.Update(m, cmd())
		assert.Equal(t, NotFound, m.Status.Page.Kind)
	})

	t.Run("superseded", func(t *testing.T) {
		n := New(&fakeLoader{random: talk.Summary{Slug: "lucky"}})
		m, cmdR := n.Update(Model{}, RandomRequestedMsg{})
		m = settled(t, n, m, "/")

		got, cmd := n.Update(m, cmdR())
		assert.Nil(t, cmd)
		assert.Equal(t, m, got)
	})
}

func TestWrap(t *testing.T) {
	type ping struct{}
	fn := func(msg tea.Msg) tea.Msg { return TalkMsg{msg} }

	assert.Nil(t, wrap(nil, fn))
	assert.Equal(t, TalkMsg{ping{}}, wrap(func() tea.Msg { return ping{} }, fn)())
	assert.Nil(t, wrap(func() tea.Msg { return nil }, fn)())
	assert.Equal(t, page.NavigateMsg{Location: "/"}, wrap(page.Navigate("/"), fn)())

	batch := wrap(tea.Batch(func() tea.Msg { return ping{} }, func() tea.Msg { return ping{} }), fn)()
	cmds, ok := batch.(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, cmds, 2)
	for _, c := range cmds {
		assert.Equal(t, TalkMsg{ping{}}, c())
	}
}

func TestSiteTitle(t *testing.T) {
	n := New(&fakeLoader{}, WithSiteTitle(""))
	m, _ := goTo(n, Model{}, "/nowhere")
	assert.Equal(t, "Not found", n.Title(m))
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package navigator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/page/homepage"
	"github.com/staranto/talksgo/internal/page/searchpage"
	"github.com/staranto/talksgo/internal/page/talkpage"
	"github.com/staranto/talksgo/internal/route"
	"github.com/staranto/talksgo/internal/talk"
)

// Loader fetches page data.
type Loader interface {
	Home(ctx context.Context) (talk.Home, error)
	Talk(ctx context.Context, slug string) (talk.Talk, error)
	Search(ctx context.Context, query string) (talk.SearchResults, error)
	Random(ctx context.Context) (talk.Summary, error)
}

const (
	defaultSiteTitle = "Talks"
	defaultTimeout   = 30 * time.Second
)

// Navigator runs the page state machine over a Loader. It keeps no state
// between calls; everything lives in Model.
type Navigator struct {
	loader    Loader
	siteTitle string
	timeout   time.Duration
}

type Option func(*Navigator)

// WithSiteTitle sets the title shown on the home page and appended to every
// other title.
func WithSiteTitle(title string) Option {
	return func(n *Navigator) { n.siteTitle = title }
}

// WithTimeout bounds every load.
func WithTimeout(d time.Duration) Option {
	return func(n *Navigator) {
		if d > 0 {
			n.timeout = d
		}
	}
}

func New(loader Loader, opts ...Option) *Navigator {
	n := &Navigator{loader: loader, siteTitle: defaultSiteTitle, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Init returns the initial model, Loaded(Blank), and the command that
// navigates to location.
func (n *Navigator) Init(location string) (Model, tea.Cmd) {
	return Model{}, func() tea.Msg { return LocationChangedMsg{Location: location} }
}

// Title is the title of the page m shows.
func (n *Navigator) Title(m Model) string {
	p := m.Status.Page
	switch p.Kind {
	case Home, Blank:
		return n.siteTitle
	case NotFound:
		return n.titled("Not found")
	case Errored:
		return n.titled("Something went wrong")
	case Talk:
		return n.titled(p.Talk.Title())
	case Search:
		return n.titled(p.Search.Title())
	}
	return n.siteTitle
}

func (n *Navigator) titled(s string) string {
	if n.siteTitle == "" {
		return s
	}
	return s + " | " + n.siteTitle
}

func (n *Navigator) Update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LocationChangedMsg:
		return n.locationChanged(m, msg.Location)

	case page.NavigateMsg:
		return m, push(msg.Location)

	case HeaderNavigateMsg:
		return m, push(msg.Location)

	case RandomRequestedMsg:
		var tag uint64
		m, tag = m.redirect()
		return m, n.random(tag)

	case loadedMsg:
		return n.loaded(m, msg)

	case randomMsg:
		if !m.current(msg.tag) {
			log.Debugf("dropping stale random talk (tag %d)", msg.tag)
			return m, nil
		}
		if msg.err != nil {
			return n.failed(m, msg.err)
		}
		// Stay redirecting; the push comes back as a location change that
		// starts the talk load.
		return m, push(route.Talk(msg.slug).Location())

	case HomeMsg:
		if !m.Status.Loaded() || m.Status.Page.Kind != Home {
			return m, nil
		}
		var cmd tea.Cmd
		m.Status.Page.Home, cmd = m.Status.Page.Home.Update(msg.Msg)
		return m, wrap(cmd, func(msg tea.Msg) tea.Msg { return HomeMsg{msg} })

	case TalkMsg:
		if !m.Status.Loaded() || m.Status.Page.Kind != Talk {
			return m, nil
		}
		var cmd tea.Cmd
		m.Status.Page.Talk, cmd = m.Status.Page.Talk.Update(msg.Msg)
		return m, wrap(cmd, func(msg tea.Msg) tea.Msg { return TalkMsg{msg} })

	case SearchMsg:
		if !m.Status.Loaded() || m.Status.Page.Kind != Search {
			return m, nil
		}
		var cmd tea.Cmd
		m.Status.Page.Search, cmd = m.Status.Page.Search.Update(msg.Msg)
		return m, wrap(cmd, func(msg tea.Msg) tea.Msg { return SearchMsg{msg} })

	case tea.KeyMsg:
		if !m.Status.Loaded() {
			return m, nil
		}
		switch m.Status.Page.Kind {
		case Home:
			return n.Update(m, HomeMsg{msg})
		case Talk:
			return n.Update(m, TalkMsg{msg})
		case Search:
			return n.Update(m, SearchMsg{msg})
		}
	}

	return m, nil
}

func (n *Navigator) locationChanged(m Model, location string) (Model, tea.Cmd) {
	r, ok := route.Parse(location)
	if !ok {
		log.Debugf("no route for %q", location)
		return n.settle(m, Page{Kind: NotFound})
	}

	switch r.Kind {
	case route.KindSearch:
		if !r.HasQuery || strings.TrimSpace(r.Query) == "" {
			return n.settle(m, Page{Kind: NotFound})
		}
		if slug, ok := route.TalkPermalink(r.Query); ok {
			return m, replace(route.Talk(slug).Location())
		}
	}

	m, tag := m.redirect()
	return m, n.load(tag, r)
}

func (n *Navigator) loaded(m Model, msg loadedMsg) (Model, tea.Cmd) {
	if !m.current(msg.tag) {
		log.Debugf("dropping stale %s load (tag %d)", msg.kind, msg.tag)
		return m, nil
	}
	if msg.err != nil {
		return n.failed(m, msg.err)
	}

	switch msg.kind {
	case route.KindHome:
		return n.settle(m, Page{Kind: Home, Home: homepage.New(msg.home)})

	case route.KindTalk:
		tp, cmd := talkpage.New(msg.talk).Init()
		var title tea.Cmd
		m, title = n.settle(m, Page{Kind: Talk, Talk: tp})
		return m, tea.Batch(wrap(cmd, func(msg tea.Msg) tea.Msg { return TalkMsg{msg} }), title)

	case route.KindSearch:
		return n.settle(m, Page{Kind: Search, Search: searchpage.New(msg.search)})
	}

	return m, nil
}

func (n *Navigator) failed(m Model, err error) (Model, tea.Cmd) {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) && sc.StatusCode() == http.StatusNotFound {
		log.WithError(err).Debug("load not found")
		return n.settle(m, Page{Kind: NotFound})
	}
	log.WithError(err).Warn("load failed")
	return n.settle(m, Page{Kind: Errored})
}

// settle loads p and retitles. Anything still in flight is superseded.
func (n *Navigator) settle(m Model, p Page) (Model, tea.Cmd) {
	m = m.settle(p)
	return m, tea.SetWindowTitle(n.Title(m))
}

func (n *Navigator) load(tag uint64, r route.Route) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		msg := loadedMsg{tag: tag, kind: r.Kind}
		switch r.Kind {
		case route.KindHome:
			msg.home, msg.err = n.loader.Home(ctx)
		case route.KindTalk:
			msg.talk, msg.err = n.loader.Talk(ctx, r.Slug)
		case route.KindSearch:
			msg.search, msg.err = n.loader.Search(ctx, r.Query)
		}
		return msg
	}
}

func (n *Navigator) random(tag uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		s, err := n.loader.Random(ctx)
		return randomMsg{tag: tag, slug: s.Slug, err: err}
	}
}

func push(location string) tea.Cmd {
	return func() tea.Msg { return PushMsg{Location: location} }
}

func replace(location string) tea.Cmd {
	return func() tea.Msg { return ReplaceMsg{Location: location} }
}

// wrap tags the messages cmd produces with the sub-page they belong to.
// Navigate requests are left bare for the navigator to turn into pushes.
func wrap(cmd tea.Cmd, fn func(tea.Msg) tea.Msg) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case nil:
			return nil
		case page.NavigateMsg:
			return msg
		case tea.BatchMsg:
			out := make(tea.BatchMsg, len(msg))
			for i, c := range msg {
				out[i] = wrap(c, fn)
			}
			return out
		default:
			return fn(msg)
		}
	}
}

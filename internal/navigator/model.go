// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package navigator

import (
	"github.com/staranto/talksgo/internal/page/homepage"
	"github.com/staranto/talksgo/internal/page/searchpage"
	"github.com/staranto/talksgo/internal/page/talkpage"
)

// PageKind discriminates a Page.
type PageKind int

const (
	Blank PageKind = iota
	NotFound
	Errored
	Home
	Talk
	Search
)

func (k PageKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case NotFound:
		return "not-found"
	case Errored:
		return "errored"
	case Home:
		return "home"
	case Talk:
		return "talk"
	case Search:
		return "search"
	default:
		return "unknown"
	}
}

// Page is the displayed page. Only the payload matching Kind is meaningful.
type Page struct {
	Kind   PageKind
	Home   homepage.Model
	Talk   talkpage.Model
	Search searchpage.Model
}

// PageStatus is Loaded(Page) or, while a navigation is in flight,
// RedirectFrom(Page).
type PageStatus struct {
	Page        Page
	Redirecting bool

	// tag of the latest navigation. While redirecting it is the tag the
	// pending load must carry to settle.
	tag uint64
}

// Loaded reports whether the status is settled.
func (s PageStatus) Loaded() bool { return !s.Redirecting }

// Model is the navigator state.
type Model struct {
	Status PageStatus
}

func (m Model) settle(p Page) Model {
	m.Status = PageStatus{Page: p, tag: m.Status.tag}
	return m
}

// redirect starts a new navigation away from the current page and returns
// its tag.
func (m Model) redirect() (Model, uint64) {
	tag := m.Status.tag + 1
	m.Status = PageStatus{Page: m.Status.Page, Redirecting: true, tag: tag}
	return m, tag
}

// current reports whether a resolution tagged tag may settle m.
func (m Model) current(tag uint64) bool {
	return m.Status.Redirecting && m.Status.tag == tag
}

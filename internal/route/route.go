// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package route maps front-end locations to routes and back.
package route

import (
	"net/url"
	"strings"
)

// Kind discriminates a Route.
type Kind int

const (
	KindHome Kind = iota
	KindTalk
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindTalk:
		return "talk"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Route is one of Home, Talk(Slug) or Search(Query). HasQuery distinguishes
// a search with an empty query from a search with none.
type Route struct {
	Kind     Kind
	Slug     string
	Query    string
	HasQuery bool
}

func Home() Route { return Route{Kind: KindHome} }

func Talk(slug string) Route { return Route{Kind: KindTalk, Slug: slug} }

func Search(query string) Route { return Route{Kind: KindSearch, Query: query, HasQuery: true} }

// Parse resolves location. Only the path and query of absolute URLs are
// considered.
func Parse(location string) (Route, bool) {
	u, err := url.Parse(location)
	if err != nil {
		return Route{}, false
	}

	switch p := u.Path; {
	case p == "" || p == "/":
		return Home(), true

	case p == "/search":
		q := u.Query()
		if !q.Has("q") {
			return Route{Kind: KindSearch}, true
		}
		return Search(q.Get("q")), true

	case strings.HasPrefix(p, "/talks/"):
		slug := strings.TrimPrefix(p, "/talks/")
		if slug == "" || strings.Contains(slug, "/") {
			return Route{}, false
		}
		return Talk(slug), true
	}

	return Route{}, false
}

// Location renders r as a location string that Parse maps back to r.
func (r Route) Location() string {
	switch r.Kind {
	case KindTalk:
		return (&url.URL{Path: "/talks/" + r.Slug}).String()
	case KindSearch:
		if !r.HasQuery {
			return "/search"
		}
		return "/search?" + url.Values{"q": {r.Query}}.Encode()
	default:
		return "/"
	}
}

func (r Route) String() string { return r.Location() }

// TalkPermalink recognises an absolute talk URL such as
// https://www.ted.com/talks/some_slug and returns its slug.
func TalkPermalink(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, " \t\n") {
		return "", false
	}

	u, err := url.Parse(text)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}

	rest, ok := strings.CutPrefix(u.Path, "/talks/")
	if !ok {
		return "", false
	}
	slug, _, _ := strings.Cut(rest, "/")
	if slug == "" {
		return "", false
	}
	return slug, true
}

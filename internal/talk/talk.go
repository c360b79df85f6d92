// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package talk

import (
	"time"
)

// Summary is the list form of a talk. The jsonapi tags drive CLI output and
// --schema; the json tags are the proxy API wire format.
type Summary struct {
	ID          int64     `json:"id" jsonapi:"primary,talks"`
	Slug        string    `json:"slug" jsonapi:"attr,slug"`
	Title       string    `json:"title" jsonapi:"attr,title"`
	Speaker     string    `json:"speaker" jsonapi:"attr,speaker"`
	Seconds     int       `json:"duration" jsonapi:"attr,duration"`
	Views       int64     `json:"views" jsonapi:"attr,views"`
	PublishedAt time.Time `json:"published_at" jsonapi:"attr,published-at,iso8601"`
	Tags        []string  `json:"tags,omitempty" jsonapi:"attr,tags"`
}

// Length is the running time of the talk.
func (s Summary) Length() time.Duration {
	return time.Duration(s.Seconds) * time.Second
}

// Talk is a single talk with its detail fields.
type Talk struct {
	Summary
	Description string    `json:"description"`
	MediaURL    string    `json:"media_url,omitempty"`
	Related     []Summary `json:"related,omitempty"`
}

// Home is the landing page data.
type Home struct {
	Featured []Summary `json:"featured"`
	Total    int       `json:"total"`
}

// SearchResults holds the talks matching a literal query.
type SearchResults struct {
	Query   string    `json:"query"`
	Results []Summary `json:"results"`
}

// Summaries returns every summary carried by the talk, itself first. Used to
// feed the catalog.
func (t Talk) Summaries() []Summary {
	return append([]Summary{t.Summary}, t.Related...)
}

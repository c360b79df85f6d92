// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package talk

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"
)

// ErrDecode is returned for payloads that are not valid JSON or lack the
// object the endpoint promises.
var ErrDecode = errors.New("malformed talk payload")

var (
	strict = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

	publishedLayouts = []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02",
	}
)

// DecodeTalk decodes a single-talk payload: {"talk":{...},"related":[...]}.
func DecodeTalk(raw []byte) (Talk, error) {
	doc, err := parse(raw)
	if err != nil {
		return Talk{}, err
	}

	obj := doc.Get("talk")
	if !obj.IsObject() {
		return Talk{}, fmt.Errorf("%w: no talk object", ErrDecode)
	}

	s, err := summaryFrom(obj)
	if err != nil {
		return Talk{}, err
	}

	t := Talk{
		Summary:     s,
		Description: plainText(obj.Get("description").String()),
		MediaURL:    obj.Get("media.url").String(),
	}

	related, err := summaries(doc.Get("related"))
	if err != nil {
		return Talk{}, err
	}
	t.Related = related

	return t, nil
}

// DecodeHome decodes a list payload: {"talks":[...],"counts":{"total":N}}.
func DecodeHome(raw []byte) (Home, error) {
	doc, err := parse(raw)
	if err != nil {
		return Home{}, err
	}

	list := doc.Get("talks")
	if !list.IsArray() {
		return Home{}, fmt.Errorf("%w: no talks list", ErrDecode)
	}

	featured, err := summaries(list)
	if err != nil {
		return Home{}, err
	}

	total := int(doc.Get("counts.total").Int())
	if total == 0 {
		total = len(featured)
	}

	return Home{Featured: featured, Total: total}, nil
}

// DecodeSearch decodes a search payload: {"results":[...]}.
func DecodeSearch(query string, raw []byte) (SearchResults, error) {
	doc, err := parse(raw)
	if err != nil {
		return SearchResults{}, err
	}

	list := doc.Get("results")
	if !list.IsArray() {
		return SearchResults{}, fmt.Errorf("%w: no results list", ErrDecode)
	}

	results, err := summaries(list)
	if err != nil {
		return SearchResults{}, err
	}

	return SearchResults{Query: query, Results: results}, nil
}

func parse(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrDecode)
	}
	return gjson.ParseBytes(raw), nil
}

// summaries decodes a list whose entries are either {"talk":{...}} wrappers
// or bare talk objects. A missing list is an empty list.
func summaries(list gjson.Result) ([]Summary, error) {
	if !list.Exists() {
		return nil, nil
	}

	result := make([]Summary, 0, len(list.Array()))
	for _, item := range list.Array() {
		if wrapped := item.Get("talk"); wrapped.IsObject() {
			item = wrapped
		}
		s, err := summaryFrom(item)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func summaryFrom(obj gjson.Result) (Summary, error) {
	slug := strings.TrimSpace(obj.Get("slug").String())
	if slug == "" {
		return Summary{}, fmt.Errorf("%w: talk without slug", ErrDecode)
	}

	return Summary{
		ID:          obj.Get("id").Int(),
		Slug:        slug,
		Title:       plainText(obj.Get("name").String()),
		Speaker:     speaker(obj),
		Seconds:     seconds(obj.Get("duration")),
		Views:       obj.Get("viewed_count").Int(),
		PublishedAt: published(obj.Get("published_at").String()),
		Tags:        tags(obj.Get("tags")),
	}, nil
}

func speaker(obj gjson.Result) string {
	if s := obj.Get("speaker"); s.Type == gjson.String {
		return strings.TrimSpace(s.String())
	}

	var names []string
	for _, n := range obj.Get("speakers.#.name").Array() {
		if v := strings.TrimSpace(n.String()); v != "" {
			names = append(names, v)
		}
	}
	return strings.Join(names, ", ")
}

// seconds accepts a number of seconds or a clock string (mm:ss, hh:mm:ss).
func seconds(v gjson.Result) int {
	if v.Type == gjson.Number {
		return int(v.Int())
	}

	total := 0
	for _, part := range strings.Split(v.String(), ":") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0
		}
		total = total*60 + n //nolint:mnd
	}
	return total
}

func published(v string) time.Time {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func tags(v gjson.Result) []string {
	var raw []string
	if v.IsArray() {
		for _, t := range v.Array() {
			raw = append(raw, t.String())
		}
	} else {
		raw = strings.Split(v.String(), ",")
	}

	var out []string
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// plainText strips markup and collapses whitespace.
func plainText(s string) string {
	s = html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

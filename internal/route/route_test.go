// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		location string
		want     Route
		ok       bool
	}{
		{"/", Home(), true},
		{"", Home(), true},
		{"/talks/foo-bar", Talk("foo-bar"), true},
		{"/talks/foo%20bar", Talk("foo bar"), true},
		{"/talks/", Route{}, false},
		{"/talks/a/b", Route{}, false},
		{"/search?q=dark+matter", Search("dark matter"), true},
		{"/search?q=", Search(""), true},
		{"/search", Route{Kind: KindSearch}, true},
		{"/search?x=1", Route{Kind: KindSearch}, true},
		{"https://example.com/talks/zed?utm=1", Talk("zed"), true},
		{"/nowhere", Route{}, false},
		{"/talks", Route{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got, ok := Parse(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocationInvertsParse(t *testing.T) {
	for _, r := range []Route{
		Home(),
		Talk("foo-bar"),
		Talk("with space"),
		Search("a & b"),
		Search(""),
		{Kind: KindSearch},
	} {
		got, ok := Parse(r.Location())
		assert.True(t, ok, r.Location())
		assert.Equal(t, r, got, r.Location())
	}
}

func TestTalkPermalink(t *testing.T) {
	tests := []struct {
		text string
		slug string
		ok   bool
	}{
		{"https://www.ted.com/talks/foo-bar", "foo-bar", true},
		{"  http://www.ted.com/talks/foo_bar/transcript?lang=en  ", "foo_bar", true},
		{"https://www.ted.com/talks/foo#t=10", "foo", true},
		{"https://www.ted.com/talks/", "", false},
		{"https://www.ted.com/playlists/1", "", false},
		{"/talks/foo", "", false},
		{"climate change", "", false},
		{"ftp://host/talks/foo", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			slug, ok := TalkPermalink(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.slug, slug)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "talk", KindTalk.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package searchpage

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/talk"
)

func TestSearchPage(t *testing.T) {
	m := New(talk.SearchResults{
		Query:   "space",
		Results: []talk.Summary{{Slug: "a", Title: "A"}, {Slug: "b", Title: "B"}},
	})
	assert.Equal(t, "Search: space", m.Title())
	assert.Contains(t, m.View(80), "2 talks")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, page.NavigateMsg{Location: "/talks/b"}, cmd())
}

func TestNoResults(t *testing.T) {
	m := New(talk.SearchResults{Query: "zzz"})
	assert.Contains(t, m.View(80), "0 talks")
	assert.Contains(t, m.View(80), "no talks")
}

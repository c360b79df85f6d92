// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package homepage

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/talk"
)

func TestCursorAndOpen(t *testing.T) {
	m := New(talk.Home{Featured: []talk.Summary{{Slug: "a", Title: "A"}, {Slug: "b", Title: "B"}}, Total: 1200})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Nil(t, cmd)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", s.Slug, "cursor stops at the last item")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, page.NavigateMsg{Location: "/talks/b"}, cmd())

	assert.Contains(t, m.View(80), "1,200")
	assert.Contains(t, m.View(80), "Featured talks")
}

func TestEmpty(t *testing.T) {
	m := New(talk.Home{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(0), "no talks")
}

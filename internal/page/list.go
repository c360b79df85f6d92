// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package page

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/staranto/talksgo/internal/route"
	"github.com/staranto/talksgo/internal/talk"
)

// List is a cursor over talk summaries. enter navigates to the selected
// talk.
type List struct {
	Items  []talk.Summary
	Cursor int
}

func NewList(items []talk.Summary) List {
	return List{Items: items}
}

// Selected returns the talk under the cursor.
func (l List) Selected() (talk.Summary, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return talk.Summary{}, false
	}
	return l.Items[l.Cursor], true
}

func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(l.Items) == 0 {
		return l, nil
	}

	switch {
	case key.Matches(km, Keys.Up):
		if l.Cursor > 0 {
			l.Cursor--
		}
	case key.Matches(km, Keys.Down):
		if l.Cursor < len(l.Items)-1 {
			l.Cursor++
		}
	case key.Matches(km, Keys.Open):
		if s, ok := l.Selected(); ok {
			return l, Navigate(route.Talk(s.Slug).Location())
		}
	}
	return l, nil
}

// View renders one line per talk, truncated to width when width > 0.
func (l List) View(width int) string {
	if len(l.Items) == 0 {
		return FaintStyle.Render("  (no talks)")
	}

	var b strings.Builder
	for i, s := range l.Items {
		line := fmt.Sprintf("  %s", s.Title)
		if s.Speaker != "" {
			line += FaintStyle.Render(" · " + s.Speaker)
		}
		if width > 0 {
			line = ansi.Truncate(line, width, "…")
		}
		if i == l.Cursor {
			line = SelectedStyle.Render(ansi.Strip(line))
		}
		b.WriteString(line)
		if i < len(l.Items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package homepage renders the featured talk listing.
package homepage

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/talk"
)

type Model struct {
	home talk.Home
	list page.List
}

func New(home talk.Home) Model {
	return Model{home: home, list: page.NewList(home.Featured)}
}

func (m Model) Home() talk.Home { return m.home }

func (m Model) Selected() (talk.Summary, bool) { return m.list.Selected() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View(width int) string {
	var b strings.Builder
	b.WriteString(page.SectionStyle.Render("Featured talks"))
	b.WriteString(page.FaintStyle.Render(fmt.Sprintf("  %s of %s",
		humanize.Comma(int64(len(m.home.Featured))), humanize.Comma(int64(m.home.Total)))))
	b.WriteString("\n\n")
	b.WriteString(m.list.View(width))
	return b.String()
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package searchpage renders the results of a literal search.
package searchpage

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/talk"
)

type Model struct {
	results talk.SearchResults
	list    page.List
}

func New(results talk.SearchResults) Model {
	return Model{results: results, list: page.NewList(results.Results)}
}

func (m Model) Results() talk.SearchResults { return m.results }

func (m Model) Selected() (talk.Summary, bool) { return m.list.Selected() }

// Title is the window title for the results.
func (m Model) Title() string {
	return fmt.Sprintf("Search: %s", m.results.Query)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View(width int) string {
	var b strings.Builder
	b.WriteString(page.SectionStyle.Render(fmt.Sprintf("Results for %q", m.results.Query)))
	b.WriteString(page.FaintStyle.Render("  " + english.Plural(len(m.results.Results), "talk", "")))
	b.WriteString("\n\n")
	b.WriteString(m.list.View(width))
	return b.String()
}

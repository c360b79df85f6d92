// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tui hosts the navigator in a terminal program. It owns the
// chrome (header with search, footer with key help) and the location
// history.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/talksgo/internal/navigator"
	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/route"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	bodyStyle   = lipgloss.NewStyle().Padding(1, 2)
	footerStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Model is the bubbletea model of the front end.
type Model struct {
	nav     *navigator.Navigator
	state   navigator.Model
	history *History
	start   string

	search    textinput.Model
	searching bool
	spinner   spinner.Model
	help      help.Model

	width int
}

type Option func(*Model)

// WithWidth sets the initial width, before the first window size message.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

func New(nav *navigator.Navigator, start string, opts ...Option) Model {
	if start == "" {
		start = "/"
	}

	ti := textinput.New()
	ti.Placeholder = "search talks or paste a talk URL"
	ti.Prompt = "/ "
	ti.CharLimit = 256

	m := Model{
		nav:     nav,
		history: NewHistory(start),
		start:   start,
		search:  ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// State is the navigator state.
func (m Model) State() navigator.Model { return m.state }

func (m Model) History() *History { return m.history }

func (m Model) Init() tea.Cmd {
	var cmd tea.Cmd
	_, cmd = m.nav.Init(m.start)
	return tea.Batch(cmd, m.spinner.Tick, tea.SetWindowTitle(m.nav.Title(m.state)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case navigator.PushMsg:
		log.Debugf("push %s", msg.Location)
		m.history.Push(msg.Location)
		return m.navigate(navigator.LocationChangedMsg{Location: msg.Location})

	case navigator.ReplaceMsg:
		log.Debugf("replace %s with %s", m.history.Current(), msg.Location)
		m.history.Replace(msg.Location)
		return m.navigate(navigator.LocationChangedMsg{Location: msg.Location})

	case tea.KeyMsg:
		if m.searching {
			return m.searchKey(msg)
		}
		switch {
		case key.Matches(msg, page.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, page.Keys.Search):
			m.searching = true
			return m, m.search.Focus()
		case key.Matches(msg, page.Keys.Random):
			return m.navigate(navigator.RandomRequestedMsg{})
		case key.Matches(msg, page.Keys.Back):
			if loc, ok := m.history.Back(); ok {
				return m.navigate(navigator.LocationChangedMsg{Location: loc})
			}
			return m, nil
		}
	}

	return m.navigate(msg)
}

func (m Model) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		q := strings.TrimSpace(m.search.Value())
		m.stopSearch()
		if q == "" {
			return m, nil
		}
		return m.navigate(navigator.HeaderNavigateMsg{Location: route.Search(q).Location()})

	case tea.KeyEsc:
		m.stopSearch()
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) stopSearch() {
	m.searching = false
	m.search.Blur()
	m.search.Reset()
}

func (m Model) navigate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.state, cmd = m.nav.Update(m.state, msg)
	return m, cmd
}

func (m Model) View() string {
	width := m.width
	inner := max(0, width-4) //nolint:mnd

	header := m.nav.Title(m.state)
	if m.searching {
		header = m.search.View()
	}
	if width > 0 {
		header = headerStyle.Width(width).Render(header)
	} else {
		header = headerStyle.Render(header)
	}

	body := bodyStyle.Render(renderPage(m.state.Status, inner, m.spinner.View()))
	footer := footerStyle.Render(m.help.View(page.Keys))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Run starts the front end at start and blocks until the user quits or ctx
// is done.
func Run(ctx context.Context, nav *navigator.Navigator, start string, opts []Option, popts ...tea.ProgramOption) error {
	popts = append([]tea.ProgramOption{tea.WithContext(ctx)}, popts...)
	if _, err := tea.NewProgram(New(nav, start, opts...), popts...).Run(); err != nil {
		return fmt.Errorf("front end failed: %w", err)
	}
	return nil
}

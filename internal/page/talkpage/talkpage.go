// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package talkpage renders one talk and simulates its playback.
package talkpage

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/staranto/talksgo/internal/page"
	"github.com/staranto/talksgo/internal/talk"
)

const tickInterval = time.Second

var lastID int64

func nextID() int { return int(atomic.AddInt64(&lastID, 1)) }

// TickMsg advances playback of the page whose id it carries. Ticks from an
// earlier run (tag) of the same page are ignored.
type TickMsg struct {
	ID  int
	tag int
}

type Model struct {
	talk    talk.Talk
	related page.List
	bar     progress.Model

	id      int
	tag     int
	elapsed time.Duration
	playing bool
}

func New(t talk.Talk) Model {
	return Model{
		talk:    t,
		related: page.NewList(t.Related),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		id:      nextID(),
	}
}

// Init starts playback. The returned model must replace m.
func (m Model) Init() (Model, tea.Cmd) {
	return m.start()
}

func (m Model) Talk() talk.Talk { return m.talk }

func (m Model) ID() int { return m.id }

func (m Model) Elapsed() time.Duration { return m.elapsed }

func (m Model) Playing() bool { return m.playing }

// Title is the window title for the talk.
func (m Model) Title() string {
	if m.talk.Speaker == "" {
		return m.talk.Title
	}
	return fmt.Sprintf("%s: %s", m.talk.Speaker, m.talk.Title)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || msg.tag != m.tag || !m.playing {
			return m, nil
		}
		m.elapsed += tickInterval
		if length := m.talk.Length(); length > 0 && m.elapsed >= length {
			m.elapsed = length
			m.playing = false
			return m, nil
		}
		return m, m.next()

	case tea.KeyMsg:
		if key.Matches(msg, page.Keys.Pause) {
			if m.playing {
				m.playing = false
				m.tag++
				return m, nil
			}
			if length := m.talk.Length(); length > 0 && m.elapsed >= length {
				m.elapsed = 0
			}
			return m.start()
		}
	}

	var cmd tea.Cmd
	m.related, cmd = m.related.Update(msg)
	return m, cmd
}

// start (re)starts playback under a fresh tag so ticks still in flight from
// a previous run are ignored.
func (m Model) start() (Model, tea.Cmd) {
	m.tag++
	m.playing = true
	return m, m.next()
}

func (m Model) next() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}

func (m Model) View(width int) string {
	var b strings.Builder

	b.WriteString(page.TitleStyle.Render(m.talk.Title))
	b.WriteByte('\n')

	var meta []string
	if m.talk.Speaker != "" {
		meta = append(meta, m.talk.Speaker)
	}
	if m.talk.Seconds > 0 {
		meta = append(meta, clock(m.talk.Length()))
	}
	if m.talk.Views > 0 {
		meta = append(meta, humanize.Comma(m.talk.Views)+" views")
	}
	if !m.talk.PublishedAt.IsZero() {
		meta = append(meta, humanize.Time(m.talk.PublishedAt))
	}
	b.WriteString(page.FaintStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	b.WriteString(m.player(width))
	b.WriteString("\n\n")

	if len(m.talk.Tags) > 0 {
		b.WriteString(page.TagStyle.Render("#" + strings.Join(m.talk.Tags, " #")))
		b.WriteString("\n\n")
	}

	if m.talk.Description != "" {
		desc := m.talk.Description
		if width > 0 {
			desc = lipgloss.NewStyle().Width(width).Render(desc)
		}
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	if len(m.talk.Related) > 0 {
		b.WriteString(page.SectionStyle.Render("Related"))
		b.WriteString("\n")
		b.WriteString(m.related.View(width))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) player(width int) string {
	state := "▶"
	if !m.playing {
		state = "⏸"
	}
	label := fmt.Sprintf(" %s / %s", clock(m.elapsed), clock(m.talk.Length()))

	bar := m.bar
	bar.Width = max(10, width-lipgloss.Width(state+label)-2) //nolint:mnd

	var pct float64
	if length := m.talk.Length(); length > 0 {
		pct = float64(m.elapsed) / float64(length)
	}
	return state + " " + bar.ViewAs(pct) + label
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mm := int(d/time.Minute) % 60 //nolint:mnd
	ss := int(d/time.Second) % 60 //nolint:mnd
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
	}
	return fmt.Sprintf("%d:%02d", mm, ss)
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package page

import "github.com/charmbracelet/lipgloss"

// Styles used across the pages. ANSI 256 colors.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	FaintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	TagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	SectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

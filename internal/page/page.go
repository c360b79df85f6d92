// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package page holds what the front-end sub-pages share: the navigate
// request, key bindings, styles and the talk list widget.
package page

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg asks the host to push Location onto its history and go there.
type NavigateMsg struct {
	Location string
}

// Navigate requests a navigation to location.
func Navigate(location string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Location: location} }
}

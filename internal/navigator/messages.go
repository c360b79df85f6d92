// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package navigator

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/staranto/talksgo/internal/route"
	"github.com/staranto/talksgo/internal/talk"
)

// LocationChangedMsg is sent by the host whenever the current location
// changes: at start, after a history push and on history back.
type LocationChangedMsg struct {
	Location string
}

// PushMsg asks the host to push Location onto its history. The host answers
// with a LocationChangedMsg.
type PushMsg struct {
	Location string
}

// ReplaceMsg asks the host to overwrite the current history entry with
// Location. The host answers with a LocationChangedMsg.
type ReplaceMsg struct {
	Location string
}

// HeaderNavigateMsg is a navigation requested by the host chrome, such as a
// submitted search.
type HeaderNavigateMsg struct {
	Location string
}

// RandomRequestedMsg asks for a random talk.
type RandomRequestedMsg struct{}

// HomeMsg, TalkMsg and SearchMsg carry a message for the sub-page of that
// variant. They are discarded unless that variant is loaded.
type (
	HomeMsg   struct{ Msg tea.Msg }
	TalkMsg   struct{ Msg tea.Msg }
	SearchMsg struct{ Msg tea.Msg }
)

// loadedMsg is the resolution of a route load.
type loadedMsg struct {
	tag    uint64
	kind   route.Kind
	home   talk.Home
	talk   talk.Talk
	search talk.SearchResults
	err    error
}

// randomMsg is the resolution of a random talk lookup.
type randomMsg struct {
	tag  uint64
	slug string
	err  error
}

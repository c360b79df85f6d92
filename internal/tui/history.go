// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

// History is the stack of visited locations. The top is the current one.
type History struct {
	stack []string
}

func NewHistory(start string) *History {
	return &History{stack: []string{start}}
}

func (h *History) Push(location string) {
	h.stack = append(h.stack, location)
}

// Replace overwrites the current location.
func (h *History) Replace(location string) {
	h.stack[len(h.stack)-1] = location
}

// Back pops the current location and returns the one beneath it. The last
// location is never popped.
func (h *History) Back() (string, bool) {
	if len(h.stack) < 2 { //nolint:mnd
		return "", false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.stack[len(h.stack)-1], true
}

func (h *History) Current() string {
	return h.stack[len(h.stack)-1]
}

func (h *History) Len() int { return len(h.stack) }

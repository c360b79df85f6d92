// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/staranto/talksgo/internal/navigator"
	"github.com/staranto/talksgo/internal/page"
)

// renderPage draws the body for status. A redirect always draws the loading
// view, whatever page it is leaving.
func renderPage(status navigator.PageStatus, width int, spinner string) string {
	if status.Redirecting {
		return loadingView(spinner)
	}

	p := status.Page
	switch p.Kind {
	case navigator.NotFound:
		return notFoundView()
	case navigator.Errored:
		return erroredView()
	case navigator.Home:
		return p.Home.View(width)
	case navigator.Talk:
		return p.Talk.View(width)
	case navigator.Search:
		return p.Search.View(width)
	default:
		return blankView()
	}
}

func loadingView(spinner string) string {
	return spinner + " " + page.FaintStyle.Render("Loading…")
}

func blankView() string {
	return ""
}

func notFoundView() string {
	return page.ErrorStyle.Render("Not found") + "\n\n" +
		page.FaintStyle.Render("Nothing lives at this address. Press b to go back or / to search.")
}

func erroredView() string {
	return page.ErrorStyle.Render("Something went wrong") + "\n\n" +
		page.FaintStyle.Render("The talk service could not be reached. Press b to go back or r for a random talk.")
}

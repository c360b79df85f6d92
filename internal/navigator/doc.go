// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package navigator is the front end's page state machine. It turns
// location changes into loads, settles the page when a load resolves and
// routes sub-page messages to the page that is showing.
//
// The state is a single PageStatus. While a load is in flight the status is
// a redirect from the page that was showing, which keeps it on screen (as a
// loading view) until the load settles. Every load carries the navigation
// tag current when it started; a resolution whose tag is no longer current
// is dropped, so the most recent navigation always wins.
//
// Update is pure: it never blocks and holds no state of its own. Loads run
// as tea.Cmds and come back as messages.
package navigator

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP surface of the proxy. It serves talk data to the
// front end as JSON, fetching from the upstream through the cache and
// recording everything it serves in the catalog.
//
//	GET /healthz
//	GET /api/home
//	GET /api/talks/random
//	GET /api/talks/{slug}
//	GET /api/search?q=
//
// Failures are written as a JSON envelope:
//
//	{"error":"not_found","message":"...","status":404,"request_id":"..."}
package api

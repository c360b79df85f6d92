// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package talk defines the talk records served by the proxy and decodes the
// third-party talks API payloads into them.
package talk

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package driller resolves the attribute paths used by --attrs and --filter
// against JSON documents.
package driller

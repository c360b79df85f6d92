// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output renders CLI query results. Records are wrapped in a JSON:API
// document, filtered, transformed and sorted per the command flags, then
// written as a text table, JSON, YAML or the raw API response.
package output

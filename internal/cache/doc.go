// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache is the key-value cache in front of the upstream talks API.
// Backends are in-memory, on-disk (see cacheutil) and S3.
package cache

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize bounds a Memory store opened without an explicit size.
const DefaultMemorySize = 1024

// Memory is a process-local Store holding at most size entries. Expired
// entries are swept in the background; the least recently used entry is
// evicted when the store is full.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory returns a Memory store. A non-positive size means
// DefaultMemorySize; a non-positive ttl never expires.
func NewMemory(ttl time.Duration, size int) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.lru.Add(key, v)
	return nil
}

// Len is the number of entries held.
func (m *Memory) Len() int {
	return m.lru.Len()
}
